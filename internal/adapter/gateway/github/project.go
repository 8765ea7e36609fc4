// Package github reads an organization project board through the GitHub GraphQL API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/vadimbarashkov/ngo-site/internal/adapter/gateway"
	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

const DefaultBaseURL = "https://api.github.com"

const projectQuery = `query($org: String!, $number: Int!) {
  organization(login: $org) {
    projectV2(number: $number) {
      title
      url
      field(name: "Status") {
        ... on ProjectV2SingleSelectField {
          options { name }
        }
      }
      items(first: 100) {
        nodes {
          id
          type
          fieldValueByName(name: "Status") {
            ... on ProjectV2ItemFieldSingleSelectValue { name }
          }
          content {
            ... on Issue {
              title
              url
              assignees(first: 10) { nodes { login } }
              labels(first: 10) { nodes { name } }
            }
            ... on PullRequest {
              title
              url
              assignees(first: 10) { nodes { login } }
              labels(first: 10) { nodes { name } }
            }
            ... on DraftIssue {
              title
              assignees(first: 10) { nodes { login } }
            }
          }
        }
      }
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type projectResponse struct {
	Data struct {
		Organization *struct {
			ProjectV2 *projectNode `json:"projectV2"`
		} `json:"organization"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type projectNode struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Field *struct {
		Options []struct {
			Name string `json:"name"`
		} `json:"options"`
	} `json:"field"`
	Items struct {
		Nodes []itemNode `json:"nodes"`
	} `json:"items"`
}

type itemNode struct {
	ID               string `json:"id"`
	Type             string `json:"type"`
	FieldValueByName *struct {
		Name string `json:"name"`
	} `json:"fieldValueByName"`
	Content *struct {
		Title     string `json:"title"`
		URL       string `json:"url"`
		Assignees struct {
			Nodes []struct {
				Login string `json:"login"`
			} `json:"nodes"`
		} `json:"assignees"`
		Labels struct {
			Nodes []struct {
				Name string `json:"name"`
			} `json:"nodes"`
		} `json:"labels"`
	} `json:"content"`
}

// ProjectClient fetches a single ProjectV2 board of an organization.
type ProjectClient struct {
	baseURL       string
	token         string
	organization  string
	projectNumber int
	client        *http.Client
}

type Option func(*ProjectClient)

func WithHTTPClient(client *http.Client) Option {
	return func(c *ProjectClient) {
		c.client = client
	}
}

func WithBaseURL(baseURL string) Option {
	return func(c *ProjectClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func NewProjectClient(token, organization string, projectNumber int, opts ...Option) *ProjectClient {
	c := &ProjectClient{
		baseURL:       DefaultBaseURL,
		token:         token,
		organization:  organization,
		projectNumber: projectNumber,
		client:        gateway.NewHTTPClient(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *ProjectClient) FetchBoard(ctx context.Context) (*entity.ProjectBoard, error) {
	const op = "adapter.gateway.github.ProjectClient.FetchBoard"

	req, err := gateway.NewJSONRequest(ctx, http.MethodPost, c.baseURL+"/graphql", graphQLRequest{
		Query: projectQuery,
		Variables: map[string]any{
			"org":    c.organization,
			"number": c.projectNumber,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	var resp projectResponse
	if err := gateway.Do(c.client, req, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(resp.Errors) > 0 {
		msgs := make([]string, len(resp.Errors))
		for i, e := range resp.Errors {
			msgs[i] = e.Message
		}
		return nil, fmt.Errorf("%s: %w: graphql: %s", op, entity.ErrUpstream, strings.Join(msgs, "; "))
	}

	if resp.Data.Organization == nil || resp.Data.Organization.ProjectV2 == nil {
		return nil, fmt.Errorf("%s: %w: project %s/%d not found", op, entity.ErrUpstream, c.organization, c.projectNumber)
	}

	return normalizeBoard(resp.Data.Organization.ProjectV2), nil
}

// normalizeBoard groups items into one column per status option, in option order.
// Items without a status, or with a status the field no longer lists, go to trailing columns.
func normalizeBoard(p *projectNode) *entity.ProjectBoard {
	var (
		columns []entity.BoardColumn
		index   = make(map[string]int)
	)

	addColumn := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		index[name] = len(columns)
		columns = append(columns, entity.BoardColumn{Name: name, Items: []entity.BoardItem{}})
		return len(columns) - 1
	}

	if p.Field != nil {
		for _, opt := range p.Field.Options {
			addColumn(opt.Name)
		}
	}

	var noStatus []entity.BoardItem

	for _, n := range p.Items.Nodes {
		item := toBoardItem(n)

		if item.Status == "" {
			noStatus = append(noStatus, item)
			continue
		}

		i := addColumn(item.Status)
		columns[i].Items = append(columns[i].Items, item)
	}

	if len(noStatus) > 0 {
		columns = append(columns, entity.BoardColumn{Name: entity.NoStatusColumn, Items: noStatus})
	}

	if columns == nil {
		columns = []entity.BoardColumn{}
	}

	return &entity.ProjectBoard{
		Title:   p.Title,
		URL:     p.URL,
		Columns: columns,
	}
}

func toBoardItem(n itemNode) entity.BoardItem {
	item := entity.BoardItem{
		ID:        n.ID,
		Type:      n.Type,
		Assignees: []string{},
		Labels:    []string{},
	}

	if n.FieldValueByName != nil {
		item.Status = n.FieldValueByName.Name
	}

	if n.Content != nil {
		item.Title = n.Content.Title
		item.URL = n.Content.URL

		for _, a := range n.Content.Assignees.Nodes {
			item.Assignees = append(item.Assignees, a.Login)
		}
		for _, l := range n.Content.Labels.Nodes {
			item.Labels = append(item.Labels, l.Name)
		}
	}

	return item
}
