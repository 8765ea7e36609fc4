// Package mailchimp adds newsletter subscribers to a Mailchimp audience.
package mailchimp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/vadimbarashkov/ngo-site/internal/adapter/gateway"
	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

const (
	statusSubscribed  = "subscribed"
	titleMemberExists = "Member Exists"
)

type memberRequest struct {
	EmailAddress string            `json:"email_address"`
	Status       string            `json:"status"`
	MergeFields  map[string]string `json:"merge_fields,omitempty"`
}

type problem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

type Client struct {
	baseURL string
	apiKey  string
	listID  string
	client  *http.Client
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func NewClient(baseURL, apiKey, listID string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		listID:  listID,
		client:  gateway.NewHTTPClient(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Subscribe adds sub to the audience. An address already on the list yields entity.ErrAlreadySubscribed.
func (c *Client) Subscribe(ctx context.Context, sub entity.Subscriber) error {
	const op = "adapter.gateway.mailchimp.Client.Subscribe"

	body := memberRequest{
		EmailAddress: sub.Email,
		Status:       statusSubscribed,
	}
	if sub.FirstName != "" {
		body.MergeFields = map[string]string{"FNAME": sub.FirstName}
	}

	endpoint := fmt.Sprintf("%s/3.0/lists/%s/members", c.baseURL, url.PathEscape(c.listID))

	req, err := gateway.NewJSONRequest(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.SetBasicAuth("anystring", c.apiKey)

	err = gateway.Do(c.client, req, nil)
	if err == nil {
		return nil
	}

	var statusErr *gateway.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusBadRequest {
		var p problem
		if json.Unmarshal(statusErr.Body, &p) == nil && p.Title == titleMemberExists {
			return fmt.Errorf("%s: %w", op, entity.ErrAlreadySubscribed)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
