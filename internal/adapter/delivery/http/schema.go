package http

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// urlRequest represents the structure for a request to shorten a URL.
type urlRequest struct {
	URL string `json:"url" validate:"required,http_url"`
}

// urlResponse represents a created short link.
type urlResponse struct {
	ID          int64     `json:"id"`
	ShortCode   string    `json:"short_code"`
	ShortURL    string    `json:"short_url"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toURLResponse(url *entity.URL, baseURL string) urlResponse {
	return urlResponse{
		ID:          url.ID,
		ShortCode:   url.ShortCode,
		ShortURL:    baseURL + "/s/" + url.ShortCode,
		OriginalURL: url.OriginalURL,
		CreatedAt:   url.CreatedAt,
		UpdatedAt:   url.UpdatedAt,
	}
}

// urlStatsResponse represents the structure for a response containing URL statistics.
type urlStatsResponse struct {
	ID          int64     `json:"id"`
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	Stats       urlStats  `json:"stats"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type urlStats struct {
	AccessCount int64 `json:"access_count"`
}

func toURLStatsResponse(url *entity.URL) urlStatsResponse {
	return urlStatsResponse{
		ID:          url.ID,
		ShortCode:   url.ShortCode,
		OriginalURL: url.OriginalURL,
		Stats: urlStats{
			AccessCount: url.URLStats.AccessCount,
		},
		CreatedAt: url.CreatedAt,
		UpdatedAt: url.UpdatedAt,
	}
}

type collectionResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type collectionsResponse struct {
	Collections []collectionResponse `json:"collections"`
}

func toCollectionsResponse(infos []entity.CollectionInfo) collectionsResponse {
	resp := collectionsResponse{Collections: make([]collectionResponse, len(infos))}
	for i, info := range infos {
		resp.Collections[i] = collectionResponse{Name: info.Name, Count: info.Count}
	}
	return resp
}

// postSummary is a post without its rendered body, as used in listings.
type postSummary struct {
	Slug        string     `json:"slug"`
	Collection  string     `json:"collection"`
	Title       string     `json:"title"`
	Date        *time.Time `json:"date,omitempty"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	Author      string     `json:"author,omitempty"`
	Description string     `json:"description,omitempty"`
	Image       string     `json:"image,omitempty"`
	ReadingTime int        `json:"reading_time"`
	Excerpt     string     `json:"excerpt"`
}

type postResponse struct {
	postSummary
	HTML string `json:"html"`
}

func toPostSummary(p *entity.Post) postSummary {
	s := postSummary{
		Slug:        p.Slug,
		Collection:  p.Collection,
		Title:       p.Title,
		Category:    p.Category,
		Tags:        p.Tags,
		Author:      p.Author,
		Description: p.Description,
		Image:       p.Image,
		ReadingTime: p.ReadingTime,
		Excerpt:     p.Excerpt,
	}

	if !p.Date.IsZero() {
		d := p.Date
		s.Date = &d
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}

	return s
}

func toPostSummaries(posts []*entity.Post) []postSummary {
	items := make([]postSummary, len(posts))
	for i, p := range posts {
		items[i] = toPostSummary(p)
	}
	return items
}

func toPostResponse(p *entity.Post) postResponse {
	return postResponse{
		postSummary: toPostSummary(p),
		HTML:        p.HTML,
	}
}

type postPageResponse struct {
	Items      []postSummary `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalItems int           `json:"total_items"`
	TotalPages int           `json:"total_pages"`
}

func toPostPageResponse(page *entity.Page[*entity.Post]) postPageResponse {
	return postPageResponse{
		Items:      toPostSummaries(page.Items),
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}

type relatedResponse struct {
	Items []postSummary `json:"items"`
}

type termResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type termsResponse struct {
	Items []termResponse `json:"items"`
}

func toTermsResponse(terms []entity.TermCount) termsResponse {
	resp := termsResponse{Items: make([]termResponse, len(terms))}
	for i, t := range terms {
		resp.Items[i] = termResponse{Name: t.Name, Count: t.Count}
	}
	return resp
}

type boardItemResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	URL       string   `json:"url,omitempty"`
	Type      string   `json:"type"`
	Status    string   `json:"status,omitempty"`
	Assignees []string `json:"assignees"`
	Labels    []string `json:"labels"`
}

type boardColumnResponse struct {
	Name  string              `json:"name"`
	Items []boardItemResponse `json:"items"`
}

type boardResponse struct {
	Title     string                `json:"title"`
	URL       string                `json:"url"`
	Columns   []boardColumnResponse `json:"columns"`
	FetchedAt time.Time             `json:"fetched_at"`
	Stale     bool                  `json:"stale"`
}

func toBoardResponse(b *entity.ProjectBoard) boardResponse {
	resp := boardResponse{
		Title:     b.Title,
		URL:       b.URL,
		Columns:   make([]boardColumnResponse, len(b.Columns)),
		FetchedAt: b.FetchedAt,
		Stale:     b.Stale,
	}

	for i, col := range b.Columns {
		items := make([]boardItemResponse, len(col.Items))
		for j, it := range col.Items {
			items[j] = boardItemResponse{
				ID:        it.ID,
				Title:     it.Title,
				URL:       it.URL,
				Type:      it.Type,
				Status:    it.Status,
				Assignees: nonNil(it.Assignees),
				Labels:    nonNil(it.Labels),
			}
		}
		resp.Columns[i] = boardColumnResponse{Name: col.Name, Items: items}
	}

	return resp
}

type eventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"all_day"`
	Link        string    `json:"link,omitempty"`
}

type eventsResponse struct {
	Items []eventResponse `json:"items"`
}

func toEventsResponse(events []entity.CalendarEvent) eventsResponse {
	resp := eventsResponse{Items: make([]eventResponse, len(events))}
	for i, e := range events {
		resp.Items[i] = eventResponse{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Location:    e.Location,
			Start:       e.Start,
			End:         e.End,
			AllDay:      e.AllDay,
			Link:        e.Link,
		}
	}
	return resp
}

// contactRequest is a contact-form submission. Botcheck is a honeypot field hidden from humans.
type contactRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Subject  string `json:"subject" validate:"max=200"`
	Message  string `json:"message" validate:"required,max=5000"`
	Botcheck string `json:"botcheck"`
}

type newsletterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"max=100"`
}

type messageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// validationError represents an individual validation error.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse represents a structured error response.
type errorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  []validationError `json:"errors,omitempty"`
}

func newErrorResponse(msg string) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: msg,
	}
}

// Predefined error responses for common scenarios.
var (
	emptyRequestBodyResponse   = newErrorResponse("empty request body")
	invalidRequestBodyResponse = newErrorResponse("invalid request body")
	urlNotFoundResponse        = newErrorResponse("url not found")
	postNotFoundResponse       = newErrorResponse("post not found")
	collectionNotFoundResponse = newErrorResponse("collection not found")
	alreadySubscribedResponse  = newErrorResponse("email is already subscribed")
	upstreamErrorResponse      = newErrorResponse("upstream service unavailable")
	tooManyRequestsResponse    = newErrorResponse("too many requests")
	serverErrorResponse        = newErrorResponse("server error occurred")
)

// messageForTag returns a user-friendly message based on the validation tag.
func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "url", "http_url":
		return "invalid url"
	case "email":
		return "invalid email"
	case "max":
		return "must be at most " + param + " characters long"
	default:
		return "invalid value"
	}
}

// getValidationErrors processes validation errors and returns a list of validationError.
func getValidationErrors(err error) []validationError {
	var validationErrs []validationError

	errs, ok := err.(validator.ValidationErrors)
	if ok {
		for _, e := range errs {
			validationErrs = append(validationErrs, validationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag(), e.Param()),
			})
		}
	}

	return validationErrs
}

// validationErrorResponse constructs an errorResponse for validation errors.
func validationErrorResponse(err error) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: "validation error",
		Errors:  getValidationErrors(err),
	}
}

func queryErrorResponse(field string) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: "invalid query parameter",
		Errors: []validationError{
			{Field: field, Message: "must be an integer"},
		},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
