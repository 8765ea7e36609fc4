// Package calendar lists upcoming events of a public Google Calendar.
package calendar

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vadimbarashkov/ngo-site/internal/adapter/gateway"
	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

const (
	DefaultBaseURL = "https://www.googleapis.com/calendar/v3"

	dateLayout = "2006-01-02"
)

type eventTime struct {
	DateTime string `json:"dateTime"`
	Date     string `json:"date"`
}

type eventItem struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	HTMLLink    string    `json:"htmlLink"`
	Start       eventTime `json:"start"`
	End         eventTime `json:"end"`
}

type eventsResponse struct {
	Items []eventItem `json:"items"`
}

type Client struct {
	baseURL    string
	apiKey     string
	calendarID string
	client     *http.Client
	now        func() time.Time
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

func NewClient(apiKey, calendarID string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		calendarID: calendarID,
		client:     gateway.NewHTTPClient(),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// UpcomingEvents returns at most limit events starting from now, in start order.
// Recurring events are expanded into single instances.
func (c *Client) UpcomingEvents(ctx context.Context, limit int) ([]entity.CalendarEvent, error) {
	const op = "adapter.gateway.calendar.Client.UpcomingEvents"

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("timeMin", c.now().UTC().Format(time.RFC3339))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	q.Set("maxResults", strconv.Itoa(limit))

	endpoint := fmt.Sprintf("%s/calendars/%s/events?%s", c.baseURL, url.PathEscape(c.calendarID), q.Encode())

	req, err := gateway.NewJSONRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var resp eventsResponse
	if err := gateway.Do(c.client, req, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	events := make([]entity.CalendarEvent, 0, len(resp.Items))
	for _, item := range resp.Items {
		event, err := toEvent(item)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: event %s: %v", op, entity.ErrUpstream, item.ID, err)
		}
		events = append(events, event)
	}

	return events, nil
}

func toEvent(item eventItem) (entity.CalendarEvent, error) {
	start, allDay, err := parseEventTime(item.Start)
	if err != nil {
		return entity.CalendarEvent{}, fmt.Errorf("invalid start: %w", err)
	}

	end, _, err := parseEventTime(item.End)
	if err != nil {
		return entity.CalendarEvent{}, fmt.Errorf("invalid end: %w", err)
	}

	return entity.CalendarEvent{
		ID:          item.ID,
		Title:       item.Summary,
		Description: item.Description,
		Location:    item.Location,
		Start:       start,
		End:         end,
		AllDay:      allDay,
		Link:        item.HTMLLink,
	}, nil
}

// parseEventTime reads either a timestamp or, for all-day events, a bare date.
func parseEventTime(t eventTime) (time.Time, bool, error) {
	switch {
	case t.DateTime != "":
		v, err := time.Parse(time.RFC3339, t.DateTime)
		return v, false, err
	case t.Date != "":
		v, err := time.Parse(dateLayout, t.Date)
		return v, true, err
	default:
		return time.Time{}, false, nil
	}
}
