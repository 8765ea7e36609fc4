// Package web3forms forwards contact-form messages through the Web3Forms API.
package web3forms

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/vadimbarashkov/ngo-site/internal/adapter/gateway"
	"github.com/vadimbarashkov/ngo-site/internal/entity"
)

const DefaultBaseURL = "https://api.web3forms.com"

type submitRequest struct {
	AccessKey string `json:"access_key"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	FromName  string `json:"from_name,omitempty"`
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Client struct {
	baseURL   string
	accessKey string
	fromName  string
	client    *http.Client
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

func WithFromName(name string) Option {
	return func(c *Client) {
		c.fromName = name
	}
}

func NewClient(accessKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		accessKey: accessKey,
		client:    gateway.NewHTTPClient(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) SendContact(ctx context.Context, msg entity.ContactMessage) error {
	const op = "adapter.gateway.web3forms.Client.SendContact"

	req, err := gateway.NewJSONRequest(ctx, http.MethodPost, c.baseURL+"/submit", submitRequest{
		AccessKey: c.accessKey,
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Message:   msg.Message,
		FromName:  c.fromName,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var resp submitResponse
	if err := gateway.Do(c.client, req, &resp); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !resp.Success {
		return fmt.Errorf("%s: %w: submission rejected: %s", op, entity.ErrUpstream, resp.Message)
	}

	return nil
}
