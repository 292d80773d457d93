package desk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is the ticket desk API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a new ticket desk API client.
//
// Parameters:
//   - baseURL: The API base URL (e.g., "https://desk.example.com")
//   - token: A JWT access token for the acting user
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateTicket opens a new ticket against a contract.
func (c *Client) CreateTicket(ctx context.Context, req CreateTicketRequest) (*CreateTicketResult, error) {
	var result CreateTicketResult
	if err := c.doRequest(ctx, http.MethodPost, c.baseURL+"/tickets", req, &result); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	return &result, nil
}

// GetTicket retrieves a single ticket.
func (c *Client) GetTicket(ctx context.Context, ticketID uint) (*Ticket, error) {
	var ticket Ticket
	u := fmt.Sprintf("%s/tickets/%d", c.baseURL, ticketID)
	if err := c.doRequest(ctx, http.MethodGet, u, nil, &ticket); err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return &ticket, nil
}

// ListTickets retrieves tickets filtered by the given options.
func (c *Client) ListTickets(ctx context.Context, opts ListTicketsOptions) ([]Ticket, error) {
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.Priority != "" {
		q.Set("priority", opts.Priority)
	}
	if opts.Category != "" {
		q.Set("category", opts.Category)
	}
	if opts.ContractID != 0 {
		q.Set("contract_id", strconv.FormatUint(uint64(opts.ContractID), 10))
	}
	if opts.AssigneeID != 0 {
		q.Set("assignee_id", strconv.FormatUint(uint64(opts.AssigneeID), 10))
	}
	if opts.Page != 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize != 0 {
		q.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	if opts.SortBy != "" {
		q.Set("sort_by", opts.SortBy)
	}
	if opts.SortOrder != "" {
		q.Set("sort_order", opts.SortOrder)
	}

	u := c.baseURL + "/tickets"
	if encoded := q.Encode(); encoded != "" {
		u += "?" + encoded
	}

	var tickets []Ticket
	if err := c.doRequest(ctx, http.MethodGet, u, nil, &tickets); err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// ChangeStatus moves a ticket to another board column.
func (c *Client) ChangeStatus(ctx context.Context, ticketID uint, req ChangeStatusRequest) error {
	u := fmt.Sprintf("%s/tickets/%d/status", c.baseURL, ticketID)
	if err := c.doRequest(ctx, http.MethodPatch, u, req, nil); err != nil {
		return fmt.Errorf("change status: %w", err)
	}
	return nil
}

// PostMessage appends a text message to a ticket's thread.
func (c *Client) PostMessage(ctx context.Context, ticketID uint, body string) (*Message, error) {
	u := fmt.Sprintf("%s/tickets/%d/messages", c.baseURL, ticketID)
	payload := map[string]string{"body": body}

	var message Message
	if err := c.doRequest(ctx, http.MethodPost, u, payload, &message); err != nil {
		return nil, fmt.Errorf("post message: %w", err)
	}
	return &message, nil
}

// ListMessages retrieves a ticket's thread in creation order.
func (c *Client) ListMessages(ctx context.Context, ticketID uint) ([]Message, error) {
	u := fmt.Sprintf("%s/tickets/%d/messages", c.baseURL, ticketID)

	var messages []Message
	if err := c.doRequest(ctx, http.MethodGet, u, nil, &messages); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// MarkRead records that the acting user has seen the ticket's thread.
func (c *Client) MarkRead(ctx context.Context, ticketID uint) error {
	u := fmt.Sprintf("%s/tickets/%d/read", c.baseURL, ticketID)
	if err := c.doRequest(ctx, http.MethodPost, u, nil, nil); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

// GetChangeLog retrieves a ticket's audit trail. It stays readable after
// the ticket itself has been purged.
func (c *Client) GetChangeLog(ctx context.Context, ticketID uint) ([]ChangeLogEntry, error) {
	u := fmt.Sprintf("%s/tickets/%d/changelog", c.baseURL, ticketID)

	var entries []ChangeLogEntry
	if err := c.doRequest(ctx, http.MethodGet, u, nil, &entries); err != nil {
		return nil, fmt.Errorf("get changelog: %w", err)
	}
	return entries, nil
}

// doRequest performs an HTTP request and decodes the response envelope.
func (c *Client) doRequest(ctx context.Context, method, url string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("api error: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	if result == nil {
		return nil
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	if !apiResp.Success {
		return fmt.Errorf("api error: %s", apiResp.Message)
	}

	if apiResp.Data == nil {
		return nil
	}

	dataBytes, err := json.Marshal(apiResp.Data)
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}

	if err := json.Unmarshal(dataBytes, result); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}
