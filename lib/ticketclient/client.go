// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package ticketclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/helpdesk-foundation/helpdesk/lib/ticket"
)

// defaultTimeout bounds every request when the caller supplies no
// http.Client of their own. Remote calls in the TUI are issued from
// command goroutines, so a hung request would otherwise leak forever.
const defaultTimeout = 30 * time.Second

// Client talks to the ticket service. Safe for concurrent use: the
// TUI issues overlapping requests (a classification call, a list
// query, a status update) from separate command goroutines against a
// single Client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the service at baseURL (scheme + host,
// e.g. "http://localhost:8000"). A nil httpClient gets a default with
// a 30-second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ServiceError is a non-2xx response from the ticket service. Detail
// carries the service's human-readable message when it supplied one,
// else the raw (truncated) response body.
type ServiceError struct {
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ticketclient: service returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("ticketclient: service returned %d", e.StatusCode)
}

// List fetches tickets matching the filter, in the service's order
// (newest first). Zero-valued filter fields are omitted from the
// query string entirely — an empty string is not a constraint.
func (client *Client) List(ctx context.Context, filter ticket.Filter) ([]ticket.Ticket, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", string(filter.Category))
	}
	if filter.Priority != "" {
		query.Set("priority", string(filter.Priority))
	}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	response, err := client.do(ctx, http.MethodGet, "/api/tickets/", query, nil)
	if err != nil {
		return nil, err
	}
	tickets, err := decode[[]ticket.Ticket](response)
	if err != nil {
		return nil, err
	}
	return *tickets, nil
}

// Create files a new ticket from the draft. The service assigns the
// ID and timestamps and defaults status to open.
func (client *Client) Create(ctx context.Context, draft ticket.Draft) (*ticket.Ticket, error) {
	response, err := client.do(ctx, http.MethodPost, "/api/tickets/", nil, draft)
	if err != nil {
		return nil, err
	}
	return decode[ticket.Ticket](response)
}

// UpdateStatus issues a partial update changing only the status of
// the identified ticket. Returns the updated record.
func (client *Client) UpdateStatus(ctx context.Context, id int64, status ticket.Status) (*ticket.Ticket, error) {
	payload := struct {
		Status ticket.Status `json:"status"`
	}{Status: status}

	path := fmt.Sprintf("/api/tickets/%d/", id)
	response, err := client.do(ctx, http.MethodPatch, path, nil, payload)
	if err != nil {
		return nil, err
	}
	return decode[ticket.Ticket](response)
}

// Stats fetches the aggregate counts consumed by the statistics pane.
func (client *Client) Stats(ctx context.Context) (*ticket.Stats, error) {
	response, err := client.do(ctx, http.MethodGet, "/api/tickets/stats/", nil, nil)
	if err != nil {
		return nil, err
	}
	return decode[ticket.Stats](response)
}

// Classify asks the service to suggest a category and priority for a
// drafted description. Callers treat this as an enhancement: any
// error is swallowed at the orchestration layer, never shown.
func (client *Client) Classify(ctx context.Context, description string) (*ticket.Suggestion, error) {
	payload := struct {
		Description string `json:"description"`
	}{Description: description}

	response, err := client.do(ctx, http.MethodPost, "/api/tickets/classify/", nil, payload)
	if err != nil {
		return nil, err
	}
	return decode[ticket.Suggestion](response)
}

// do builds and sends one JSON request. Non-2xx statuses are turned
// into a *ServiceError with the response body drained; the caller
// receives an open body only on success.
func (client *Client) do(ctx context.Context, method, path string, query url.Values, payload any) (*http.Response, error) {
	endpoint := client.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("ticketclient: marshaling request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("ticketclient: creating request: %w", err)
	}
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("ticketclient: sending request: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		defer response.Body.Close()
		return nil, readServiceError(response)
	}

	return response, nil
}

// decode reads a success response body as JSON into T and closes it.
func decode[T any](response *http.Response) (*T, error) {
	defer response.Body.Close()

	value := new(T)
	if err := json.NewDecoder(response.Body).Decode(value); err != nil {
		return nil, fmt.Errorf("ticketclient: decoding response: %w", err)
	}
	return value, nil
}

// readServiceError parses an error body in the service's format:
// {"detail": "..."} for general errors, or a field-to-messages map
// for validation failures. Unrecognized bodies are preserved raw so
// the user still sees whatever the service said.
func readServiceError(response *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(response.Body, 4096))

	var detailWire struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &detailWire) == nil && detailWire.Detail != "" {
		return &ServiceError{StatusCode: response.StatusCode, Detail: detailWire.Detail}
	}

	// Validation errors arrive as {"field": ["message", ...], ...}.
	var fieldWire map[string][]string
	if json.Unmarshal(body, &fieldWire) == nil && len(fieldWire) > 0 {
		fields := make([]string, 0, len(fieldWire))
		for field := range fieldWire {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		var parts []string
		for _, field := range fields {
			if messages := fieldWire[field]; len(messages) > 0 {
				parts = append(parts, fmt.Sprintf("%s: %s", field, messages[0]))
			}
		}
		if len(parts) > 0 {
			return &ServiceError{
				StatusCode: response.StatusCode,
				Detail:     strings.Join(parts, "; "),
			}
		}
	}

	return &ServiceError{
		StatusCode: response.StatusCode,
		Detail:     strings.TrimSpace(string(body)),
	}
}
