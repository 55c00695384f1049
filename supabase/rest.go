package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Filter is a single column condition, rendered as PostgREST's
// "column=op.value" query syntax.
type Filter struct {
	Column string
	Op     string // eq, gte, like, ...
	Value  string
}

// Eq builds an equality filter.
func Eq(column, value string) Filter {
	return Filter{Column: column, Op: "eq", Value: value}
}

// Gte builds a greater-or-equal filter.
func Gte(column, value string) Filter {
	return Filter{Column: column, Op: "gte", Value: value}
}

// Like builds a pattern filter; % is the wildcard.
func Like(column, pattern string) Filter {
	return Filter{Column: column, Op: "like", Value: pattern}
}

// Order is a single-column ordering.
type Order struct {
	Column    string
	Ascending bool
}

func (c *Client) restURL(table string, columns string, filters []Filter, order *Order) string {
	q := url.Values{}
	if columns != "" {
		q.Set("select", columns)
	}
	for _, f := range filters {
		q.Add(f.Column, f.Op+"."+f.Value)
	}
	if order != nil {
		dir := "desc"
		if order.Ascending {
			dir = "asc"
		}
		q.Set("order", order.Column+"."+dir)
	}
	u := c.baseURL + "/rest/v1/" + table
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// decodeAPIError turns a non-2xx REST response into an *APIError.
func decodeAPIError(status int, body []byte) error {
	apiErr := &APIError{Status: status, Message: http.StatusText(status)}
	_ = json.Unmarshal(body, apiErr)
	return apiErr
}

func (c *Client) doREST(req *http.Request) ([]byte, *http.Response, error) {
	c.setCommonHeaders(req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response from %s: %w", req.URL.Path, err)
	}
	if resp.StatusCode >= 400 {
		return nil, nil, decodeAPIError(resp.StatusCode, data)
	}
	return data, resp, nil
}

// Select reads all rows matching the filters into dest (a pointer to a slice).
func (c *Client) Select(ctx context.Context, table, columns string, filters []Filter, order *Order, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.restURL(table, columns, filters, order), nil)
	if err != nil {
		return fmt.Errorf("failed to build select request: %w", err)
	}

	data, _, err := c.doREST(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode rows from %s: %w", table, err)
	}
	return nil
}

// SelectOne reads exactly one row into dest. Zero matching rows surface as the
// store's no-rows error, recognizable via IsNoRows.
func (c *Client) SelectOne(ctx context.Context, table, columns string, filters []Filter, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.restURL(table, columns, filters, nil), nil)
	if err != nil {
		return fmt.Errorf("failed to build select request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.pgrst.object+json")

	data, _, err := c.doREST(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode row from %s: %w", table, err)
	}
	return nil
}

// Insert adds one row. The store enforces primary-key uniqueness; a collision
// surfaces as an error recognizable via IsDuplicate.
func (c *Client) Insert(ctx context.Context, table string, row interface{}) error {
	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to marshal row for %s: %w", table, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.restURL(table, "", nil, nil), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build insert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	_, _, err = c.doREST(req)
	return err
}

// Delete removes all rows matching the filters. Matching nothing is not an
// error; the operation is idempotent at this layer.
func (c *Client) Delete(ctx context.Context, table string, filters []Filter) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.restURL(table, "", filters, nil), nil)
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	req.Header.Set("Prefer", "return=minimal")

	_, _, err = c.doREST(req)
	return err
}

// Count returns the number of rows matching the filters without materializing
// any of them (HEAD + exact count, read back from Content-Range).
func (c *Client) Count(ctx context.Context, table string, filters []Filter) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.restURL(table, "", filters, nil), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build count request: %w", err)
	}
	req.Header.Set("Prefer", "count=exact")

	_, resp, err := c.doREST(req)
	if err != nil {
		return 0, err
	}

	// Content-Range looks like "0-24/57", or "*/0" for an empty table.
	contentRange := resp.Header.Get("Content-Range")
	idx := strings.LastIndex(contentRange, "/")
	if idx < 0 {
		return 0, fmt.Errorf("count on %s: missing Content-Range header", table)
	}
	total := contentRange[idx+1:]
	if total == "*" {
		return 0, fmt.Errorf("count on %s: store did not return an exact count", table)
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0, fmt.Errorf("count on %s: bad Content-Range %q: %w", table, contentRange, err)
	}
	return n, nil
}
