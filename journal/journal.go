// Package journal reads long-form notes from a Sanity content lake.
//
// The journal is read-only: entries are authored elsewhere and daybook
// only lists them. Entry bodies are portable-text blocks, flattened to
// markdown by Markdown.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	internalstrings "github.com/amonks/daybook/internal/strings"
)

// Query selects every note that has not been deleted, newest first.
const Query = `*[_type == "notes" && (!defined(isDeleted) || isDeleted == false)] | order(date desc){_id, title, content, date, createdAt, updatedAt}`

// ErrNotConfigured is returned when no project is set up.
var ErrNotConfigured = errors.New("journal is not configured (set journal.project-id)")

// Config locates the content lake.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	// Token is optional; public datasets need none.
	Token string

	// BaseURL replaces https://<project>.api.sanity.io.
	BaseURL string
	// HTTPClient defaults to a client with a 30 second timeout.
	HTTPClient *http.Client
}

// Entry is one journal note.
type Entry struct {
	ID        string     `json:"_id"`
	Title     string     `json:"title"`
	Content   []Block    `json:"content"`
	Date      time.Time  `json:"date"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Client queries the content lake.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

// New builds a client for cfg.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Dataset == "" {
		return nil, errors.New("journal dataset is required")
	}
	apiVersion := strings.TrimPrefix(cfg.APIVersion, "v")
	if apiVersion == "" {
		return nil, errors.New("journal api version is required")
	}

	base := internalstrings.TrimTrailingSlash(cfg.BaseURL)
	if base == "" {
		base = fmt.Sprintf("https://%s.api.sanity.io", url.PathEscape(cfg.ProjectID))
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		endpoint: fmt.Sprintf("%s/v%s/data/query/%s", base, apiVersion, url.PathEscape(cfg.Dataset)),
		token:    cfg.Token,
		http:     httpClient,
	}, nil
}

type queryResponse struct {
	Result []Entry `json:"result"`
}

type errorResponse struct {
	Error struct {
		Description string `json:"description"`
	} `json:"error"`
}

// Entries fetches every journal entry, newest first.
func (c *Client) Entries(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?query="+url.QueryEscape(Query), nil)
	if err != nil {
		return nil, fmt.Errorf("build journal request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read journal response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("query journal: %s: %s", resp.Status, apiErr.Error.Description)
		}
		return nil, fmt.Errorf("query journal: %s", resp.Status)
	}

	var decoded queryResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode journal response: %w", err)
	}
	return decoded.Result, nil
}
