package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mathis-deconchat/github-repo-qualifier/internal/model"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// DefaultEndpoint is the GitHub GraphQL API endpoint.
const DefaultEndpoint = "https://api.github.com/graphql"

// pageDelay is a cooperative throttle between sequential page requests.
const pageDelay = 250 * time.Millisecond

// Client issues paginated repository queries against a GraphQL endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the GraphQL endpoint URL.
func WithEndpoint(url string) Option {
	return func(c *Client) {
		c.endpoint = url
	}
}

// WithHTTPClient substitutes the underlying transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client against the GitHub GraphQL API.
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchRepositories retrieves every repository owned by login, following
// continuation cursors until the provider reports no further page. Pages are
// requested strictly one at a time and provider order is preserved. When a
// token is given the transport authenticates with it; no retries are
// performed, every failure is terminal for the scan.
func (c *Client) FetchRepositories(ctx context.Context, login, token string) ([]model.RepositoryMetadata, error) {
	httpClient := c.httpClient
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, c.httpClient), ts)
	}

	var repositories []model.RepositoryMetadata
	var cursor *string

	for page := 1; ; page++ {
		conn, err := c.fetchPage(ctx, httpClient, login, cursor)
		if err != nil {
			return nil, err
		}

		for _, node := range conn.Nodes {
			repositories = append(repositories, normalizeNode(node))
		}

		log.Debug().Str("login", login).Int("page", page).Int("repositories", len(repositories)).Msg("Fetched repository page")

		if !conn.PageInfo.HasNextPage {
			return repositories, nil
		}
		cursor = conn.PageInfo.EndCursor

		select {
		case <-ctx.Done():
			return nil, &NetworkError{Err: ctx.Err()}
		case <-time.After(pageDelay):
		}
	}
}

// fetchPage issues one GraphQL round-trip and maps every failure mode onto
// the error taxonomy.
func (c *Client) fetchPage(ctx context.Context, httpClient *http.Client, login string, cursor *string) (*repositoryConnection, error) {
	payload, err := json.Marshal(graphqlRequest{
		Query: repositoriesQuery,
		Variables: map[string]any{
			"login":  login,
			"cursor": cursor,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode repository query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build repository request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &AuthenticationError{Status: resp.StatusCode}
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return nil, rateLimitError(resp)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &RemoteRequestError{Status: resp.StatusCode}
	}

	var envelope graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode repository response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		return nil, &RemoteApiError{Errors: envelope.Errors}
	}
	if envelope.Data == nil || envelope.Data.User == nil {
		return nil, &NotFoundError{Login: login}
	}

	return &envelope.Data.User.Repositories, nil
}

func rateLimitError(resp *http.Response) *RateLimitError {
	rlErr := &RateLimitError{Status: resp.StatusCode}
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		if epoch, err := strconv.ParseInt(reset, 10, 64); err == nil {
			t := time.Unix(epoch, 0).UTC()
			rlErr.ResetAt = &t
		}
	}
	if retry := resp.Header.Get("Retry-After"); retry != "" {
		if seconds, err := strconv.Atoi(retry); err == nil {
			d := time.Duration(seconds) * time.Second
			rlErr.RetryAfter = &d
		}
	}
	return rlErr
}

// normalizeNode flattens a GraphQL repository node into the internal record.
// Content is carried only for blob entries whose text the provider inlined.
func normalizeNode(node repositoryNode) model.RepositoryMetadata {
	repo := model.RepositoryMetadata{
		Name:        node.Name,
		Description: node.Description,
		URL:         node.URL,
		IsPrivate:   node.IsPrivate,
		StarCount:   node.StargazerCount,
		ForkCount:   node.ForkCount,
	}

	if node.PrimaryLanguage != nil {
		name := node.PrimaryLanguage.Name
		repo.PrimaryLanguage = &name
	}

	if node.Object != nil {
		for _, entry := range node.Object.Entries {
			rootEntry := model.RootEntry{Name: entry.Name, Type: entry.Type}
			if entry.Object != nil {
				rootEntry.TextContent = entry.Object.Text
			}
			repo.RootEntries = append(repo.RootEntries, rootEntry)
		}
	}

	return repo
}
