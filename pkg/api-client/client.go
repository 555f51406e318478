package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Kleo07/MindSpaceX/pkg/assessment/types"
)

// TokenProvider supplies the bearer token of the identity provider session.
// Returning an empty token sends the request unauthenticated.
type TokenProvider func() (string, error)

type ClientConfig struct {
	RootURL       string
	Timeout       time.Duration
	TokenProvider TokenProvider
}

// Client talks to the assessment API. Fetches report not-found explicitly;
// upserts can be detached so navigation is never blocked on the server.
type Client struct {
	rootURL       string
	tokenProvider TokenProvider
	httpClient    *http.Client
}

func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		rootURL:       config.RootURL,
		tokenProvider: config.TokenProvider,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

type apiResponse struct {
	Ok    bool                      `json:"ok"`
	Data  *types.AssessmentDocument `json:"data"`
	Error string                    `json:"error"`
}

// UpsertAssessment merges the set fields of doc into the server side document
// for doc.UserID and returns the resulting full document.
func (c *Client) UpsertAssessment(ctx context.Context, doc types.AssessmentDocument) (*types.AssessmentDocument, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rootURL+"/api/assessment/upsert", bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.setAuthHeader(req); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if !parsed.Ok {
		return nil, fmt.Errorf("upsert rejected (%d): %s", resp.StatusCode, parsed.Error)
	}
	return parsed.Data, nil
}

// UpsertAsync runs UpsertAssessment detached from the caller. The result is
// logged and also delivered on the returned channel (buffered, never blocks
// the task). Callers may ignore the channel entirely.
func (c *Client) UpsertAsync(doc types.AssessmentDocument) <-chan error {
	result := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
		defer cancel()

		_, err := c.UpsertAssessment(ctx, doc)
		if err != nil {
			slog.Warn("background assessment upsert failed", slog.String("userId", doc.UserID), slog.String("error", err.Error()))
		}
		result <- err
		close(result)
	}()
	return result
}

// FetchAssessment returns the document for userID. A missing document is
// reported as found=false with a nil error.
func (c *Client) FetchAssessment(ctx context.Context, userID string) (*types.AssessmentDocument, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.rootURL+"/api/assessment/"+url.PathEscape(userID), nil)
	if err != nil {
		return nil, false, err
	}
	if err := c.setAuthHeader(req); err != nil {
		return nil, false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, false, err
	}
	if !parsed.Ok {
		return nil, false, fmt.Errorf("fetch failed (%d): %s", resp.StatusCode, parsed.Error)
	}
	if parsed.Data == nil {
		return nil, false, nil
	}
	return parsed.Data, true, nil
}

// Health checks the API health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.rootURL+"/api/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) setAuthHeader(req *http.Request) error {
	if c.tokenProvider == nil {
		return nil
	}
	token, err := c.tokenProvider()
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}
