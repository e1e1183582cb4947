// Package api is the typed HTTP client for the remote Tripterrior REST
// backend. All domain data — feeds, comments, users, families, travel
// schedules, likes — lives behind that service; this package only calls
// it. Every method takes the bearer token explicitly and makes exactly
// one attempt: no retry, no backoff.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tripterrior/tripterrior/internal/model"
)

const requestTimeout = 10 * time.Second

// Config holds client configuration.
type Config struct {
	// BaseURL is the backend root, e.g. "http://13.209.88.22:8080".
	BaseURL string
}

// Client calls the Tripterrior backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the given backend.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// ImageURL returns the backend URL serving the image with the given key.
func (c *Client) ImageURL(key string) string {
	return c.baseURL + "/api/v1/image/" + key
}

// FetchFeeds returns one page of the feed list.
func (c *Client) FetchFeeds(ctx context.Context, token string, page, size int) ([]model.FeedSummary, error) {
	var feeds []model.FeedSummary
	path := fmt.Sprintf("/api/v1/feed?page=%d&size=%d", page, size)
	if err := c.getJSON(ctx, token, "fetch feeds", path, &feeds); err != nil {
		return nil, err
	}
	return feeds, nil
}

// FetchFeedDetail returns a single feed with its comments.
func (c *Client) FetchFeedDetail(ctx context.Context, token, id string) (*model.Feed, error) {
	var feed model.Feed
	if err := c.getJSON(ctx, token, "fetch feed detail", "/api/v1/feed/"+id, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// FetchUser returns the profile of the token's owner.
func (c *Client) FetchUser(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	if err := c.getJSON(ctx, token, "fetch user", "/api/v1/user", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FetchFamily returns the family with the given id.
func (c *Client) FetchFamily(ctx context.Context, token string, familyID int64) (*model.Family, error) {
	var family model.Family
	path := fmt.Sprintf("/api/v1/family/%d", familyID)
	if err := c.getJSON(ctx, token, "fetch family", path, &family); err != nil {
		return nil, err
	}
	return &family, nil
}

// CreateFamily registers a new family with the given nickname.
func (c *Client) CreateFamily(ctx context.Context, token, nickname string) error {
	body, err := json.Marshal(map[string]string{"nickname": nickname})
	if err != nil {
		return &SubmitError{Op: "create family", Err: err}
	}
	return c.write(ctx, token, "create family", http.MethodPost, "/api/v1/family", body, "application/json")
}

// ListTravels returns every scheduled trip of the user's family.
func (c *Client) ListTravels(ctx context.Context, token string) ([]model.TravelRecord, error) {
	var records []model.TravelRecord
	if err := c.getJSON(ctx, token, "fetch travel events", "/api/v1/travel/all", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateTravel schedules a trip. Dates are canonical "YYYY-MM-DD" strings.
func (c *Client) CreateTravel(ctx context.Context, token, name, startDate, endDate string) error {
	body, err := json.Marshal(map[string]string{
		"name":      name,
		"startDate": startDate,
		"endDate":   endDate,
	})
	if err != nil {
		return &SubmitError{Op: "create travel", Err: err}
	}
	return c.write(ctx, token, "create travel", http.MethodPost, "/api/v1/travel", body, "application/json")
}

// CreateComment adds a comment to a feed. The backend takes the comment
// as a raw text body, not JSON.
func (c *Client) CreateComment(ctx context.Context, token, feedID, text string) error {
	return c.write(ctx, token, "create comment", http.MethodPost, "/api/v1/comment/"+feedID, []byte(text), "text/plain")
}

// DeleteComment removes a comment by its id.
func (c *Client) DeleteComment(ctx context.Context, token, commentID string) error {
	return c.write(ctx, token, "delete comment", http.MethodDelete, "/api/v1/comment/"+commentID, nil, "")
}

// LikeFeed marks the feed as liked by the token's owner.
func (c *Client) LikeFeed(ctx context.Context, token string, feedID int64) error {
	path := fmt.Sprintf("/api/v1/feed/%d/like", feedID)
	return c.write(ctx, token, "like feed", http.MethodPost, path, nil, "")
}

// UnlikeFeed removes the like from the feed.
func (c *Client) UnlikeFeed(ctx context.Context, token string, feedID int64) error {
	path := fmt.Sprintf("/api/v1/feed/%d/like", feedID)
	return c.write(ctx, token, "unlike feed", http.MethodDelete, path, nil, "")
}

// LikeComment marks the comment as liked by the token's owner.
func (c *Client) LikeComment(ctx context.Context, token string, commentID int64) error {
	path := fmt.Sprintf("/api/v1/comment/%d/like", commentID)
	return c.write(ctx, token, "like comment", http.MethodPost, path, nil, "")
}

// UnlikeComment removes the like from the comment.
func (c *Client) UnlikeComment(ctx context.Context, token string, commentID int64) error {
	path := fmt.Sprintf("/api/v1/comment/%d/like", commentID)
	return c.write(ctx, token, "unlike comment", http.MethodDelete, path, nil, "")
}

// getJSON performs an authenticated GET and decodes the JSON response
// into out. Failures are reported as *FetchError.
func (c *Client) getJSON(ctx context.Context, token, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	setAuthHeaders(req, token, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// write performs an authenticated mutating request. Failures are
// reported as *SubmitError. The response body is drained and discarded;
// the caller re-fetches whatever view it needs.
func (c *Client) write(ctx context.Context, token, op, method, path string, body []byte, contentType string) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &SubmitError{Op: op, Err: err}
	}
	setAuthHeaders(req, token, contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &SubmitError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &SubmitError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	return nil
}

func setAuthHeaders(req *http.Request, token, contentType string) {
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "*/*")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
}
