package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"fetchora/internal/domain"
)

const (
	baseURL         = "https://www.googleapis.com/youtube/v3/commentThreads"
	userAgent       = "fetchora/1.0"
	requestTimeout  = 15 * time.Second
	DefaultPageSize = 100
)

// Client fetches top-level comments through the YouTube Data API v3
// commentThreads endpoint.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	pageSize   int
}

func NewClient(pageSize int) *Client {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		// Pacing only. Failed pages are never retried.
		limiter:  rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		pageSize: pageSize,
	}
}

// Wire shape of a commentThreads page. The comment text sits four levels
// deep; pointer fields let a missing level read as nil instead of a zero
// value, so partial items can be detected and skipped.
type pageResponse struct {
	Items []struct {
		Snippet *struct {
			TopLevelComment *struct {
				Snippet *struct {
					TextDisplay *string `json:"textDisplay"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
	Error         *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// FetchComments pages the commentThreads listing to exhaustion and returns
// every top-level comment in page order. An absent nextPageToken is the
// sole terminal condition; any page failure aborts the fetch with no
// partial result.
func (c *Client) FetchComments(ctx context.Context, videoID domain.VideoID, apiKey string) ([]string, error) {
	var comments []string
	cursor := ""
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		page, err := c.fetchPage(ctx, videoID, apiKey, cursor)
		if err != nil {
			return nil, err
		}
		for _, it := range page.Items {
			s := it.Snippet
			if s == nil || s.TopLevelComment == nil || s.TopLevelComment.Snippet == nil || s.TopLevelComment.Snippet.TextDisplay == nil {
				// Best-effort extraction: drop the malformed item,
				// keep the rest of the page.
				continue
			}
			comments = append(comments, *s.TopLevelComment.Snippet.TextDisplay)
		}
		if page.NextPageToken == "" {
			return comments, nil
		}
		cursor = page.NextPageToken
	}
}

func (c *Client) fetchPage(ctx context.Context, videoID domain.VideoID, apiKey, cursor string) (*pageResponse, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", string(videoID))
	params.Set("textFormat", "plainText")
	params.Set("key", apiKey)
	params.Set("maxResults", strconv.Itoa(c.pageSize))
	if cursor != "" {
		params.Set("pageToken", cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// The body is decoded before the status check: error payloads carry
	// the API's message, and an undecodable body is invalid either way.
	var page pageResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		message := fmt.Sprintf("HTTP %d", resp.StatusCode)
		if page.Error != nil && page.Error.Message != "" {
			message = page.Error.Message
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: message}
	}
	return &page, nil
}
