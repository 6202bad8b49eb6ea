package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// roundTripFunc lets a test stand in for the YouTube API without a
// network: each call to the transport serves the next scripted page.
type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

// newTestClient scripts one response per page request, in order.
func newTestClient(t *testing.T, pages []func(req *http.Request) *http.Response) *Client {
	t.Helper()
	call := 0
	c := NewClient(100)
	c.limiter = rate.NewLimiter(rate.Inf, 1)
	c.httpClient = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if call >= len(pages) {
			t.Fatalf("unexpected request #%d to %s", call+1, req.URL)
		}
		resp := pages[call](req)
		call++
		return resp, nil
	})}
	return c
}

func commentPage(prefix string, n int, nextToken string) string {
	var items []string
	for i := 0; i < n; i++ {
		items = append(items, fmt.Sprintf(
			`{"snippet":{"topLevelComment":{"snippet":{"textDisplay":"%s-%d"}}}}`, prefix, i))
	}
	body := fmt.Sprintf(`{"items":[%s]`, strings.Join(items, ","))
	if nextToken != "" {
		body += fmt.Sprintf(`,"nextPageToken":"%s"`, nextToken)
	}
	return body + "}"
}

func TestFetchCommentsPagesToExhaustion(t *testing.T) {
	c := newTestClient(t, []func(req *http.Request) *http.Response{
		func(req *http.Request) *http.Response {
			if got := req.URL.Query().Get("pageToken"); got != "" {
				t.Errorf("first page carried pageToken %q", got)
			}
			if got := req.URL.Query().Get("videoId"); got != "dQw4w9WgXcQ" {
				t.Errorf("videoId = %q", got)
			}
			if got := req.Header.Get("User-Agent"); got != "fetchora/1.0" {
				t.Errorf("User-Agent = %q", got)
			}
			return jsonResponse(200, commentPage("p1", 100, "tok2"))
		},
		func(req *http.Request) *http.Response {
			if got := req.URL.Query().Get("pageToken"); got != "tok2" {
				t.Errorf("second page pageToken = %q, want %q", got, "tok2")
			}
			return jsonResponse(200, commentPage("p2", 100, "tok3"))
		},
		func(req *http.Request) *http.Response {
			return jsonResponse(200, commentPage("p3", 100, ""))
		},
	})

	comments, err := c.FetchComments(context.Background(), "dQw4w9WgXcQ", "test-key")
	if err != nil {
		t.Fatalf("FetchComments: %v", err)
	}
	if len(comments) != 300 {
		t.Fatalf("got %d comments, want 300", len(comments))
	}
	// Page-then-item order, end to end.
	if comments[0] != "p1-0" || comments[99] != "p1-99" || comments[100] != "p2-0" || comments[299] != "p3-99" {
		t.Errorf("comments out of order: [0]=%q [99]=%q [100]=%q [299]=%q",
			comments[0], comments[99], comments[100], comments[299])
	}
}

func TestFetchCommentsAPIErrorMidway(t *testing.T) {
	c := newTestClient(t, []func(req *http.Request) *http.Response{
		func(req *http.Request) *http.Response {
			return jsonResponse(200, commentPage("p1", 50, "tok2"))
		},
		func(req *http.Request) *http.Response {
			return jsonResponse(403, `{"error":{"message":"quota exceeded"}}`)
		},
	})

	comments, err := c.FetchComments(context.Background(), "dQw4w9WgXcQ", "test-key")
	if comments != nil {
		t.Errorf("expected no partial comments, got %d", len(comments))
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "quota exceeded" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "quota exceeded")
	}
	if apiErr.StatusCode != 403 {
		t.Errorf("StatusCode = %d, want 403", apiErr.StatusCode)
	}
}

func TestFetchCommentsAPIErrorWithoutMessage(t *testing.T) {
	c := newTestClient(t, []func(req *http.Request) *http.Response{
		func(req *http.Request) *http.Response {
			return jsonResponse(500, `{}`)
		},
	})

	_, err := c.FetchComments(context.Background(), "dQw4w9WgXcQ", "test-key")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "HTTP 500" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "HTTP 500")
	}
}

func TestFetchCommentsInvalidJSON(t *testing.T) {
	c := newTestClient(t, []func(req *http.Request) *http.Response{
		func(req *http.Request) *http.Response {
			return jsonResponse(200, `<html>not json</html>`)
		},
	})

	_, err := c.FetchComments(context.Background(), "dQw4w9WgXcQ", "test-key")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestFetchCommentsSkipsItemsMissingText(t *testing.T) {
	// Item 3 of 5 has no topLevelComment; the other four survive.
	body := `{"items":[
		{"snippet":{"topLevelComment":{"snippet":{"textDisplay":"a"}}}},
		{"snippet":{"topLevelComment":{"snippet":{"textDisplay":"b"}}}},
		{"snippet":{}},
		{"snippet":{"topLevelComment":{"snippet":{"textDisplay":"d"}}}},
		{"snippet":{"topLevelComment":{"snippet":{"textDisplay":"e"}}}}
	]}`
	c := newTestClient(t, []func(req *http.Request) *http.Response{
		func(req *http.Request) *http.Response { return jsonResponse(200, body) },
	})

	comments, err := c.FetchComments(context.Background(), "dQw4w9WgXcQ", "test-key")
	if err != nil {
		t.Fatalf("FetchComments: %v", err)
	}
	want := []string{"a", "b", "d", "e"}
	if len(comments) != len(want) {
		t.Fatalf("got %d comments, want %d", len(comments), len(want))
	}
	for i := range want {
		if comments[i] != want[i] {
			t.Errorf("comments[%d] = %q, want %q", i, comments[i], want[i])
		}
	}
}

func TestFetchCommentsEmptyVideo(t *testing.T) {
	c := newTestClient(t, []func(req *http.Request) *http.Response{
		func(req *http.Request) *http.Response { return jsonResponse(200, `{"items":[]}`) },
	})

	comments, err := c.FetchComments(context.Background(), "dQw4w9WgXcQ", "test-key")
	if err != nil {
		t.Fatalf("FetchComments: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("got %d comments, want 0", len(comments))
	}
}

func TestFetchCommentsContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewClient(100)
	c.limiter = rate.NewLimiter(rate.Every(time.Hour), 1)

	if _, err := c.FetchComments(ctx, "dQw4w9WgXcQ", "test-key"); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
