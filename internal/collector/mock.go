package collector

import (
	"context"
	"fmt"

	"fetchora/internal/domain"
)

// Canned comment texts, alternating tone so the sentiment split in the
// dashboard looks plausible.
var mockTemplates = []string{
	"Loved this, watched it twice! (%s #%d)",
	"Terrible audio, could not finish. (%s #%d)",
	"Great breakdown, thanks for sharing. (%s #%d)",
	"Worst take I have seen all week. (%s #%d)",
}

// MockClient implements domain.Collector with fake comments and no
// network. Selected by COLLECTOR_MODE=mock.
type MockClient struct {
	count int
}

func NewMockClient() *MockClient {
	return &MockClient{count: 40}
}

func (mc *MockClient) FetchComments(ctx context.Context, videoID domain.VideoID, apiKey string) ([]string, error) {
	comments := make([]string, 0, mc.count)
	for i := 0; i < mc.count; i++ {
		tpl := mockTemplates[i%len(mockTemplates)]
		comments = append(comments, fmt.Sprintf(tpl, videoID, i))
	}
	return comments, nil
}
