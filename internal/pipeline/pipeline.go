// Package pipeline composes id extraction, comment fetching and sentiment
// labeling into a single request-scoped run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fetchora/internal/domain"
	"fetchora/internal/ingest"
	"fetchora/internal/sentiment"
)

// ErrNoVideoID is returned when the raw input carries no recognizable
// video id. No network call is made in that case.
var ErrNoVideoID = errors.New("no video id found in input")

type Pipeline struct {
	collector domain.Collector
	scorer    domain.Scorer
}

func New(collector domain.Collector, scorer domain.Scorer) *Pipeline {
	return &Pipeline{collector: collector, scorer: scorer}
}

// Run turns a raw URL or id plus an API key into the full labeled record
// set for the video. All-or-nothing: any fetch failure returns no records.
func (p *Pipeline) Run(ctx context.Context, rawInput, apiKey string) ([]domain.Record, error) {
	videoID, ok := ingest.ExtractVideoID(rawInput)
	if !ok {
		return nil, ErrNoVideoID
	}

	slog.Info("Fetching comments", "video_id", string(videoID))
	comments, err := p.collector.FetchComments(ctx, videoID, apiKey)
	if err != nil {
		return nil, fmt.Errorf("fetch comments: %w", err)
	}
	slog.Info("Fetched comments", "video_id", string(videoID), "count", len(comments))

	return sentiment.Label(comments, p.scorer), nil
}
