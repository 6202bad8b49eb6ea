// Package sentiment labels comments with a binary polarity using a
// pluggable compound scorer.
package sentiment

import (
	"github.com/jonreiter/govader"

	"fetchora/internal/domain"
)

// VADER wraps the govader analyzer behind domain.Scorer. Constructing
// one loads the lexicon, so build it once at startup and share it.
type VADER struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVADER() *VADER {
	return &VADER{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VADER) Compound(text string) float64 {
	return v.analyzer.PolarityScores(text).Compound
}

// Label maps each comment to a record carrying its binary sentiment:
// compound score >= 0 is 1, below 0 is 0. The threshold is exact and
// order is preserved 1:1 with the input.
func Label(comments []string, scorer domain.Scorer) []domain.Record {
	records := make([]domain.Record, 0, len(comments))
	for _, c := range comments {
		label := 0
		if scorer.Compound(c) >= 0 {
			label = 1
		}
		records = append(records, domain.Record{Comment: c, Sentiment: label})
	}
	return records
}
