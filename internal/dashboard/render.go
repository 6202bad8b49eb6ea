// Package dashboard renders a sentiment overview page with go-echarts.
package dashboard

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"fetchora/internal/domain"
)

// Render writes a pie of the positive/negative split followed by a bar of
// average comment length per label.
func Render(w io.Writer, videoID domain.VideoID, records []domain.Record) error {
	var posCount, negCount int
	var posLen, negLen int
	for _, r := range records {
		if r.Sentiment == 1 {
			posCount++
			posLen += len(r.Comment)
		} else {
			negCount++
			negLen += len(r.Comment)
		}
	}

	// 1. Sentiment Split
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Sentiment Split",
			Subtitle: fmt.Sprintf("video %s, %d comments", videoID, len(records)),
		}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)
	pie.AddSeries("Comments", []opts.PieData{
		{Name: "positive", Value: posCount},
		{Name: "negative", Value: negCount},
	})

	// 2. Average Comment Length
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Average Comment Length"}))

	avg := func(total, n int) int {
		if n == 0 {
			return 0
		}
		return total / n
	}
	bar.SetXAxis([]string{"positive", "negative"}).AddSeries("Characters", []opts.BarData{
		{Value: avg(posLen, posCount)},
		{Value: avg(negLen, negCount)},
	})

	if err := pie.Render(w); err != nil {
		return err
	}
	return bar.Render(w)
}
