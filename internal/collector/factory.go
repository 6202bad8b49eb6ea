package collector

import (
	"fmt"
	"os"
	"strconv"

	"fetchora/internal/domain"
)

// NewCollector selects the implementation based on COLLECTOR_MODE.
// FETCH_PAGE_SIZE overrides the API page size for the real client.
func NewCollector() (domain.Collector, error) {
	pageSize := DefaultPageSize
	if v := os.Getenv("FETCH_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid FETCH_PAGE_SIZE: %q", v)
		}
		pageSize = n
	}

	switch mode := os.Getenv("COLLECTOR_MODE"); mode {
	case "", "youtube":
		return NewClient(pageSize), nil
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'youtube' or 'mock')", mode)
	}
}
