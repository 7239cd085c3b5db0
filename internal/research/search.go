package research

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/tools/duckduckgo"
)

// TrendSearcher looks up real-time market signals for a store's
// category and locale.
type TrendSearcher struct {
	client *duckduckgo.Tool
}

func NewTrendSearcher() (*TrendSearcher, error) {
	ddg, err := duckduckgo.New(10, duckduckgo.DefaultUserAgent)
	if err != nil {
		return nil, err
	}
	return &TrendSearcher{client: ddg}, nil
}

// Search runs a raw query and returns the result snippets as text.
func (s *TrendSearcher) Search(ctx context.Context, query string) (string, error) {
	res, err := s.client.Call(ctx, query)
	if err != nil {
		return "", fmt.Errorf("search failed: %w", err)
	}
	return res, nil
}

// MarketTrends queries for current trends in the store's retail
// category near its location.
func (s *TrendSearcher) MarketTrends(ctx context.Context, storeType, location string) (string, error) {
	query := fmt.Sprintf("%s retail marketing trends 2026", storeType)
	if location != "" {
		query = fmt.Sprintf("%s retail trends %s", storeType, location)
	}
	return s.Search(ctx, query)
}
