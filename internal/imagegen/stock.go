package imagegen

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

type stockPool struct {
	category string
	ids      []int
}

var stockPools = []struct {
	keywords []string
	pool     stockPool
}{
	{[]string{"clothing", "fashion", "apparel"}, stockPool{"fashion", []int{1, 15, 16, 21, 24, 27, 33, 40, 48, 49, 52, 56, 60, 64, 65, 82, 91}}},
	{[]string{"food", "grocery", "restaurant"}, stockPool{"food", []int{2, 10, 30, 42, 51, 59, 70, 96, 162, 163, 225, 292, 326, 431, 436}}},
	{[]string{"electronics", "tech"}, stockPool{"technology", []int{0, 3, 20, 77, 119, 152, 180, 249, 250, 326, 367, 487}}},
	{[]string{"beauty", "cosmetic"}, stockPool{"beauty", []int{8, 26, 36, 47, 54, 61, 63, 103, 177, 200, 240, 314, 349}}},
	{[]string{"home", "furniture"}, stockPool{"home", []int{7, 14, 17, 19, 101, 106, 112, 152, 175, 181, 398, 447, 502}}},
}

var retailPool = stockPool{"retail", []int{1, 2, 3, 10, 15, 20, 30, 42, 48, 52, 56, 60, 70, 82, 91, 96}}

func poolForStoreType(storeType string) stockPool {
	lower := strings.ToLower(storeType)
	for _, entry := range stockPools {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.pool
			}
		}
	}
	return retailPool
}

// StockStrategy serves curated stock images keyed to the store type.
// It never fails, which makes it the terminal link of every chain.
type StockStrategy struct {
	now func() time.Time
}

func NewStockStrategy() *StockStrategy {
	return &StockStrategy{now: time.Now}
}

func (s *StockStrategy) Name() string { return "stock" }

func (s *StockStrategy) Generate(_ context.Context, prompt string, cc CampaignContext) (string, error) {
	pool := poolForStoreType(cc.StoreType)

	// Seed from the prompt plus the clock so repeated campaigns get
	// varied picks from the same pool.
	seed := fmt.Sprintf("%s%s%s%s%d", prompt, cc.CampaignType, cc.Goal, cc.Offers, s.now().UnixNano())
	sum := md5.Sum([]byte(seed))
	n := binary.BigEndian.Uint32(sum[:4])

	id := pool.ids[int(n)%len(pool.ids)]
	return fmt.Sprintf("https://picsum.photos/id/%d/600/400", id), nil
}
