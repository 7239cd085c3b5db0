package deploy

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Post is one published social media entry with its simulated
// engagement counters.
type Post struct {
	ID         string    `json:"id"`
	Platform   string    `json:"platform"`
	CampaignID string    `json:"campaign_id"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"image_url,omitempty"`
	Hashtags   []string  `json:"hashtags,omitempty"`
	Likes      int       `json:"likes"`
	Shares     int       `json:"shares"`
	Comments   int       `json:"comments"`
	PostedAt   time.Time `json:"posted_at"`
}

// SocialChannel simulates a social platform. Posts are accepted
// locally and given plausible engagement so reporting flows work
// without platform credentials.
type SocialChannel struct {
	platform string

	mu      sync.Mutex
	posts   []Post
	counter int
	rng     *rand.Rand
}

func NewSocialChannel(platform string) *SocialChannel {
	return &SocialChannel{
		platform: platform,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *SocialChannel) Name() string { return s.platform }

func (s *SocialChannel) Publish(_ context.Context, m Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++
	s.posts = append(s.posts, Post{
		ID:         fmt.Sprintf("%s-%d", s.platform, s.counter),
		Platform:   s.platform,
		CampaignID: m.CampaignID,
		Content:    m.Body,
		ImageURL:   m.ImageURL,
		Hashtags:   m.Hashtags,
		Likes:      20 + s.rng.Intn(480),
		Shares:     2 + s.rng.Intn(48),
		Comments:   1 + s.rng.Intn(29),
		PostedAt:   time.Now(),
	})
	return nil
}

// Posts returns a copy of everything published so far.
func (s *SocialChannel) Posts() []Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Post(nil), s.posts...)
}

// Engagement sums likes, shares and comments for one campaign.
func (s *SocialChannel) Engagement(campaignID string) map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := map[string]int{"posts": 0, "likes": 0, "shares": 0, "comments": 0}
	for _, p := range s.posts {
		if p.CampaignID != campaignID {
			continue
		}
		stats["posts"]++
		stats["likes"] += p.Likes
		stats["shares"] += p.Shares
		stats["comments"] += p.Comments
	}
	return stats
}
