package deploy

import "context"

// Channel is one destination marketing content can be published to.
type Channel interface {
	Name() string
	Publish(ctx context.Context, msg Message) error
}

// Message is a rendered piece of campaign content bound for a channel.
type Message struct {
	CampaignID string
	Subject    string
	Body       string
	ImageURL   string
	Hashtags   []string
}
