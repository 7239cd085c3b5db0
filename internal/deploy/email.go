package deploy

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// EmailChannel simulates an email service provider. Sends are logged
// locally so the rest of the pipeline behaves as if a real ESP were
// wired in.
type EmailChannel struct {
	ListSize int

	mu    sync.Mutex
	sends []emailSend
}

type emailSend struct {
	campaignID string
	subject    string
	sentAt     time.Time
}

func NewEmailChannel(listSize int) *EmailChannel {
	if listSize <= 0 {
		listSize = 500
	}
	return &EmailChannel{ListSize: listSize}
}

func (e *EmailChannel) Name() string { return "email" }

func (e *EmailChannel) Publish(_ context.Context, m Message) error {
	if m.Subject == "" {
		return fmt.Errorf("email requires a subject line")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.sends = append(e.sends, emailSend{
		campaignID: m.CampaignID,
		subject:    m.Subject,
		sentAt:     time.Now(),
	})
	return nil
}

// SendCount returns how many blasts went out for a campaign.
func (e *EmailChannel) SendCount(campaignID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, s := range e.sends {
		if s.campaignID == campaignID {
			n++
		}
	}
	return n
}
