package deploy

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/rahul/bazari/internal/campaign"
	"github.com/rahul/bazari/internal/governance"
	"github.com/rahul/bazari/internal/imagegen"
)

// Service fans campaign content out to every configured channel.
// Content is checked against policy once before any channel sees it;
// individual channel failures are collected, not fatal.
type Service struct {
	Channels []Channel
	Policy   governance.PolicyEngine
	Images   *imagegen.Chain
	Registry *campaign.Registry
	Assets   *AssetWriter
}

// Report summarizes one deployment across channels.
type Report struct {
	CampaignID string            `json:"campaign_id"`
	Published  []string          `json:"published"`
	Failed     map[string]string `json:"failed,omitempty"`
	Denied     string            `json:"denied,omitempty"`
	ImageURL   string            `json:"image_url,omitempty"`
}

// DeployCampaign publishes content for a campaign to all channels.
// A policy denial stops the whole deployment; a channel error only
// skips that channel.
func (s *Service) DeployCampaign(ctx context.Context, c *campaign.Campaign, subject, body string, hashtags []string) (*Report, error) {
	report := &Report{CampaignID: c.ID, Failed: make(map[string]string)}

	if s.Policy != nil {
		res, err := s.Policy.Evaluate(ctx, governance.Request{
			Channel:    "all",
			CampaignID: c.ID,
			Content:    subject + "\n" + body,
		})
		if err != nil {
			return nil, fmt.Errorf("policy evaluation failed: %w", err)
		}
		if res.Effect == governance.EffectDeny {
			report.Denied = res.Reason
			log.Printf("Deployment of campaign %s denied: %s", c.ID, res.Reason)
			return report, nil
		}
	}

	msg := Message{
		CampaignID: c.ID,
		Subject:    subject,
		Body:       body,
		Hashtags:   hashtags,
	}

	if s.Images != nil {
		img := s.Images.Generate(ctx, "instagram", imagegen.CampaignContext{
			StoreName:    c.Name,
			StoreType:    string(c.Type),
			CampaignType: string(c.Type),
			Goal:         c.Description,
		})
		msg.ImageURL = img.URL
		report.ImageURL = img.URL
	}

	for _, ch := range s.Channels {
		if err := ch.Publish(ctx, msg); err != nil {
			log.Printf("Channel %s failed for campaign %s: %v", ch.Name(), c.ID, err)
			report.Failed[ch.Name()] = err.Error()
			continue
		}
		report.Published = append(report.Published, ch.Name())
		if s.Registry != nil {
			s.Registry.AddChannel(c.ID, ch.Name())
		}
	}

	if s.Assets != nil {
		content := body
		if subject != "" {
			content = "# " + subject + "\n\n" + body
		}
		if len(hashtags) > 0 {
			content += "\n\n" + strings.Join(hashtags, " ")
		}
		if _, err := s.Assets.SaveCampaignCopy(c.ID, "all_channels", content); err != nil {
			log.Printf("Failed to archive campaign copy for %s: %v", c.ID, err)
		}
	}

	if s.Registry != nil && len(report.Published) > 0 {
		s.Registry.UpdatePerformance(c.ID, map[string]any{
			"channels_published": len(report.Published),
			"channels_failed":    len(report.Failed),
		})
	}

	return report, nil
}
