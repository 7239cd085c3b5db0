package marketing

import (
	"context"

	"github.com/rahul/bazari/internal/provider"
	"github.com/rahul/bazari/pkg/config"
	"github.com/tmc/langchaingo/prompts"
)

const retentionPersona = `You are an expert in customer loyalty and retention strategies.
Design programs and campaigns that keep customers coming back.`

// RetentionModule handles loyalty programs, email campaigns, and
// win-back strategies for existing customers.
type RetentionModule struct {
	gen provider.TextGenerator
}

func NewRetentionModule(gen provider.TextGenerator) *RetentionModule {
	return &RetentionModule{gen: gen}
}

func (m *RetentionModule) Name() string {
	return "customer_retention"
}

func (m *RetentionModule) RunSubtask(ctx context.Context, task string, store config.StoreContext) (Result, error) {
	return runSubtask(ctx, m.gen, retentionPersona, task, store)
}

var loyaltyProgramPrompt = prompts.NewPromptTemplate(`Store: {{.storeName}}
Store Type: {{.storeType}}
Program Type: {{.programType}}

Design a complete loyalty program including:
1. Program name and branding
2. How customers earn rewards (points, purchases, actions)
3. Reward tiers or levels (if applicable)
4. Redemption options and value proposition
5. Exclusive perks for loyal customers
6. Program communication strategy
7. Expected impact on customer lifetime value

Make it engaging and valuable for customers.`,
	[]string{"storeName", "storeType", "programType"})

// DesignLoyaltyProgram designs a loyalty program of the given kind
// (points, tiers, cashback).
func (m *RetentionModule) DesignLoyaltyProgram(ctx context.Context, programType string, store config.StoreContext) (Result, error) {
	user, err := loyaltyProgramPrompt.Format(map[string]any{
		"storeName":   store.Name,
		"storeType":   store.Type,
		"programType": programType,
	})
	if err != nil {
		return Result{}, err
	}

	text, err := m.gen.Generate(ctx, retentionPersona, user)
	if err != nil {
		return Result{}, err
	}
	return Result{RawText: text, Fields: ParseFields(text)}, nil
}

var emailCampaignPrompt = prompts.NewPromptTemplate(`Store: {{.storeName}}
Store Type: {{.storeType}}
Campaign Goal: {{.campaignGoal}}
Customer Segment: {{.customerSegment}}

Create a complete email campaign including:
1. Email sequence (3-5 emails)
2. Subject lines for each email
3. Email content and structure
4. Personalization elements
5. Call-to-action for each email
6. Timing and frequency
7. Success metrics

Make emails engaging and conversion-focused.`,
	[]string{"storeName", "storeType", "campaignGoal", "customerSegment"})

// CreateEmailCampaign builds an email sequence targeted at a
// customer segment.
func (m *RetentionModule) CreateEmailCampaign(ctx context.Context, campaignGoal, customerSegment string, store config.StoreContext) (Result, error) {
	user, err := emailCampaignPrompt.Format(map[string]any{
		"storeName":       store.Name,
		"storeType":       store.Type,
		"campaignGoal":    campaignGoal,
		"customerSegment": customerSegment,
	})
	if err != nil {
		return Result{}, err
	}

	const persona = `You are an expert email marketer specializing in retail.
Create email campaigns that drive engagement and sales.`

	text, err := m.gen.Generate(ctx, persona, user)
	if err != nil {
		return Result{}, err
	}
	return Result{RawText: text, Fields: ParseFields(text)}, nil
}

var winBackPrompt = prompts.NewPromptTemplate(`Store: {{.storeName}}
Store Type: {{.storeType}}
Customer Inactive Period: {{.inactivePeriod}}

Create a win-back campaign including:
1. Campaign messaging ("We miss you" approach)
2. Special incentives to return (exclusive offers)
3. Multi-channel approach (email, SMS, direct mail)
4. Personalization based on past purchase history
5. Timeline for the campaign
6. Success metrics and goals

Make the campaign emotionally resonant and valuable.`,
	[]string{"storeName", "storeType", "inactivePeriod"})

// CreateWinBackCampaign targets customers inactive for the given
// period.
func (m *RetentionModule) CreateWinBackCampaign(ctx context.Context, inactivePeriod string, store config.StoreContext) (Result, error) {
	user, err := winBackPrompt.Format(map[string]any{
		"storeName":      store.Name,
		"storeType":      store.Type,
		"inactivePeriod": inactivePeriod,
	})
	if err != nil {
		return Result{}, err
	}

	const persona = `You are an expert in customer re-engagement and win-back strategies.
Create campaigns that bring inactive customers back.`

	text, err := m.gen.Generate(ctx, persona, user)
	if err != nil {
		return Result{}, err
	}
	return Result{RawText: text, Fields: ParseFields(text)}, nil
}
