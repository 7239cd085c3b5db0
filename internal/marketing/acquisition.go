package marketing

import (
	"context"

	"github.com/rahul/bazari/internal/provider"
	"github.com/rahul/bazari/pkg/config"
	"github.com/tmc/langchaingo/prompts"
)

const acquisitionPersona = `You are an expert retail marketing strategist specializing in customer acquisition.
Create comprehensive, ethical promotional strategies that attract new customers.`

// AcquisitionModule handles promotional campaigns, first-purchase
// incentives, referral programs, and targeted ad copy.
type AcquisitionModule struct {
	gen provider.TextGenerator
}

func NewAcquisitionModule(gen provider.TextGenerator) *AcquisitionModule {
	return &AcquisitionModule{gen: gen}
}

func (m *AcquisitionModule) Name() string {
	return "customer_acquisition"
}

func (m *AcquisitionModule) RunSubtask(ctx context.Context, task string, store config.StoreContext) (Result, error) {
	return runSubtask(ctx, m.gen, acquisitionPersona, task, store)
}

var promotionCampaignPrompt = prompts.NewPromptTemplate(`Store: {{.storeName}}
Store Type: {{.storeType}}
Location: {{.location}}

Campaign Details:
- Target Audience: {{.targetAudience}}
- Campaign Type: {{.campaignType}}
- Budget: ${{.budget}}
- Duration: {{.durationDays}} days

Create a detailed campaign including:
1. Campaign name and tagline
2. Key promotional offers (discounts, bundles, incentives)
3. Marketing channels to use (social media, email, local ads, etc.)
4. Content ideas for each channel
5. Call-to-action strategy
6. Budget allocation across channels
7. Success metrics to track

Format the response as a structured campaign plan.`,
	[]string{"storeName", "storeType", "location", "targetAudience", "campaignType", "budget", "durationDays"})

// CreatePromotionCampaign builds a promotional campaign plan to
// acquire new customers.
func (m *AcquisitionModule) CreatePromotionCampaign(ctx context.Context, targetAudience, campaignType string, budget float64, durationDays int, store config.StoreContext) (Result, error) {
	if err := validateBudget(budget); err != nil {
		return Result{}, err
	}
	if err := validateDuration(durationDays); err != nil {
		return Result{}, err
	}

	user, err := promotionCampaignPrompt.Format(map[string]any{
		"storeName":      store.Name,
		"storeType":      store.Type,
		"location":       orDefault(store.Location, "Local"),
		"targetAudience": targetAudience,
		"campaignType":   campaignType,
		"budget":         budget,
		"durationDays":   durationDays,
	})
	if err != nil {
		return Result{}, err
	}

	text, err := m.gen.Generate(ctx, acquisitionPersona, user)
	if err != nil {
		return Result{}, err
	}
	return Result{RawText: text, Fields: ParseFields(text)}, nil
}

var firstPurchasePrompt = prompts.NewPromptTemplate(`Store: {{.storeName}}
Store Type: {{.storeType}}

Incentive Type: {{.incentiveType}}

Design a first-purchase incentive including:
1. Offer details (percentage off, dollar amount, gift, etc.)
2. Terms and conditions
3. How to communicate it (welcome email, social media, in-store signage)
4. Follow-up strategy after first purchase
5. Expected conversion rate improvement

Make it compelling and easy to understand.`,
	[]string{"storeName", "storeType", "incentiveType"})

// DesignFirstPurchaseIncentive designs an incentive to convert
// first-time customers.
func (m *AcquisitionModule) DesignFirstPurchaseIncentive(ctx context.Context, incentiveType string, store config.StoreContext) (Result, error) {
	user, err := firstPurchasePrompt.Format(map[string]any{
		"storeName":     store.Name,
		"storeType":     store.Type,
		"incentiveType": incentiveType,
	})
	if err != nil {
		return Result{}, err
	}

	const persona = `You are an expert in customer acquisition and loyalty programs.
Design an attractive first-purchase incentive that will convert new customers.`

	text, err := m.gen.Generate(ctx, persona, user)
	if err != nil {
		return Result{}, err
	}
	return Result{RawText: text, Fields: ParseFields(text)}, nil
}

var referralProgramPrompt = prompts.NewPromptTemplate(`Store: {{.storeName}}
Store Type: {{.storeType}}

Reward Structure: {{.rewardStructure}}

Create a complete referral program including:
1. Program name and description
2. Rewards for referrer (existing customer)
3. Rewards for referee (new customer)
4. How the referral process works
5. Tracking mechanism
6. Promotion strategy for the program
7. Terms and conditions

Make it simple, attractive, and easy to participate in.`,
	[]string{"storeName", "storeType", "rewardStructure"})

// CreateReferralProgram designs a program that rewards existing
// customers for bringing in new ones.
func (m *AcquisitionModule) CreateReferralProgram(ctx context.Context, rewardStructure string, store config.StoreContext) (Result, error) {
	user, err := referralProgramPrompt.Format(map[string]any{
		"storeName":       store.Name,
		"storeType":       store.Type,
		"rewardStructure": rewardStructure,
	})
	if err != nil {
		return Result{}, err
	}

	const persona = `You are an expert in referral marketing and viral growth strategies.
Create a referral program that incentivizes existing customers to bring in new ones.`

	text, err := m.gen.Generate(ctx, persona, user)
	if err != nil {
		return Result{}, err
	}
	return Result{RawText: text, Fields: ParseFields(text)}, nil
}

var adCopyPrompt = prompts.NewPromptTemplate(`Store: {{.storeName}}
Store Type: {{.storeType}}
Platform: {{.platform}}
Target Segment: {{.targetSegment}}
Product Category: {{.productCategory}}

Create 3 variations of ad copy including:
1. Headline (attention-grabbing)
2. Body text (benefit-focused)
3. Call-to-action
4. Visual recommendations

Each variation should be optimized for {{.platform}} and appeal to {{.targetSegment}}.`,
	[]string{"storeName", "storeType", "platform", "targetSegment", "productCategory"})

// GenerateTargetedAdCopy writes platform-specific ad copy for a
// customer segment.
func (m *AcquisitionModule) GenerateTargetedAdCopy(ctx context.Context, platform, targetSegment, productCategory string, store config.StoreContext) (Result, error) {
	user, err := adCopyPrompt.Format(map[string]any{
		"storeName":       store.Name,
		"storeType":       store.Type,
		"platform":        platform,
		"targetSegment":   targetSegment,
		"productCategory": productCategory,
	})
	if err != nil {
		return Result{}, err
	}

	const persona = `You are an expert copywriter specializing in retail advertising.
Create compelling ad copy that drives clicks and conversions.`

	text, err := m.gen.Generate(ctx, persona, user)
	if err != nil {
		return Result{}, err
	}
	return Result{RawText: text, Fields: ParseFields(text)}, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
