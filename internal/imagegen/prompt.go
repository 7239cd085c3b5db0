package imagegen

import (
	"fmt"
	"strings"
)

// CampaignContext carries the campaign details an image prompt is
// built from.
type CampaignContext struct {
	StoreName      string
	StoreType      string
	CampaignType   string
	Goal           string
	Offers         string
	TargetAudience string
	Location       string
}

var platformStyles = map[string]string{
	"facebook":  "warm lifestyle photography with community feel, people using products naturally",
	"instagram": "aesthetically stunning with bold colors, high-fashion editorial quality, Instagram-worthy product showcase",
	"twitter":   "dynamic candid moment with energy and movement, photojournalistic authenticity",
}

// BuildPrompt renders a deterministic product-focused image prompt for
// the given platform. Same inputs always yield the same prompt.
func BuildPrompt(platform string, cc CampaignContext) string {
	category := cc.StoreType
	if category == "" {
		category = "retail"
	}
	goal := cc.Goal
	if goal == "" {
		goal = "attract customers"
	}
	audience := cc.TargetAudience
	if audience == "" {
		audience = "customers"
	}

	var scene, theme, mood string
	campaignType := strings.ToLower(cc.CampaignType)
	lowerGoal := strings.ToLower(goal)
	lowerOffers := strings.ToLower(cc.Offers)
	switch {
	case strings.Contains(campaignType, "acquisition") || strings.Contains(lowerGoal, "new customer"):
		scene = fmt.Sprintf("attractive %s products being used by happy customers in lifestyle setting", category)
		theme = "inviting, energetic, and discovery-focused"
		mood = "excitement and curiosity"
	case strings.Contains(campaignType, "retention") || strings.Contains(lowerGoal, "loyalty"):
		scene = fmt.Sprintf("premium %s products showcased in elegant setting with satisfied customers", category)
		theme = "luxurious, exclusive, and rewarding"
		mood = "satisfaction and appreciation"
	case strings.Contains(lowerOffers, "sale") || strings.Contains(lowerOffers, "discount") || strings.Contains(campaignType, "promotion"):
		scene = fmt.Sprintf("eye-catching collection of %s products with special offer highlights", category)
		theme = "energetic, value-focused, and compelling"
		mood = "excitement and urgency"
	case strings.Contains(lowerGoal, "seasonal") || strings.Contains(lowerGoal, "holiday"):
		scene = fmt.Sprintf("festive display of %s products with seasonal decorations and happy people", category)
		theme = "seasonal, festive, and celebratory"
		mood = "joy and celebration"
	default:
		scene = fmt.Sprintf("beautiful %s products in modern lifestyle context with people enjoying them", category)
		theme = "contemporary, appealing, and lifestyle-focused"
		mood = "comfort and satisfaction"
	}

	locationContext := ""
	if cc.Location != "" {
		locationContext = fmt.Sprintf(" for %s market", cc.Location)
	}

	style, ok := platformStyles[strings.ToLower(platform)]
	if !ok {
		style = "professional commercial photography"
	}

	return fmt.Sprintf(`Professional product photography for %s marketing campaign%s.

SCENE: %s
Campaign Focus: %s
Target Audience: %s

VISUAL STYLE: %s
Atmosphere: %s
Emotional Tone: %s

MAIN FOCUS: %s products (NOT stores or buildings)
Show products being used, worn, or enjoyed by people in real-life scenarios,
displayed attractively in lifestyle context, featured as the hero of the image.

VISUAL REQUIREMENTS:
- High-quality 4K commercial product photography
- Natural lighting with professional color grading
- NO text, NO words, NO letters, NO price tags, NO signs
- NO store interiors, NO shopping carts, NO cash registers

MOOD & FEELING: %s, aspirational lifestyle that makes viewers want to own and use these %s products.`,
		category, locationContext, scene, goal, audience, style, theme, mood, category, mood, category)
}
