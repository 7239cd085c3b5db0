package marketing

import (
	"context"
	"strings"

	"github.com/rahul/bazari/internal/provider"
	"github.com/rahul/bazari/pkg/config"
	"github.com/tmc/langchaingo/prompts"
)

const digitalPersona = `You are an expert social media manager for retail brands.
Create engaging content that drives engagement and sales.`

// DigitalModule handles social media content, local SEO, and content
// calendars.
type DigitalModule struct {
	gen provider.TextGenerator
}

func NewDigitalModule(gen provider.TextGenerator) *DigitalModule {
	return &DigitalModule{gen: gen}
}

func (m *DigitalModule) Name() string {
	return "digital_presence"
}

func (m *DigitalModule) RunSubtask(ctx context.Context, task string, store config.StoreContext) (Result, error) {
	return runSubtask(ctx, m.gen, digitalPersona, task, store)
}

var socialContentPrompt = prompts.NewPromptTemplate(`Store: {{.storeName}}
Store Type: {{.storeType}}
Platform: {{.platform}}
Content Type: {{.contentType}}
Theme: {{.theme}}
Number of Posts: {{.numPosts}}

Create {{.numPosts}} social media posts including:
1. Post caption (platform-optimized)
2. Hashtag strategy (relevant and trending)
3. Visual description/recommendations
4. Call-to-action
5. Best time to post
6. Engagement tactics (questions, polls, etc.)

Make content authentic, engaging, and shareable.`,
	[]string{"storeName", "storeType", "platform", "contentType", "theme", "numPosts"})

// CreateSocialMediaContent writes platform-specific posts for a
// content theme.
func (m *DigitalModule) CreateSocialMediaContent(ctx context.Context, platform, contentType, theme string, numPosts int, store config.StoreContext) (Result, error) {
	if numPosts <= 0 {
		return Result{}, &provider.ValidationError{Field: "num_posts", Reason: "must be > 0"}
	}

	user, err := socialContentPrompt.Format(map[string]any{
		"storeName":   store.Name,
		"storeType":   store.Type,
		"platform":    platform,
		"contentType": contentType,
		"theme":       theme,
		"numPosts":    numPosts,
	})
	if err != nil {
		return Result{}, err
	}

	text, err := m.gen.Generate(ctx, digitalPersona, user)
	if err != nil {
		return Result{}, err
	}
	return Result{RawText: text, Fields: ParseFields(text)}, nil
}

var localSEOPrompt = prompts.NewPromptTemplate(`Store: {{.storeName}}
Store Type: {{.storeType}}
Location: {{.location}}
{{.auditSection}}
Create a local SEO strategy including:
1. Google Business Profile optimization
2. Local keywords to target
3. Citation building strategy
4. Review generation tactics
5. Local content ideas
6. Mobile optimization tips
7. Success metrics

Focus on actionable items that improve local search rankings.`,
	[]string{"storeName", "storeType", "location", "auditSection"})

// OptimizeLocalSEO builds a local search strategy. siteAudit is an
// optional summary of the store's rendered website; empty means no
// audit was available and the strategy is produced without it.
func (m *DigitalModule) OptimizeLocalSEO(ctx context.Context, siteAudit string, store config.StoreContext) (Result, error) {
	auditSection := ""
	if siteAudit != "" {
		auditSection = "\nCurrent Website Audit:\n" + siteAudit + "\n"
	}

	user, err := localSEOPrompt.Format(map[string]any{
		"storeName":    store.Name,
		"storeType":    store.Type,
		"location":     orDefault(store.Location, "Local Area"),
		"auditSection": auditSection,
	})
	if err != nil {
		return Result{}, err
	}

	const persona = `You are an expert in local SEO for retail businesses.
Create strategies to improve local search visibility.`

	text, err := m.gen.Generate(ctx, persona, user)
	if err != nil {
		return Result{}, err
	}
	return Result{RawText: text, Fields: ParseFields(text)}, nil
}

var contentCalendarPrompt = prompts.NewPromptTemplate(`Store: {{.storeName}}
Store Type: {{.storeType}}
Duration: {{.durationWeeks}} weeks
Platforms: {{.platforms}}

Create a content calendar including:
1. Daily content themes for each week
2. Specific post ideas for each day
3. Mix of content types (educational, promotional, engaging)
4. Platform-specific adaptations
5. Seasonal/holiday tie-ins
6. User-generated content opportunities

Ensure variety and strategic timing.`,
	[]string{"storeName", "storeType", "durationWeeks", "platforms"})

// CreateContentCalendar plans multi-week posting across platforms.
func (m *DigitalModule) CreateContentCalendar(ctx context.Context, durationWeeks int, platforms []string, store config.StoreContext) (Result, error) {
	if durationWeeks <= 0 {
		return Result{}, &provider.ValidationError{Field: "duration_weeks", Reason: "must be > 0"}
	}

	user, err := contentCalendarPrompt.Format(map[string]any{
		"storeName":     store.Name,
		"storeType":     store.Type,
		"durationWeeks": durationWeeks,
		"platforms":     strings.Join(platforms, ", "),
	})
	if err != nil {
		return Result{}, err
	}

	const persona = `You are an expert social media strategist for retail.
Create content calendars that maintain consistent engagement.`

	text, err := m.gen.Generate(ctx, persona, user)
	if err != nil {
		return Result{}, err
	}
	return Result{RawText: text, Fields: ParseFields(text)}, nil
}
