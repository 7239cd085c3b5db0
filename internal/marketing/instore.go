package marketing

import (
	"context"

	"github.com/rahul/bazari/internal/provider"
	"github.com/rahul/bazari/pkg/config"
	"github.com/tmc/langchaingo/prompts"
)

const instorePersona = `You are an expert visual merchandiser for retail stores.
Create displays and in-store experiences that attract attention and drive purchases.`

// InStoreModule handles visual merchandising, point-of-sale displays,
// and in-store events.
type InStoreModule struct {
	gen provider.TextGenerator
}

func NewInStoreModule(gen provider.TextGenerator) *InStoreModule {
	return &InStoreModule{gen: gen}
}

func (m *InStoreModule) Name() string {
	return "instore_marketing"
}

func (m *InStoreModule) RunSubtask(ctx context.Context, task string, store config.StoreContext) (Result, error) {
	return runSubtask(ctx, m.gen, instorePersona, task, store)
}

var merchandisingPrompt = prompts.NewPromptTemplate(`Store: {{.storeName}}
Store Type: {{.storeType}}
Season: {{.season}}
Focus Products: {{.focusProducts}}

Design a visual merchandising strategy including:
1. Window display concept and theme
2. In-store display arrangements
3. Color schemes and lighting
4. Product placement and grouping
5. Signage and messaging
6. Customer flow optimization
7. Seasonal decorations and props

Make displays eye-catching and sales-driving.`,
	[]string{"storeName", "storeType", "season", "focusProducts"})

// DesignVisualMerchandising plans seasonal displays around focus
// products.
func (m *InStoreModule) DesignVisualMerchandising(ctx context.Context, season, focusProducts string, store config.StoreContext) (Result, error) {
	user, err := merchandisingPrompt.Format(map[string]any{
		"storeName":     store.Name,
		"storeType":     store.Type,
		"season":        season,
		"focusProducts": focusProducts,
	})
	if err != nil {
		return Result{}, err
	}

	text, err := m.gen.Generate(ctx, instorePersona, user)
	if err != nil {
		return Result{}, err
	}
	return Result{RawText: text, Fields: ParseFields(text)}, nil
}

var posDisplayPrompt = prompts.NewPromptTemplate(`Store: {{.storeName}}
Store Type: {{.storeType}}
Promotion Type: {{.promotionType}}
Display Location: {{.location}}

Design POS displays including:
1. Display structure and size
2. Product selection and arrangement
3. Messaging and signage
4. Price point strategy
5. Visual appeal elements
6. Expected conversion lift

Focus on impulse purchase psychology.`,
	[]string{"storeName", "storeType", "promotionType", "location"})

// CreatePOSDisplays designs point-of-sale display concepts for a
// location in the store (checkout, endcap, entrance).
func (m *InStoreModule) CreatePOSDisplays(ctx context.Context, promotionType, location string, store config.StoreContext) (Result, error) {
	user, err := posDisplayPrompt.Format(map[string]any{
		"storeName":     store.Name,
		"storeType":     store.Type,
		"promotionType": promotionType,
		"location":      location,
	})
	if err != nil {
		return Result{}, err
	}

	const persona = `You are an expert in point-of-sale marketing and impulse purchasing.
Create POS displays that maximize last-minute sales.`

	text, err := m.gen.Generate(ctx, persona, user)
	if err != nil {
		return Result{}, err
	}
	return Result{RawText: text, Fields: ParseFields(text)}, nil
}

var instoreEventPrompt = prompts.NewPromptTemplate(`Store: {{.storeName}}
Store Type: {{.storeType}}
Event Type: {{.eventType}}
Duration: {{.durationHours}} hours
Expected Attendance: {{.expectedAttendance}} people

Plan an in-store event including:
1. Event concept and theme
2. Schedule and timeline
3. Activities and entertainment
4. Promotional offers for attendees
5. Staff requirements and roles
6. Setup and logistics
7. Marketing and promotion plan
8. Post-event follow-up strategy
9. Budget estimate

Make the event memorable and sales-focused.`,
	[]string{"storeName", "storeType", "eventType", "durationHours", "expectedAttendance"})

// PlanInStoreEvent plans an event or product demonstration.
func (m *InStoreModule) PlanInStoreEvent(ctx context.Context, eventType string, durationHours, expectedAttendance int, store config.StoreContext) (Result, error) {
	if durationHours <= 0 {
		return Result{}, &provider.ValidationError{Field: "duration_hours", Reason: "must be > 0"}
	}

	user, err := instoreEventPrompt.Format(map[string]any{
		"storeName":          store.Name,
		"storeType":          store.Type,
		"eventType":          eventType,
		"durationHours":      durationHours,
		"expectedAttendance": expectedAttendance,
	})
	if err != nil {
		return Result{}, err
	}

	const persona = `You are an expert event planner for retail environments.
Create engaging in-store events that drive traffic and sales.`

	text, err := m.gen.Generate(ctx, persona, user)
	if err != nil {
		return Result{}, err
	}
	return Result{RawText: text, Fields: ParseFields(text)}, nil
}
