package marketing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rahul/bazari/internal/provider"
	"github.com/rahul/bazari/pkg/config"
)

type fakeGenerator struct {
	lastSystem string
	lastUser   string
	response   string
	err        error
	calls      int
}

func (f *fakeGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

var testStore = config.StoreContext{
	Name:     "Fashion Forward Boutique",
	Type:     "clothing",
	Location: "Downtown Seattle",
}

func TestCreatePromotionCampaign_PromptIsDeterministic(t *testing.T) {
	gen := &fakeGenerator{response: "Campaign Name: Grand Opening\nTagline: Come see us"}
	m := NewAcquisitionModule(gen)

	res, err := m.CreatePromotionCampaign(context.Background(), "new customers in local area", "acquisition", 5000, 30, testStore)
	if err != nil {
		t.Fatalf("CreatePromotionCampaign failed: %v", err)
	}

	for _, want := range []string{"Fashion Forward Boutique", "clothing", "Downtown Seattle", "new customers in local area", "30 days"} {
		if !strings.Contains(gen.lastUser, want) {
			t.Errorf("prompt missing %q:\n%s", want, gen.lastUser)
		}
	}

	if res.RawText == "" {
		t.Error("raw text should always be populated")
	}
	if res.Fields["campaign_name"] != "Grand Opening" {
		t.Errorf("structured overlay not extracted: %v", res.Fields)
	}

	firstPrompt := gen.lastUser
	if _, err := m.CreatePromotionCampaign(context.Background(), "new customers in local area", "acquisition", 5000, 30, testStore); err != nil {
		t.Fatal(err)
	}
	if gen.lastUser != firstPrompt {
		t.Error("identical inputs must build identical prompts")
	}
}

func TestCreatePromotionCampaign_ValidationBeforeNetwork(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	m := NewAcquisitionModule(gen)

	_, err := m.CreatePromotionCampaign(context.Background(), "anyone", "acquisition", -100, 30, testStore)
	var vErr *provider.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for negative budget, got %v", err)
	}

	_, err = m.CreatePromotionCampaign(context.Background(), "anyone", "acquisition", 100, 0, testStore)
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for zero duration, got %v", err)
	}

	if gen.calls != 0 {
		t.Errorf("validation must reject before any generation call, saw %d calls", gen.calls)
	}
}

func TestModules_SurfaceGenerationErrors(t *testing.T) {
	genErr := &provider.GenerationError{Op: "text", Cause: errors.New("rate limited")}
	gen := &fakeGenerator{err: genErr}

	mods := []Module{
		NewAcquisitionModule(gen),
		NewRetentionModule(gen),
		NewDigitalModule(gen),
		NewInStoreModule(gen),
		NewAnalyticsModule(gen),
	}

	for _, m := range mods {
		_, err := m.RunSubtask(context.Background(), "do something", testStore)
		var gErr *provider.GenerationError
		if !errors.As(err, &gErr) {
			t.Errorf("%s: expected GenerationError to surface, got %v", m.Name(), err)
		}
	}
}

func TestAnalyzeSalesData_EmbedsDataAndTrends(t *testing.T) {
	gen := &fakeGenerator{response: "KPI Summary: solid"}
	m := NewAnalyticsModule(gen)

	data := map[string]any{"total_revenue": 120000.0, "transactions": 840}
	res, err := m.AnalyzeSalesData(context.Background(), data, "Q3 2025", "athleisure demand rising locally", testStore)
	if err != nil {
		t.Fatalf("AnalyzeSalesData failed: %v", err)
	}

	if !strings.Contains(gen.lastUser, "total_revenue") || !strings.Contains(gen.lastUser, "Q3 2025") {
		t.Errorf("sales data not embedded in prompt:\n%s", gen.lastUser)
	}
	if !strings.Contains(gen.lastUser, "athleisure demand rising locally") {
		t.Error("market trend context not embedded in prompt")
	}
	if res.Fields["kpi_summary"] != "solid" {
		t.Errorf("overlay not extracted: %v", res.Fields)
	}
}
