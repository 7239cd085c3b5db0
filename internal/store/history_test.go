package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *HistoryStore {
	t.Helper()
	h, err := NewHistoryStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewHistoryStore failed: %v", err)
	}
	t.Cleanup(func() { h.Close() })
	return h
}

func TestRecordGeneration_RoundTrip(t *testing.T) {
	h := newTestStore(t)

	if err := h.RecordGeneration("customer_acquisition", "generate", "write a campaign", "Campaign Name: Fall Kickoff"); err != nil {
		t.Fatalf("RecordGeneration failed: %v", err)
	}
	if err := h.RecordGeneration("digital_presence", "generate", "write posts", "Post 1: ..."); err != nil {
		t.Fatalf("RecordGeneration failed: %v", err)
	}

	recent, err := h.RecentGenerations(10)
	if err != nil {
		t.Fatalf("RecentGenerations failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 generations, got %d", len(recent))
	}
	if recent[0].Module != "digital_presence" {
		t.Errorf("newest first expected, got %s", recent[0].Module)
	}
	if recent[1].Response != "Campaign Name: Fall Kickoff" {
		t.Errorf("response lost: %+v", recent[1])
	}
}

func TestCampaignHistory_OrderedTrail(t *testing.T) {
	h := newTestStore(t)

	for _, step := range []string{"draft", "active", "completed"} {
		if err := h.RecordCampaignEvent("c-1", step, step); err != nil {
			t.Fatalf("RecordCampaignEvent failed: %v", err)
		}
	}
	if err := h.RecordCampaignEvent("c-2", "draft", "created"); err != nil {
		t.Fatal(err)
	}

	trail, err := h.CampaignHistory("c-1")
	if err != nil {
		t.Fatalf("CampaignHistory failed: %v", err)
	}
	if len(trail) != 3 {
		t.Fatalf("expected 3 events for c-1, got %d", len(trail))
	}
	if trail[0].Status != "draft" || trail[2].Status != "completed" {
		t.Errorf("trail out of order: %+v", trail)
	}
}

type passthroughGen struct{ out string }

func (p passthroughGen) Generate(_ context.Context, _, _ string) (string, error) {
	return p.out, nil
}

func TestRecordingGenerator_WritesThrough(t *testing.T) {
	h := newTestStore(t)

	gen := NewRecordingGenerator(passthroughGen{out: "Tagline: Shop Local"}, h, "instore_marketing")
	out, err := gen.Generate(context.Background(), "persona", "design a display")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "Tagline: Shop Local" {
		t.Errorf("decorator altered output: %s", out)
	}

	recent, err := h.RecentGenerations(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].Module != "instore_marketing" {
		t.Errorf("generation not recorded: %+v", recent)
	}
}
