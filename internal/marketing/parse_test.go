package marketing

import "testing"

func TestParseFields_ExtractsOverlay(t *testing.T) {
	text := `**Campaign Name:** Spring Refresh
- Tagline: Fresh looks, fresh prices
Budget Allocation: 40% social, 60% email

This campaign targets young professionals who value convenience
and quality: two traits our store embodies.`

	fields := ParseFields(text)
	if fields == nil {
		t.Fatal("expected a structured overlay")
	}

	if fields["campaign_name"] != "Spring Refresh" {
		t.Errorf("campaign_name = %q", fields["campaign_name"])
	}
	if fields["tagline"] != "Fresh looks, fresh prices" {
		t.Errorf("tagline = %q", fields["tagline"])
	}
	if fields["budget_allocation"] != "40% social, 60% email" {
		t.Errorf("budget_allocation = %q", fields["budget_allocation"])
	}

	// The prose line containing a colon mid-sentence must not become a key.
	if _, ok := fields["this_campaign_targets_young_professionals_who_value_convenience_and_quality"]; ok {
		t.Error("sentence fragment treated as field key")
	}
}

func TestParseFields_UnparseableReturnsNil(t *testing.T) {
	if fields := ParseFields("just a paragraph of free text with no structure at all"); fields != nil {
		t.Errorf("expected nil overlay, got %v", fields)
	}
	if fields := ParseFields(""); fields != nil {
		t.Errorf("expected nil overlay for empty text, got %v", fields)
	}
}

func TestGenerateHashtags(t *testing.T) {
	tags := GenerateHashtags("Spring sale on premium coffee, premium beans!", 3)

	if len(tags) != 3 {
		t.Fatalf("expected 3 tags, got %v", tags)
	}
	if tags[0] != "#spring" || tags[1] != "#sale" || tags[2] != "#premium" {
		t.Errorf("unexpected tags: %v", tags)
	}
}
