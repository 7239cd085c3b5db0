package deploy

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rahul/bazari/internal/campaign"
	"github.com/rahul/bazari/internal/governance"
)

type flakyChannel struct {
	name string
	err  error
	sent []Message
}

func (c *flakyChannel) Name() string { return c.name }

func (c *flakyChannel) Publish(_ context.Context, m Message) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, m)
	return nil
}

func testCampaign(t *testing.T, r *campaign.Registry) *campaign.Campaign {
	t.Helper()
	c, err := r.Create("Fall Push", campaign.TypeAcquisition, "bring in new shoppers",
		time.Now(), time.Now().Add(30*24*time.Hour), 2000, nil)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestDeployCampaign_CollectsChannelFailures(t *testing.T) {
	r := campaign.NewRegistry()
	c := testCampaign(t, r)

	good := &flakyChannel{name: "facebook"}
	bad := &flakyChannel{name: "twitter", err: errors.New("api down")}

	svc := &Service{Channels: []Channel{good, bad}, Registry: r}
	report, err := svc.DeployCampaign(context.Background(), c, "Big News", "Fresh styles in store now", []string{"#shoplocal"})
	if err != nil {
		t.Fatalf("DeployCampaign failed: %v", err)
	}

	if len(report.Published) != 1 || report.Published[0] != "facebook" {
		t.Errorf("published = %v, want [facebook]", report.Published)
	}
	if report.Failed["twitter"] == "" {
		t.Error("twitter failure should be collected in the report")
	}
	if len(good.sent) != 1 || good.sent[0].CampaignID != c.ID {
		t.Errorf("message not delivered to working channel: %+v", good.sent)
	}

	stored := r.Get(c.ID)
	if len(stored.Channels) != 1 || stored.Channels[0] != "facebook" {
		t.Errorf("registry channels = %v", stored.Channels)
	}
}

func TestDeployCampaign_PolicyDenialStopsEverything(t *testing.T) {
	r := campaign.NewRegistry()
	c := testCampaign(t, r)

	ch := &flakyChannel{name: "facebook"}
	svc := &Service{
		Channels: []Channel{ch},
		Policy:   governance.NewDefaultPolicyEngine().WithRetailDefaults(),
		Registry: r,
	}

	report, err := svc.DeployCampaign(context.Background(), c, "Act now", "Guaranteed results for every shopper!", nil)
	if err != nil {
		t.Fatalf("DeployCampaign failed: %v", err)
	}
	if report.Denied == "" {
		t.Fatal("policy should have denied the copy")
	}
	if len(ch.sent) != 0 {
		t.Error("no channel may receive denied content")
	}
}

func TestSocialChannel_TracksEngagement(t *testing.T) {
	ch := NewSocialChannel("instagram")
	msg := Message{CampaignID: "c-1", Body: "New arrivals"}
	if err := ch.Publish(context.Background(), msg); err != nil {
		t.Fatal(err)
	}
	if err := ch.Publish(context.Background(), msg); err != nil {
		t.Fatal(err)
	}

	stats := ch.Engagement("c-1")
	if stats["posts"] != 2 {
		t.Errorf("posts = %d, want 2", stats["posts"])
	}
	if stats["likes"] == 0 {
		t.Error("simulated posts should accrue engagement")
	}
	if other := ch.Engagement("c-2"); other["posts"] != 0 {
		t.Error("engagement leaked across campaigns")
	}
}

func TestEmailChannel_RequiresSubject(t *testing.T) {
	ch := NewEmailChannel(100)
	if err := ch.Publish(context.Background(), Message{CampaignID: "c-1", Body: "hello"}); err == nil {
		t.Error("email without subject should fail")
	}
	if err := ch.Publish(context.Background(), Message{CampaignID: "c-1", Subject: "Hi", Body: "hello"}); err != nil {
		t.Errorf("email with subject failed: %v", err)
	}
	if ch.SendCount("c-1") != 1 {
		t.Errorf("send count = %d, want 1", ch.SendCount("c-1"))
	}
}

func TestAssetWriter_RejectsPathEscape(t *testing.T) {
	w := NewAssetWriter(t.TempDir())

	if _, err := w.Write("../outside.txt", []byte("nope")); err == nil {
		t.Error("path escape must be rejected")
	}

	path, err := w.SaveCampaignCopy("c-1", "email", "# Subject\n\nBody")
	if err != nil {
		t.Fatalf("SaveCampaignCopy failed: %v", err)
	}
	if !strings.Contains(path, filepath.Join("campaigns", "c-1")) {
		t.Errorf("asset stored outside campaign dir: %s", path)
	}

	data, err := w.Read(strings.TrimPrefix(path, w.Root+string(filepath.Separator)))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !strings.Contains(string(data), "Body") {
		t.Error("stored content lost")
	}
}
