package campaign

import (
	"errors"
	"testing"
	"time"

	"github.com/rahul/bazari/internal/provider"
)

func newTestRegistry(t *testing.T) (*Registry, *Campaign) {
	t.Helper()
	r := NewRegistry()
	c, err := r.Create("Summer Push", TypeAcquisition, "acquire new customers",
		time.Now().Add(-time.Hour), time.Now().Add(30*24*time.Hour), 5000,
		map[string]float64{"new_customers": 100})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return r, c
}

func TestCreateThenGetReturnsEqualRecord(t *testing.T) {
	r, created := newTestRegistry(t)

	got := r.Get(created.ID)
	if got == nil {
		t.Fatal("Get returned nil for a freshly created campaign")
	}
	if got.ID != created.ID || got.Name != created.Name || got.Budget != created.Budget ||
		got.Status != created.Status || !got.StartDate.Equal(created.StartDate) ||
		!got.EndDate.Equal(created.EndDate) {
		t.Errorf("Get returned a different record:\ncreated: %+v\ngot:     %+v", created, got)
	}
	if got.Status != StatusDraft {
		t.Errorf("new campaigns start as draft, got %s", got.Status)
	}
	if got.TargetMetrics["new_customers"] != 100 {
		t.Errorf("target metrics lost: %v", got.TargetMetrics)
	}
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	r := NewRegistry()

	_, err := r.Create("Bad", TypeAcquisition, "", time.Now(), time.Now().Add(time.Hour), -100, nil)
	var vErr *provider.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("negative budget should raise ValidationError, got %v", err)
	}

	_, err = r.Create("Bad", TypeAcquisition, "", time.Now(), time.Now().Add(-time.Hour), 100, nil)
	if !errors.As(err, &vErr) {
		t.Fatalf("end before start should raise ValidationError, got %v", err)
	}

	if len(r.All()) != 0 {
		t.Error("rejected campaigns must not be stored")
	}
}

func TestLaunch_Lifecycle(t *testing.T) {
	r, c := newTestRegistry(t)

	if !r.Launch(c.ID) {
		t.Fatal("Launch from draft should succeed")
	}
	if got := r.Get(c.ID); got.Status != StatusActive {
		t.Errorf("expected active, got %s", got.Status)
	}

	// Second launch from active is idempotent-false.
	if r.Launch(c.ID) {
		t.Error("Launch from active must return false")
	}

	if r.Launch("no-such-id") {
		t.Error("Launch of unknown id must return false")
	}
}

func TestLaunch_FromPlanned(t *testing.T) {
	r, c := newTestRegistry(t)

	if !r.MarkPlanned(c.ID) {
		t.Fatal("MarkPlanned from draft should succeed")
	}
	if !r.Launch(c.ID) {
		t.Error("Launch from planned should succeed")
	}
}

func TestPause_OnlyFromActive(t *testing.T) {
	r, c := newTestRegistry(t)

	if r.Pause(c.ID) {
		t.Error("Pause from draft must return false")
	}

	r.Launch(c.ID)
	if !r.Pause(c.ID) {
		t.Error("Pause from active should succeed")
	}
	if r.Pause(c.ID) {
		t.Error("Pause from paused must return false")
	}
}

func TestActive_OnlyIncludesLiveCampaigns(t *testing.T) {
	r, live := newTestRegistry(t)
	r.Launch(live.ID)

	// Active status but window already closed.
	expired, err := r.Create("Expired", TypeSeasonal, "",
		time.Now().Add(-48*time.Hour), time.Now().Add(-time.Hour), 1000, nil)
	if err != nil {
		t.Fatal(err)
	}
	r.Launch(expired.ID)

	// Still draft.
	draft, err := r.Create("Draft", TypeRetention, "",
		time.Now(), time.Now().Add(24*time.Hour), 1000, nil)
	if err != nil {
		t.Fatal(err)
	}

	active := r.Active()
	if len(active) != 1 || active[0].ID != live.ID {
		t.Fatalf("expected exactly the live campaign, got %d entries", len(active))
	}
	for _, c := range active {
		if c.Status != StatusActive {
			t.Errorf("Active() returned campaign in status %s", c.Status)
		}
		if c.ID == draft.ID {
			t.Error("draft campaign leaked into Active()")
		}
	}
}

func TestROI(t *testing.T) {
	r, c := newTestRegistry(t)

	if roi := r.ROI("unknown", 1000); roi != nil {
		t.Errorf("ROI for unknown id must be nil, got %v", *roi)
	}

	zero, err := r.Create("Free", TypeEvent, "", time.Now(), time.Now().Add(time.Hour), 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if roi := r.ROI(zero.ID, 1000); roi != nil {
		t.Errorf("ROI with zero budget must be nil, got %v", *roi)
	}

	roi := r.ROI(c.ID, 15000)
	if roi == nil {
		t.Fatal("ROI returned nil for a known, budgeted campaign")
	}
	if want := (15000.0 - 5000.0) / 5000.0; *roi != want {
		t.Errorf("ROI = %v, want exactly %v", *roi, want)
	}

	loss := r.ROI(c.ID, 2500)
	if loss == nil || *loss != -0.5 {
		t.Errorf("loss ROI = %v, want -0.5", loss)
	}
}

func TestSummarize(t *testing.T) {
	r, c := newTestRegistry(t)
	r.Launch(c.ID)

	if _, err := r.Create("Second", TypeRetention, "",
		time.Now(), time.Now().Add(time.Hour), 3000, nil); err != nil {
		t.Fatal(err)
	}

	s := r.Summarize()
	if s.TotalCampaigns != 2 {
		t.Errorf("total = %d, want 2", s.TotalCampaigns)
	}
	if s.TotalBudget != 8000 {
		t.Errorf("budget = %v, want 8000", s.TotalBudget)
	}
	if s.ByStatus[StatusActive] != 1 || s.ByStatus[StatusDraft] != 1 {
		t.Errorf("status counts wrong: %v", s.ByStatus)
	}
	if s.ActiveCampaigns != 1 {
		t.Errorf("active = %d, want 1", s.ActiveCampaigns)
	}
}

type captureNotifier struct {
	notices []string
}

func (n *captureNotifier) Notify(text string) error {
	n.notices = append(n.notices, text)
	return nil
}

func TestMonitor_CompletesExpiredCampaigns(t *testing.T) {
	r := NewRegistry()
	c, err := r.Create("Flash Sale", TypeClearance, "",
		time.Now().Add(-72*time.Hour), time.Now().Add(-time.Hour), 500, nil)
	if err != nil {
		t.Fatal(err)
	}
	r.Launch(c.ID)

	still, err := r.Create("Ongoing", TypeAcquisition, "",
		time.Now().Add(-time.Hour), time.Now().Add(time.Hour), 500, nil)
	if err != nil {
		t.Fatal(err)
	}
	r.Launch(still.ID)

	notifier := &captureNotifier{}
	m := NewMonitor(r, notifier)
	m.Sweep(time.Now())

	if got := r.Get(c.ID); got.Status != StatusCompleted {
		t.Errorf("expired campaign should be completed, got %s", got.Status)
	}
	if got := r.Get(still.ID); got.Status != StatusActive {
		t.Errorf("in-window campaign should stay active, got %s", got.Status)
	}
	if len(notifier.notices) != 1 {
		t.Errorf("expected one completion notice, got %d", len(notifier.notices))
	}
}
