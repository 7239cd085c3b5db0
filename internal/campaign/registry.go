package campaign

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rahul/bazari/internal/provider"
)

// Registry is the in-memory campaign store. All mutation happens
// through lifecycle methods under the registry lock; lookups return
// copies. Lifecycle methods return false instead of erroring for
// unknown ids and ineligible transitions so callers can branch
// without error handling.
type Registry struct {
	mu        sync.RWMutex
	campaigns map[string]*Campaign
	order     []string

	// optional write-through event sink
	events EventSink
}

// EventSink records campaign lifecycle events for the audit log.
type EventSink interface {
	RecordCampaignEvent(campaignID string, status string, detail string) error
}

func NewRegistry() *Registry {
	return &Registry{campaigns: make(map[string]*Campaign)}
}

// SetEventSink attaches an audit sink. Sink failures are ignored;
// bookkeeping must never affect registry behavior.
func (r *Registry) SetEventSink(sink EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = sink
}

// Create validates and stores a new draft campaign. Invalid input is
// rejected with a ValidationError before anything is stored.
func (r *Registry) Create(name string, typ Type, description string, start, end time.Time, budget float64, targetMetrics map[string]float64) (*Campaign, error) {
	if budget < 0 {
		return nil, &provider.ValidationError{Field: "budget", Reason: "must be >= 0"}
	}
	if !end.After(start) {
		return nil, &provider.ValidationError{Field: "end_date", Reason: "must be after start_date"}
	}

	now := time.Now()
	c := &Campaign{
		ID:            uuid.NewString(),
		Name:          name,
		Type:          typ,
		Description:   description,
		StartDate:     start,
		EndDate:       end,
		Budget:        budget,
		TargetMetrics: targetMetrics,
		Status:        StatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	r.mu.Lock()
	r.campaigns[c.ID] = c
	r.order = append(r.order, c.ID)
	r.mu.Unlock()

	r.record(c.ID, StatusDraft, "created")
	return c.clone(), nil
}

// Get returns a copy of the campaign, or nil if unknown.
func (r *Registry) Get(id string) *Campaign {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.campaigns[id]; ok {
		return c.clone()
	}
	return nil
}

// Active returns campaigns that are live right now, in creation order.
func (r *Registry) Active() []*Campaign {
	now := time.Now()
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Campaign
	for _, id := range r.order {
		if c := r.campaigns[id]; c.IsActive(now) {
			out = append(out, c.clone())
		}
	}
	return out
}

// ByStatus returns campaigns in the given status, in creation order.
func (r *Registry) ByStatus(status Status) []*Campaign {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Campaign
	for _, id := range r.order {
		if c := r.campaigns[id]; c.Status == status {
			out = append(out, c.clone())
		}
	}
	return out
}

// ByType returns campaigns of the given type, in creation order.
func (r *Registry) ByType(typ Type) []*Campaign {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Campaign
	for _, id := range r.order {
		if c := r.campaigns[id]; c.Type == typ {
			out = append(out, c.clone())
		}
	}
	return out
}

// Launch moves a draft or planned campaign to active. Returns false
// for unknown ids and for campaigns in any other state, including a
// second Launch on an already-active campaign.
func (r *Registry) Launch(id string) bool {
	return r.transition(id, StatusActive, "launched", StatusDraft, StatusPlanned)
}

// Pause moves an active campaign to paused, else false.
func (r *Registry) Pause(id string) bool {
	return r.transition(id, StatusPaused, "paused", StatusActive)
}

// Resume moves a paused campaign back to active, else false.
func (r *Registry) Resume(id string) bool {
	return r.transition(id, StatusActive, "resumed", StatusPaused)
}

// Complete moves an active or paused campaign to completed, else
// false.
func (r *Registry) Complete(id string) bool {
	return r.transition(id, StatusCompleted, "completed", StatusActive, StatusPaused)
}

// Cancel terminates a campaign from any non-final state, else false.
func (r *Registry) Cancel(id string) bool {
	return r.transition(id, StatusCancelled, "cancelled", StatusDraft, StatusPlanned, StatusActive, StatusPaused)
}

// MarkPlanned moves a draft campaign to planned, else false.
func (r *Registry) MarkPlanned(id string) bool {
	return r.transition(id, StatusPlanned, "planned", StatusDraft)
}

func (r *Registry) transition(id string, to Status, detail string, from ...Status) bool {
	r.mu.Lock()
	c, ok := r.campaigns[id]
	if !ok {
		r.mu.Unlock()
		return false
	}
	eligible := false
	for _, s := range from {
		if c.Status == s {
			eligible = true
			break
		}
	}
	if !eligible {
		r.mu.Unlock()
		return false
	}
	c.Status = to
	c.UpdatedAt = time.Now()
	r.mu.Unlock()

	r.record(id, to, detail)
	return true
}

// RecordRevenue attaches observed revenue to a campaign. Returns
// false for unknown ids.
func (r *Registry) RecordRevenue(id string, revenue float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return false
	}
	c.ActualRevenue = &revenue
	c.UpdatedAt = time.Now()
	return true
}

// UpdatePerformance merges deployment metrics into the campaign.
// Returns false for unknown ids.
func (r *Registry) UpdatePerformance(id string, metrics map[string]any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return false
	}
	if c.Performance == nil {
		c.Performance = make(map[string]any, len(metrics))
	}
	for k, v := range metrics {
		c.Performance[k] = v
	}
	c.UpdatedAt = time.Now()
	return true
}

// AddChannel records a marketing channel on the campaign. Duplicate
// channels are ignored.
func (r *Registry) AddChannel(id string, channel string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return false
	}
	for _, existing := range c.Channels {
		if existing == channel {
			return true
		}
	}
	c.Channels = append(c.Channels, channel)
	c.UpdatedAt = time.Now()
	return true
}

// ROI returns (revenue - budget) / budget, or nil when the campaign
// is unknown or its budget is zero.
func (r *Registry) ROI(id string, revenue float64) *float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.campaigns[id]
	if !ok || c.Budget == 0 {
		return nil
	}
	roi := (revenue - c.Budget) / c.Budget
	return &roi
}

// Summary aggregates counts and budget across all campaigns.
type Summary struct {
	TotalCampaigns  int            `json:"total_campaigns"`
	ActiveCampaigns int            `json:"active_campaigns"`
	TotalBudget     float64        `json:"total_budget"`
	ByStatus        map[Status]int `json:"by_status"`
	ByType          map[Type]int   `json:"by_type"`
}

func (r *Registry) Summarize() Summary {
	now := time.Now()
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Summary{
		ByStatus: make(map[Status]int),
		ByType:   make(map[Type]int),
	}
	for _, c := range r.campaigns {
		s.TotalCampaigns++
		s.TotalBudget += c.Budget
		s.ByStatus[c.Status]++
		s.ByType[c.Type]++
		if c.IsActive(now) {
			s.ActiveCampaigns++
		}
	}
	return s
}

// All returns every campaign copy, oldest first.
func (r *Registry) All() []*Campaign {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Campaign, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.campaigns[id].clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *Registry) record(id string, status Status, detail string) {
	r.mu.RLock()
	sink := r.events
	r.mu.RUnlock()
	if sink != nil {
		_ = sink.RecordCampaignEvent(id, string(status), detail)
	}
}
