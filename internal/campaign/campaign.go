package campaign

import (
	"time"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPlanned   Status = "planned"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Type string

const (
	TypeAcquisition    Type = "acquisition"
	TypeRetention      Type = "retention"
	TypeSeasonal       Type = "seasonal"
	TypeProductLaunch  Type = "product_launch"
	TypeClearance      Type = "clearance"
	TypeEvent          Type = "event"
	TypeBrandAwareness Type = "brand_awareness"
)

// Campaign is a budgeted, time-bounded marketing effort. Status
// transitions are the only mutation path after creation.
type Campaign struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Type          Type               `json:"type"`
	Description   string             `json:"description"`
	StartDate     time.Time          `json:"start_date"`
	EndDate       time.Time          `json:"end_date"`
	Budget        float64            `json:"budget"`
	TargetMetrics map[string]float64 `json:"target_metrics,omitempty"`
	Status        Status             `json:"status"`
	Channels      []string           `json:"channels,omitempty"`
	Performance   map[string]any     `json:"performance,omitempty"`
	ActualRevenue *float64           `json:"actual_revenue,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// DurationDays returns the campaign length in whole days.
func (c *Campaign) DurationDays() int {
	return int(c.EndDate.Sub(c.StartDate).Hours() / 24)
}

// IsActive reports whether the campaign is live right now: status
// active and the clock inside the date window.
func (c *Campaign) IsActive(now time.Time) bool {
	return c.Status == StatusActive && !now.Before(c.StartDate) && !now.After(c.EndDate)
}

// clone returns a copy so registry callers never share the internal
// record.
func (c *Campaign) clone() *Campaign {
	cp := *c
	if c.TargetMetrics != nil {
		cp.TargetMetrics = make(map[string]float64, len(c.TargetMetrics))
		for k, v := range c.TargetMetrics {
			cp.TargetMetrics[k] = v
		}
	}
	if c.Performance != nil {
		cp.Performance = make(map[string]any, len(c.Performance))
		for k, v := range c.Performance {
			cp.Performance[k] = v
		}
	}
	cp.Channels = append([]string(nil), c.Channels...)
	if c.ActualRevenue != nil {
		rev := *c.ActualRevenue
		cp.ActualRevenue = &rev
	}
	return &cp
}
