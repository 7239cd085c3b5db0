package campaign

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Notifier receives human-readable campaign notices. Deployment
// channels satisfy this through a thin adapter.
type Notifier interface {
	Notify(text string) error
}

// Monitor sweeps the registry on a ticker, completing active
// campaigns whose end date has passed and announcing the transition.
type Monitor struct {
	Registry *Registry
	Notifier Notifier
	Interval time.Duration
}

func NewMonitor(registry *Registry, notifier Notifier) *Monitor {
	return &Monitor{
		Registry: registry,
		Notifier: notifier,
		Interval: 30 * time.Second,
	}
}

func (m *Monitor) Start(ctx context.Context) {
	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()

	log.Println("Campaign monitor started...")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(time.Now())
		}
	}
}

// Sweep completes every active campaign whose window has closed.
// Exposed for tests and manual triggering.
func (m *Monitor) Sweep(now time.Time) {
	for _, c := range m.Registry.ByStatus(StatusActive) {
		if now.Before(c.EndDate) {
			continue
		}

		if !m.Registry.Complete(c.ID) {
			continue
		}

		log.Printf("Campaign %s (%s) reached its end date, marked completed", c.ID, c.Name)

		if m.Notifier != nil {
			notice := fmt.Sprintf("Campaign finished: %s\nBudget: $%.2f\nRan: %s - %s",
				c.Name, c.Budget,
				c.StartDate.Format("2006-01-02"), c.EndDate.Format("2006-01-02"))
			if err := m.Notifier.Notify(notice); err != nil {
				log.Printf("Error notifying campaign completion for %s: %v", c.ID, err)
			}
		}
	}
}
