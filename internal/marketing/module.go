package marketing

import (
	"context"

	"github.com/rahul/bazari/internal/provider"
	"github.com/rahul/bazari/pkg/config"
)

// Module is a domain-specific set of generation operations. Besides
// its typed operations, every module can run a free-text subtask on
// behalf of the orchestrator using its domain persona.
type Module interface {
	Name() string
	RunSubtask(ctx context.Context, task string, store config.StoreContext) (Result, error)
}

// Result carries the provider's free-text output plus a best-effort
// structured overlay. Fields is nil when nothing could be extracted;
// the raw text is always authoritative.
type Result struct {
	RawText string
	Fields  map[string]string
}

func validateBudget(budget float64) error {
	if budget < 0 {
		return &provider.ValidationError{Field: "budget", Reason: "must be >= 0"}
	}
	return nil
}

func validateDuration(days int) error {
	if days <= 0 {
		return &provider.ValidationError{Field: "duration_days", Reason: "must be > 0"}
	}
	return nil
}

// runSubtask is the shared persona-plus-task call every module's
// RunSubtask delegates to.
func runSubtask(ctx context.Context, gen provider.TextGenerator, persona, task string, store config.StoreContext) (Result, error) {
	user := "Business: " + store.Name + " (" + store.Type + ")"
	if store.Location != "" {
		user += " in " + store.Location
	}
	user += "\n\nTask: " + task + "\n\nProvide a concrete, actionable deliverable for this task."

	text, err := gen.Generate(ctx, persona, user)
	if err != nil {
		return Result{}, err
	}
	return Result{RawText: text, Fields: ParseFields(text)}, nil
}
