package agent

import (
	"regexp"
	"strconv"
	"strings"
)

var subtaskLineRe = regexp.MustCompile(`^(\d+)[.):]\s*(.+)`)

// parseSubtasks extracts numbered list items from a generated plan.
// Unnumbered lines following an item extend its description. Returns
// nil when no numbered items are found.
func parseSubtasks(planText string) []*Subtask {
	var subtasks []*Subtask
	var current *Subtask
	counter := 0

	flush := func() {
		if current != nil && current.Name != "" {
			counter++
			current.ID = "task_" + strconv.Itoa(counter)
			subtasks = append(subtasks, current)
		}
		current = nil
	}

	for _, line := range strings.Split(planText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := subtaskLineRe.FindStringSubmatch(line); m != nil {
			flush()

			name := strings.TrimSpace(m[2])
			for _, prefix := range []string{"Task:", "Subtask:", "Step:"} {
				if strings.HasPrefix(name, prefix) {
					name = strings.TrimSpace(strings.TrimPrefix(name, prefix))
				}
			}
			current = &Subtask{Name: name, Description: name, Status: SubtaskPending}
			continue
		}

		if current != nil && !strings.HasPrefix(line, "#") {
			current.Description += " " + line
		}
	}
	flush()

	return subtasks
}

// defaultSubtasks is the fallback plan used when the provider's
// output yields no parseable steps.
func defaultSubtasks() []*Subtask {
	steps := []struct{ name, description string }{
		{"Plan campaign strategy", "Develop comprehensive campaign strategy"},
		{"Create marketing content", "Design promotional materials and messaging"},
		{"Deploy across channels", "Launch campaign on email and social media"},
		{"Monitor performance", "Track metrics and engagement"},
		{"Optimize and adjust", "Make improvements based on results"},
	}

	out := make([]*Subtask, 0, len(steps))
	for i, s := range steps {
		out = append(out, &Subtask{
			ID:          "task_" + strconv.Itoa(i+1),
			Name:        s.name,
			Description: s.description,
			Status:      SubtaskPending,
		})
	}
	return out
}
