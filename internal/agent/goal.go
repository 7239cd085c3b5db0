package agent

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rahul/bazari/internal/marketing"
)

// GoalType selects which marketing module executes a goal's subtasks.
type GoalType string

const (
	GoalCustomerAcquisition GoalType = "customer_acquisition"
	GoalCustomerRetention   GoalType = "customer_retention"
	GoalInStoreMarketing    GoalType = "instore_marketing"
	GoalDigitalPresence     GoalType = "digital_presence"
	GoalSeasonalCampaign    GoalType = "seasonal_campaign"
	GoalAnalyticsInsights   GoalType = "analytics_insights"
	GoalCommunityEngagement GoalType = "community_engagement"
)

type GoalStatus string

const (
	GoalPending    GoalStatus = "pending"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
	GoalFailed     GoalStatus = "failed"
	GoalCancelled  GoalStatus = "cancelled"
)

type SubtaskStatus string

const (
	SubtaskPending    SubtaskStatus = "pending"
	SubtaskInProgress SubtaskStatus = "in_progress"
	SubtaskCompleted  SubtaskStatus = "completed"
	SubtaskFailed     SubtaskStatus = "failed"
)

// Subtask is one step of a goal's execution plan.
type Subtask struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Status      SubtaskStatus     `json:"status"`
	Result      *marketing.Result `json:"result,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// Goal is a marketing objective the agent plans and executes.
type Goal struct {
	ID            string         `json:"id"`
	Type          GoalType       `json:"goal_type"`
	Description   string         `json:"description"`
	Target        string         `json:"target"`
	Timeframe     string         `json:"timeframe"`
	Metrics       map[string]any `json:"metrics,omitempty"`
	Priority      int            `json:"priority"`
	Status        GoalStatus     `json:"status"`
	FailureReason string         `json:"failure_reason,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	StartedAt     *time.Time     `json:"started_at,omitempty"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
	Subtasks      []*Subtask     `json:"subtasks"`
	Results       map[string]any `json:"results,omitempty"`
}

func newGoal(goalType GoalType, description, target, timeframe string, metrics map[string]any, priority int) *Goal {
	return &Goal{
		ID:          uuid.NewString(),
		Type:        goalType,
		Description: description,
		Target:      target,
		Timeframe:   timeframe,
		Metrics:     metrics,
		Priority:    priority,
		Status:      GoalPending,
		CreatedAt:   time.Now(),
		Results:     make(map[string]any),
	}
}

var timeframeRe = regexp.MustCompile(`(\d+)\s*(day|days|week|weeks|month|months|year|years)`)

// ParseTimeframe turns a phrase like "30 days", "2 weeks" or
// "3 months" into a duration in days. Unparseable input defaults to
// 30 days.
func ParseTimeframe(timeframe string) int {
	m := timeframeRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(timeframe)))
	if m == nil {
		return 30
	}
	value, _ := strconv.Atoi(m[1])
	switch {
	case strings.HasPrefix(m[2], "day"):
		return value
	case strings.HasPrefix(m[2], "week"):
		return value * 7
	case strings.HasPrefix(m[2], "month"):
		return value * 30
	default:
		return value * 365
	}
}
