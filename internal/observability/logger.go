package observability

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// EventType defines the category of the log event.
type EventType string

const (
	EventTypePlan        EventType = "plan"
	EventTypeStep        EventType = "step"
	EventTypeGeneration  EventType = "generation"
	EventTypeCampaign    EventType = "campaign"
	EventTypeDeploy      EventType = "deploy"
	EventTypePolicyCheck EventType = "policy_check"
	EventTypeHeartbeat   EventType = "heartbeat"
)

// Event represents a structured log entry.
type Event struct {
	Type       EventType `json:"type"`
	GoalID     string    `json:"goal_id,omitempty"`
	CampaignID string    `json:"campaign_id,omitempty"`
	Data       any       `json:"data"`
	Timestamp  time.Time `json:"timestamp"`
}

// Logger handles structured logging. Generation events are also
// appended to a size-capped jsonl file for offline review.
type Logger struct {
	genLogPath string
	maxSize    int64
}

func NewLogger() *Logger {
	return &Logger{
		genLogPath: filepath.Join("logs", "generations.jsonl"),
		maxSize:    10 * 1024 * 1024, // 10MB
	}
}

// Log emits a structured JSON event to stdout. Safe to call on a nil
// logger so callers do not have to guard every emit.
func (l *Logger) Log(evt Event) {
	if l == nil {
		return
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}
	data, err := json.Marshal(evt)
	if err != nil {
		fmt.Printf("{\"error\": \"failed to marshal event: %v\"}\n", err)
		return
	}
	fmt.Println(string(data))

	if evt.Type == EventTypeGeneration {
		l.writeToFile(data)
	}
}

func (l *Logger) writeToFile(data []byte) {
	if err := os.MkdirAll(filepath.Dir(l.genLogPath), 0755); err != nil {
		log.Printf("failed to create log directory: %v", err)
		return
	}

	// Check size before writing
	info, err := os.Stat(l.genLogPath)
	if err == nil && info.Size() > l.maxSize {
		l.rotateLogs()
	}

	f, err := os.OpenFile(l.genLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("failed to open log file: %v", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		log.Printf("failed to write to log file: %v", err)
	}
}

func (l *Logger) rotateLogs() {
	// Simple rotation: keep one .old file
	oldPath := l.genLogPath + ".old"
	_ = os.Remove(oldPath)
	_ = os.Rename(l.genLogPath, oldPath)
}

// Helper methods for common events

func (l *Logger) LogPlan(goalID string, subtasks int) {
	l.Log(Event{
		Type:   EventTypePlan,
		GoalID: goalID,
		Data:   map[string]any{"subtasks": subtasks},
	})
}

func (l *Logger) LogStep(goalID, subtask, status string) {
	l.Log(Event{
		Type:   EventTypeStep,
		GoalID: goalID,
		Data: map[string]string{
			"subtask": subtask,
			"status":  status,
		},
	})
}

func (l *Logger) LogGeneration(goalID, module, prompt, response string) {
	l.Log(Event{
		Type:   EventTypeGeneration,
		GoalID: goalID,
		Data: map[string]string{
			"module":   module,
			"prompt":   prompt,
			"response": response,
		},
	})
}

func (l *Logger) LogCampaign(campaignID, status, detail string) {
	l.Log(Event{
		Type:       EventTypeCampaign,
		CampaignID: campaignID,
		Data: map[string]string{
			"status": status,
			"detail": detail,
		},
	})
}

func (l *Logger) LogDeploy(campaignID string, published, failed int) {
	l.Log(Event{
		Type:       EventTypeDeploy,
		CampaignID: campaignID,
		Data: map[string]any{
			"channels_published": published,
			"channels_failed":    failed,
		},
	})
}

func (l *Logger) LogPolicyCheck(campaignID, effect, reason string) {
	l.Log(Event{
		Type:       EventTypePolicyCheck,
		CampaignID: campaignID,
		Data: map[string]string{
			"effect": effect,
			"reason": reason,
		},
	})
}

func (l *Logger) LogHeartbeat() {
	l.Log(Event{
		Type: EventTypeHeartbeat,
		Data: map[string]string{"status": "alive"},
	})
}
