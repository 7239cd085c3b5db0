package store

import (
	"database/sql"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// HistoryStore keeps an audit trail of generations and campaign
// lifecycle events in sqlite.
type HistoryStore struct {
	DB *sql.DB
}

func NewHistoryStore(dbPath string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Create tables if not exist
	queries := []string{
		`CREATE TABLE IF NOT EXISTS generations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			module TEXT,
			operation TEXT,
			prompt TEXT,
			response TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS campaign_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			campaign_id TEXT,
			status TEXT,
			detail TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
	}
	for _, q := range queries {
		_, err = db.Exec(q)
		if err != nil {
			return nil, err
		}
	}

	return &HistoryStore{DB: db}, nil
}

func (h *HistoryStore) Close() error {
	return h.DB.Close()
}

// RecordGeneration stores one prompt/response exchange.
func (h *HistoryStore) RecordGeneration(module, operation, prompt, response string) error {
	query := `INSERT INTO generations (module, operation, prompt, response) VALUES (?, ?, ?, ?)`
	_, err := h.DB.Exec(query, module, operation, prompt, response)
	return err
}

// RecordCampaignEvent satisfies campaign.EventSink.
func (h *HistoryStore) RecordCampaignEvent(campaignID string, status string, detail string) error {
	query := `INSERT INTO campaign_events (campaign_id, status, detail) VALUES (?, ?, ?)`
	_, err := h.DB.Exec(query, campaignID, status, detail)
	return err
}

// Generation is one stored prompt/response pair.
type Generation struct {
	ID        int       `json:"id"`
	Module    string    `json:"module"`
	Operation string    `json:"operation"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// RecentGenerations returns the newest generations first.
func (h *HistoryStore) RecentGenerations(limit int) ([]Generation, error) {
	query := `SELECT id, module, operation, prompt, response, created_at
		FROM generations ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := h.DB.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Generation
	for rows.Next() {
		var g Generation
		if err := rows.Scan(&g.ID, &g.Module, &g.Operation, &g.Prompt, &g.Response, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// CampaignEvent is one stored lifecycle transition.
type CampaignEvent struct {
	ID         int       `json:"id"`
	CampaignID string    `json:"campaign_id"`
	Status     string    `json:"status"`
	Detail     string    `json:"detail"`
	CreatedAt  time.Time `json:"created_at"`
}

// CampaignHistory returns the lifecycle trail for one campaign,
// oldest first.
func (h *HistoryStore) CampaignHistory(campaignID string) ([]CampaignEvent, error) {
	query := `SELECT id, campaign_id, status, detail, created_at
		FROM campaign_events WHERE campaign_id = ? ORDER BY id ASC`
	rows, err := h.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CampaignEvent
	for rows.Next() {
		var e CampaignEvent
		if err := rows.Scan(&e.ID, &e.CampaignID, &e.Status, &e.Detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
