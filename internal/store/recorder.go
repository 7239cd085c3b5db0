package store

import (
	"context"
	"log"

	"github.com/rahul/bazari/internal/provider"
)

// RecordingGenerator wraps a text generator and writes every
// successful exchange through to the history store. Bookkeeping
// failures are logged, never surfaced: a broken audit trail must not
// block content generation.
type RecordingGenerator struct {
	Inner   provider.TextGenerator
	History *HistoryStore
	Module  string
}

func NewRecordingGenerator(inner provider.TextGenerator, history *HistoryStore, module string) *RecordingGenerator {
	return &RecordingGenerator{Inner: inner, History: history, Module: module}
}

func (r *RecordingGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	out, err := r.Inner.Generate(ctx, system, user)
	if err != nil {
		return "", err
	}
	if r.History != nil {
		if recErr := r.History.RecordGeneration(r.Module, "generate", user, out); recErr != nil {
			log.Printf("Failed to record generation for %s: %v", r.Module, recErr)
		}
	}
	return out, nil
}
