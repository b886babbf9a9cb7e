package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ducthang1752k4-ctrl/lingua/internal/store"
)

// progressDocument is the serialized form of the skill profile.
type progressDocument struct {
	Version int            `json:"version"`
	Axes    []SkillAxis    `json:"axes"`
	History []HistoryPoint `json:"history"`
}

const progressDocVersion = 1

// loadProfile reads the profile record. Returns (nil, nil, nil) when no
// record exists; callers seed baselines in that case and on decode failure.
func loadProfile(ctx context.Context, repo store.RecordRepo) ([]SkillAxis, []HistoryPoint, error) {
	if repo == nil {
		return nil, nil, nil
	}
	raw, err := repo.Load(ctx, store.KeyProgress)
	if err != nil {
		return nil, nil, err
	}
	if raw == nil {
		return nil, nil, nil
	}

	var doc progressDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode progress: %w", err)
	}
	return doc.Axes, doc.History, nil
}

func saveProfile(ctx context.Context, repo store.RecordRepo, axes []SkillAxis, history []HistoryPoint) error {
	raw, err := json.Marshal(progressDocument{
		Version: progressDocVersion,
		Axes:    axes,
		History: history,
	})
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	return repo.Save(ctx, store.KeyProgress, raw)
}

// defaultAxes is the baseline competency profile for a new learner.
func defaultAxes() []SkillAxis {
	return []SkillAxis{
		{Axis: "Pronunciation", Value: 60},
		{Axis: "Intonation", Value: 50},
		{Axis: "Fluency", Value: 55},
		{Axis: "Vocabulary", Value: 65},
		{Axis: "Listening", Value: 70},
	}
}

// defaultHistory seeds synthetic points so the progress chart has a
// visible trend on first load.
func defaultHistory() []HistoryPoint {
	return []HistoryPoint{
		{Label: "Mon", Score: 65},
		{Label: "Tue", Score: 68},
		{Label: "Wed", Score: 62},
		{Label: "Thu", Score: 70},
		{Label: "Fri", Score: 75},
	}
}
