package profile

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ducthang1752k4-ctrl/lingua/internal/store"
)

const (
	// Alpha is the EMA smoothing constant. Higher = faster adaptation;
	// 0.3 bounds any single update to 30% of the gap to the raw score.
	Alpha = 0.3

	// HistoryCap is the number of retained history points.
	HistoryCap = 7
)

// SkillAxis is one competency dimension with its smoothed value.
type SkillAxis struct {
	Axis  string `json:"axis"`
	Value int    `json:"value"` // always in [0,100]
}

// HistoryPoint is one raw ingested score, kept for the progress chart.
type HistoryPoint struct {
	Label string `json:"label"` // short weekday at time of ingestion
	Score int    `json:"score"`
}

// Tracker turns noisy per-exercise scores into a stable multi-axis
// competency profile. The axis set is fixed at construction; scores for
// unknown axes still land in the history.
type Tracker struct {
	axes    []SkillAxis
	history []HistoryPoint
	repo    store.RecordRepo
	log     *zap.Logger
}

// NewTracker creates a tracker, loading the profile from the record store.
// An absent or unreadable record seeds baseline axes and synthetic history.
func NewTracker(ctx context.Context, repo store.RecordRepo, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	t := &Tracker{repo: repo, log: log}

	axes, history, err := loadProfile(ctx, repo)
	if err != nil {
		log.Warn("progress record unreadable, seeding baseline profile", zap.Error(err))
	}

	if axes == nil {
		axes = defaultAxes()
	}
	if history == nil {
		history = defaultHistory()
	}
	t.axes = axes
	t.history = history
	return t
}

// IngestScore smooths a raw performance score into the named axis and
// appends the raw value to the history. The axis match is case-insensitive;
// an unmatched axis leaves the profile untouched but still records history,
// because upstream scores come from an AI response that is not
// schema-guaranteed. Out-of-range scores are accepted and damped, not
// rejected. Returns only persistence errors.
func (t *Tracker) IngestScore(ctx context.Context, axis string, raw int, now time.Time) error {
	matched := false
	for i := range t.axes {
		if strings.EqualFold(t.axes[i].Axis, axis) {
			old := t.axes[i].Value
			smoothed := int(math.Round(float64(old) + Alpha*float64(raw-old)))
			t.axes[i].Value = clamp(smoothed, 0, 100)
			matched = true
			t.log.Debug("skill updated",
				zap.String("axis", t.axes[i].Axis),
				zap.Int("raw", raw),
				zap.Int("from", old),
				zap.Int("to", t.axes[i].Value),
			)
			break
		}
	}
	if !matched {
		t.log.Debug("score for unknown axis", zap.String("axis", axis), zap.Int("raw", raw))
	}

	t.history = append(t.history, HistoryPoint{
		Label: now.Format("Mon"),
		Score: raw,
	})
	if len(t.history) > HistoryCap {
		t.history = t.history[len(t.history)-HistoryCap:]
	}

	return t.persist(ctx)
}

// OverallLevel maps the mean axis value to a coarse proficiency label.
func (t *Tracker) OverallLevel() string {
	if len(t.axes) == 0 {
		return "Beginner"
	}
	sum := 0
	for _, a := range t.axes {
		sum += a.Value
	}
	avg := float64(sum) / float64(len(t.axes))

	switch {
	case avg > 85:
		return "Advanced"
	case avg > 70:
		return "Upper Intermediate"
	case avg > 50:
		return "Intermediate"
	default:
		return "Beginner"
	}
}

// Axes returns a copy of the current axis values.
func (t *Tracker) Axes() []SkillAxis {
	out := make([]SkillAxis, len(t.axes))
	copy(out, t.axes)
	return out
}

// History returns a copy of the bounded raw-score history, oldest first.
func (t *Tracker) History() []HistoryPoint {
	out := make([]HistoryPoint, len(t.history))
	copy(out, t.history)
	return out
}

func (t *Tracker) persist(ctx context.Context) error {
	if t.repo == nil {
		return nil
	}
	if err := saveProfile(ctx, t.repo, t.axes, t.history); err != nil {
		t.log.Warn("persist progress", zap.Error(err))
		return err
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
