// Package engagement records heir interactions with portfolio assets and
// derives the advisor dashboard metrics from them.
package engagement

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/ajitpratap0/legacyloop/internal/metrics"
	"github.com/ajitpratap0/legacyloop/internal/models"
)

const (
	// pointsPerInteraction and maxScore define the engagement score.
	// The linear formula is a placeholder heuristic, not a calibrated metric.
	pointsPerInteraction = 20
	maxScore             = 100
)

// ErrEmptyAsset is returned by Append when the asset name is blank.
var ErrEmptyAsset = errors.New("engagement: asset name is required")

// Log is an append-only, insertion-ordered history of heir interactions.
// Entries are never modified or removed.
//
// Log is not safe for concurrent use; it is owned by a single session.
type Log struct {
	entries []models.EngagementEntry
	last    time.Time
	now     func() time.Time
}

// Option configures a Log.
type Option func(*Log)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// NewLog returns an empty log.
func NewLog(opts ...Option) *Log {
	l := &Log{now: time.Now}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Append timestamps a new entry and adds it to the end of the log. An empty
// action is recorded as "Asked Advisor".
func (l *Log) Append(heir, action, asset string, assetType models.AssetType) (models.EngagementEntry, error) {
	if strings.TrimSpace(asset) == "" {
		return models.EngagementEntry{}, ErrEmptyAsset
	}
	if action == "" {
		action = models.ActionAskedAdvisor
	}

	// Timestamps never go backwards in append order, even if the wall clock does.
	ts := l.now().Truncate(time.Second)
	if ts.Before(l.last) {
		ts = l.last
	}
	l.last = ts

	e := models.EngagementEntry{
		Timestamp: ts.Format(models.TimestampLayout),
		Heir:      heir,
		Action:    action,
		Asset:     asset,
		AssetType: assetType,
	}
	l.entries = append(l.entries, e)
	metrics.Inc(metrics.EngagementLogged)
	return e, nil
}

// All returns the entries oldest first.
func (l *Log) All() []models.EngagementEntry {
	return slices.Clone(l.entries)
}

// MostRecentFirst returns the entries newest first.
func (l *Log) MostRecentFirst() []models.EngagementEntry {
	out := slices.Clone(l.entries)
	slices.Reverse(out)
	return out
}

// Count returns the number of entries.
func (l *Log) Count() int { return len(l.entries) }

// DistinctAssetCount returns the number of distinct asset names logged.
func (l *Log) DistinctAssetCount() int {
	seen := make(map[string]struct{}, len(l.entries))
	for i := range l.entries {
		seen[l.entries[i].Asset] = struct{}{}
	}
	return len(seen)
}

// Score returns min(100, 20*Count()).
func (l *Log) Score() int {
	return min(maxScore, pointsPerInteraction*l.Count())
}

// Metrics bundles the advisor dashboard figures.
func (l *Log) Metrics(clientFamily string) models.EngagementMetrics {
	return models.EngagementMetrics{
		Interactions:   l.Count(),
		AssetsExplored: l.DistinctAssetCount(),
		Score:          l.Score(),
		ClientFamily:   clientFamily,
	}
}
