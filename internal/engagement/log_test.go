package engagement

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/legacyloop/internal/models"
)

// stepClock returns successive instants from ts.
func stepClock(ts ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := ts[min(i, len(ts)-1)]
		i++
		return t
	}
}

func TestLog_Scenario(t *testing.T) {
	l := NewLog()
	for _, a := range []string{"Apple Inc", "Alphabet Inc", "Microsoft Corporation"} {
		_, err := l.Append("Leo", models.ActionAskedAdvisor, a, models.AssetTypeEquities)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, l.Count())
	assert.Equal(t, 3, l.DistinctAssetCount())
	assert.Equal(t, 60, l.Score())
}

func TestLog_Score(t *testing.T) {
	tests := []struct {
		entries int
		want    int
	}{
		{0, 0},
		{1, 20},
		{3, 60},
		{5, 100},
		{10, 100},
		{50, 100},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d entries", tt.entries), func(t *testing.T) {
			l := NewLog()
			for i := 0; i < tt.entries; i++ {
				_, err := l.Append("Leo", "", "Apple Inc", models.AssetTypeEquities)
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, l.Score())
			assert.Equal(t, min(100, 20*l.Count()), l.Score())
		})
	}
}

func TestLog_DistinctAssetCount(t *testing.T) {
	l := NewLog()
	for _, a := range []string{"A", "B", "A", "C", "B"} {
		_, err := l.Append("Leo", "", a, models.AssetTypeBonds)
		require.NoError(t, err)
	}
	assert.Equal(t, 5, l.Count())
	assert.Equal(t, 3, l.DistinctAssetCount())
}

func TestLog_MostRecentFirstIsReverseOfAll(t *testing.T) {
	for n := 0; n < 6; n++ {
		l := NewLog()
		for i := 0; i < n; i++ {
			_, err := l.Append("Leo", "", fmt.Sprintf("asset-%d", i), models.AssetTypeCash)
			require.NoError(t, err)
		}
		want := l.All()
		slices.Reverse(want)
		if diff := cmp.Diff(want, l.MostRecentFirst()); diff != "" {
			t.Errorf("n=%d (-want +got):\n%s", n, diff)
		}
	}
}

func TestLog_AppendDefaultsAndValidation(t *testing.T) {
	l := NewLog(WithClock(stepClock(time.Date(2026, 3, 1, 9, 30, 15, 500, time.UTC))))

	_, err := l.Append("Leo", "", "  ", models.AssetTypeBonds)
	require.ErrorIs(t, err, ErrEmptyAsset)
	assert.Equal(t, 0, l.Count())

	e, err := l.Append("Leo", "", "Apple Inc", models.AssetTypeEquities)
	require.NoError(t, err)
	assert.Equal(t, models.EngagementEntry{
		Timestamp: "2026-03-01 09:30:15",
		Heir:      "Leo",
		Action:    "Asked Advisor",
		Asset:     "Apple Inc",
		AssetType: models.AssetTypeEquities,
	}, e)
}

func TestLog_TimestampsNonDecreasing(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := NewLog(WithClock(stepClock(base, base.Add(-time.Hour), base.Add(2*time.Second))))

	for i := 0; i < 3; i++ {
		_, err := l.Append("Leo", "", "A", models.AssetTypeBonds)
		require.NoError(t, err)
	}
	all := l.All()
	assert.Equal(t, "2026-03-01 12:00:00", all[0].Timestamp)
	assert.Equal(t, "2026-03-01 12:00:00", all[1].Timestamp, "clock went backwards; timestamp clamps")
	assert.Equal(t, "2026-03-01 12:00:02", all[2].Timestamp)
}

func TestLog_AllReturnsCopy(t *testing.T) {
	l := NewLog()
	_, err := l.Append("Leo", "", "A", models.AssetTypeBonds)
	require.NoError(t, err)
	all := l.All()
	all[0].Asset = "tampered"
	assert.Equal(t, "A", l.All()[0].Asset)
}

func TestLog_Metrics(t *testing.T) {
	l := NewLog()
	assert.Equal(t, models.EngagementMetrics{ClientFamily: "Arthur"}, l.Metrics("Arthur"))

	_, err := l.Append("Leo", "", "A", models.AssetTypeBonds)
	require.NoError(t, err)
	assert.Equal(t, models.EngagementMetrics{
		Interactions:   1,
		AssetsExplored: 1,
		Score:          20,
		ClientFamily:   "Arthur",
	}, l.Metrics("Arthur"))
}
