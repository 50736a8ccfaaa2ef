package allocation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmesh/backend/internal/domain/shared/strategy"
)

func completedAfter(listed time.Time, hours float64) strategy.OrderOutcome {
	done := listed.Add(time.Duration(hours * float64(time.Hour)))
	return strategy.OrderOutcome{Status: strategy.OutcomeCompleted, ListedAt: listed, CompletedAt: &done}
}

func TestChannelWeight(t *testing.T) {
	listed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		history []strategy.OrderOutcome
		want    float64
	}{
		{
			name: "no history",
			want: 1.0,
		},
		{
			name:    "only pending orders use defaults",
			history: []strategy.OrderOutcome{{Status: strategy.OutcomePending, ListedAt: listed}},
			want:    0.5*0.7 + 0.5*0.3,
		},
		{
			name:    "all completed at the default speed",
			history: []strategy.OrderOutcome{completedAfter(listed, 168), completedAfter(listed, 168)},
			want:    0.7 + 0.15,
		},
		{
			name:    "instant sales",
			history: []strategy.OrderOutcome{completedAfter(listed, 0)},
			want:    1.0,
		},
		{
			name: "all cancelled is floored",
			history: []strategy.OrderOutcome{
				{Status: strategy.OutcomeCancelled, ListedAt: listed},
				{Status: strategy.OutcomeCancelled, ListedAt: listed},
			},
			want: 0.15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ChannelWeight(tt.history)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestChannelWeight_CompletionBeforeListing(t *testing.T) {
	listed := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	_, err := ChannelWeight([]strategy.OrderOutcome{completedAfter(listed, -5)})
	assert.True(t, errors.Is(err, strategy.ErrAllocationFailed))
}

func TestChannelWeight_MinimumWeight(t *testing.T) {
	listed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	history := []strategy.OrderOutcome{completedAfter(listed, 1e5)}
	for i := 0; i < 50; i++ {
		history = append(history, strategy.OrderOutcome{Status: strategy.OutcomeCancelled, ListedAt: listed})
	}
	got, err := ChannelWeight(history)
	require.NoError(t, err)
	assert.Equal(t, MinChannelWeight, got)
}

func TestSplitByWeight(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		channels []string
		weights  map[string]float64
		want     map[string]int
	}{
		{
			name:     "proportional split",
			total:    10,
			channels: []string{"a", "b"},
			weights:  map[string]float64{"a": 0.8, "b": 0.2},
			want:     map[string]int{"a": 8, "b": 2},
		},
		{
			name:     "leftover goes to first channel on equal weights",
			total:    7,
			channels: []string{"a", "b", "c"},
			weights:  map[string]float64{"a": 1, "b": 1, "c": 1},
			want:     map[string]int{"a": 3, "b": 2, "c": 2},
		},
		{
			name:     "leftover goes to highest weight",
			total:    7,
			channels: []string{"a", "b", "c"},
			weights:  map[string]float64{"a": 1, "b": 1, "c": 1.01},
			want:     map[string]int{"a": 2, "b": 2, "c": 3},
		},
		{
			name:     "zero stock",
			total:    0,
			channels: []string{"a", "b"},
			weights:  map[string]float64{"a": 0.5, "b": 0.5},
			want:     map[string]int{"a": 0, "b": 0},
		},
		{
			name:     "fewer units than channels go to top weights",
			total:    2,
			channels: []string{"a", "b", "c"},
			weights:  map[string]float64{"a": 0.2, "b": 0.9, "c": 0.9},
			want:     map[string]int{"a": 0, "b": 1, "c": 1},
		},
		{
			name:     "minimum share pushes base over total",
			total:    3,
			channels: []string{"a", "b", "c"},
			weights:  map[string]float64{"a": 10, "b": 0.1, "c": 0.1},
			want:     map[string]int{"a": 1, "b": 1, "c": 1},
		},
		{
			name:     "minimum share reduces the largest base",
			total:    4,
			channels: []string{"a", "b", "c"},
			weights:  map[string]float64{"a": 10, "b": 0.1, "c": 0.1},
			want:     map[string]int{"a": 2, "b": 1, "c": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitByWeight(tt.total, tt.channels, tt.weights)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitByWeight_SumInvariant(t *testing.T) {
	channelSets := [][]string{
		{"a"},
		{"a", "b"},
		{"a", "b", "c"},
		{"a", "b", "c", "d", "e"},
	}
	weightSets := []map[string]float64{
		{"a": 1, "b": 1, "c": 1, "d": 1, "e": 1},
		{"a": 0.1, "b": 0.85, "c": 0.33, "d": 1, "e": 0.5},
		{"a": 0.999, "b": 0.1, "c": 0.1, "d": 0.1, "e": 0.1},
	}

	for _, channels := range channelSets {
		for _, weights := range weightSets {
			for total := 0; total <= 257; total++ {
				got, err := SplitByWeight(total, channels, weights)
				require.NoError(t, err)
				sum := 0
				for _, ch := range channels {
					assert.GreaterOrEqual(t, got[ch], 0)
					sum += got[ch]
				}
				require.Equal(t, total, sum, "channels=%v total=%d", channels, total)
			}
		}
	}
}

func TestSplitByWeight_Errors(t *testing.T) {
	_, err := SplitByWeight(5, nil, nil)
	assert.True(t, errors.Is(err, strategy.ErrAllocationFailed))

	_, err = SplitByWeight(5, []string{"a"}, map[string]float64{"a": 0})
	assert.True(t, errors.Is(err, strategy.ErrAllocationFailed))

	_, err = SplitByWeight(5, []string{"a", "a"}, map[string]float64{"a": 1})
	assert.True(t, errors.Is(err, strategy.ErrAllocationFailed))
}

func TestPerformanceWeightedStrategy_Allocate(t *testing.T) {
	s := NewPerformanceWeightedStrategy()
	assert.Equal(t, PerformanceWeighted, s.Name())
	assert.NotEmpty(t, s.Description())

	listed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	res, err := s.Allocate(context.Background(), strategy.StockAllocationContext{
		TotalStock: 20,
		Channels:   []string{"ebay", "shop"},
		History: map[string][]strategy.OrderOutcome{
			"shop": {
				{Status: strategy.OutcomeCancelled, ListedAt: listed},
				{Status: strategy.OutcomeCancelled, ListedAt: listed},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 20, res.Sum())
	assert.InDelta(t, 1.0, res.Weights["ebay"], 1e-9)
	assert.InDelta(t, 0.15, res.Weights["shop"], 1e-9)
	assert.Greater(t, res.Allocations["ebay"], res.Allocations["shop"])
	assert.False(t, res.Fallback)
}

func TestPerformanceWeightedStrategy_RejectsBadHistory(t *testing.T) {
	listed := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	_, err := NewPerformanceWeightedStrategy().Allocate(context.Background(), strategy.StockAllocationContext{
		TotalStock: 5,
		Channels:   []string{"ebay"},
		History:    map[string][]strategy.OrderOutcome{"ebay": {completedAfter(listed, -1)}},
	})
	assert.True(t, errors.Is(err, strategy.ErrAllocationFailed))
}
