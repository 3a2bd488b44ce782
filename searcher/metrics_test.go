package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollectorTalliesEpisodesAndPlayoutsIndependently(t *testing.T) {
	c := NewCollector()
	c.Start()
	c.AddEpisode()
	c.AddEpisode()
	c.AddFullPlayout()

	m := c.Complete()
	require.Equal(t, int64(2), m.Episodes)
	require.Equal(t, int64(1), m.FullPlayouts)
	require.False(t, m.TreeReused)
}

func TestCollectorSetTreeResetInvertsIntoTreeReused(t *testing.T) {
	c := NewCollector()
	c.Start()
	c.SetTreeReset(true)
	require.False(t, c.Complete().TreeReused)

	c.SetTreeReset(false)
	require.True(t, c.Complete().TreeReused)
}

func TestCollectorDurationGrowsAfterStart(t *testing.T) {
	c := NewCollector()
	c.Start()
	time.Sleep(time.Millisecond)

	m := c.Complete()
	require.Greater(t, m.Duration, time.Duration(0))
}

func TestDummyCollectorReportsAZeroMetricRegardlessOfCalls(t *testing.T) {
	c := NewDummyCollector()
	c.Start()
	c.AddEpisode()
	c.AddFullPlayout()
	c.SetTreeReset(false)

	require.Equal(t, SearchMetric{}, c.Complete())
}
