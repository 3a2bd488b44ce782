package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetric reports how one Simulate call spent its budget, mirroring
// the move-level metrics the experiments harness used to log per decision.
type SearchMetric struct {
	StartTime    time.Time
	Duration     time.Duration
	Episodes     int64
	FullPlayouts int64
	TreeReused   bool
}

type Collector interface {
	Start()
	AddFullPlayout()
	AddEpisode()
	SetTreeReset(reset bool)
	Complete() SearchMetric
}

type collector struct {
	startTime    time.Time
	episodes     atomic.Int64
	fullPlayouts atomic.Int64
	treeReused   atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start()          { c.startTime = time.Now() }
func (c *collector) AddFullPlayout() { c.fullPlayouts.Add(1) }
func (c *collector) AddEpisode()     { c.episodes.Add(1) }
func (c *collector) SetTreeReset(reset bool) {
	c.treeReused.Store(!reset)
}

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		StartTime:    c.startTime,
		Duration:     time.Since(c.startTime),
		Episodes:     c.episodes.Load(),
		FullPlayouts: c.fullPlayouts.Load(),
		TreeReused:   c.treeReused.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector { return &dummyCollector{} }

func (d *dummyCollector) Start()                     {}
func (d *dummyCollector) AddFullPlayout()            {}
func (d *dummyCollector) AddEpisode()                {}
func (d *dummyCollector) SetTreeReset(reset bool)    {}
func (d *dummyCollector) Complete() SearchMetric     { return SearchMetric{} }
