package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Config     string
	Duration   time.Duration
	Nodes      int
	QNodes     int // quiescence nodes
	TTHits     int
	Cutoffs    int
	Depth      int // deepest completed depth
	Score      float64
	TimedOut   bool
	RandomMove bool
}

type MoveMetric struct {
	Ply  int
	Side string
	SearchMetric
}

type GameMetric struct {
	Winner        string
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	TotalPlies    int
	GoatsCaptured int
	PlyCapReached bool
}

type Collector interface {
	Start(config string)
	AddNode()
	AddQuiescenceNode()
	AddTTHit()
	AddCutoff()
	SetDepth(depth int, score float64)
	SetTimedOut()
	SetRandomMove()
	Complete() SearchMetric
}

type collector struct {
	config     string
	startTime  time.Time
	nodes      atomic.Int64
	qnodes     atomic.Int64
	ttHits     atomic.Int64
	cutoffs    atomic.Int64
	depth      int
	score      float64
	timedOut   atomic.Bool
	randomMove atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(config string) {
	m.config = config
	m.startTime = time.Now()
	m.nodes.Store(0)
	m.qnodes.Store(0)
	m.ttHits.Store(0)
	m.cutoffs.Store(0)
	m.depth = 0
	m.score = 0
	m.timedOut.Store(false)
	m.randomMove.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddQuiescenceNode() {
	m.qnodes.Add(1)
}

func (m *collector) AddTTHit() {
	m.ttHits.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) SetDepth(depth int, score float64) {
	m.depth = depth
	m.score = score
}

func (m *collector) SetTimedOut() {
	m.timedOut.Store(true)
}

func (m *collector) SetRandomMove() {
	m.randomMove.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Config:     m.config,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		QNodes:     int(m.qnodes.Load()),
		TTHits:     int(m.ttHits.Load()),
		Cutoffs:    int(m.cutoffs.Load()),
		Depth:      m.depth,
		Score:      m.score,
		TimedOut:   m.timedOut.Load(),
		RandomMove: m.randomMove.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(config string)               {}
func (m *dummyCollector) AddNode()                          {}
func (m *dummyCollector) AddQuiescenceNode()                {}
func (m *dummyCollector) AddTTHit()                         {}
func (m *dummyCollector) AddCutoff()                        {}
func (m *dummyCollector) SetDepth(depth int, score float64) {}
func (m *dummyCollector) SetTimedOut()                      {}
func (m *dummyCollector) SetRandomMove()                    {}
func (m *dummyCollector) Complete() SearchMetric            { return SearchMetric{} }
