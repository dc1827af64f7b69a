package metrics

import (
	"sync/atomic"
	"time"

	"tarot/game"
)

// MatchMetric summarises one played match.
type MatchMetric struct {
	Variant        int // player count
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	DealsPlayed    int
	DealsCancelled int
}

// DealMetric summarises one counted deal.
type DealMetric struct {
	Dealer   int
	Taker    int
	Partner  int
	Contract game.Contract
	Scores   []int
}

// Collector tallies deal outcomes across a run. Safe for concurrent use.
type Collector interface {
	AddDeal(contract game.Contract)
	AddCancelled()
	DealCount() int
	CancelledCount() int
	ContractCount(c game.Contract) int
}

type collector struct {
	deals     atomic.Int64
	cancelled atomic.Int64
	contracts [5]atomic.Int64 // indexed by Contract, 0 unused
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) AddDeal(contract game.Contract) {
	m.deals.Add(1)
	if contract.Valid() {
		m.contracts[contract].Add(1)
	}
}

func (m *collector) AddCancelled() {
	m.cancelled.Add(1)
}

func (m *collector) DealCount() int {
	return int(m.deals.Load())
}

func (m *collector) CancelledCount() int {
	return int(m.cancelled.Load())
}

func (m *collector) ContractCount(c game.Contract) int {
	if !c.Valid() {
		return 0
	}
	return int(m.contracts[c].Load())
}
