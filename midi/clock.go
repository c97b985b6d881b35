package midi

import (
	"sort"
	"time"

	"github.com/jsphweid/orchestra/constants"
)

// Clock converts an absolute tick position into wall-clock time.
type Clock interface {
	TimeAt(tick int64) time.Duration
}

type TempoChange struct {
	Tick          int64
	MicrosPerBeat uint32
}

// FixedClock uses one tempo for the whole timeline.
type FixedClock struct {
	TicksPerBeat  uint16
	MicrosPerBeat uint32
}

func NewFixedClock(ticksPerBeat uint16) FixedClock {
	return FixedClock{TicksPerBeat: ticksPerBeat, MicrosPerBeat: constants.DefaultMicrosPerBeat}
}

func (c FixedClock) TimeAt(tick int64) time.Duration {
	return ticksToDuration(tick, c.MicrosPerBeat, c.TicksPerBeat)
}

// TempoMap integrates tick deltas piecewise, honoring every tempo change
// at its own position.
type TempoMap struct {
	ticksPerBeat uint16
	changes      []TempoChange
	// elapsed time at each change
	offsets []time.Duration
}

// NewTempoMap builds a map from changes in encounter order. When several
// changes share a tick the later one wins.
func NewTempoMap(ticksPerBeat uint16, changes []TempoChange) *TempoMap {
	sorted := make([]TempoChange, len(changes))
	copy(sorted, changes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Tick < sorted[j].Tick
	})

	m := &TempoMap{ticksPerBeat: ticksPerBeat}
	m.changes = append(m.changes, TempoChange{Tick: 0, MicrosPerBeat: constants.DefaultMicrosPerBeat})
	for _, c := range sorted {
		if c.MicrosPerBeat == 0 {
			continue
		}
		last := &m.changes[len(m.changes)-1]
		if last.Tick == c.Tick {
			last.MicrosPerBeat = c.MicrosPerBeat
			continue
		}
		m.changes = append(m.changes, c)
	}

	m.offsets = make([]time.Duration, len(m.changes))
	for i := 1; i < len(m.changes); i++ {
		prev := m.changes[i-1]
		m.offsets[i] = m.offsets[i-1] + ticksToDuration(m.changes[i].Tick-prev.Tick, prev.MicrosPerBeat, ticksPerBeat)
	}
	return m
}

func (m *TempoMap) TimeAt(tick int64) time.Duration {
	i := sort.Search(len(m.changes), func(i int) bool {
		return m.changes[i].Tick > tick
	}) - 1
	if i < 0 {
		i = 0
	}
	c := m.changes[i]
	return m.offsets[i] + ticksToDuration(tick-c.Tick, c.MicrosPerBeat, m.ticksPerBeat)
}

func ticksToDuration(ticks int64, microsPerBeat uint32, ticksPerBeat uint16) time.Duration {
	if ticksPerBeat == 0 {
		return 0
	}
	micros := ticks * int64(microsPerBeat) / int64(ticksPerBeat)
	return time.Duration(micros) * time.Microsecond
}

// BPM converts a tempo in microseconds per beat to whole beats per minute.
func BPM(microsPerBeat uint32) int {
	if microsPerBeat == 0 {
		return constants.DefaultTempoBPM
	}
	return int(60000000 / microsPerBeat)
}
