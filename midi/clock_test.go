package midi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClockDefaultsTo120BPM(t *testing.T) {
	c := NewFixedClock(480)

	assert := assert.New(t)
	assert.Equal(time.Duration(0), c.TimeAt(0))
	assert.Equal(500*time.Millisecond, c.TimeAt(480))
	assert.Equal(2*time.Second, c.TimeAt(1920))
}

func TestTempoMapWithoutChangesMatchesFixedClock(t *testing.T) {
	fixed := NewFixedClock(96)
	m := NewTempoMap(96, nil)
	for _, tick := range []int64{0, 1, 95, 96, 1000, 123457} {
		assert.Equal(t, fixed.TimeAt(tick), m.TimeAt(tick))
	}
}

func TestTempoMapIntegratesPiecewise(t *testing.T) {
	// one beat at 120 BPM, then 60 BPM
	m := NewTempoMap(480, []TempoChange{{Tick: 480, MicrosPerBeat: 1000000}})

	assert := assert.New(t)
	assert.Equal(250*time.Millisecond, m.TimeAt(240))
	assert.Equal(500*time.Millisecond, m.TimeAt(480))
	assert.Equal(1500*time.Millisecond, m.TimeAt(960))
}

func TestTempoMapSortsChangesAndLastWinsOnSameTick(t *testing.T) {
	m := NewTempoMap(480, []TempoChange{
		{Tick: 960, MicrosPerBeat: 250000},
		{Tick: 0, MicrosPerBeat: 1000000},
		{Tick: 0, MicrosPerBeat: 2000000},
	})

	assert := assert.New(t)
	assert.Equal(2*time.Second, m.TimeAt(480))
	assert.Equal(4*time.Second, m.TimeAt(960))
	assert.Equal(4250*time.Millisecond, m.TimeAt(1440))
}

func TestBPM(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(120, BPM(500000))
	assert.Equal(60, BPM(1000000))
	assert.Equal(93, BPM(641025))
	assert.Equal(120, BPM(0))
}
