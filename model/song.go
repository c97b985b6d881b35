package model

import "time"

const RestSymbol = "NOTE_REST"

type Song struct {
	Name     string
	TempoBPM int
	Duration time.Duration
	Parts    []Part
}

func (s Song) NoteCount() int {
	var total int
	for _, p := range s.Parts {
		total += len(p.Notes)
	}
	return total
}

// Record is one row of a part's note table.
type Record struct {
	Symbol     string
	Pitch      uint8
	DurationMs int64
	DelayMs    int64
	StartMs    int64
}

// Sentinel marks the end of every part table.
var Sentinel = Record{Symbol: RestSymbol}

func (r Record) IsSentinel() bool {
	return r.Symbol == RestSymbol && r.DurationMs == 0 && r.DelayMs == 0
}

// Descriptor is the song-level data written after the part tables.
type Descriptor struct {
	Name      string
	SafeName  string
	UUID      string
	ID        uint8
	TempoBPM  int
	PartCount int
}
