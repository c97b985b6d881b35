package model

import "time"

// Pitch 0 is reserved for rests and is never a sounding note.
const RestPitch = 0

const PercussionChannel = 9

// NoteEvent is one closed note: a note-begin matched with its note-end.
type NoteEvent struct {
	Pitch    uint8
	Velocity uint8
	Channel  uint8
	Start    time.Duration
	End      time.Duration

	// index of the source track, kept for diagnostics only
	Track int
}

func (n NoteEvent) Duration() time.Duration {
	return n.End - n.Start
}

// TickNote is a closed note still expressed in track-local ticks.
type TickNote struct {
	Pitch     uint8
	Velocity  uint8
	Channel   uint8
	StartTick int64
	EndTick   int64
	Track     int
}
