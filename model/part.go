package model

import "strings"

type PartKind uint8

const (
	Melody PartKind = iota
	Harmony
	Bass
	Rhythm
	Percussion
	Effects
)

// AllPartKinds is the fixed slot order, Melody first.
var AllPartKinds = []PartKind{Melody, Harmony, Bass, Rhythm, Percussion, Effects}

var partNames = [...]string{"Melody", "Harmony", "Bass", "Rhythm", "Percussion", "Effects"}

func (k PartKind) String() string {
	if int(k) < len(partNames) {
		return partNames[k]
	}
	return "Unknown"
}

func (k PartKind) Lower() string {
	return strings.ToLower(k.String())
}

// Part is an ordered bucket of notes owned by a Song.
type Part struct {
	ID    int
	Kind  PartKind
	Notes []NoteEvent
}

func (p Part) Name() string {
	return p.Kind.String()
}
