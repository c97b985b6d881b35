// Package sample builds standard MIDI files in memory. The converter's
// tests use it for fixtures and the sample command uses it for a demo song.
package sample

import (
	"bytes"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type Builder struct {
	ticksPerBeat uint16
	tracks       []*TrackBuilder
}

type TrackBuilder struct {
	track  smf.Track
	closed bool
}

func New(ticksPerBeat uint16) *Builder {
	return &Builder{ticksPerBeat: ticksPerBeat}
}

// Track starts a new track; tracks are written in creation order.
func (b *Builder) Track() *TrackBuilder {
	tb := &TrackBuilder{}
	b.tracks = append(b.tracks, tb)
	return tb
}

func (tb *TrackBuilder) NoteOn(delta uint32, channel, key, velocity uint8) *TrackBuilder {
	tb.track.Add(delta, midi.NoteOn(channel, key, velocity))
	return tb
}

func (tb *TrackBuilder) NoteOff(delta uint32, channel, key uint8) *TrackBuilder {
	tb.track.Add(delta, midi.NoteOff(channel, key))
	return tb
}

// Note adds a begin after delta ticks and its end length ticks later.
func (tb *TrackBuilder) Note(delta, length uint32, channel, key, velocity uint8) *TrackBuilder {
	return tb.NoteOn(delta, channel, key, velocity).NoteOff(length, channel, key)
}

func (tb *TrackBuilder) Tempo(delta uint32, bpm float64) *TrackBuilder {
	tb.track.Add(delta, smf.MetaTempo(bpm))
	return tb
}

func (tb *TrackBuilder) Name(name string) *TrackBuilder {
	tb.track.Add(0, smf.MetaTrackSequenceName(name))
	return tb
}

// End closes the track delta ticks after its last event.
func (tb *TrackBuilder) End(delta uint32) *TrackBuilder {
	if !tb.closed {
		tb.track.Close(delta)
		tb.closed = true
	}
	return tb
}

func (b *Builder) SMF() (*smf.SMF, error) {
	res := smf.New()
	res.TimeFormat = smf.MetricTicks(b.ticksPerBeat)
	for _, tb := range b.tracks {
		tb.End(0)
		if err := res.Add(tb.track); err != nil {
			return nil, errors.Wrap(err, "adding track")
		}
	}
	return res, nil
}

func (b *Builder) Bytes() ([]byte, error) {
	s, err := b.SMF()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "writing midi")
	}
	return buf.Bytes(), nil
}

// Demo is a short four-voice phrase at 100 BPM touching every default part.
func Demo() *Builder {
	b := New(480)
	b.Track().Name("Conductor").Tempo(0, 100)

	melody := b.Track().Name("Melody")
	for _, key := range []uint8{76, 79, 81, 79, 76, 74, 72, 74} {
		melody.Note(0, 240, 0, key, 100)
	}

	harmony := b.Track().Name("Harmony")
	for _, key := range []uint8{64, 65, 67, 65} {
		harmony.Note(0, 480, 1, key, 70)
	}

	bass := b.Track().Name("Bass")
	for i, key := range []uint8{48, 53, 55, 48} {
		bass.Note(rest(i, 120), 360, 2, key, 90)
	}

	drums := b.Track().Name("Drums")
	for i := 0; i < 8; i++ {
		key := uint8(36)
		if i%2 == 1 {
			key = 38
		}
		drums.Note(rest(i, 120), 120, 9, key, 110)
	}
	return b
}

func rest(i int, ticks uint32) uint32 {
	if i == 0 {
		return 0
	}
	return ticks
}
