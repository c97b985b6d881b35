// Package extract rebuilds closed notes with absolute timing from the
// delta-timed messages of every track in a standard MIDI file.
//
// Extraction runs in two phases. Phase one walks a single track and works
// only in that track's ticks, so tracks can be processed in any order or in
// parallel. Phase two merges the per-track results in track order and puts
// every note on one shared clock.
package extract

import (
	"math"
	"time"

	"github.com/jsphweid/orchestra/constants"
	"github.com/jsphweid/orchestra/midi"
	"github.com/jsphweid/orchestra/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2/smf"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	// constants.TimingFixed or constants.TimingTempoMap
	Timing string
	// tracks processed concurrently; <= 1 means sequential
	Workers int
}

func DefaultOptions() Options {
	return Options{Timing: constants.TimingFixed, Workers: 1}
}

type Result struct {
	Notes         []model.NoteEvent
	TempoBPM      int
	Duration      time.Duration
	Tracks        int
	TicksPerBeat  uint16
	Unmatched     int
	UnclosedNotes int
}

// TrackResult is the phase one output for one track, still in ticks.
type TrackResult struct {
	Index    int
	Name     string
	Notes    []model.TickNote
	Tempos   []midi.TempoChange
	LastTick int64
	// note-ends without a pending begin
	Unmatched int
	// begins overwritten or never closed
	Unclosed int
}

type pendingKey struct {
	pitch   uint8
	channel uint8
}

type pendingNote struct {
	tick     int64
	velocity uint8
}

// ExtractTrack is phase one. Notes come out in the order they are closed.
func ExtractTrack(index int, track smf.Track) TrackResult {
	res := TrackResult{Index: index}
	pending := make(map[pendingKey]pendingNote)

	var absTicks int64
	for _, event := range track {
		absTicks += int64(event.Delta)
		var channel, key, velocity uint8
		var bpm float64
		var name string
		switch {
		case event.Message.GetNoteStart(&channel, &key, &velocity):
			k := pendingKey{pitch: key, channel: channel}
			if _, ok := pending[k]; ok {
				res.Unclosed++
			}
			pending[k] = pendingNote{tick: absTicks, velocity: velocity}
		case event.Message.GetNoteEnd(&channel, &key):
			k := pendingKey{pitch: key, channel: channel}
			p, ok := pending[k]
			if !ok {
				res.Unmatched++
				continue
			}
			delete(pending, k)
			res.Notes = append(res.Notes, model.TickNote{
				Pitch:     key,
				Velocity:  p.velocity,
				Channel:   channel,
				StartTick: p.tick,
				EndTick:   absTicks,
				Track:     index,
			})
		case event.Message.GetMetaTempo(&bpm):
			if bpm <= 0 {
				continue
			}
			res.Tempos = append(res.Tempos, midi.TempoChange{
				Tick:          absTicks,
				MicrosPerBeat: uint32(math.Round(60000000 / bpm)),
			})
		case event.Message.GetMetaTrackName(&name):
			res.Name = name
		}
	}
	res.LastTick = absTicks
	res.Unclosed += len(pending)
	return res
}

// Extract runs both phases over every track of s.
func Extract(s *smf.SMF, opts Options) (*Result, error) {
	ticksPerBeat, err := midi.TicksPerBeat(s)
	if err != nil {
		return nil, err
	}

	results := make([]TrackResult, len(s.Tracks))
	if opts.Workers <= 1 {
		for i, track := range s.Tracks {
			results[i] = ExtractTrack(i, track)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for i, track := range s.Tracks {
			i, track := i, track
			g.Go(func() error {
				results[i] = ExtractTrack(i, track)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	return Merge(ticksPerBeat, results, opts.Timing)
}

// Merge is phase two. The order of results does not matter; they are put
// back into track order before anything is emitted.
func Merge(ticksPerBeat uint16, results []TrackResult, timing string) (*Result, error) {
	ordered := make([]TrackResult, len(results))
	copy(ordered, results)
	sortByIndex(ordered)

	var tempos []midi.TempoChange
	for _, tr := range ordered {
		tempos = append(tempos, tr.Tempos...)
	}

	var clock midi.Clock
	switch timing {
	case constants.TimingFixed, "":
		clock = midi.NewFixedClock(ticksPerBeat)
	case constants.TimingTempoMap:
		clock = midi.NewTempoMap(ticksPerBeat, tempos)
	default:
		return nil, errors.Errorf("unknown timing mode %q", timing)
	}

	res := &Result{
		Tracks:       len(ordered),
		TicksPerBeat: ticksPerBeat,
		TempoBPM:     constants.DefaultTempoBPM,
	}
	if len(tempos) > 0 {
		res.TempoBPM = midi.BPM(tempos[len(tempos)-1].MicrosPerBeat)
	}

	for _, tr := range ordered {
		logrus.WithFields(logrus.Fields{
			"track": tr.Index,
			"name":  tr.Name,
			"notes": len(tr.Notes),
		}).Debug("Processed track")

		for _, n := range tr.Notes {
			res.Notes = append(res.Notes, model.NoteEvent{
				Pitch:    n.Pitch,
				Velocity: n.Velocity,
				Channel:  n.Channel,
				Start:    clock.TimeAt(n.StartTick),
				End:      clock.TimeAt(n.EndTick),
				Track:    n.Track,
			})
		}
		if end := clock.TimeAt(tr.LastTick); end > res.Duration {
			res.Duration = end
		}
		res.Unmatched += tr.Unmatched
		res.UnclosedNotes += tr.Unclosed
	}

	if res.UnclosedNotes > 0 {
		logrus.WithField("count", res.UnclosedNotes).Debug("Dropped notes that were never closed")
	}
	return res, nil
}

func sortByIndex(results []TrackResult) {
	slices.SortStableFunc(results, func(a, b TrackResult) bool {
		return a.Index < b.Index
	})
}
