package extract

import (
	"testing"
	"time"

	"github.com/jsphweid/orchestra/constants"
	"github.com/jsphweid/orchestra/midi"
	"github.com/jsphweid/orchestra/model"
	"github.com/jsphweid/orchestra/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

func parse(t *testing.T, b *sample.Builder) *smf.SMF {
	t.Helper()
	dat, err := b.Bytes()
	require.NoError(t, err)
	s, err := midi.ReadMidiBytes("test.mid", dat)
	require.NoError(t, err)
	return s
}

func extract(t *testing.T, b *sample.Builder, opts Options) *Result {
	t.Helper()
	res, err := Extract(parse(t, b), opts)
	require.NoError(t, err)
	return res
}

func TestSingleNoteAtDefaultTempo(t *testing.T) {
	b := sample.New(480)
	b.Track().NoteOn(0, 0, 60, 80).NoteOff(480, 0, 60)

	res := extract(t, b, DefaultOptions())

	assert := assert.New(t)
	assert.Equal(120, res.TempoBPM)
	assert.Equal([]model.NoteEvent{{
		Pitch:    60,
		Velocity: 80,
		Channel:  0,
		Start:    0,
		End:      500 * time.Millisecond,
	}}, res.Notes)
	assert.Equal(500*time.Millisecond, res.Duration)
}

func TestEmptyTrackHasNoNotes(t *testing.T) {
	b := sample.New(480)
	b.Track()

	res := extract(t, b, DefaultOptions())

	assert := assert.New(t)
	assert.Empty(res.Notes)
	assert.Equal(1, res.Tracks)
	assert.Equal(time.Duration(0), res.Duration)
	assert.Equal(constants.DefaultTempoBPM, res.TempoBPM)
}

func TestRepeatedBeginOverwritesPendingNote(t *testing.T) {
	b := sample.New(480)
	b.Track().
		NoteOn(0, 0, 64, 50).
		NoteOn(240, 0, 64, 90).
		NoteOff(240, 0, 64)

	res := extract(t, b, DefaultOptions())

	assert := assert.New(t)
	assert.Len(res.Notes, 1)
	assert.Equal(250*time.Millisecond, res.Notes[0].Start)
	assert.Equal(500*time.Millisecond, res.Notes[0].End)
	assert.Equal(uint8(90), res.Notes[0].Velocity)
	assert.Equal(1, res.UnclosedNotes)
}

func TestUnmatchedEndIsIgnored(t *testing.T) {
	b := sample.New(480)
	b.Track().NoteOff(0, 0, 40).Note(0, 480, 0, 41, 64)

	res := extract(t, b, DefaultOptions())

	assert := assert.New(t)
	assert.Len(res.Notes, 1)
	assert.Equal(uint8(41), res.Notes[0].Pitch)
	assert.Equal(1, res.Unmatched)
}

func TestNoteWithoutEndIsDropped(t *testing.T) {
	b := sample.New(480)
	b.Track().NoteOn(0, 0, 70, 100).Note(0, 480, 0, 71, 100).End(960)

	res := extract(t, b, DefaultOptions())

	assert := assert.New(t)
	assert.Len(res.Notes, 1)
	assert.Equal(uint8(71), res.Notes[0].Pitch)
	assert.Equal(1, res.UnclosedNotes)
	assert.Equal(1500*time.Millisecond, res.Duration)
}

func TestZeroVelocityBeginClosesNote(t *testing.T) {
	b := sample.New(96)
	b.Track().NoteOn(0, 3, 50, 100).NoteOn(96, 3, 50, 0)

	res := extract(t, b, DefaultOptions())

	assert := assert.New(t)
	assert.Len(res.Notes, 1)
	assert.Equal(uint8(3), res.Notes[0].Channel)
	assert.Equal(500*time.Millisecond, res.Notes[0].Duration())
}

func TestSamePitchOnDifferentChannelsIsTrackedSeparately(t *testing.T) {
	b := sample.New(480)
	b.Track().
		NoteOn(0, 0, 60, 100).
		NoteOn(0, 1, 60, 100).
		NoteOff(480, 1, 60).
		NoteOff(480, 0, 60)

	res := extract(t, b, DefaultOptions())

	assert := assert.New(t)
	assert.Len(res.Notes, 2)
	assert.Equal(uint8(1), res.Notes[0].Channel)
	assert.Equal(500*time.Millisecond, res.Notes[0].End)
	assert.Equal(uint8(0), res.Notes[1].Channel)
	assert.Equal(time.Second, res.Notes[1].End)
}

func TestFixedTimingReportsLastTempoOnly(t *testing.T) {
	b := sample.New(480)
	b.Track().Tempo(0, 60).Tempo(960, 75)
	b.Track().Note(960, 480, 0, 60, 100)

	res := extract(t, b, DefaultOptions())

	assert := assert.New(t)
	assert.Equal(75, res.TempoBPM)
	assert.Equal(time.Second, res.Notes[0].Start)
	assert.Equal(1500*time.Millisecond, res.Notes[0].End)
}

func TestTempoMapTimingHonorsChangesAcrossTracks(t *testing.T) {
	b := sample.New(480)
	b.Track().Tempo(0, 60).Tempo(960, 120)
	b.Track().Note(960, 480, 0, 60, 100)

	res := extract(t, b, Options{Timing: constants.TimingTempoMap})

	assert := assert.New(t)
	assert.Equal(120, res.TempoBPM)
	assert.Equal(2*time.Second, res.Notes[0].Start)
	assert.Equal(2500*time.Millisecond, res.Notes[0].End)
}

func TestDurationIsLongestTrack(t *testing.T) {
	b := sample.New(480)
	b.Track().Note(0, 480, 0, 60, 100)
	b.Track().Note(0, 480, 1, 62, 100).End(1440)
	b.Track()

	res := extract(t, b, DefaultOptions())

	assert.Equal(t, 2*time.Second, res.Duration)
}

func TestUnknownTimingFails(t *testing.T) {
	b := sample.New(480)
	b.Track().Note(0, 480, 0, 60, 100)

	_, err := Extract(parse(t, b), Options{Timing: "swing"})
	assert.Error(t, err)
}

func TestParallelAndShuffledExtractionMatchSequential(t *testing.T) {
	s := parse(t, sample.Demo())

	sequential, err := Extract(s, Options{Timing: constants.TimingFixed, Workers: 1})
	require.NoError(t, err)

	parallel, err := Extract(s, Options{Timing: constants.TimingFixed, Workers: 4})
	require.NoError(t, err)

	var reversed []TrackResult
	for i := len(s.Tracks) - 1; i >= 0; i-- {
		reversed = append(reversed, ExtractTrack(i, s.Tracks[i]))
	}
	shuffled, err := Merge(480, reversed, constants.TimingFixed)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.NotEmpty(sequential.Notes)
	assert.Equal(sequential, parallel)
	assert.Equal(sequential, shuffled)
}

func TestNotesAreMergedInTrackOrder(t *testing.T) {
	b := sample.New(480)
	b.Track().Note(480, 480, 0, 80, 100)
	b.Track().Note(0, 480, 1, 40, 100)

	res := extract(t, b, DefaultOptions())

	assert := assert.New(t)
	assert.Len(res.Notes, 2)
	assert.Equal(0, res.Notes[0].Track)
	assert.Equal(uint8(80), res.Notes[0].Pitch)
	assert.Equal(1, res.Notes[1].Track)
}
