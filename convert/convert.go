// Package convert runs the whole pipeline: read a MIDI file, extract its
// notes, distribute them into parts and emit the note-table header.
package convert

import (
	"io"

	"github.com/jsphweid/orchestra/constants"
	"github.com/jsphweid/orchestra/emit"
	"github.com/jsphweid/orchestra/extract"
	"github.com/jsphweid/orchestra/midi"
	"github.com/jsphweid/orchestra/model"
	"github.com/jsphweid/orchestra/part"
	"github.com/jsphweid/orchestra/util"
	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2/smf"
)

type Options struct {
	MaxParts int
	// replaces the extracted tempo in the descriptor when > 0
	TempoOverride int
	// defaults to the input file name without extension
	SongName string
	Extract  extract.Options
	ID       emit.IDOptions
}

func DefaultOptions() Options {
	return Options{
		MaxParts: constants.DefaultMaxParts,
		Extract:  extract.DefaultOptions(),
		ID:       emit.IDOptions{Strategy: constants.IDStrategyHash},
	}
}

type Result struct {
	Song       model.Song
	Descriptor model.Descriptor
	Extracted  *extract.Result
	Dropped    []model.NoteEvent
}

// Build turns a parsed file into a song and its descriptor without writing
// anything.
func Build(name string, s *smf.SMF, opts Options) (*Result, error) {
	extracted, err := extract.Extract(s, opts.Extract)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"song":     name,
		"tracks":   extracted.Tracks,
		"ticks":    extracted.TicksPerBeat,
		"tempo":    extracted.TempoBPM,
		"duration": extracted.Duration.Seconds(),
		"notes":    len(extracted.Notes),
	}).Info("Extracted notes")

	dist := part.Distribute(extracted.Notes, opts.MaxParts)
	song := model.Song{
		Name:     name,
		TempoBPM: extracted.TempoBPM,
		Duration: extracted.Duration,
		Parts:    dist.Parts,
	}
	if opts.TempoOverride > 0 {
		logrus.WithField("tempo", opts.TempoOverride).Info("Tempo overridden")
		song.TempoBPM = opts.TempoOverride
	}

	d, err := emit.NewDescriptor(song, opts.ID)
	if err != nil {
		return nil, err
	}
	return &Result{Song: song, Descriptor: d, Extracted: extracted, Dropped: dist.Dropped}, nil
}

// Convert reads input and writes the header to output.
func Convert(input, output string, opts Options) (*Result, error) {
	s, err := midi.ReadMidiFile(input)
	if err != nil {
		return nil, err
	}
	name := opts.SongName
	if name == "" {
		name = util.SongName(input)
	}

	res, err := Build(name, s, opts)
	if err != nil {
		return nil, err
	}
	if err := emit.WriteFile(output, res.Song, res.Descriptor); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"output": output,
		"parts":  len(res.Song.Parts),
	}).Info("Generated header")
	return res, nil
}

// ConvertBytes is Convert for a file already held in memory.
func ConvertBytes(name string, data []byte, w io.Writer, opts Options) (*Result, error) {
	s, err := midi.ReadMidiBytes(name, data)
	if err != nil {
		return nil, err
	}
	res, err := Build(name, s, opts)
	if err != nil {
		return nil, err
	}
	if err := emit.Write(w, name, res.Song, res.Descriptor); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Result) Summary() model.ConvertSummary {
	s := model.ConvertSummary{
		Song:      r.Song.Name,
		SafeName:  r.Descriptor.SafeName,
		SongID:    r.Descriptor.ID,
		TempoBPM:  r.Descriptor.TempoBPM,
		Duration:  r.Song.Duration.Seconds(),
		Notes:     r.Song.NoteCount(),
		Dropped:   len(r.Dropped),
		PartNotes: make(map[string]int),
	}
	for _, p := range r.Song.Parts {
		s.PartNotes[p.Name()] = len(p.Notes)
	}
	return s
}
