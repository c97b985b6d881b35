package cmd

import (
	"github.com/jsphweid/orchestra/constants"
	"github.com/jsphweid/orchestra/convert"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// conversionFlags are shared by every command that converts songs.
type conversionFlags struct {
	parts      int
	tempo      int
	timing     string
	workers    int
	idStrategy string
	songID     int
	name       string
}

func (f *conversionFlags) bind(fs *pflag.FlagSet) {
	fs.IntVarP(&f.parts, "parts", "p", constants.GetMaxParts(), "maximum number of parts, at most 6 are created")
	fs.IntVarP(&f.tempo, "tempo", "t", 0, "override the tempo written to the song descriptor (BPM)")
	fs.StringVar(&f.timing, "timing", constants.GetTiming(), "tick to time conversion: fixed or tempo-map")
	fs.IntVar(&f.workers, "workers", 1, "tracks extracted in parallel")
	fs.StringVar(&f.idStrategy, "id-strategy", constants.IDStrategyHash, "song id source: hash or fixed")
	fs.IntVar(&f.songID, "song-id", 0, "song id used with --id-strategy=fixed")
	fs.StringVar(&f.name, "name", "", "song name (defaults to the input file name)")
}

func (f *conversionFlags) options() (convert.Options, error) {
	opts := convert.DefaultOptions()
	// values above the slot count are clamped by the distributor
	if f.parts < 1 {
		return opts, errors.Errorf("--parts must be at least 1, got %v", f.parts)
	}
	if f.tempo < 0 {
		return opts, errors.Errorf("--tempo must be positive, got %v", f.tempo)
	}
	opts.MaxParts = f.parts
	opts.TempoOverride = f.tempo
	opts.SongName = f.name
	opts.Extract.Timing = f.timing
	opts.Extract.Workers = f.workers
	opts.ID.Strategy = f.idStrategy
	opts.ID.FixedID = f.songID
	return opts, nil
}
