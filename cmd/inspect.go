package cmd

import (
	"fmt"

	"github.com/jsphweid/orchestra/convert"
	"github.com/jsphweid/orchestra/emit"
	"github.com/jsphweid/orchestra/midi"
	"github.com/jsphweid/orchestra/util"
	"github.com/spf13/cobra"
)

var inspectFlags = &conversionFlags{}

func init() {
	inspectFlags.bind(inspectCmd.Flags())
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <input.mid>",
	Short: "Prints what a conversion would produce",
	Long:  `Parses a MIDI file and prints tracks, tempo and the notes of every part without writing a header.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := inspectFlags.options()
		if err != nil {
			return err
		}
		return inspect(cmd, args[0], opts)
	},
}

func inspect(cmd *cobra.Command, path string, opts convert.Options) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	name := opts.SongName
	if name == "" {
		name = util.SongName(path)
	}
	res, err := convert.Build(name, s, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "song: %v (%v)\n", res.Song.Name, res.Descriptor.SafeName)
	fmt.Fprintf(out, "format: %v, tracks: %v, ticks per beat: %v\n", s.Format(), res.Extracted.Tracks, res.Extracted.TicksPerBeat)
	fmt.Fprintf(out, "tempo: %v BPM, duration: %.2f seconds\n", res.Song.TempoBPM, res.Song.Duration.Seconds())
	fmt.Fprintf(out, "song id: %v, uuid: %v\n", res.Descriptor.ID, res.Descriptor.UUID)

	var counts []int
	for _, p := range res.Song.Parts {
		counts = append(counts, len(p.Notes))
		records := emit.Records(p)
		fmt.Fprintf(out, "part %v (%v): %v notes", p.ID, p.Name(), len(p.Notes))
		if len(p.Notes) > 0 {
			first := records[0]
			fmt.Fprintf(out, ", first %v at %vms", emit.PitchName(first.Pitch), first.StartMs)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "notes: %v kept, %v dropped, %v unmatched ends, %v unclosed begins\n",
		util.Sum(counts), len(res.Dropped), res.Extracted.Unmatched, res.Extracted.UnclosedNotes)
	return nil
}
