package cmd

import (
	"os"

	"github.com/jsphweid/orchestra/constants"
	"github.com/jsphweid/orchestra/convert"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

var rootFlags = &conversionFlags{}

var rootCmd = &cobra.Command{
	Use:   "orchestra <input.mid> <output.h>",
	Short: "Converts MIDI files into note tables for the orchestra sequencer",
	Long: `Converts a standard MIDI file into a C header holding one note table
per instrument part, a part index and a song descriptor.`,
	Args:              cobra.ExactArgs(2),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := rootFlags.options()
		if err != nil {
			return err
		}
		return run(args[0], args[1], opts)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log per-track and per-part details")
	rootFlags.bind(rootCmd.Flags())
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func setupLogging(cmd *cobra.Command, args []string) error {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	level, err := logrus.ParseLevel(constants.GetLogLevel())
	if err != nil {
		return errors.Wrap(err, "ORCHESTRA_LOG_LEVEL")
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	return nil
}

func run(input, output string, opts convert.Options) error {
	res, err := convert.Convert(input, output, opts)
	if err != nil {
		return err
	}
	summary := res.Summary()
	logrus.WithFields(logrus.Fields{
		"song":     summary.Song,
		"id":       summary.SongID,
		"parts":    len(res.Song.Parts),
		"notes":    summary.Notes,
		"dropped":  summary.Dropped,
		"duration": summary.Duration,
	}).Info("Conversion completed")
	return nil
}
