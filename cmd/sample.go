package cmd

import (
	"os"

	"github.com/jsphweid/orchestra/errs"
	"github.com/jsphweid/orchestra/sample"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sampleCmd)
}

var sampleCmd = &cobra.Command{
	Use:   "sample <output.mid>",
	Short: "Writes a demo MIDI file",
	Long:  `Writes a short four-track MIDI file that fills every default part.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeSample(args[0])
	},
}

func writeSample(path string) error {
	dat, err := sample.Demo().Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, dat, 0666); err != nil {
		return errs.NewIOError(path, err)
	}
	logrus.WithField("output", path).Info("Wrote sample")
	return nil
}
