package cmd

import (
	"path/filepath"
	"strconv"

	"github.com/jsphweid/orchestra/catalog"
	"github.com/jsphweid/orchestra/constants"
	"github.com/jsphweid/orchestra/convert"
	"github.com/jsphweid/orchestra/model"
	"github.com/jsphweid/orchestra/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var batchFlags = &conversionFlags{}

var batchMax int

func init() {
	batchFlags.bind(batchCmd.Flags())
	batchCmd.Flags().IntVar(&batchMax, "max", 0, "convert at most this many files (0 for all)")
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch <midi dir> <output dir>",
	Short: "Converts a directory of MIDI files",
	Long: `Converts every .mid/.midi file under a directory and writes ` + constants.CatalogHeader + `,
an index of all songs with ids that do not collide.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := batchFlags.options()
		if err != nil {
			return err
		}
		_, err = runBatch(args[0], args[1], batchMax, opts)
		return err
	},
}

func runBatch(dir, outDir string, maxNum int, opts convert.Options) (model.Catalog, error) {
	paths, err := util.GatherAllMidiPaths(dir, maxNum)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.Errorf("no midi files under %s", dir)
	}
	if err := util.EnsureDir(outDir); err != nil {
		return nil, err
	}

	nameToPath := make(map[string]string)
	for _, p := range paths {
		name := util.SongName(p)
		if other, ok := nameToPath[name]; ok {
			return nil, errors.Errorf("%s and %s have the same song name", other, p)
		}
		nameToPath[name] = p
	}

	c, err := catalog.New(util.GetKeys(nameToPath))
	if err != nil {
		return nil, err
	}

	for i, entry := range c {
		logrus.WithField("song", entry.Song).Infof("Processing %v of %v midi files", i+1, len(c))
		songOpts := opts
		songOpts.SongName = entry.Song
		songOpts.ID.Strategy = constants.IDStrategyFixed
		songOpts.ID.FixedID = int(entry.ID)
		output := filepath.Join(outDir, entry.Header)
		if _, err := convert.Convert(nameToPath[entry.Song], output, songOpts); err != nil {
			return nil, errors.Wrapf(err, "converting %s", strconv.Quote(entry.Song))
		}
	}

	index := filepath.Join(outDir, constants.CatalogHeader)
	if err := catalog.WriteFile(index, c); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"songs": len(c), "index": index}).Info("Batch completed")
	return c, nil
}
