package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/orchestra/convert"
	"github.com/jsphweid/orchestra/errs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var watchFlags = &conversionFlags{}

var (
	watchInterval time.Duration
	watchSettle   time.Duration
)

func init() {
	watchFlags.bind(watchCmd.Flags())
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 250*time.Millisecond, "how often the input is checked")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", 500*time.Millisecond, "quiet period before regenerating")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <input.mid> <output.h>",
	Short: "Regenerates the header whenever the MIDI file changes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := watchFlags.options()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watch(ctx, args[0], args[1], watchInterval, watchSettle, opts)
	},
}

// watch converts once, then again after every burst of changes to input.
// Failed regenerations are logged and watching goes on.
func watch(ctx context.Context, input, output string, interval, settle time.Duration, opts convert.Options) error {
	info, err := os.Stat(input)
	if os.IsNotExist(err) {
		return errs.InputNotFound(input)
	}
	if err != nil {
		return errors.Wrap(err, "watching input")
	}
	if err := run(input, output, opts); err != nil {
		return err
	}

	var (
		mu      sync.Mutex
		stopped bool
	)
	regenerate := func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		if err := run(input, output, opts); err != nil {
			logrus.WithError(err).Error("Regeneration failed")
		}
	}
	debounced := debounce.New(settle)

	lastMod := info.ModTime()
	lastSize := info.Size()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			// Swap out any pending regeneration; one already running finishes first.
			debounced(func() {})
			mu.Lock()
			stopped = true
			mu.Unlock()
			return nil
		case <-ticker.C:
			info, err := os.Stat(input)
			if err != nil {
				logrus.WithError(err).Debug("Input unavailable")
				continue
			}
			if info.ModTime().Equal(lastMod) && info.Size() == lastSize {
				continue
			}
			lastMod, lastSize = info.ModTime(), info.Size()
			logrus.WithField("input", input).Debug("Input changed")
			debounced(regenerate)
		}
	}
}
