package emit

import (
	"github.com/jsphweid/orchestra/model"
	"github.com/jsphweid/orchestra/util"
)

// Records encodes a part as (symbol, duration, delay) rows. The delay is
// the rest since the end of the previous note in the same part; only that
// note is tracked, so overlapping notes get a delay clamped at zero. The
// sentinel row is always last.
func Records(p model.Part) []model.Record {
	res := make([]model.Record, 0, len(p.Notes)+1)
	var lastEndMs int64
	for _, n := range p.Notes {
		startMs := n.Start.Milliseconds()
		durationMs := n.End.Milliseconds() - startMs
		res = append(res, model.Record{
			Symbol:     PitchSymbol(n.Pitch),
			Pitch:      n.Pitch,
			DurationMs: durationMs,
			DelayMs:    util.Max(0, startMs-lastEndMs),
			StartMs:    startMs,
		})
		lastEndMs = startMs + durationMs
	}
	return append(res, model.Sentinel)
}
