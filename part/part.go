// Package part splits extracted notes into the named parts a sequencer
// plays. Classification always yields one of four logical buckets; the
// layout decides which of them are materialized.
package part

import (
	"github.com/jsphweid/orchestra/constants"
	"github.com/jsphweid/orchestra/model"
	"github.com/jsphweid/orchestra/util"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// Classify returns the logical bucket of a note. First matching rule wins.
func Classify(n model.NoteEvent) model.PartKind {
	switch {
	case n.Channel == model.PercussionChannel:
		return model.Rhythm
	case n.Pitch >= 72:
		return model.Melody
	case n.Pitch >= 60:
		return model.Harmony
	default:
		return model.Bass
	}
}

// Layout lists the part kinds that exist for a requested part count.
func Layout(maxParts int) []model.PartKind {
	n := util.Clamp(maxParts, 0, constants.MaxPartSlots)
	return slices.Clone(model.AllPartKinds[:n])
}

type Distribution struct {
	Parts []model.Part
	// notes whose bucket has no part in the layout
	Dropped []model.NoteEvent
}

func Distribute(notes []model.NoteEvent, maxParts int) Distribution {
	layout := Layout(maxParts)
	slot := make(map[model.PartKind]int, len(layout))
	var res Distribution
	for i, kind := range layout {
		slot[kind] = i
		res.Parts = append(res.Parts, model.Part{ID: i, Kind: kind})
	}

	for _, n := range notes {
		i, ok := slot[Classify(n)]
		if !ok {
			res.Dropped = append(res.Dropped, n)
			continue
		}
		res.Parts[i].Notes = append(res.Parts[i].Notes, n)
	}

	for i := range res.Parts {
		SortByStart(res.Parts[i].Notes)
		logrus.WithFields(logrus.Fields{
			"part":  res.Parts[i].Name(),
			"notes": len(res.Parts[i].Notes),
		}).Debug("Distributed part")
	}

	if len(res.Dropped) > 0 {
		logrus.WithFields(logrus.Fields{
			"dropped":   len(res.Dropped),
			"max_parts": maxParts,
		}).Warn("Notes classified into parts outside the layout were dropped")
	}
	return res
}

// SortByStart orders notes by start time, keeping encounter order on ties.
func SortByStart(notes []model.NoteEvent) {
	slices.SortStableFunc(notes, func(a, b model.NoteEvent) bool {
		return a.Start < b.Start
	})
}
