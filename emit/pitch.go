package emit

import (
	"fmt"
	"strings"

	"github.com/jsphweid/orchestra/model"
)

var symbolNames = [12]string{"C", "CS", "D", "DS", "E", "F", "FS", "G", "GS", "A", "AS", "B"}

var displayNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Octave numbering puts middle C (60) in octave 4.
func octave(pitch uint8) int {
	o := int(pitch) - 12
	if o < 0 {
		return -1
	}
	return o / 12
}

// PitchSymbol returns the C identifier used for a pitch in note tables.
// Pitches below 12 sit in octave -1, written as NOTE_C_1.
func PitchSymbol(pitch uint8) string {
	if pitch == model.RestPitch {
		return model.RestSymbol
	}
	o := strings.Replace(fmt.Sprint(octave(pitch)), "-", "_", 1)
	return fmt.Sprintf("NOTE_%s%s", symbolNames[pitch%12], o)
}

// PitchName is the readable form, e.g. C#4.
func PitchName(pitch uint8) string {
	if pitch == model.RestPitch {
		return "REST"
	}
	return fmt.Sprintf("%s%d", displayNames[pitch%12], octave(pitch))
}
