package emit

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jsphweid/orchestra/constants"
	"github.com/jsphweid/orchestra/errs"
	"github.com/jsphweid/orchestra/model"
	"github.com/sirupsen/logrus"
)

// the device stores durations and delays as uint16
const maxRecordMs = 1<<16 - 1

type headerWriter struct {
	w   *bufio.Writer
	err error
}

func (hw *headerWriter) printf(format string, args ...any) {
	if hw.err != nil {
		return
	}
	_, hw.err = fmt.Fprintf(hw.w, format, args...)
}

// Write renders the song as a C header. dest names the destination in
// errors.
func Write(w io.Writer, dest string, song model.Song, d model.Descriptor) error {
	hw := &headerWriter{w: bufio.NewWriter(w)}
	guard := "MIDI_" + strings.ToUpper(d.SafeName) + "_H"

	hw.printf("#ifndef %s\n#define %s\n\n", guard, guard)
	hw.printf("/*\n")
	hw.printf(" * Auto-generated MIDI file: %s\n", commentSafe(song.Name))
	hw.printf(" * Duration: %.2f seconds\n", song.Duration.Seconds())
	hw.printf(" * Tempo: %d BPM\n", d.TempoBPM)
	hw.printf(" * Parts: %d\n", d.PartCount)
	hw.printf(" * UUID: %s\n", d.UUID)
	hw.printf(" * Generated by: orchestra\n")
	hw.printf(" */\n\n")
	hw.printf("#include %q\n\n", constants.CommonHeader)

	for _, p := range song.Parts {
		writePart(hw, d.SafeName, p)
	}

	hw.printf("// %s Parts Array\n", commentSafe(song.Name))
	hw.printf("static const song_part_t %s_parts[] = {\n", d.SafeName)
	for _, p := range song.Parts {
		array := ArrayName(d.SafeName, p)
		hw.printf("    {%s, sizeof(%s)/sizeof(note_event_t) - 1, %q},\n", array, array, p.Name())
	}
	hw.printf("};\n\n")

	idSymbol := IDSymbol(d.SafeName)
	hw.printf("// %s Song Definition\n", commentSafe(song.Name))
	hw.printf("#define %s %d  // Auto-generated ID\n\n", idSymbol, d.ID)
	hw.printf("static const orchestra_song_t %s_song = {\n", d.SafeName)
	hw.printf("    .song_name = %s,\n", strconv.Quote(song.Name))
	hw.printf("    .song_id = %s,\n", idSymbol)
	hw.printf("    .tempo_bpm = %d,\n", d.TempoBPM)
	hw.printf("    .part_count = %d,\n", d.PartCount)
	hw.printf("    .parts = %s_parts\n", d.SafeName)
	hw.printf("};\n\n")

	hw.printf("// Helper function to get the song\n")
	hw.printf("static inline const orchestra_song_t* get_%s_song(void) {\n", d.SafeName)
	hw.printf("    return &%s_song;\n}\n\n", d.SafeName)
	hw.printf("#endif // %s\n", guard)

	if hw.err == nil {
		hw.err = hw.w.Flush()
	}
	if hw.err != nil {
		return errs.NewIOError(dest, hw.err)
	}
	return nil
}

func writePart(hw *headerWriter, safeName string, p model.Part) {
	hw.printf("// Part %d: %s\n", p.ID, p.Name())
	hw.printf("static const note_event_t %s[] = {\n", ArrayName(safeName, p))

	if len(p.Notes) == 0 {
		hw.printf("    {%s, 0, 0}  // Empty part\n", model.RestSymbol)
		hw.printf("};\n\n")
		return
	}

	var overflow int
	for _, r := range Records(p) {
		if r.IsSentinel() {
			hw.printf("    {%s, 0, 0}  // End of part\n", model.RestSymbol)
			continue
		}
		if r.DurationMs > maxRecordMs || r.DelayMs > maxRecordMs {
			overflow++
		}
		hw.printf("    {%s, %d, %d},  // Note %d (%s) - %dms\n",
			r.Symbol, r.DurationMs, r.DelayMs, r.Pitch, PitchName(r.Pitch), r.StartMs)
	}
	hw.printf("};\n\n")

	if overflow > 0 {
		logrus.WithFields(logrus.Fields{
			"part":    p.Name(),
			"records": overflow,
		}).Warn("Records exceed the 16-bit millisecond range of the device")
	}
}

// WriteFile creates or truncates path and writes the header into it. On
// failure whatever was written stays on disk.
func WriteFile(path string, song model.Song, d model.Descriptor) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.NewIOError(path, err)
	}
	if err := Write(f, path, song, d); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errs.NewIOError(path, err)
	}
	return nil
}

func ArrayName(safeName string, p model.Part) string {
	return safeName + "_" + p.Kind.Lower()
}

func IDSymbol(safeName string) string {
	return "SONG_" + strings.ToUpper(safeName)
}

func commentSafe(s string) string {
	s = strings.ReplaceAll(s, "*/", "* /")
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, s)
}
