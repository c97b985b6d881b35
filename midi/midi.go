package midi

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/jsphweid/orchestra/errs"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	if _, err := os.Stat(filepath); err != nil {
		if os.IsNotExist(err) {
			return nil, errs.InputNotFound(filepath)
		}
		return nil, errs.NewParseError(filepath, err)
	}

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errs.NewParseError(filepath, errors.Wrap(err, "reading midi file"))
	}
	return ReadMidiBytes(filepath, dat)
}

// ReadMidiBytes decodes a whole SMF held in memory. name is only used in
// error messages.
func ReadMidiBytes(name string, dat []byte) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = errs.NewParseError(name, fmt.Errorf("panic while parsing: %v", r))
		}
	}()

	if err := checkChunks(dat); err != nil {
		return nil, errs.NewParseError(name, err)
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, errs.NewParseError(name, errors.Wrap(err, "parsing midi file"))
	}
	if _, ok := res.TimeFormat.(smf.MetricTicks); !ok {
		return nil, errs.NewParseError(name, errors.Errorf("unsupported time format %v", res.TimeFormat))
	}
	return res, nil
}

// checkChunks walks the chunk headers. smf.ReadFrom keeps whatever events
// it got from a track cut short, so truncation is caught here.
func checkChunks(dat []byte) error {
	if len(dat) < 14 || string(dat[:4]) != "MThd" {
		return errors.New("missing MThd header")
	}
	headerLen := binary.BigEndian.Uint32(dat[4:8])
	if headerLen < 6 || uint64(8+headerLen) > uint64(len(dat)) {
		return errors.Errorf("header chunk length %v runs past end of file", headerLen)
	}
	wantTracks := int(binary.BigEndian.Uint16(dat[10:12]))

	var tracks int
	offset := uint64(8 + headerLen)
	for offset < uint64(len(dat)) {
		if uint64(len(dat))-offset < 8 {
			return errors.Errorf("truncated chunk header at byte %v", offset)
		}
		chunkLen := uint64(binary.BigEndian.Uint32(dat[offset+4 : offset+8]))
		end := offset + 8 + chunkLen
		if end > uint64(len(dat)) {
			return errors.Errorf("chunk at byte %v declares %v bytes, only %v left", offset, chunkLen, uint64(len(dat))-offset-8)
		}
		if string(dat[offset:offset+4]) == "MTrk" {
			tracks++
		}
		offset = end
	}
	if tracks < wantTracks {
		return errors.Errorf("header declares %v tracks, found %v", wantTracks, tracks)
	}
	return nil
}

// TicksPerBeat returns the file's metric resolution.
func TicksPerBeat(s *smf.SMF) (uint16, error) {
	metric, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok || metric == 0 {
		return 0, errors.Errorf("unsupported time format %v", s.TimeFormat)
	}
	return uint16(metric), nil
}
