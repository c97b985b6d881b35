package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/orchestra/errs"
	"github.com/jsphweid/orchestra/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMidiFile(t *testing.T) {
	dat, err := sample.Demo().Bytes()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "demo.mid")
	require.NoError(t, os.WriteFile(path, dat, 0666))

	s, err := ReadMidiFile(path)
	require.NoError(t, err)

	ticks, err := TicksPerBeat(s)
	require.NoError(t, err)
	assert := assert.New(t)
	assert.Equal(uint16(480), ticks)
	assert.Len(s.Tracks, 5)
}

// lastTrack returns the final MTrk chunk, header included.
func lastTrack(t *testing.T, dat []byte) []byte {
	t.Helper()
	i := bytes.LastIndex(dat, []byte("MTrk"))
	require.True(t, i > 0)
	return dat[i:]
}

func TestReadWholeDemoHasNoChunkErrors(t *testing.T) {
	demo, err := sample.Demo().Bytes()
	require.NoError(t, err)
	assert.NoError(t, checkChunks(demo))
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.True(t, errs.IsInputNotFound(err))
}

func TestReadGarbage(t *testing.T) {
	demo, err := sample.Demo().Bytes()
	require.NoError(t, err)

	cases := map[string][]byte{
		"empty":                {},
		"text":                 []byte("this is not a midi file"),
		"truncated":            []byte("MThd\x00\x00\x00\x06\x00\x01"),
		"truncated track 1":    demo[:len(demo)-1],
		"truncated track 10":   demo[:len(demo)-10],
		"truncated track 30":   demo[:len(demo)-30],
		"partial chunk header": demo[:len(demo)-len(lastTrack(t, demo))+4],
		"missing track":        demo[:len(demo)-len(lastTrack(t, demo))],
	}
	for name, dat := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadMidiBytes(name, dat)
			assert.True(t, errs.IsParseError(err), "got %v", err)
		})
	}
}
