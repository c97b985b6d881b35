package catalog

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/jsphweid/orchestra/emit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollidingIdsMoveToNextFree(t *testing.T) {
	// both hash to 135
	c, err := New([]string{"song 21", "song 18"})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(c, 2)
	assert.Equal("song 18", c[0].Song)
	assert.Equal(uint8(135), c[0].ID)
	assert.Equal("song 21", c[1].Song)
	assert.Equal(uint8(136), c[1].ID)
	assert.Equal("song_21.h", c[1].Header)
}

func TestIdsAreUniqueForFullCatalog(t *testing.T) {
	var names []string
	for i := 0; i < 256; i++ {
		names = append(names, fmt.Sprintf("track %03d", i))
	}
	c, err := New(names)
	require.NoError(t, err)

	seen := make(map[uint8]bool)
	for _, e := range c {
		assert.False(t, seen[e.ID], "id %v reused", e.ID)
		seen[e.ID] = true
	}
	assert.Len(t, seen, 256)

	_, err = New(append(names, "one too many"))
	assert.Error(t, err)
}

func TestUncollidedSongKeepsHashId(t *testing.T) {
	c, err := New([]string{"Ode to Joy"})
	require.NoError(t, err)
	assert.Equal(t, emit.HashID("Ode to Joy"), c[0].ID)
}

func TestClashingIdentifiersFail(t *testing.T) {
	_, err := New([]string{"my song", "my-song"})
	assert.Error(t, err)
}

func TestNamelessSongFails(t *testing.T) {
	_, err := New([]string{"good song", "???"})
	assert.Error(t, err)
}

func TestUnicodeNamesKeepTheirLetters(t *testing.T) {
	c, err := New([]string{"Café-Mix"})
	require.NoError(t, err)
	assert.Equal(t, "Café_Mix.h", c[0].Header)
}

func TestWriteIndex(t *testing.T) {
	c, err := New([]string{"song 21", "song 18"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "buffer", c))

	assert.Equal(t, `#ifndef MIDI_SONGS_H
#define MIDI_SONGS_H

#include "orchestra_types.h"
#include "song_18.h"
#include "song_21.h"

#define SONG_COUNT 2

static const orchestra_song_t* const all_songs[] = {
    &song_18_song,  // SONG_SONG_18 = 135
    &song_21_song,  // SONG_SONG_21 = 136
};

#endif // MIDI_SONGS_H
`, buf.String())
}
