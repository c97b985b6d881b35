// Package catalog bundles several converted songs behind one index header
// and gives every song an id no other song in the bundle uses.
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jsphweid/orchestra/constants"
	"github.com/jsphweid/orchestra/emit"
	"github.com/jsphweid/orchestra/errs"
	"github.com/jsphweid/orchestra/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// New sorts songs by name and assigns ids. Each song starts from its hash
// id and steps upward until it finds a free one.
func New(names []string) (model.Catalog, error) {
	if len(names) > constants.MaxSongs {
		return nil, errors.Errorf("%v songs do not fit in %v ids", len(names), constants.MaxSongs)
	}
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	var res model.Catalog
	taken := make(map[uint8]string)
	safeNames := make(map[string]string)
	for _, name := range sorted {
		safe := emit.SanitizeName(name)
		if safe == "" {
			return nil, errors.Errorf("song %q has no letters or digits to name its header after", name)
		}
		if other, ok := safeNames[safe]; ok {
			return nil, errors.Errorf("songs %q and %q both map to identifier %s", other, name, safe)
		}
		safeNames[safe] = name

		id := emit.HashID(name)
		for {
			if _, ok := taken[id]; !ok {
				break
			}
			logrus.WithFields(logrus.Fields{
				"song":  name,
				"id":    id,
				"owner": taken[id],
			}).Debug("Song id taken, probing")
			id++
		}
		taken[id] = name
		res = append(res, model.CatalogEntry{
			Song:     name,
			SafeName: safe,
			Header:   safe + ".h",
			ID:       id,
		})
	}
	return res, nil
}

func Write(w io.Writer, dest string, c model.Catalog) error {
	bw := bufio.NewWriter(w)
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(bw, format, args...)
		}
	}

	printf("#ifndef MIDI_SONGS_H\n#define MIDI_SONGS_H\n\n")
	printf("#include \"orchestra_types.h\"\n")
	for _, e := range c {
		printf("#include %q\n", e.Header)
	}
	printf("\n#define SONG_COUNT %d\n\n", len(c))
	printf("static const orchestra_song_t* const all_songs[] = {\n")
	for _, e := range c {
		printf("    &%s_song,  // %s = %d\n", e.SafeName, emit.IDSymbol(e.SafeName), e.ID)
	}
	printf("};\n\n#endif // MIDI_SONGS_H\n")

	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		return errs.NewIOError(dest, err)
	}
	return nil
}

func WriteFile(path string, c model.Catalog) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.NewIOError(path, err)
	}
	if err := Write(f, path, c); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errs.NewIOError(path, err)
	}
	return nil
}
