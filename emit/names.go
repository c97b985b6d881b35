package emit

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/jsphweid/orchestra/constants"
	"github.com/jsphweid/orchestra/model"
	"github.com/pkg/errors"
)

// SanitizeName keeps letters and digits, turns space, hyphen, underscore
// and period into underscores, drops everything else and trims outer
// underscores.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '.':
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}

// SongUUID is a stable name-derived identifier (UUIDv5).
func SongUUID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name))
}

// HashID reduces the song UUID to the one byte the device keeps. Different
// names can share an id; the catalog resolves that when songs are bundled.
func HashID(name string) uint8 {
	return SongUUID(name)[0]
}

type IDOptions struct {
	Strategy string
	// used with constants.IDStrategyFixed
	FixedID int
}

func NewDescriptor(song model.Song, opts IDOptions) (model.Descriptor, error) {
	d := model.Descriptor{
		Name:      song.Name,
		SafeName:  SanitizeName(song.Name),
		UUID:      SongUUID(song.Name).String(),
		TempoBPM:  song.TempoBPM,
		PartCount: len(song.Parts),
	}
	switch opts.Strategy {
	case constants.IDStrategyHash, "":
		d.ID = HashID(song.Name)
	case constants.IDStrategyFixed:
		if opts.FixedID < 0 || opts.FixedID >= constants.MaxSongs {
			return d, errors.Errorf("song id %v out of range 0-%v", opts.FixedID, constants.MaxSongs-1)
		}
		d.ID = uint8(opts.FixedID)
	default:
		return d, errors.Errorf("unknown id strategy %q", opts.Strategy)
	}
	return d, nil
}
