package constants

import (
	"os"
	"strconv"
)

// 120 BPM; used for every tick when timing is "fixed"
const DefaultMicrosPerBeat = 500000

const DefaultTempoBPM = 120

const DefaultMaxParts = 4

// Melody, Harmony, Bass, Rhythm, Percussion, Effects
const MaxPartSlots = 6

const TimingFixed = "fixed"
const TimingTempoMap = "tempo-map"

const IDStrategyHash = "hash"
const IDStrategyFixed = "fixed"

// song ids are a single byte on the device
const MaxSongs = 256

const CommonHeader = "orchestra_common.h"
const CatalogHeader = "midi_songs.h"

func GetMaxParts() int {
	if v, err := strconv.Atoi(os.Getenv("ORCHESTRA_MAX_PARTS")); err == nil {
		return v
	}
	return DefaultMaxParts
}

func GetTiming() string {
	timing := os.Getenv("ORCHESTRA_TIMING")
	if timing != "" {
		return timing
	}
	return TimingFixed
}

func GetAddr() string {
	addr := os.Getenv("ORCHESTRA_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

func GetLogLevel() string {
	level := os.Getenv("ORCHESTRA_LOG_LEVEL")
	if level != "" {
		return level
	}
	return "info"
}
