package model

type ConvertSummary struct {
	Song      string         `json:"song"`
	SafeName  string         `json:"safe_name"`
	SongID    uint8          `json:"song_id"`
	TempoBPM  int            `json:"tempo_bpm"`
	Duration  float64        `json:"duration_seconds"`
	Notes     int            `json:"notes"`
	Dropped   int            `json:"dropped"`
	PartNotes map[string]int `json:"part_notes"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
