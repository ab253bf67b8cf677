package model

// SongEntry represents a single row of a station's broadcast playlist.
type SongEntry struct {
	Time  string   `json:"time"`
	Title string   `json:"title"`
	Cells []string `json:"cells,omitempty"`
}

// DateFragment is the day.month fragment of the schedule tab. The source
// page carries no year; resolution to a calendar date happens downstream.
type DateFragment struct {
	Day   int `json:"day"`
	Month int `json:"month"`
}
