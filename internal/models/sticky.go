package models

import "github.com/nanatgrail/prodigyspace/internal/collection"

// StickyNote is a free-floating board note.
type StickyNote struct {
	collection.Meta
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Color    NoteColor `json:"color"`
	Position Position  `json:"position"`
	Size     Size      `json:"size"`
}

type NoteColor string

const (
	ColorYellow NoteColor = "yellow"
	ColorBlue   NoteColor = "blue"
	ColorGreen  NoteColor = "green"
	ColorPink   NoteColor = "pink"
	ColorPurple NoteColor = "purple"
	ColorOrange NoteColor = "orange"
)

var NoteColors = []NoteColor{ColorYellow, ColorBlue, ColorGreen, ColorPink, ColorPurple, ColorOrange}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type StickyStats struct {
	Total          int               `json:"total"`
	ColorBreakdown map[NoteColor]int `json:"colorBreakdown"`
}
