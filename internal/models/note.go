package models

import "github.com/nanatgrail/prodigyspace/internal/collection"

type NoteCategory string

const (
	NoteLecture    NoteCategory = "lecture"
	NoteResearch   NoteCategory = "research"
	NotePersonal   NoteCategory = "personal"
	NoteAssignment NoteCategory = "assignment"
	NoteMeeting    NoteCategory = "meeting"
)

var NoteCategories = []NoteCategory{NoteLecture, NoteResearch, NotePersonal, NoteAssignment, NoteMeeting}

type Note struct {
	collection.Meta
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Category    NoteCategory `json:"category"`
	Tags        []string     `json:"tags"`
	IsPinned    bool         `json:"isPinned"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

type DocCategory string

const (
	DocTextbook   DocCategory = "textbook"
	DocHandout    DocCategory = "handout"
	DocAssignment DocCategory = "assignment"
	DocNotes      DocCategory = "notes"
	DocOther      DocCategory = "other"
)

type ScanDocument struct {
	collection.Meta
	Name     string      `json:"name"`
	Pages    []string    `json:"pages"`
	Category DocCategory `json:"category"`
}
