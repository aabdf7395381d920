package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/nanatgrail/prodigyspace/internal/aggregate"
	"github.com/nanatgrail/prodigyspace/internal/collection"
	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/models"
)

// NoteService manages notes and scanned documents.
type NoteService struct {
	notes *collection.Store[models.Note, *models.Note]
	docs  *collection.Store[models.ScanDocument, *models.ScanDocument]
}

func NewNoteService(d Deps) *NoteService {
	d = d.normalize()
	opts := d.storeOptions()
	return &NoteService{
		notes: collection.New[models.Note](d.Backend, models.KeyNotes, opts...),
		docs:  collection.New[models.ScanDocument](d.Backend, models.KeyScannedDocs, opts...),
	}
}

func (s *NoteService) Load(ctx context.Context) error   { return loadAll(ctx, s.notes, s.docs) }
func (s *NoteService) Reload(ctx context.Context) error { return reloadAll(ctx, s.notes, s.docs) }

func (s *NoteService) Add(ctx context.Context, n models.Note) (models.Note, error) {
	if strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Content) == "" {
		return models.Note{}, fmt.Errorf("note is empty: %w", common.ErrInvalidInput)
	}
	if n.Category == "" {
		n.Category = models.NotePersonal
	}
	n.Tags = normalizeTags(n.Tags)
	return s.notes.Create(ctx, n)
}

func (s *NoteService) Update(ctx context.Context, id string, fn func(*models.Note)) (bool, error) {
	return s.notes.Update(ctx, id, func(n *models.Note) {
		fn(n)
		n.Tags = normalizeTags(n.Tags)
	})
}

func (s *NoteService) Delete(ctx context.Context, id string) (bool, error) {
	return s.notes.Delete(ctx, id)
}

func (s *NoteService) TogglePin(ctx context.Context, id string) (bool, error) {
	return s.notes.Toggle(ctx, id, func(n *models.Note) *bool { return &n.IsPinned })
}

func (s *NoteService) Get(id string) (models.Note, bool) { return s.notes.Get(id) }

// List returns pinned notes first, each group most recently updated first.
func (s *NoteService) List() []models.Note {
	items := s.notes.Items()
	slices.SortStableFunc(items, func(a, b models.Note) int {
		if a.IsPinned != b.IsPinned {
			if a.IsPinned {
				return -1
			}
			return 1
		}
		return b.UpdatedAt.Compare(a.UpdatedAt.Time)
	})
	return items
}

// ByTag matches tags case-insensitively.
func (s *NoteService) ByTag(tag string) []models.Note {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return aggregate.Filter(s.List(), func(n models.Note) bool {
		return slices.Contains(n.Tags, tag)
	})
}

// Search matches query against title and content, case-insensitively.
func (s *NoteService) Search(query string) []models.Note {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.List()
	}
	return aggregate.Filter(s.List(), func(n models.Note) bool {
		return strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q)
	})
}

func (s *NoteService) CategoryCounts() map[models.NoteCategory]int {
	return aggregate.CountBy(s.notes.Items(),
		func(n models.Note) models.NoteCategory { return n.Category }, models.NoteCategories)
}

// Tags returns every tag in use, sorted.
func (s *NoteService) Tags() []string {
	var out []string
	for _, n := range s.notes.Items() {
		out = append(out, n.Tags...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func (s *NoteService) AddScannedDoc(ctx context.Context, doc models.ScanDocument) (models.ScanDocument, error) {
	if strings.TrimSpace(doc.Name) == "" {
		return models.ScanDocument{}, fmt.Errorf("document name is required: %w", common.ErrInvalidInput)
	}
	if doc.Category == "" {
		doc.Category = models.DocOther
	}
	doc.Pages = orEmpty(doc.Pages)
	return s.docs.Create(ctx, doc)
}

func (s *NoteService) DeleteScannedDoc(ctx context.Context, id string) (bool, error) {
	return s.docs.Delete(ctx, id)
}

func (s *NoteService) ScannedDocs() []models.ScanDocument { return s.docs.Items() }

// normalizeTags lower-cases, trims and de-duplicates tags, keeping first
// occurrence order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
