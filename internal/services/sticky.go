package services

import (
	"context"
	"fmt"

	"github.com/nanatgrail/prodigyspace/internal/aggregate"
	"github.com/nanatgrail/prodigyspace/internal/collection"
	"github.com/nanatgrail/prodigyspace/internal/common"
	"github.com/nanatgrail/prodigyspace/internal/models"
)

var defaultStickySize = models.Size{Width: 200, Height: 200}

type StickyService struct {
	notes *collection.Store[models.StickyNote, *models.StickyNote]
}

func NewStickyService(d Deps) *StickyService {
	d = d.normalize()
	return &StickyService{
		notes: collection.New[models.StickyNote](d.Backend, models.KeyStickyNotes, d.storeOptions()...),
	}
}

func (s *StickyService) Load(ctx context.Context) error   { return s.notes.Load(ctx) }
func (s *StickyService) Reload(ctx context.Context) error { return s.notes.Reload(ctx) }

func (s *StickyService) Add(ctx context.Context, n models.StickyNote) (models.StickyNote, error) {
	if n.Color == "" {
		n.Color = models.ColorYellow
	}
	if n.Size.Width <= 0 || n.Size.Height <= 0 {
		n.Size = defaultStickySize
	}
	return s.notes.Create(ctx, n)
}

func (s *StickyService) Update(ctx context.Context, id string, fn func(*models.StickyNote)) (bool, error) {
	return s.notes.Update(ctx, id, fn)
}

func (s *StickyService) Delete(ctx context.Context, id string) (bool, error) {
	return s.notes.Delete(ctx, id)
}

func (s *StickyService) Move(ctx context.Context, id string, pos models.Position) (bool, error) {
	return s.notes.Update(ctx, id, func(n *models.StickyNote) { n.Position = pos })
}

func (s *StickyService) Resize(ctx context.Context, id string, size models.Size) (bool, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return false, fmt.Errorf("size must be positive: %w", common.ErrInvalidInput)
	}
	return s.notes.Update(ctx, id, func(n *models.StickyNote) { n.Size = size })
}

func (s *StickyService) List() []models.StickyNote { return s.notes.Items() }

func (s *StickyService) Stats() models.StickyStats {
	items := s.notes.Items()
	return models.StickyStats{
		Total: len(items),
		ColorBreakdown: aggregate.CountBy(items,
			func(n models.StickyNote) models.NoteColor { return n.Color }, models.NoteColors),
	}
}
