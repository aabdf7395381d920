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

type BookmarkService struct {
	bookmarks *collection.Store[models.Bookmark, *models.Bookmark]
}

func NewBookmarkService(d Deps) *BookmarkService {
	d = d.normalize()
	return &BookmarkService{
		bookmarks: collection.New[models.Bookmark](d.Backend, models.KeyBookmarks, d.storeOptions()...),
	}
}

func (s *BookmarkService) Load(ctx context.Context) error   { return s.bookmarks.Load(ctx) }
func (s *BookmarkService) Reload(ctx context.Context) error { return s.bookmarks.Reload(ctx) }

// NormalizeURL prefixes https:// unless the URL already starts with http.
func NormalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if strings.HasPrefix(u, "http") {
		return u
	}
	return "https://" + u
}

func (s *BookmarkService) Add(ctx context.Context, title, url, category string) (models.Bookmark, error) {
	title, url = strings.TrimSpace(title), strings.TrimSpace(url)
	if title == "" || url == "" {
		return models.Bookmark{}, fmt.Errorf("bookmark title and url are required: %w", common.ErrInvalidInput)
	}
	return s.bookmarks.Create(ctx, models.Bookmark{
		Title:    title,
		URL:      NormalizeURL(url),
		Category: strings.TrimSpace(category),
	})
}

func (s *BookmarkService) Update(ctx context.Context, id string, fn func(*models.Bookmark)) (bool, error) {
	return s.bookmarks.Update(ctx, id, fn)
}

func (s *BookmarkService) Remove(ctx context.Context, id string) (bool, error) {
	return s.bookmarks.Delete(ctx, id)
}

func (s *BookmarkService) List() []models.Bookmark { return s.bookmarks.Items() }

func (s *BookmarkService) ByCategory(category string) []models.Bookmark {
	return aggregate.Filter(s.bookmarks.Items(), func(b models.Bookmark) bool { return b.Category == category })
}

// Categories returns the distinct categories in use, sorted.
func (s *BookmarkService) Categories() []string {
	out := []string{}
	for _, b := range s.bookmarks.Items() {
		out = append(out, b.Category)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
