package service

import (
	"context"

	"github.com/jask/artgallery/internal/gallery"
)

// Reset wipes the saved shortlist. The key stays in the store holding Size
// empty slots, so the next Load sees a valid list.
func (s *FavoritesService) Reset(ctx context.Context) (gallery.Favorites, error) {
	prev := s.Load(ctx)
	empty := gallery.InitFavorites(nil, s.Size)
	if err := s.Save(ctx, empty); err != nil {
		return prev, err
	}
	s.Log.WithField("cleared", prev.Count()).Info("favorites reset")
	return empty, nil
}
