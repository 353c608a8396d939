package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jask/artgallery/internal/gallery"
	"github.com/jask/artgallery/internal/store"
)

// FavoritesService reads and writes the favorites shortlist. Empty slots are
// stored as JSON null.
type FavoritesService struct {
	Store store.KV
	Key   string
	Size  int
	Log   *logrus.Entry
}

// Load reads the persisted shortlist once at startup. A missing key, a read
// failure or undecodable data all yield an empty list.
func (s *FavoritesService) Load(ctx context.Context) gallery.Favorites {
	log := s.Log.WithField("key", s.Key)
	data, ok, err := s.Store.Get(ctx, s.Key)
	if err != nil {
		log.WithError(err).Warn("Failed to read favorites, starting empty")
		return gallery.InitFavorites(nil, s.Size)
	}
	if !ok {
		log.Debug("no saved favorites")
		return gallery.InitFavorites(nil, s.Size)
	}
	persisted, err := Decode(data)
	if err != nil {
		log.WithError(err).Warn("Saved favorites are corrupt, starting empty")
		return gallery.InitFavorites(nil, s.Size)
	}
	if len(persisted) > s.Size {
		log.WithFields(logrus.Fields{"saved": len(persisted), "size": s.Size}).Info("truncating saved favorites")
	}
	return gallery.InitFavorites(persisted, s.Size)
}

// Save writes every slot. The caller calls it after each mutation.
func (s *FavoritesService) Save(ctx context.Context, fav gallery.Favorites) error {
	data, err := Encode(fav)
	if err != nil {
		return err
	}
	if err := s.Store.Put(ctx, s.Key, data); err != nil {
		s.Log.WithError(err).WithField("key", s.Key).Error("Failed to save favorites")
		return fmt.Errorf("save favorites: %w", err)
	}
	s.Log.WithField("occupied", fav.Count()).Debug("favorites saved")
	return nil
}

// Encode serializes the slots in order with null for empty slots.
func Encode(fav gallery.Favorites) ([]byte, error) {
	data, err := json.Marshal([]*gallery.Artwork(fav))
	if err != nil {
		return nil, fmt.Errorf("encode favorites: %w", err)
	}
	return data, nil
}

// Decode parses a stored slot sequence.
func Decode(data []byte) ([]*gallery.Artwork, error) {
	var persisted []*gallery.Artwork
	if err := json.Unmarshal(data, &persisted); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	return persisted, nil
}
