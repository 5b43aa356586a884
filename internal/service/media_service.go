package service

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/pkg/logger"
	"github.com/d60-Lab/microblog/pkg/storage"
)

type MediaService interface {
	Upload(ctx context.Context, filename string, r io.Reader) (*model.Media, error)
	Attach(ctx context.Context, mediaID, tweetID int64) error
	ListAttachments(ctx context.Context, tweetID int64) ([]string, error)
}

type mediaService struct {
	store     storage.Store
	mediaRepo repository.MediaRepository
}

func NewMediaService(store storage.Store, mediaRepo repository.MediaRepository) MediaService {
	return &mediaService{store: store, mediaRepo: mediaRepo}
}

// Upload stores the bytes in the blob store, then records the metadata as an
// unattached media row.
func (s *mediaService) Upload(ctx context.Context, filename string, r io.Reader) (*model.Media, error) {
	path, err := s.store.Save(ctx, filename, r)
	if err != nil {
		return nil, err
	}
	media := &model.Media{StoragePath: path}
	if err := s.mediaRepo.Create(ctx, media); err != nil {
		return nil, err
	}
	return media, nil
}

// Attach binds media to a tweet. An id that does not resolve is logged and
// skipped: a bad media id in a tweet-creation request must not block the tweet.
func (s *mediaService) Attach(ctx context.Context, mediaID, tweetID int64) error {
	media, err := s.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return err
	}
	if media == nil {
		logger.Warn("media attach skipped, id not found",
			zap.Int64("media_id", mediaID), zap.Int64("tweet_id", tweetID))
		return nil
	}
	return s.mediaRepo.Attach(ctx, mediaID, tweetID)
}

func (s *mediaService) ListAttachments(ctx context.Context, tweetID int64) ([]string, error) {
	medias, err := s.mediaRepo.ListByTweet(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(medias))
	for i, m := range medias {
		paths[i] = m.StoragePath
	}
	return paths, nil
}
