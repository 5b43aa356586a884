package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/pkg/apperr"
)

const searchLimit = 10

// Profile is a user plus both sides of their follow graph.
type Profile struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Followers []model.UserRef `json:"followers"`
	Following []model.UserRef `json:"following"`
}

type UserService interface {
	Create(ctx context.Context, name, password string) (*model.User, error)
	Profile(ctx context.Context, userID int64) (*Profile, error)
	Search(ctx context.Context, query string) ([]model.UserRef, error)
	Delete(ctx context.Context, userID int64) error
	EnsureUsers(ctx context.Context, names []string) error
}

type userService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	relSvc   RelationshipService
	cache    *LikeCache
}

func NewUserService(db *gorm.DB, userRepo repository.UserRepository, relSvc RelationshipService, cache *LikeCache) UserService {
	return &userService{db: db, userRepo: userRepo, relSvc: relSvc, cache: cache}
}

func (s *userService) Create(ctx context.Context, name, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{Name: name, Password: string(hash)}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrUserExists
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) Profile(ctx context.Context, userID int64) (*Profile, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrUserNotFound
	}
	followers, err := s.relSvc.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.relSvc.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{ID: u.ID, Name: u.Name, Followers: followers, Following: following}, nil
}

func (s *userService) Search(ctx context.Context, query string) ([]model.UserRef, error) {
	users, err := s.userRepo.Search(ctx, strings.ToLower(query), searchLimit)
	if err != nil {
		return nil, err
	}
	refs := make([]model.UserRef, len(users))
	for i, u := range users {
		refs[i] = u.Ref()
	}
	return refs, nil
}

// Delete removes the user and everything they own in a single transaction:
// follow edges on both sides, their likes, and each of their tweets with its
// likes and media detachment.
func (s *userService) Delete(ctx context.Context, userID int64) error {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.ErrUserNotFound
	}

	var tweetIDs, likedTweetIDs []int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("follower_id = ? OR following_id = ?", userID, userID).
			Delete(&model.Follow{}).Error; err != nil {
			return err
		}
		// the tweets this user liked need their cached counts dropped too
		if err := tx.Model(&model.Like{}).
			Where("user_id = ?", userID).
			Distinct("tweet_id").
			Pluck("tweet_id", &likedTweetIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Tweet{}).
			Where("author_id = ?", userID).
			Pluck("id", &tweetIDs).Error; err != nil {
			return err
		}
		if len(tweetIDs) > 0 {
			if err := tx.Where("tweet_id IN ?", tweetIDs).Delete(&model.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.Media{}).
				Where("tweet_id IN ?", tweetIDs).
				Update("tweet_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Where("author_id = ?", userID).Delete(&model.Tweet{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.User{}, "id = ?", userID).Error
	})
	if err != nil {
		return err
	}
	for _, id := range tweetIDs {
		s.cache.Invalidate(ctx, id)
	}
	for _, id := range likedTweetIDs {
		s.cache.Invalidate(ctx, id)
	}
	return nil
}

// EnsureUsers creates any missing seed users; reboot is a no-op. Seeded
// accounts get a random throwaway password since header auth never checks it.
func (s *userService) EnsureUsers(ctx context.Context, names []string) error {
	for _, name := range names {
		existing, err := s.userRepo.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if _, err := s.Create(ctx, name, uuid.New().String()); err != nil {
			if errors.Is(err, apperr.ErrUserExists) {
				continue
			}
			return err
		}
	}
	return nil
}
