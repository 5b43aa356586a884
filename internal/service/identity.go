package service

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/pkg/apperr"
)

// Resolver maps the caller-supplied identity token to a user. Every mutating
// endpoint resolves first and reports failure as "User not found".
type Resolver interface {
	Resolve(ctx context.Context, token string) (*model.User, error)
}

// nameResolver treats the token as the user's name, exactly and
// case-sensitively. This is the original api-key scheme.
type nameResolver struct {
	users repository.UserRepository
}

func NewNameResolver(users repository.UserRepository) Resolver {
	return &nameResolver{users: users}
}

func (r *nameResolver) Resolve(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperr.ErrUserNotFound
	}
	u, err := r.users.GetByName(ctx, token)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrUserNotFound
	}
	return u, nil
}

// jwtResolver accepts an HS256 token whose "name" claim feeds the same user
// lookup. Swapping it in touches nothing outside the router wiring.
type jwtResolver struct {
	users  repository.UserRepository
	secret []byte
}

func NewJWTResolver(users repository.UserRepository, secret []byte) Resolver {
	return &jwtResolver{users: users, secret: secret}
}

func (r *jwtResolver) Resolve(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperr.ErrUserNotFound
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperr.ErrUserNotFound
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.ErrUserNotFound
	}
	name, _ := claims["name"].(string)
	if name == "" {
		return nil, apperr.ErrUserNotFound
	}
	u, err := r.users.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrUserNotFound
	}
	return u, nil
}
