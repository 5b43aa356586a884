package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
)

func setupBenchDB(b *testing.B) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		b.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Follow{}, &model.Tweet{}, &model.Like{}); err != nil {
		b.Fatalf("migrate: %v", err)
	}
	return db
}

func BenchmarkFollowWrite(b *testing.B) {
	db := setupBenchDB(b)
	followRepo := NewFollowRepository(db)
	ctx := context.Background()

	users := make([]model.User, 1000)
	for i := range users {
		users[i] = model.User{Name: fmt.Sprintf("u%04d", i)}
	}
	if err := db.Create(&users).Error; err != nil {
		b.Fatalf("seed users: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		from := users[rand.Intn(len(users))].ID
		to := users[rand.Intn(len(users))].ID
		if from == to {
			continue
		}
		_ = followRepo.Create(ctx, from, to)
	}
}

func BenchmarkFollowListings(b *testing.B) {
	db := setupBenchDB(b)
	followRepo := NewFollowRepository(db)
	ctx := context.Background()

	// u0 follows N users and has N followers
	const N = 5000
	u0 := model.User{Name: "u0"}
	if err := db.Create(&u0).Error; err != nil {
		b.Fatalf("seed u0: %v", err)
	}
	for i := 1; i <= N; i++ {
		u := model.User{Name: fmt.Sprintf("u%v", i)}
		if err := db.Create(&u).Error; err != nil {
			b.Fatalf("seed user: %v", err)
		}
		_ = followRepo.Create(ctx, u.ID, u0.ID)
		_ = followRepo.Create(ctx, u0.ID, u.ID)
	}

	b.ResetTimer()
	b.Run("ListFollowers", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = followRepo.ListFollowers(ctx, u0.ID)
		}
	})

	b.Run("ListFollowing", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = followRepo.ListFollowing(ctx, u0.ID)
		}
	})
}
