package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// Seeds a follow graph (one reader following F authors, each with T tweets,
// each tweet liked L times) and measures enriched feed assembly latency.
func main() {
	db := must(gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true}))
	if err := database.Migrate(db); err != nil {
		panic(err)
	}

	F := envInt("FOLLOWEES", 50)
	T := envInt("TWEETS", 20)
	L := envInt("LIKES", 10)
	N := envInt("N", 200)

	userRepo := repository.NewUserRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	mediaSvc := service.NewMediaService(nopStore{}, mediaRepo)
	feedSvc := service.NewFeedService(userRepo, tweetRepo, followRepo, likeRepo, mediaSvc)

	ctx := context.Background()

	reader := model.User{Name: "reader"}
	must(0, db.Create(&reader).Error)

	likers := make([]model.User, L)
	for i := range likers {
		likers[i] = model.User{Name: fmt.Sprintf("liker%04d", i)}
	}
	if L > 0 {
		must(0, db.Create(&likers).Error)
	}

	for i := 0; i < F; i++ {
		author := model.User{Name: fmt.Sprintf("author%04d", i)}
		must(0, db.Create(&author).Error)
		must(0, followRepo.Create(ctx, reader.ID, author.ID))
		for j := 0; j < T; j++ {
			tweet := model.Tweet{Content: fmt.Sprintf("tweet %d/%d", i, j), AuthorID: author.ID}
			must(0, db.Create(&tweet).Error)
			for _, l := range likers {
				must(0, likeRepo.Create(ctx, l.ID, tweet.ID))
			}
		}
	}

	lat := make([]time.Duration, 0, N)
	for i := 0; i < N; i++ {
		start := time.Now()
		feed := must(feedSvc.UserFeed(ctx, reader.ID))
		lat = append(lat, time.Since(start))
		if len(feed) != F*T {
			panic(fmt.Sprintf("feed size %d, want %d", len(feed), F*T))
		}
	}

	sort.Slice(lat, func(i, j int) bool { return lat[i] < lat[j] })
	pct := func(p float64) time.Duration { return lat[int(float64(len(lat)-1)*p)] }
	fmt.Printf("feed: followees=%d tweets/author=%d likes/tweet=%d runs=%d\n", F, T, L, N)
	fmt.Printf("p50=%v p90=%v p99=%v max=%v\n", pct(0.50), pct(0.90), pct(0.99), lat[len(lat)-1])
}

type nopStore struct{}

func (nopStore) Save(_ context.Context, filename string, _ io.Reader) (string, error) {
	return filename, nil
}
