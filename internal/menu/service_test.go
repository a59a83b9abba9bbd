package menu

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testContext() context.Context {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}).
		WithContext(context.Background())
}

type fakeRepository struct {
	items      []Item
	offers     []Offer
	findCalls  int
	offerCalls int
}

func (r *fakeRepository) FindMenuItems(c context.Context) ([]Item, error) {
	r.findCalls++
	return r.items, nil
}

func (r *fakeRepository) FindOffers(c context.Context) ([]Offer, error) {
	r.offerCalls++
	return r.offers, nil
}

func (r *fakeRepository) InsertMenuItems(c context.Context, items []Item) (int64, error) {
	r.items = append(r.items, items...)
	return int64(len(items)), nil
}

func (r *fakeRepository) InsertOffers(c context.Context, offers []Offer) (int64, error) {
	r.offers = append(r.offers, offers...)
	return int64(len(offers)), nil
}

func (r *fakeRepository) CountMenuItems(c context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func setupRedis(t *testing.T, c context.Context) *redis.Client {
	t.Helper()

	container, err := testRedis.Run(c, "redis:7.4.2-alpine3.21")
	if err != nil {
		t.Fatalf("failed running redis container with error: %s", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	})

	connStr, err := container.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting redis connection string with error: %s", err)
	}

	opt, err := redis.ParseURL(connStr)
	if err != nil {
		t.Fatalf("failed parsing redis connection string with error: %s", err)
	}

	client := redis.NewClient(opt)
	t.Cleanup(func() { client.Close() })
	if err = client.Ping(c).Err(); err != nil {
		t.Fatalf("failed ping redis client with error: %s", err)
	}
	return client
}

var seedItems = []Item{
	{
		ID:       primitive.NewObjectID(),
		Category: "Chicken",
		Title:    "Chicken Zinger Burger",
		Image:    "https://images.quickbite.dev/menu/chicken-zinger-burger.jpg",
		Type:     "non-veg",
		Items:    "1 Chicken Zinger Burger",
		Amount:   159,
	},
	{
		ID:       primitive.NewObjectID(),
		Category: "Snacks",
		Title:    "French Fries (Large)",
		Image:    "https://images.quickbite.dev/menu/french-fries.jpg",
		Type:     "veg",
		Items:    "1 Large Fries",
		Amount:   109,
	},
}

var seedOffers = []Offer{
	{
		ID:        primitive.NewObjectID(),
		Title:     "Wednesday Bucket Deal",
		Desc:      "Flat 20% off on every chicken bucket, all day Wednesday.",
		ValidTill: "2026-12-31",
		Terms:     []string{"Valid only on Wednesdays."},
		Image:     "https://images.quickbite.dev/offers/wednesday-bucket.jpg",
	},
}

func TestFindMenuItems(t *testing.T) {
	t.Run("given no cache should read from the repository", func(t *testing.T) {
		repository := &fakeRepository{items: seedItems}
		service := NewService(repository, nil)

		items, err := service.FindMenuItems(testContext())

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, seedItems[0].ID.Hex(), items[0].ID)
		assert.Equal(t, "Chicken Zinger Burger", items[0].Title)
		assert.Equal(t, "159", items[0].Amount.String())
	})

	t.Run("given warm cache should not hit the repository again", func(t *testing.T) {
		if testing.Short() {
			t.Skip("skipping container test in short mode")
		}
		c := testContext()
		repository := &fakeRepository{items: seedItems}
		service := NewService(repository, setupRedis(t, c))

		first, err := service.FindMenuItems(c)
		require.NoError(t, err)
		second, err := service.FindMenuItems(c)
		require.NoError(t, err)

		assert.Equal(t, 1, repository.findCalls, "second read should be served from cache")
		require.Len(t, second, len(first))
		for i := range first {
			assert.Equal(t, first[i].ID, second[i].ID)
			assert.Equal(t, first[i].Title, second[i].Title)
			assert.True(t, first[i].Amount.Equal(second[i].Amount))
		}
	})
}

func TestFindOffers(t *testing.T) {
	t.Run("given no cache should read from the repository", func(t *testing.T) {
		repository := &fakeRepository{offers: seedOffers}
		service := NewService(repository, nil)

		offers, err := service.FindOffers(testContext())

		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, "Wednesday Bucket Deal", offers[0].Title)
	})

	t.Run("given warm cache should not hit the repository again", func(t *testing.T) {
		if testing.Short() {
			t.Skip("skipping container test in short mode")
		}
		c := testContext()
		repository := &fakeRepository{offers: seedOffers}
		service := NewService(repository, setupRedis(t, c))

		_, err := service.FindOffers(c)
		require.NoError(t, err)
		_, err = service.FindOffers(c)
		require.NoError(t, err)

		assert.Equal(t, 1, repository.offerCalls, "second read should be served from cache")
	})
}

func TestSeed(t *testing.T) {
	t.Run("given empty collections should insert fixtures", func(t *testing.T) {
		repository := &fakeRepository{}
		service := NewService(repository, nil)

		err := service.Seed(testContext(), seedItems, seedOffers)

		require.NoError(t, err)
		assert.Len(t, repository.items, 2)
		assert.Len(t, repository.offers, 1)
	})

	t.Run("given already seeded menu should be a no-op", func(t *testing.T) {
		repository := &fakeRepository{items: seedItems}
		service := NewService(repository, nil)

		err := service.Seed(testContext(), seedItems, seedOffers)

		require.NoError(t, err)
		assert.Len(t, repository.items, 2)
		assert.Empty(t, repository.offers)
	})
}
