package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pradyumyelame/EasyToStay/internal/auth"
	"github.com/pradyumyelame/EasyToStay/internal/cache"
	"github.com/pradyumyelame/EasyToStay/internal/config"
	"github.com/pradyumyelame/EasyToStay/internal/db"
	apperrors "github.com/pradyumyelame/EasyToStay/internal/errors"
	"github.com/pradyumyelame/EasyToStay/internal/events"
	"github.com/pradyumyelame/EasyToStay/internal/logger"
	"github.com/pradyumyelame/EasyToStay/internal/model"
	"github.com/pradyumyelame/EasyToStay/internal/service"
)

// SeedFixture is the document read from SEED_FILE or SEED_URL.
type SeedFixture struct {
	Users []SeedUser `json:"users"`
}

// SeedUser is a user to register along with the listings it owns.
type SeedUser struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Places   []SeedPlace `json:"places"`
}

// SeedPlace is a listing in the fixture.
type SeedPlace struct {
	Title       string          `json:"title"`
	Address     string          `json:"address"`
	Photos      []string        `json:"photos"`
	Description string          `json:"description"`
	Perks       []string        `json:"perks"`
	ExtraInfo   string          `json:"extraInfo"`
	CheckIn     string          `json:"checkIn"`
	CheckOut    string          `json:"checkOut"`
	MaxGuests   int             `json:"maxGuests"`
	Price       decimal.Decimal `json:"price"`
}

type seedStats struct {
	usersCreated  int
	usersSkipped  int
	placesCreated int
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx := context.Background()

	fixture, err := loadFixture(ctx, os.Getenv("SEED_FILE"), os.Getenv("SEED_URL"))
	if err != nil {
		zlog.Fatal("load fixture", zap.Error(err))
	}
	zlog.Info("fixture loaded", zap.Int("users", len(fixture.Users)))

	stores, closeStore, err := db.Open(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("database init", zap.Error(err))
	}
	defer func() { _ = closeStore(context.Background()) }()

	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := service.NewAuthService(stores.Users, tokens, nil, events.Nop{}, nil, zlog, cfg.Auth.BcryptCost)
	placeService := service.NewPlaceService(stores.Places, cache.New("", "", 0), 0, events.Nop{}, zlog)

	stats, err := seed(ctx, authService, placeService, fixture)
	if err != nil {
		zlog.Fatal("seed", zap.Error(err))
	}

	zlog.Info("seed completed",
		zap.Int("users_created", stats.usersCreated),
		zap.Int("users_skipped", stats.usersSkipped),
		zap.Int("places_created", stats.placesCreated))
}

// loadFixture reads the fixture from path, or fetches it from url when path is
// empty.
func loadFixture(ctx context.Context, path, url string) (*SeedFixture, error) {
	var body []byte
	switch {
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		body = data
	case url != "":
		data, err := fetchFixture(ctx, url)
		if err != nil {
			return nil, err
		}
		body = data
	default:
		return nil, errors.New("set SEED_FILE or SEED_URL")
	}

	var fixture SeedFixture
	if err := json.Unmarshal(body, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &fixture, nil
}

func fetchFixture(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fixture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fixture url returned status code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// seed registers every fixture user and creates its places. Users whose email
// already exists are skipped together with their places.
func seed(
	ctx context.Context,
	authService service.AuthService,
	placeService service.PlaceService,
	fixture *SeedFixture,
) (seedStats, error) {
	var stats seedStats
	for _, u := range fixture.Users {
		user, err := authService.Register(ctx, service.RegisterInput{
			Name:     u.Name,
			Email:    u.Email,
			Password: u.Password,
		})
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			stats.usersSkipped++
			continue
		}
		if err != nil {
			return stats, fmt.Errorf("register %s: %w", u.Email, err)
		}
		stats.usersCreated++

		for _, p := range u.Places {
			if _, err := placeService.Create(ctx, user.ID, model.PlaceFields{
				Title:       p.Title,
				Address:     p.Address,
				Photos:      p.Photos,
				Description: p.Description,
				Perks:       p.Perks,
				ExtraInfo:   p.ExtraInfo,
				CheckIn:     p.CheckIn,
				CheckOut:    p.CheckOut,
				MaxGuests:   p.MaxGuests,
				Price:       p.Price,
			}); err != nil {
				return stats, fmt.Errorf("create place %q for %s: %w", p.Title, u.Email, err)
			}
			stats.placesCreated++
		}
	}
	return stats, nil
}
