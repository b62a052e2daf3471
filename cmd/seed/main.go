// Command seed loads a YAML fixture (house, rooms, guests) into the
// database and prints a token for the house owner.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"guesthouse/internal/config"
	"guesthouse/internal/database"
	"guesthouse/internal/domain"
	"guesthouse/internal/modules/guest"
	"guesthouse/internal/modules/house"
	"guesthouse/internal/modules/room"
	"guesthouse/internal/pkg/clock"
	jwtsvc "guesthouse/internal/pkg/jwt"
	"guesthouse/internal/pkg/lock"
	"guesthouse/internal/pkg/logger"
	"guesthouse/internal/repository"
)

type fixture struct {
	House struct {
		Name    string `yaml:"name"`
		Address string `yaml:"address"`
		Owner   string `yaml:"owner"`
	} `yaml:"house"`
	Rooms []struct {
		Number string `yaml:"number"`
		Type   string `yaml:"type"`
		Price  string `yaml:"price"`
	} `yaml:"rooms"`
	Guests []struct {
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
		Phone string `yaml:"phone"`
	} `yaml:"guests"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var filePath, dsn string
	flagSet := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	flagSet.StringVar(&filePath, "file", "cmd/seed/fixture.yaml", "path to the YAML fixture")
	flagSet.StringVar(&dsn, "db", cfg.DatabaseURL, "database DSN (postgres:// URL or SQLite file)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	fx, err := loadFixture(filePath)
	if err != nil {
		return err
	}

	zlog, err := logger.New(cfg.LogLevel, "console", "guesthouse-seed")
	if err != nil {
		return err
	}
	defer func() { _ = zlog.Sync() }()

	db, err := database.Connect(dsn, zlog)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	houseID, err := seed(context.Background(), repository.NewStore(db), fx, zlog)
	if err != nil {
		return err
	}

	token, err := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL).GenerateToken(fx.House.Owner)
	if err != nil {
		return err
	}
	fmt.Printf("house_id=%s\nowner=%s\ntoken=%s\n", houseID, fx.House.Owner, token)
	return nil
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var fx fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if fx.House.Owner == "" {
		return nil, fmt.Errorf("fixture %s: house.owner is required", path)
	}
	return &fx, nil
}

// seed goes through the services so the fixture obeys the same rules as
// API callers.
func seed(ctx context.Context, store *repository.Store, fx *fixture, log *zap.Logger) (string, error) {
	clk := clock.System{}
	owner := fx.House.Owner

	houseID, err := house.NewService(store, lock.NewLocal(), clk, log).
		InitHouse(ctx, owner, house.InitHouseRequest{Name: fx.House.Name, Address: fx.House.Address})
	if err != nil {
		return "", fmt.Errorf("init house: %w", err)
	}

	rooms := room.NewService(store, clk, log)
	for _, r := range fx.Rooms {
		id, err := rooms.AddRoom(ctx, owner, room.AddRoomRequest{
			HouseID:    houseID,
			RoomNumber: r.Number,
			Type:       domain.RoomType(r.Type),
			Price:      r.Price,
		})
		if err != nil {
			return "", fmt.Errorf("add room %s: %w", r.Number, err)
		}
		log.Info("room added", zap.String("room_id", id), zap.String("number", r.Number))
	}

	guests := guest.NewService(store, clk, log)
	for _, g := range fx.Guests {
		id, err := guests.AddGuest(ctx, guest.GuestRequestBody{Name: g.Name, Email: g.Email, Phone: g.Phone})
		if err != nil {
			return "", fmt.Errorf("add guest %s: %w", g.Name, err)
		}
		log.Info("guest added", zap.String("guest_id", id), zap.String("name", g.Name))
	}
	return houseID, nil
}
