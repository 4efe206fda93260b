// Package main prints the dashboard totals of a user as JSON.
//
// Usage:
//
//	report -user <uuid> [-year 2024] [-invalidate]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/brokerdash/backend/config"
	"github.com/brokerdash/backend/internal/application/adapter"
	"github.com/brokerdash/backend/internal/application/usecase/dashboard"
	"github.com/brokerdash/backend/internal/infra/db"
	"github.com/brokerdash/backend/internal/integration/cache"
	"github.com/brokerdash/backend/internal/integration/entrypoint/dto"
	"github.com/brokerdash/backend/internal/integration/persistence"
)

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	userFlag := flag.String("user", "", "user id the report is computed for")
	yearFlag := flag.Int("year", 0, "reporting year, defaults to the current year")
	invalidate := flag.Bool("invalidate", false, "drop the cached reports of the user's team first")
	flag.Parse()

	if err := run(*userFlag, *yearFlag, *invalidate); err != nil {
		fmt.Fprintln(os.Stderr, "report:", err)
		os.Exit(1)
	}
}

func run(userID string, year int, invalidate bool) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid -user %q: %w", userID, err)
	}

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()

	var reportCache adapter.ReportCache
	if cfg.Redis.Enabled {
		client, err := db.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis connection failed, computing without cache", "error", err)
		} else {
			defer func() { _ = client.Close() }()
			reportCache = cache.NewRedisReportCache(client, cfg.Redis.TTL)
		}
	}

	userRepo := persistence.NewUserRepository(database.DB())
	user, err := userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if invalidate && reportCache != nil {
		if err := reportCache.InvalidateTeam(ctx, user.TeamID); err != nil {
			return err
		}
	}

	loader := dashboard.NewLoader(
		persistence.NewOperationRepository(database.DB()),
		persistence.NewExpenseRepository(database.DB()),
		userRepo,
		reportCache,
		nil,
	)

	input := dashboard.GetTotalsInput{User: user}
	if year != 0 {
		input.Year = &year
	}
	totals, err := dashboard.NewGetTotalsUseCase(loader).Execute(ctx, input)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.ToTotalsResponse(totals, user.CurrencySymbol))
}
