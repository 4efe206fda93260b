package db

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPostgresHealthCheck(t *testing.T) {
	gormDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	check := PostgresHealthCheck(gormDB)
	if !check() {
		t.Error("expected a healthy connection")
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = sqlDB.Close()

	if check() {
		t.Error("expected the health check to fail once the connection is closed")
	}
}

func TestQueryLogger(t *testing.T) {
	tests := []struct {
		name      string
		threshold time.Duration
		expectLog bool
	}{
		{name: "slow queries are logged", threshold: time.Nanosecond, expectLog: true},
		{name: "zero threshold is silent", threshold: 0, expectLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			previous := slog.Default()
			slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
			defer slog.SetDefault(previous)

			gormDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
				Logger: queryLogger(tt.threshold),
			})
			if err != nil {
				t.Fatalf("failed to open database: %v", err)
			}

			var one int
			if err := gormDB.Raw("SELECT 1").Scan(&one).Error; err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			logged := strings.Contains(buf.String(), "SLOW SQL")
			if logged != tt.expectLog {
				t.Errorf("expected slow query logged %v, got %v (%q)", tt.expectLog, logged, buf.String())
			}
		})
	}
}
