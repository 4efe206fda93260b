package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/brokerdash/backend/internal/application/adapter"
)

type report struct {
	Total string `json:"total"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T, ttl time.Duration) (adapter.ReportCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisReportCache(client, ttl), mr
}

func TestRedisReportCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, time.Minute)
	key := adapter.ReportKey(uuid.New(), uuid.New(), 2024, "totals")

	var miss report
	hit, err := c.Get(ctx, key, &miss)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit {
		t.Fatal("expected a miss on an empty cache")
	}

	if err := c.Set(ctx, key, report{Total: "6000.00", Count: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got report
	hit, err = c.Get(ctx, key, &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hit {
		t.Fatal("expected a hit after Set")
	}
	if got.Total != "6000.00" || got.Count != 2 {
		t.Errorf("unexpected report %+v", got)
	}

	if ttl := mr.TTL(key); ttl != time.Minute {
		t.Errorf("expected ttl %s, got %s", time.Minute, ttl)
	}

	mr.FastForward(2 * time.Minute)
	hit, err = c.Get(ctx, key, &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit {
		t.Error("expected the entry to expire")
	}
}

func TestRedisReportCache_CorruptedEntry(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, 0)
	key := adapter.ReportKey(uuid.New(), uuid.New(), 2024, "totals")

	if err := mr.Set(key, "not json"); err != nil {
		t.Fatalf("failed to seed redis: %v", err)
	}

	var got report
	hit, err := c.Get(ctx, key, &got)
	if err == nil {
		t.Fatal("expected an unmarshal error")
	}
	if hit {
		t.Error("expected a corrupted entry to be a miss")
	}
	if mr.Exists(key) {
		t.Error("expected the corrupted entry to be deleted")
	}
}

func TestRedisReportCache_InvalidateTeam(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, time.Minute)
	team, otherTeam := uuid.New(), uuid.New()
	user := uuid.New()

	keys := []string{
		adapter.ReportKey(team, user, 2024, "totals"),
		adapter.ReportKey(team, user, 2024, "series", "broker_fee", "monthly"),
		adapter.ReportKey(team, uuid.New(), 2023, "ranking"),
	}
	for i := 0; i < 250; i++ {
		keys = append(keys, adapter.ReportKey(team, user, 2000+i%50, "kpis", uuid.NewString()))
	}
	for _, k := range keys {
		if err := c.Set(ctx, k, report{Count: 1}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	kept := adapter.ReportKey(otherTeam, user, 2024, "totals")
	if err := c.Set(ctx, kept, report{Count: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.InvalidateTeam(ctx, team); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, k := range keys {
		if mr.Exists(k) {
			t.Errorf("expected %s to be invalidated", k)
		}
	}
	if !mr.Exists(kept) {
		t.Error("expected the other team's report to survive")
	}
}
