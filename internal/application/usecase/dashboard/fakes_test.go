package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brokerdash/backend/internal/domain/entity"
)

type fakeOperationRepo struct {
	ops        []entity.Operation
	err        error
	teamCalls  int
	ownerCalls int
	mu         sync.Mutex
}

func (r *fakeOperationRepo) FindByTeam(_ context.Context, teamID uuid.UUID) ([]entity.Operation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teamCalls++
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.Operation
	for _, op := range r.ops {
		if op.TeamID == teamID {
			out = append(out, op)
		}
	}
	return out, nil
}

func (r *fakeOperationRepo) FindByAdvisor(_ context.Context, advisorID uuid.UUID) ([]entity.Operation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ownerCalls++
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.Operation
	for _, op := range r.ops {
		if op.Involves(advisorID) {
			out = append(out, op)
		}
	}
	return out, nil
}

type fakeExpenseRepo struct {
	expenses []entity.Expense
}

func (r *fakeExpenseRepo) FindByUser(_ context.Context, userID uuid.UUID, year int) ([]entity.Expense, error) {
	var out []entity.Expense
	for _, e := range r.expenses {
		if e.UserID == userID && e.Date.Year() == year {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeExpenseRepo) FindByTeam(_ context.Context, teamID uuid.UUID, year int) ([]entity.Expense, error) {
	var out []entity.Expense
	for _, e := range r.expenses {
		if e.TeamID == teamID && e.Date.Year() == year {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users []*entity.UserContext
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.UserContext, error) {
	for _, u := range r.users {
		if u.UserID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByTeam(_ context.Context, teamID uuid.UUID) ([]*entity.UserContext, error) {
	var out []*entity.UserContext
	for _, u := range r.users {
		if u.TeamID == teamID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindTeamLeaders(_ context.Context) ([]*entity.UserContext, error) {
	var out []*entity.UserContext
	for _, u := range r.users {
		if u.IsTeamLeader() {
			out = append(out, u)
		}
	}
	return out, nil
}

// memoryCache round-trips through JSON like the redis cache does.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return false, errors.New("cache unavailable")
	}
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) InvalidateTeam(_ context.Context, _ uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]byte)
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type fixture struct {
	teamID   uuid.UUID
	leader   *entity.UserContext
	advisorA *entity.UserContext
	advisorB *entity.UserContext
	ops      *fakeOperationRepo
	expenses *fakeExpenseRepo
	users    *fakeUserRepo
	cache    *memoryCache
	loader   *Loader
}

func pct(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func day(year, month, d int) *time.Time {
	t := time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newFixture() *fixture {
	teamID := uuid.New()
	leader := &entity.UserContext{UserID: uuid.New(), TeamID: teamID, Name: "Lena", Role: entity.RoleTeamLeader, Objective: decimal.NewFromInt(36000)}
	a := &entity.UserContext{UserID: uuid.New(), TeamID: teamID, Name: "Ana", Role: entity.RoleAdvisor}
	b := &entity.UserContext{UserID: uuid.New(), TeamID: teamID, Name: "Bruno", Role: entity.RoleAdvisor}

	op := func(advisor uuid.UUID, value int64, status entity.OperationStatus, closing *time.Time) entity.Operation {
		return entity.Operation{
			ID:          uuid.New(),
			TeamID:      teamID,
			Type:        entity.OperationTypeSale,
			Status:      status,
			Value:       decimal.NewFromInt(value),
			BrokerPct:   pct("6"),
			AdvisorPct:  pct("50"),
			ClosingDate: closing,
			AdvisorID:   advisor,
			BuyerSide:   true,
		}
	}

	sharedSale := op(a.UserID, 200000, entity.OperationStatusClosed, day(2024, 2, 1))
	sharedSale.SecondaryAdvisorID = &b.UserID
	sharedSale.SecondaryAdvisorPct = pct("25")
	sharedSale.CaptureDate = day(2024, 1, 1)
	sharedSale.ReservationDate = day(2024, 1, 21)
	sharedSale.Exclusive = true

	ops := &fakeOperationRepo{ops: []entity.Operation{
		op(a.UserID, 100000, entity.OperationStatusClosed, day(2024, 1, 1)),
		sharedSale,
		op(b.UserID, 100000, entity.OperationStatusOpen, day(2024, 3, 1)),
		op(a.UserID, 50000, entity.OperationStatusFallen, day(2024, 4, 1)),
		op(a.UserID, 100000, entity.OperationStatusClosed, day(2023, 12, 1)),
		op(uuid.New(), 999999, entity.OperationStatusClosed, day(2024, 1, 1)),
	}}
	// The last operation belongs to another team.
	ops.ops[5].TeamID = uuid.New()

	expenses := &fakeExpenseRepo{expenses: []entity.Expense{
		{ID: uuid.New(), UserID: a.UserID, TeamID: teamID, Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(1000), Category: entity.ExpenseCategoryMarketing, Association: entity.ExpenseAssociationPersonal},
		{ID: uuid.New(), UserID: leader.UserID, TeamID: teamID, Date: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(500), Category: entity.ExpenseCategoryOffice, Association: entity.ExpenseAssociationTeam},
	}}
	users := &fakeUserRepo{users: []*entity.UserContext{leader, a, b}}
	cache := newMemoryCache()

	return &fixture{
		teamID:   teamID,
		leader:   leader,
		advisorA: a,
		advisorB: b,
		ops:      ops,
		expenses: expenses,
		users:    users,
		cache:    cache,
		loader:   NewLoader(ops, expenses, users, cache, fixedClock{now: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)}),
	}
}

func yearPtr(y int) *int {
	return &y
}
