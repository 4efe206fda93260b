// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ReportKeyPrefix prefixes every report cache key.
const ReportKeyPrefix = "report"

// ReportCache stores computed reports keyed by team, user, year and report name.
type ReportCache interface {
	// Get loads a cached report into dest. It reports false on a miss.
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores a report under key.
	Set(ctx context.Context, key string, value any) error

	// InvalidateTeam drops every cached report of a team.
	InvalidateTeam(ctx context.Context, teamID uuid.UUID) error
}

// ReportKey builds the cache key of a report, e.g.
// "report:<team>:<user>:2024:series:broker_fee:cumulative".
func ReportKey(teamID, userID uuid.UUID, year int, report string, params ...string) string {
	parts := append([]string{ReportKeyPrefix, teamID.String(), userID.String(), strconv.Itoa(year), report}, params...)
	return strings.Join(parts, ":")
}

// TeamKeyPattern matches every report key of a team.
func TeamKeyPattern(teamID uuid.UUID) string {
	return ReportKeyPrefix + ":" + teamID.String() + ":*"
}
