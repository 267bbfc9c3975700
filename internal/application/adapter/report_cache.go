// Package adapter defines interfaces for external dependencies.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// ReportCache caches serialized monthly reports per user. Payloads are
// opaque bytes; the report use case owns the encoding. Implementations
// must treat a miss as (nil, false, nil), not as an error.
type ReportCache interface {
	// GetMonthlyReport returns the cached payload for the user's report,
	// or found=false when no current entry exists.
	GetMonthlyReport(ctx context.Context, userID uuid.UUID, year, month int) (payload []byte, found bool, err error)

	// SetMonthlyReport stores the payload under the user's current cache
	// generation with the implementation's TTL.
	SetMonthlyReport(ctx context.Context, userID uuid.UUID, year, month int, payload []byte) error

	// InvalidateUserReports drops all cached reports for the user. Called
	// after any write to the user's ledger.
	InvalidateUserReports(ctx context.Context, userID uuid.UUID) error
}
