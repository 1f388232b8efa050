package models

import (
	"time"

	"github.com/google/uuid"
)

// ExpenditureFilters is the per-request filter conjunction applied to a scan.
// UserID and the date range are always present; the owner clause is injected
// by the service from the authenticated identity and is not client-suppliable.
type ExpenditureFilters struct {
	UserID     uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	CategoryID *uuid.UUID
	MinAmount  *int64
	MaxAmount  *int64
	// SumOnly restricts the scan to records with include_in_sum = true; the
	// aggregation path always sets it.
	SumOnly bool
}
