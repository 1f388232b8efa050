package models

import "github.com/google/uuid"

// CategoryAggregate is a derived (category, total) pair computed fresh per
// query; it is never persisted.
type CategoryAggregate struct {
	CategoryID uuid.UUID `json:"category"`
	Total      int64     `json:"money__sum"`
}
