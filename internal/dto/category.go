package dto

import "github.com/google/uuid"

// CategoryResponse is the public projection of a category directory entry
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}
