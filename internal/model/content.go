package model

import (
	"time"

	"github.com/google/uuid"
)

// ContentItem is one editable text fragment of the public site. The tuple
// (page_name, section_name, content_key) is the lookup identity; duplicates
// are possible and lookups take at most one row.
type ContentItem struct {
	ID           uuid.UUID `json:"id" db:"id"`
	PageName     string    `json:"page_name" db:"page_name"`
	SectionName  string    `json:"section_name" db:"section_name"`
	ContentKey   string    `json:"content_key" db:"content_key"`
	ContentValue string    `json:"content_value" db:"content_value"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type ContentItemRequest struct {
	PageName     string `json:"page_name" binding:"required"`
	SectionName  string `json:"section_name" binding:"required"`
	ContentKey   string `json:"content_key" binding:"required"`
	ContentValue string `json:"content_value" binding:"required"`
}
