package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Event is a single scheduled activity owned by exactly one club. Ownership
// is fixed at insert time; Date is stored in canonical YYYY-MM-DD form so
// plain string ordering sorts chronologically.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:event"`

	ID           string    `bun:"id,pk" json:"id"`
	ClubID       string    `bun:"club_id,notnull" json:"club_id"`
	Title        string    `bun:"title,notnull" json:"title"`
	Date         string    `bun:"date,notnull" json:"date"`
	Time         string    `bun:"time,notnull" json:"time"`
	Venue        string    `bun:"venue,notnull" json:"venue"`
	Category     string    `bun:"category,notnull" json:"category"`
	Organizer    string    `bun:"organizer,notnull" json:"organizer"`
	Registration string    `bun:"registration,notnull" json:"registration"`
	Description  *string   `bun:"description" json:"description"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,notnull" json:"updated_at"`

	// ClubName is filled by the public listing join, not a stored column.
	ClubName string `bun:"club_name,scanonly" json:"club_name,omitempty"`
}
