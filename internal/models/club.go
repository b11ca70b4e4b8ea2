package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Club is the tenant entity. Rows are provisioned by the seed CLI and never
// mutated by the CRUD API.
type Club struct {
	bun.BaseModel `bun:"table:clubs,alias:club"`

	ID           string    `bun:"id,pk" json:"id"`
	Name         string    `bun:"name,unique,notnull" json:"name"`
	Username     string    `bun:"username,unique,notnull" json:"username"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"-"`
}
