package bunsource

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record is a stored post. Body holds the raw markdown including any front
// matter block.
type Record struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID        uuid.UUID `bun:",pk,type:uuid"                                  json:"id"`
	Slug      string    `bun:"slug,notnull,unique"                            json:"slug"`
	Body      string    `bun:"body,notnull"                                   json:"body"`
	Position  int       `bun:"position,notnull,default:0"                     json:"position"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}
