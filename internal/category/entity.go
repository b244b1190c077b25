// AngelaMos | 2026
// entity.go

package category

import "time"

// BusinessCount is never stored; every read derives it with a COUNT so
// it cannot drift from the listings table.
type Category struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	BusinessCount int       `db:"business_count"`
	CreatedAt     time.Time `db:"created_at"`
}
