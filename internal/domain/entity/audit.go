package entity

import "time"

// Audit holds who created and last modified a row, and when.
type Audit struct {
	CreatedAt  time.Time
	CreatedBy  string
	ModifiedAt time.Time
	ModifiedBy string
}

// Stamp sets the audit fields for a write by actor at now. Creation fields
// are only filled on the first write.
func (a *Audit) Stamp(actor string, now time.Time) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
		a.CreatedBy = actor
	}
	a.ModifiedAt = now
	a.ModifiedBy = actor
}
