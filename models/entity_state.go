package models

import "time"

// EntityState is a lightweight state descriptor for one record: enough for
// sync bookkeeping without carrying the full payload.
type EntityState struct {
	Kind      EntityKind `json:"kind"`
	ID        string     `json:"id"`
	Hash      string     `json:"hash"`
	Version   int64      `json:"version"`
	Deleted   bool       `json:"deleted"`
	Dirty     bool       `json:"dirty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Ref returns the EntityRef identifying the described record.
func (s EntityState) Ref() EntityRef {
	return EntityRef{Kind: s.Kind, ID: s.ID}
}
