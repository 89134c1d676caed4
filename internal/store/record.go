package store

import (
	"github.com/roach88/cartstate/internal/cart"
)

// Record is one journal entry. Rejected actions are journaled too, with
// OK false and the error code set.
type Record struct {
	ID      string `json:"id"`
	Seq     int64  `json:"seq"`
	Type    string `json:"type"`
	Key     string `json:"key,omitempty"`
	OK      bool   `json:"ok"`
	ErrCode string `json:"error_code,omitempty"`

	// Action is the dispatched action. Not serialized.
	Action cart.Action `json:"-"`
}

// Snapshot renders the record for canonical JSON.
// The ID is left out so snapshots do not depend on the generator.
func (r Record) Snapshot() map[string]any {
	out := map[string]any{
		"seq":  r.Seq,
		"type": r.Type,
		"ok":   r.OK,
	}
	if r.Key != "" {
		out["key"] = r.Key
	}
	if r.ErrCode != "" {
		out["error_code"] = r.ErrCode
	}
	return out
}
