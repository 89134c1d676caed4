package store

import (
	"context"
	"fmt"

	"github.com/roach88/cartstate/internal/cart"
)

// ReplayResult is the outcome of rebuilding a state from a journal.
type ReplayResult struct {
	State    *cart.State
	Applied  int
	Rejected int
	LastSeq  int64
}

// Replay applies the actions of records, in seq order, to initial.
//
// Records that were rejected originally must be rejected again with the
// same code, and accepted ones must be accepted again; any divergence is
// an error. Records without an Action cannot be replayed.
func Replay(ctx context.Context, initial *cart.State, records []Record) (ReplayResult, error) {
	res := ReplayResult{State: initial}
	if res.State == nil {
		res.State = cart.New()
	}

	var lastSeq int64
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("replay: %w", err)
		}
		if rec.Action == nil {
			return res, fmt.Errorf("replay: record seq=%d has no action", rec.Seq)
		}
		if rec.Seq <= lastSeq {
			return res, fmt.Errorf("replay: record seq=%d out of order after seq=%d", rec.Seq, lastSeq)
		}
		lastSeq = rec.Seq

		next, err := cart.Reduce(res.State, rec.Action)
		code := string(cart.CodeOf(err))
		switch {
		case rec.OK && err != nil:
			return res, fmt.Errorf("replay: seq=%d %s was accepted, now rejected: %w", rec.Seq, rec.Type, err)
		case !rec.OK && code != rec.ErrCode:
			return res, fmt.Errorf("replay: seq=%d %s expected error %q, got %q", rec.Seq, rec.Type, rec.ErrCode, code)
		}

		if err != nil {
			res.Rejected++
		} else {
			res.Applied++
			res.State = next
		}
		res.LastSeq = rec.Seq
	}
	return res, nil
}
