package harness

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/cartstate/internal/cart"
	"github.com/roach88/cartstate/internal/catalog"
	"github.com/roach88/cartstate/internal/ir"
	"github.com/roach88/cartstate/internal/store"
	"github.com/roach88/cartstate/internal/testutil"
)

// Harness executes one scenario against a fresh store.
type Harness struct {
	store   *store.Store
	catalog *catalog.Catalog
	clock   *testutil.DeterministicClock
	logger  *slog.Logger
	changed bool
}

// Option configures Run.
type Option func(*Harness)

// WithLogger sets the logger for step logs and the store.
// Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		if l != nil {
			h.logger = l
		}
	}
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Load the catalog, if any
//  2. Create a store with deterministic clock and IDs
//  3. Dispatch each flow step and check its expect clause
//  4. Replay the journal and check it rebuilds the final state
//  5. Evaluate assertions against the final state
//
// Step and assertion failures are reported in the Result. An error is
// returned only when the scenario cannot be executed at all.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	h := &Harness{
		clock:  testutil.NewDeterministicClock(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	for _, opt := range opts {
		opt(h)
	}

	if scenario.Catalog != "" {
		c, err := catalog.Load(scenario.Catalog)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		h.catalog = c
	}

	initial := cart.New()
	if scenario.Currency != "" {
		initial = cart.NewWithCurrency(scenario.Currency)
	}
	h.store = store.New(
		store.WithInitialState(initial),
		store.WithClock(h.clock),
		store.WithIDGenerator(testutil.NewSequentialIDGenerator(scenario.Name)),
		store.WithLogger(h.logger),
	)
	unsubscribe := h.store.Subscribe(func(_, _ *cart.State) { h.changed = true })
	defer unsubscribe()

	ctx := context.Background()
	result := NewResult()
	if err := h.executeFlow(ctx, scenario.Flow, result); err != nil {
		return nil, fmt.Errorf("failed to execute flow: %w", err)
	}

	result.State = h.store.State()
	result.History = h.store.History()

	if err := verifyReplay(ctx, initial, result); err != nil {
		result.AddError(err.Error())
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}
	return result, nil
}

// executeFlow dispatches every step and validates expect clauses.
func (h *Harness) executeFlow(ctx context.Context, flow []FlowStep, result *Result) error {
	for i, step := range flow {
		action, err := h.buildAction(step)
		if err != nil {
			result.AddError(fmt.Sprintf("flow[%d]: %v", i, err))
			continue
		}

		h.changed = false
		state, dispatchErr := h.store.Dispatch(ctx, action)
		if dispatchErr != nil && cart.CodeOf(dispatchErr) == "" {
			return fmt.Errorf("flow[%d]: %w", i, dispatchErr)
		}

		history := h.store.History()
		rec := history[len(history)-1]
		result.Trace = append(result.Trace, TraceEvent{
			Seq:     rec.Seq,
			Type:    rec.Type,
			Key:     rec.Key,
			OK:      rec.OK,
			ErrCode: rec.ErrCode,
			Changed: h.changed,
			Total:   cart.Total(state).String(),
			Count:   state.Len(),
		})

		expected := ""
		if step.Expect != nil {
			expected = step.Expect.Error
		}
		if rec.ErrCode != expected {
			result.AddError(fmt.Sprintf("flow[%d] %s: expected error %q, got %q", i, rec.Type, expected, rec.ErrCode))
		}

		h.logger.Info("flow step completed",
			"step", i,
			"type", rec.Type,
			"key", rec.Key,
			"seq", rec.Seq,
			"ok", rec.OK,
		)
	}
	return nil
}

// buildAction turns a flow step into a cart action.
func (h *Harness) buildAction(step FlowStep) (cart.Action, error) {
	switch {
	case step.Add != nil:
		return cart.AddProduct{
			Key:      step.Add.ResolvedKey(),
			Entry:    step.Add.Entry,
			Currency: step.Add.Currency,
		}, nil

	case step.Select != nil:
		if h.catalog == nil {
			return nil, fmt.Errorf("select requires a catalog")
		}
		product, ok := h.catalog.Lookup(step.Select.Product)
		if !ok {
			return nil, fmt.Errorf("unknown product %q", step.Select.Product)
		}
		quantity := int64(1)
		if step.Select.Quantity != nil {
			quantity = *step.Select.Quantity
		}
		key, entry, err := catalog.Resolve(product, step.Select.Options, quantity)
		if err != nil {
			return nil, err
		}
		currency := step.Select.Currency
		if currency == "" {
			currency = h.catalog.Currency
		}
		return cart.AddProduct{Key: key, Entry: entry, Currency: currency}, nil

	case step.Update != nil:
		return cart.UpdateProduct{Key: step.Update.ResolvedKey(), Entry: step.Update.Entry}, nil

	case step.Remove != "":
		return cart.RemoveProduct{Key: step.Remove}, nil

	case step.Empty:
		return cart.EmptyCart{}, nil

	case step.SetCurrency != "":
		return cart.ChangeCurrency{Currency: step.SetCurrency}, nil
	}
	return nil, fmt.Errorf("step has no action")
}

// verifyReplay rebuilds the cart from result.History and compares it with
// result.State.
func verifyReplay(ctx context.Context, initial *cart.State, result *Result) error {
	replayed, err := store.Replay(ctx, initial, result.History)
	if err != nil {
		return err
	}
	want, err := ir.MarshalCanonical(result.State.Snapshot())
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	got, err := ir.MarshalCanonical(replayed.State.Snapshot())
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	if !bytes.Equal(want, got) {
		return fmt.Errorf("replay: rebuilt cart differs from final cart")
	}
	return nil
}
