package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/roach88/cartstate/internal/cart"
)

// ErrNilAction is returned by Dispatch when given a nil action.
var ErrNilAction = errors.New("store: nil action")

// Listener is called after a dispatch that changed the state.
// prev and next are immutable snapshots.
type Listener func(prev, next *cart.State)

// Store holds the current cart state and its journal.
type Store struct {
	mu        sync.Mutex
	state     *cart.State
	history   []Record
	listeners map[int]Listener
	nextID    int

	ids    IDGenerator
	clock  Sequencer
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithInitialState seeds the store. A nil state means an empty cart.
func WithInitialState(s *cart.State) Option {
	return func(st *Store) {
		if s != nil {
			st.state = s
		}
	}
}

// WithIDGenerator sets the record ID generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(st *Store) {
		if g != nil {
			st.ids = g
		}
	}
}

// WithClock sets the sequence source for records.
func WithClock(c Sequencer) Option {
	return func(st *Store) {
		if c != nil {
			st.clock = c
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(st *Store) {
		if l != nil {
			st.logger = l
		}
	}
}

// New creates a store holding an empty cart in cart.DefaultCurrency.
func New(opts ...Option) *Store {
	st := &Store{
		state:     cart.New(),
		listeners: make(map[int]Listener),
		ids:       UUIDv7Generator{},
		clock:     NewClock(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// NewSilent creates a store whose logs are discarded.
func NewSilent(opts ...Option) *Store {
	return New(append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)...)
}

// State returns the current snapshot.
func (st *Store) State() *cart.State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

// History returns a copy of the journal in seq order.
func (st *Store) History() []Record {
	st.mu.Lock()
	defer st.mu.Unlock()
	return append([]Record(nil), st.history...)
}

// Subscribe registers fn and returns a function that unregisters it.
func (st *Store) Subscribe(fn Listener) (unsubscribe func()) {
	st.mu.Lock()
	defer st.mu.Unlock()

	id := st.nextID
	st.nextID++
	st.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			st.mu.Lock()
			defer st.mu.Unlock()
			delete(st.listeners, id)
		})
	}
}

// Dispatch applies a to the current state and returns the resulting
// snapshot.
//
// A rejected action leaves the state unchanged and returns the
// *cart.Error from the transition. Both outcomes are journaled. A
// cancelled context is checked before anything is applied or journaled.
// Listeners run after the mutex is released, only when the state changed.
func (st *Store) Dispatch(ctx context.Context, a cart.Action) (*cart.State, error) {
	if err := ctx.Err(); err != nil {
		return st.State(), fmt.Errorf("dispatch: %w", err)
	}
	if a == nil {
		return st.State(), ErrNilAction
	}

	st.mu.Lock()
	prev := st.state
	next, err := cart.Reduce(prev, a)

	rec := Record{
		ID:     st.ids.Generate(),
		Seq:    st.clock.Next(),
		Type:   a.Type(),
		Key:    a.TargetKey(),
		OK:     err == nil,
		Action: a,
	}
	if err != nil {
		rec.ErrCode = string(cart.CodeOf(err))
		next = prev
	}
	st.history = append(st.history, rec)
	st.state = next

	var notify []Listener
	if next != prev {
		notify = make([]Listener, 0, len(st.listeners))
		for i := 0; i < st.nextID; i++ {
			if fn, ok := st.listeners[i]; ok {
				notify = append(notify, fn)
			}
		}
	}
	st.mu.Unlock()

	if err != nil {
		st.logger.Warn("action rejected",
			"type", rec.Type,
			"key", rec.Key,
			"seq", rec.Seq,
			"code", rec.ErrCode,
			"error", err,
		)
		return next, err
	}

	st.logger.Debug("action applied",
		"type", rec.Type,
		"key", rec.Key,
		"seq", rec.Seq,
		"products", next.Len(),
		"currency", next.Currency(),
	)
	for _, fn := range notify {
		fn(prev, next)
	}
	return next, nil
}

// Add dispatches cart.AddProduct.
func (st *Store) Add(ctx context.Context, key string, e cart.Entry, currency string) (*cart.State, error) {
	return st.Dispatch(ctx, cart.AddProduct{Key: key, Entry: e, Currency: currency})
}

// Update dispatches cart.UpdateProduct.
func (st *Store) Update(ctx context.Context, key string, e cart.Entry) (*cart.State, error) {
	return st.Dispatch(ctx, cart.UpdateProduct{Key: key, Entry: e})
}

// Remove dispatches cart.RemoveProduct.
func (st *Store) Remove(ctx context.Context, key string) (*cart.State, error) {
	return st.Dispatch(ctx, cart.RemoveProduct{Key: key})
}

// Empty dispatches cart.EmptyCart.
func (st *Store) Empty(ctx context.Context) (*cart.State, error) {
	return st.Dispatch(ctx, cart.EmptyCart{})
}

// SetCurrency dispatches cart.ChangeCurrency.
func (st *Store) SetCurrency(ctx context.Context, currency string) (*cart.State, error) {
	return st.Dispatch(ctx, cart.ChangeCurrency{Currency: currency})
}
