// Package requestinfo implements the "Request More Information" form: a
// single address field whose submissions trigger lookups, with results
// pushed to registered observers as user-facing status labels.
package requestinfo

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dukerupert/brochure/internal/domain"
)

const (
	// Title is the heading shown above the form.
	Title = "Request More Information"

	// StatusSent is shown when the address resolved to a known location.
	StatusSent = "Brochure sent"

	// StatusNotFound is shown when the geocoder had no match.
	StatusNotFound = "Address not found"
)

// Lookuper reports whether an address is known. service.LookupService satisfies it.
type Lookuper interface {
	Lookup(ctx context.Context, query string) (bool, error)
}

// Result is delivered to observers once per completed, non-superseded search.
type Result struct {
	Query  string
	Found  bool
	Status string
	Err    error
}

// StatusFor maps a lookup outcome to the label shown to the user.
func StatusFor(found bool, err error) string {
	if err != nil {
		return domain.ErrorMessage(err)
	}
	if found {
		return StatusSent
	}
	return StatusNotFound
}

type observer struct {
	id int
	fn func(Result)
}

// Form holds the current address value and runs lookups when searched.
// A new Search supersedes the previous one: its context is canceled and
// its result is never delivered.
type Form struct {
	lookuper Lookuper
	logger   *slog.Logger

	mu         sync.Mutex
	address    string
	observers  []observer
	nextID     int
	generation uint64
	cancel     context.CancelFunc
	closed     bool

	// deliverMu serializes delivery so observers see results in trigger order.
	deliverMu sync.Mutex
	wg        sync.WaitGroup
}

// New creates a form. A non-empty initial value presets the address field.
// logger may be nil.
func New(lookuper Lookuper, initial string, logger *slog.Logger) *Form {
	if logger == nil {
		logger = slog.Default()
	}
	return &Form{
		lookuper: lookuper,
		logger:   logger,
		address:  initial,
	}
}

// Address returns the current value of the address field.
func (f *Form) Address() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.address
}

// SetAddress replaces the value of the address field.
func (f *Form) SetAddress(value string) {
	f.mu.Lock()
	f.address = value
	f.mu.Unlock()
}

// Subscribe registers fn to receive results. The returned function removes it.
// fn is called from a lookup goroutine and must not block for long. fn may
// call SetAddress, Search, Close or the unsubscribe function, but must not
// call Wait, which would block on the delivery that invoked fn.
func (f *Form) Subscribe(fn func(Result)) (unsubscribe func()) {
	f.mu.Lock()
	f.nextID++
	id := f.nextID
	f.observers = append(f.observers, observer{id: id, fn: fn})
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			for i, o := range f.observers {
				if o.id == id {
					f.observers = append(f.observers[:i:i], f.observers[i+1:]...)
					return
				}
			}
		})
	}
}

// Search triggers a lookup of the current address and returns immediately.
// It is a no-op after Close.
func (f *Form) Search(ctx context.Context) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	if f.cancel != nil {
		f.cancel()
	}
	f.generation++
	gen := f.generation
	query := f.address
	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.wg.Add(1)
	f.mu.Unlock()

	go func() {
		defer f.wg.Done()
		defer cancel()

		found, err := f.lookuper.Lookup(ctx, query)
		if err != nil {
			f.logger.Debug("address lookup failed",
				"code", domain.ErrorCode(err),
				"op", domain.ErrorOp(err),
				"error", err,
			)
		}

		f.deliver(gen, Result{
			Query:  query,
			Found:  found,
			Status: StatusFor(found, err),
			Err:    err,
		})
	}()
}

func (f *Form) deliver(gen uint64, res Result) {
	f.deliverMu.Lock()
	defer f.deliverMu.Unlock()

	f.mu.Lock()
	if gen != f.generation {
		f.mu.Unlock()
		return
	}
	observers := append([]observer(nil), f.observers...)
	f.mu.Unlock()

	for _, o := range observers {
		o.fn(res)
	}
}

// Wait blocks until every triggered lookup has finished.
func (f *Form) Wait() {
	f.wg.Wait()
}

// Close cancels the in-flight lookup and stops accepting searches. No result
// is delivered once Close returns, other than one whose callbacks were
// already running. Close does not block; call Wait to let the canceled
// lookup goroutine finish.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	if f.cancel != nil {
		f.cancel()
	}
	f.generation++
}
