// Package memory holds the entity tables of a store in process memory.
// Repositories store and hand out clones, so a caller can only change
// stored state through Create, Update and Delete.
package memory

import (
	"context"
	"sync"

	"github.com/thinkartha/smileybox/internal/domain/activity"
	"github.com/thinkartha/smileybox/internal/domain/invoice"
	"github.com/thinkartha/smileybox/internal/domain/organization"
	"github.com/thinkartha/smileybox/internal/domain/ticket"
	"github.com/thinkartha/smileybox/internal/domain/user"
	"github.com/thinkartha/smileybox/internal/shared/db"
)

// table keeps rows by id and remembers insertion order.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// values returns rows in insertion order.
func (t *table[T]) values() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

// snapshot copies the index. Rows are never mutated in place, so sharing
// them between the copy and the original is safe.
func (t *table[T]) snapshot() *table[T] {
	rows := make(map[string]T, len(t.rows))
	for k, v := range t.rows {
		rows[k] = v
	}
	return &table[T]{rows: rows, order: append([]string{}, t.order...)}
}

type state struct {
	organizations *table[*organization.Organization]
	users         *table[*user.User]
	tickets       *table[*ticket.Ticket]
	invoices      *table[*invoice.Invoice]
	activities    []*activity.Activity
	ticketSeq     int
	invoiceSeq    map[int]int
}

func (s *state) snapshot() *state {
	invoiceSeq := make(map[int]int, len(s.invoiceSeq))
	for k, v := range s.invoiceSeq {
		invoiceSeq[k] = v
	}
	return &state{
		organizations: s.organizations.snapshot(),
		users:         s.users.snapshot(),
		tickets:       s.tickets.snapshot(),
		invoices:      s.invoices.snapshot(),
		activities:    append([]*activity.Activity{}, s.activities...),
		ticketSeq:     s.ticketSeq,
		invoiceSeq:    invoiceSeq,
	}
}

var _ db.TransactionManager = (*Tables)(nil)

// Tables owns every record of one store.
type Tables struct {
	// txMu serializes transactions; mu guards the data itself.
	txMu sync.Mutex
	mu   sync.RWMutex
	data *state
}

func NewTables() *Tables {
	return &Tables{
		data: &state{
			organizations: newTable[*organization.Organization](),
			users:         newTable[*user.User](),
			tickets:       newTable[*ticket.Ticket](),
			invoices:      newTable[*invoice.Invoice](),
			activities:    []*activity.Activity{},
			invoiceSeq:    make(map[int]int),
		},
	}
}

// RunInTransaction executes fn with the tables snapshotted first. If fn
// returns an error or panics the snapshot is restored, so a failed mutation
// leaves no partial update. Nested calls join the outer transaction.
func (t *Tables) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if db.InTx(ctx) {
		return fn(ctx)
	}

	t.txMu.Lock()
	defer t.txMu.Unlock()

	t.mu.RLock()
	saved := t.data.snapshot()
	t.mu.RUnlock()

	restore := func() {
		t.mu.Lock()
		t.data = saved
		t.mu.Unlock()
	}

	defer func() {
		if r := recover(); r != nil {
			restore()
			panic(r)
		}
	}()

	if err = fn(db.WithTx(ctx)); err != nil {
		restore()
		return err
	}
	return nil
}

func (t *Tables) read(fn func(s *state)) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn(t.data)
}

func (t *Tables) write(fn func(s *state) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.data)
}

// Counts reports the number of rows per table.
type Counts struct {
	Organizations int
	Users         int
	Tickets       int
	Invoices      int
	Activities    int
}

func (t *Tables) Counts() Counts {
	var c Counts
	t.read(func(s *state) {
		c = Counts{
			Organizations: len(s.organizations.rows),
			Users:         len(s.users.rows),
			Tickets:       len(s.tickets.rows),
			Invoices:      len(s.invoices.rows),
			Activities:    len(s.activities),
		}
	})
	return c
}
