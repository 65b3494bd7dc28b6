// Package favorites keeps a favorite-aware item list in sync with its
// backing store: a toggle persists first, then flips the local flag and
// re-sorts, so a failed persist never moves the list.
package favorites

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrItemNotFound   = errors.New("item not found")
	ErrToggleInFlight = errors.New("toggle already in flight for item")
)

// Item is one entry of a favorite-sortable list
type Item struct {
	ID         uint
	IsFavorite bool
	CreatedAt  time.Time
}

// Reorder returns the list sorted with favorites before non-favorites and,
// within each group, newer items before older ones.
func Reorder(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsFavorite != out[j].IsFavorite {
			return out[i].IsFavorite
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// PersistFunc stores the new favorite value for an item
type PersistFunc func(ctx context.Context, id uint, favorite bool) error

// Toggler tracks a list and serializes toggles per item. Distinct items may
// toggle concurrently.
type Toggler struct {
	mu       sync.Mutex
	items    []Item
	inflight map[uint]struct{}
	persist  PersistFunc
	onError  func(id uint, err error)
}

// NewToggler creates a toggler over the given list. onError may be nil.
func NewToggler(items []Item, persist PersistFunc, onError func(id uint, err error)) *Toggler {
	return &Toggler{
		items:    Reorder(items),
		inflight: make(map[uint]struct{}),
		persist:  persist,
		onError:  onError,
	}
}

// Items returns a snapshot of the current list
func (t *Toggler) Items() []Item {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Item, len(t.items))
	copy(out, t.items)
	return out
}

// Toggle flips the favorite flag of the item with the given id. The flip is
// applied locally only after the persist call succeeds; on failure the list
// is left unchanged and the error callback fires.
func (t *Toggler) Toggle(ctx context.Context, id uint) error {
	t.mu.Lock()
	idx := t.indexOf(id)
	if idx < 0 {
		t.mu.Unlock()
		return ErrItemNotFound
	}
	if _, busy := t.inflight[id]; busy {
		t.mu.Unlock()
		return ErrToggleInFlight
	}
	t.inflight[id] = struct{}{}
	next := !t.items[idx].IsFavorite
	t.mu.Unlock()

	err := t.persist(ctx, id, next)

	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inflight, id)
	if err != nil {
		if t.onError != nil {
			t.onError(id, err)
		}
		return err
	}

	// The item cannot have been removed while the toggle was in flight, but
	// re-resolve the index in case other toggles re-sorted the list.
	if idx = t.indexOf(id); idx >= 0 {
		t.items[idx].IsFavorite = next
		t.items = Reorder(t.items)
	}
	return nil
}

func (t *Toggler) indexOf(id uint) int {
	for i := range t.items {
		if t.items[i].ID == id {
			return i
		}
	}
	return -1
}
