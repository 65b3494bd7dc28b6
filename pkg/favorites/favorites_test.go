package favorites

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []Item {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []Item{
		{ID: 1, IsFavorite: false, CreatedAt: base.Add(3 * time.Hour)},
		{ID: 2, IsFavorite: true, CreatedAt: base.Add(1 * time.Hour)},
		{ID: 3, IsFavorite: false, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 4, IsFavorite: true, CreatedAt: base.Add(4 * time.Hour)},
	}
}

func ids(items []Item) []uint {
	out := make([]uint, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestReorder(t *testing.T) {
	got := Reorder(sampleItems())
	// favorites first, newest first within each group
	assert.Equal(t, []uint{4, 2, 1, 3}, ids(got))
}

func TestReorderDoesNotMutateInput(t *testing.T) {
	in := sampleItems()
	_ = Reorder(in)
	assert.Equal(t, []uint{1, 2, 3, 4}, ids(in))
}

func TestToggleSuccess(t *testing.T) {
	var persisted []uint
	tg := NewToggler(sampleItems(), func(ctx context.Context, id uint, fav bool) error {
		persisted = append(persisted, id)
		return nil
	}, nil)

	require.NoError(t, tg.Toggle(context.Background(), 3))
	assert.Equal(t, []uint{3}, persisted)
	// 3 is now a favorite, older than 4 but sorted into the favorite group
	assert.Equal(t, []uint{4, 3, 2, 1}, ids(tg.Items()))
}

func TestToggleTwiceRestoresOrder(t *testing.T) {
	tg := NewToggler(sampleItems(), func(context.Context, uint, bool) error { return nil }, nil)
	before := ids(tg.Items())

	require.NoError(t, tg.Toggle(context.Background(), 3))
	require.NoError(t, tg.Toggle(context.Background(), 3))

	assert.Equal(t, before, ids(tg.Items()))
}

func TestTogglePersistFailureLeavesListUnchanged(t *testing.T) {
	boom := errors.New("write failed")
	var reportedID uint
	var reportedErr error
	tg := NewToggler(sampleItems(), func(context.Context, uint, bool) error { return boom }, func(id uint, err error) {
		reportedID = id
		reportedErr = err
	})
	before := ids(tg.Items())

	err := tg.Toggle(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint(1), reportedID)
	assert.ErrorIs(t, reportedErr, boom)
	assert.Equal(t, before, ids(tg.Items()))
}

func TestToggleUnknownItem(t *testing.T) {
	tg := NewToggler(sampleItems(), func(context.Context, uint, bool) error { return nil }, nil)
	assert.ErrorIs(t, tg.Toggle(context.Background(), 99), ErrItemNotFound)
}

func TestToggleSerializedPerItem(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	tg := NewToggler(sampleItems(), func(ctx context.Context, id uint, fav bool) error {
		if id == 1 {
			close(started)
			<-release
		}
		return nil
	}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = tg.Toggle(context.Background(), 1)
	}()

	<-started
	// same item is rejected while in flight
	assert.ErrorIs(t, tg.Toggle(context.Background(), 1), ErrToggleInFlight)
	// a different item may proceed
	assert.NoError(t, tg.Toggle(context.Background(), 2))

	close(release)
	wg.Wait()
}
