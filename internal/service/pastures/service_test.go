package pastures

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/repository/kv"
)

func seedPastures() []models.Pasture {
	return []models.Pasture{
		{ID: "A", Name: "Pasto Sede A", Capacity: 25, Current: 20, Status: models.PastureOccupied},
		{ID: "B", Name: "Pasto Sede B", Capacity: 20, Current: 0, Status: models.PastureResting},
		{ID: "C", Name: "Confinamento", Capacity: 100, Current: 85, Status: models.PastureIntensive},
	}
}

func currents(t *testing.T, svc *Service) map[string]int {
	t.Helper()
	all, err := svc.List(context.Background())
	require.NoError(t, err)
	out := make(map[string]int, len(all))
	for _, p := range all {
		out[p.ID] = p.Current
	}
	return out
}

func TestMoveScenario(t *testing.T) {
	svc := NewService(kv.NewMemoryBackend(), seedPastures(), nil)

	res, err := svc.Move(context.Background(), "A", "B", 5)
	require.NoError(t, err)
	assert.Equal(t, 15, res.Origin.Current)
	assert.Equal(t, 5, res.Destination.Current)
	assert.Equal(t, map[string]int{"A": 15, "B": 5, "C": 85}, currents(t, svc))
}

func TestMoveDoesNotCheckDestinationCapacity(t *testing.T) {
	svc := NewService(kv.NewMemoryBackend(), seedPastures(), nil)
	res, err := svc.Move(context.Background(), "C", "B", 85)
	require.NoError(t, err)
	assert.Equal(t, 85, res.Destination.Current)
	assert.Greater(t, res.Destination.Current, res.Destination.Capacity)
}

func TestMoveInsufficientCapacityLeavesCountsUnchanged(t *testing.T) {
	svc := NewService(kv.NewMemoryBackend(), seedPastures(), nil)
	before := currents(t, svc)

	_, err := svc.Move(context.Background(), "A", "B", 21)
	assert.ErrorIs(t, err, models.ErrInsufficientCapacity)
	assert.Equal(t, before, currents(t, svc))
}

func TestMoveValidation(t *testing.T) {
	svc := NewService(kv.NewMemoryBackend(), seedPastures(), nil)
	ctx := context.Background()

	for _, n := range []int{0, 1, 500} {
		_, err := svc.Move(ctx, "A", "A", n)
		assert.ErrorIs(t, err, models.ErrInvalidArgument)
	}
	_, err := svc.Move(ctx, "A", "B", -1)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = svc.Move(ctx, "A", "Z", 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = svc.Move(ctx, "Z", "A", 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMoveConservesHerdCount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		svc := NewService(kv.NewMemoryBackend(), seedPastures(), nil)
		ids := []string{"A", "B", "C"}
		ctx := context.Background()

		total := func() int {
			all, err := svc.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			sum := 0
			for _, p := range all {
				sum += p.Current
			}
			return sum
		}
		want := total()

		steps := rapid.IntRange(1, 20).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			origin := rapid.SampledFrom(ids).Draw(t, "origin")
			dest := rapid.SampledFrom(ids).Draw(t, "dest")
			amount := rapid.IntRange(0, 120).Draw(t, "amount")

			before, err := svc.Get(ctx, origin)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			_, err = svc.Move(ctx, origin, dest, amount)
			switch {
			case origin == dest:
				if !errors.Is(err, models.ErrInvalidArgument) {
					t.Fatalf("expected invalid argument, got %v", err)
				}
			case amount > before.Current:
				if !errors.Is(err, models.ErrInsufficientCapacity) {
					t.Fatalf("expected insufficient capacity, got %v", err)
				}
			case err != nil:
				t.Fatalf("move: %v", err)
			}
			if got := total(); got != want {
				t.Fatalf("herd count changed: %d -> %d", want, got)
			}
		}
	})
}

// flakyBackend fails every Put after the first allowed ones.
type flakyBackend struct {
	*kv.MemoryBackend
	mu      sync.Mutex
	allowed int
}

func (f *flakyBackend) Put(ctx context.Context, key string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.allowed <= 0 {
		return errors.New("medium unavailable")
	}
	f.allowed--
	return f.MemoryBackend.Put(ctx, key, payload)
}

func TestMoveSecondWriteFailureIsReported(t *testing.T) {
	ctx := context.Background()
	backend := &flakyBackend{MemoryBackend: kv.NewMemoryBackend(), allowed: 2}
	svc := NewService(backend, seedPastures(), nil)

	// first Put seeds the key, second lands the origin write, third fails
	_, err := svc.Move(ctx, "A", "B", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write destination B")

	backend.allowed = 100
	assert.Equal(t, map[string]int{"A": 15, "B": 0, "C": 85}, currents(t, svc))
}

// cancelOnPut cancels the caller's context right after the first Put it forwards.
type cancelOnPut struct {
	kv.Backend
	cancel context.CancelFunc
	puts   int
}

func (c *cancelOnPut) Put(ctx context.Context, key string, payload []byte) error {
	err := c.Backend.Put(ctx, key, payload)
	c.puts++
	if c.puts == 1 {
		c.cancel()
	}
	return err
}

func TestMoveCompletesWhenCallerCancelsMidway(t *testing.T) {
	mem := kv.NewMemoryBackend()
	seeded := NewService(mem, seedPastures(), nil)
	before := currents(t, seeded)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	backend := kv.WithLatency(&cancelOnPut{Backend: mem, cancel: cancel}, time.Millisecond)
	svc := NewService(backend, seedPastures(), nil)

	res, err := svc.Move(ctx, "A", "B", 5)
	require.NoError(t, err)
	require.Error(t, ctx.Err())
	assert.Equal(t, 15, res.Origin.Current)
	assert.Equal(t, 5, res.Destination.Current)

	after := currents(t, svc)
	assert.Equal(t, map[string]int{"A": 15, "B": 5, "C": 85}, after)
	assert.Equal(t, before["A"]+before["B"], after["A"]+after["B"])
}

func TestMoveWritesTwiceFromOneRead(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemoryBackend()
	require.NoError(t, mem.Put(ctx, kv.KeyPastures, []byte(`[]`)))
	counting := &countingBackend{Backend: mem}
	svc := NewService(counting, nil, nil)

	a, err := svc.Create(ctx, models.Pasture{Name: "A", Capacity: 25, Current: 20})
	require.NoError(t, err)
	b, err := svc.Create(ctx, models.Pasture{Name: "B", Capacity: 20})
	require.NoError(t, err)

	counting.gets, counting.puts = 0, 0
	_, err = svc.Move(ctx, a.ID, b.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, counting.gets)
	assert.Equal(t, 2, counting.puts)
}

type countingBackend struct {
	kv.Backend
	gets, puts int
}

func (c *countingBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.gets++
	return c.Backend.Get(ctx, key)
}

func (c *countingBackend) Put(ctx context.Context, key string, payload []byte) error {
	c.puts++
	return c.Backend.Put(ctx, key, payload)
}

func TestCreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(kv.NewMemoryBackend(), nil, nil)

	created, err := svc.Create(ctx, models.Pasture{Name: "Piquete 1", Capacity: 15, Current: 12})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.PastureOccupied, created.Status)

	_, err = svc.Create(ctx, models.Pasture{Name: "Overfull", Capacity: 5, Current: 6})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	// direct updates do not enforce capacity
	over := 40
	updated, err := svc.Update(ctx, created.ID, models.PasturePatch{Current: &over})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Current)

	bad := models.PastureStatus("flooded")
	_, err = svc.Update(ctx, created.ID, models.PasturePatch{Status: &bad})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = svc.Update(ctx, "nope", models.PasturePatch{})
	assert.ErrorIs(t, err, models.ErrNotFound)
}
