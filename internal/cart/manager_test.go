package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinelabs/vitrine/internal/domain"
)

// fakeRepo is an in-memory domain.CartRepository for manager tests.
type fakeRepo struct {
	mu    sync.Mutex
	saved map[string][]domain.CartLine
	fail  bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{saved: make(map[string][]domain.CartLine)}
}

func (r *fakeRepo) Save(_ context.Context, sessionID string, lines []domain.CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("save failed")
	}
	r.saved[sessionID] = lines
	return nil
}

func (r *fakeRepo) Load(_ context.Context, sessionID string) ([]domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errors.New("load failed")
	}
	return r.saved[sessionID], nil
}

func (r *fakeRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.saved, sessionID)
	return nil
}

func TestManagerIsolatesSessions(t *testing.T) {
	m := NewManager(nil, nil)
	ctx := context.Background()

	m.Add(ctx, "s1", product("a", "10"), "")
	m.Add(ctx, "s2", product("b", "20"), "")

	s1 := m.Snapshot(ctx, "s1")
	s2 := m.Snapshot(ctx, "s2")

	require.Len(t, s1.Lines, 1)
	require.Len(t, s2.Lines, 1)
	assert.Equal(t, "a", s1.Lines[0].ProductID)
	assert.Equal(t, "b", s2.Lines[0].ProductID)
}

func TestManagerPersistsAfterMutations(t *testing.T) {
	repo := newFakeRepo()
	m := NewManager(repo, nil)
	ctx := context.Background()

	m.Add(ctx, "s1", product("a", "10"), "38")
	m.UpdateQuantity(ctx, "s1", "a", "38", 4)

	require.Len(t, repo.saved["s1"], 1)
	assert.Equal(t, 4, repo.saved["s1"][0].Quantity)

	m.Clear(ctx, "s1")
	_, ok := repo.saved["s1"]
	assert.False(t, ok, "Clear drops the persisted cart")
}

func TestManagerHydratesFromRepository(t *testing.T) {
	repo := newFakeRepo()
	repo.saved["s1"] = []domain.CartLine{
		{ProductID: "a", Quantity: 2, UnitPrice: dec("15")},
	}

	m := NewManager(repo, nil)
	snap := m.Snapshot(context.Background(), "s1")

	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 2, snap.TotalItems)
	assert.Equal(t, "30.00", snap.TotalPrice)
}

func TestManagerSurvivesRepositoryFailures(t *testing.T) {
	repo := newFakeRepo()
	repo.fail = true
	m := NewManager(repo, nil)
	ctx := context.Background()

	// Persistence errors are logged, not surfaced.
	m.Add(ctx, "s1", product("a", "10"), "")

	snap := m.Snapshot(ctx, "s1")
	assert.Equal(t, 1, snap.TotalItems)
}

func TestManagerConcurrentMutations(t *testing.T) {
	m := NewManager(nil, nil)
	ctx := context.Background()
	p := product("a", "10")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Add(ctx, "s1", p, "")
		}()
	}
	wg.Wait()

	snap := m.Snapshot(ctx, "s1")
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 50, snap.TotalItems)
}

func TestGenerateSessionID(t *testing.T) {
	a, err := GenerateSessionID()
	require.NoError(t, err)
	b, err := GenerateSessionID()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
