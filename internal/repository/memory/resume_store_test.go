package memory_test

import (
	"context"
	"sync"
	"testing"

	"go-resume-builder/internal/domain"
	"go-resume-builder/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc(name string) *domain.ResumeDocument {
	return &domain.ResumeDocument{
		Basics: domain.Basics{Name: name, Email: "ada@example.com"},
		Work: []domain.WorkEntry{
			{Company: "Analytical Engines", Position: "Engineer", StartDate: "1840-01",
				Highlights: []string{"first", "second", "third"}},
			{Company: "Babbage & Co", Position: "Consultant", StartDate: "1843-09"},
		},
	}
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	id, stored, err := store.Create(ctx, sampleDoc("Ada Lovelace"))
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, "Ada Lovelace", stored.Basics.Name)

	got, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ada Lovelace", got.Basics.Name)

	// nested sequence order survives the round trip
	require.Len(t, got.Work, 2)
	assert.Equal(t, "1840-01", got.Work[0].StartDate)
	assert.Equal(t, []string{"first", "second", "third"}, got.Work[0].Highlights)
	assert.Equal(t, "Babbage & Co", got.Work[1].Company)
}

func TestGetUnknownID(t *testing.T) {
	store := memory.NewStore()

	got, err := store.GetByID(context.Background(), "missing-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListInsertionOrder(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	names := []string{"First", "Second", "Third"}
	for _, name := range names {
		_, _, err := store.Create(ctx, sampleDoc(name))
		require.NoError(t, err)
	}

	docs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	for i, name := range names {
		assert.Equal(t, name, docs[i].Basics.Name)
	}
}

func TestConcurrentCreatesNeverCollide(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	const n = 50
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, _, err := store.Create(ctx, sampleDoc("Concurrent"))
			require.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true

		got, err := store.GetByID(ctx, id)
		require.NoError(t, err)
		assert.NotNil(t, got)
	}

	docs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, n)
}
