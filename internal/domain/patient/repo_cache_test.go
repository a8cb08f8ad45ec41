package patient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedRepo_DisabledReturnsNext(t *testing.T) {
	next := newMockRepo()
	assert.Same(t, next, NewCachedRepo(next, 0))
}

func TestCachedRepo_CachesHits(t *testing.T) {
	next := newMockRepo()
	repo := NewCachedRepo(next, time.Minute)
	ctx := context.Background()
	require.NoError(t, next.Create(ctx, samplePatient("P00000001", "Jane", "Doe")))

	for i := 0; i < 3; i++ {
		p, err := repo.GetByEmail(ctx, "jane.doe@example.com")
		require.NoError(t, err)
		assert.Equal(t, "P00000001", p.PatientID)
	}
	assert.Equal(t, 1, next.callCount("GetByEmail"))
}

func TestCachedRepo_DoesNotCacheMisses(t *testing.T) {
	next := newMockRepo()
	repo := NewCachedRepo(next, time.Minute)
	ctx := context.Background()

	_, err := repo.GetByPatientID(ctx, "P00000001")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, next.Create(ctx, samplePatient("P00000001", "Jane", "Doe")))
	p, err := repo.GetByPatientID(ctx, "P00000001")
	require.NoError(t, err)
	assert.Equal(t, "Jane", p.FirstName)
	assert.Equal(t, 2, next.callCount("GetByPatientID"))
}

func TestCachedRepo_CreatePrimesPatientID(t *testing.T) {
	next := newMockRepo()
	repo := NewCachedRepo(next, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, samplePatient("P00000005", "Jane", "Doe")))
	p, err := repo.GetByPatientID(ctx, "P00000005")
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, 0, next.callCount("GetByPatientID"))
}

func TestCachedRepo_ReturnsCopies(t *testing.T) {
	next := newMockRepo()
	repo := NewCachedRepo(next, time.Minute)
	ctx := context.Background()
	require.NoError(t, next.Create(ctx, samplePatient("P00000001", "Jane", "Doe")))

	first, err := repo.GetByPatientID(ctx, "P00000001")
	require.NoError(t, err)
	first.FirstName = "Changed"

	second, err := repo.GetByPatientID(ctx, "P00000001")
	require.NoError(t, err)
	assert.Equal(t, "Jane", second.FirstName)
}

func TestCachedRepo_PassesThroughUncachedCalls(t *testing.T) {
	next := newMockRepo()
	repo := NewCachedRepo(next, time.Minute)
	ctx := context.Background()

	_, err := repo.SearchByName(ctx, "jane")
	require.NoError(t, err)
	_, err = repo.Count(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, next.callCount("SearchByName"))
	assert.Equal(t, 1, next.callCount("Count"))
}
