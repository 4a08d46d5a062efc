package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseplan/backend/internal/testhelpers"
)

func TestWeightUpsertOverwritesSameDay(t *testing.T) {
	db := testhelpers.SetupSQLiteTestDB(t)
	svc := NewWeightService(db)
	userID := createTestUserWithProfile(t, db)
	ctx := context.Background()

	date := time.Date(2025, time.March, 10, 14, 0, 0, 0, time.UTC)

	first, err := svc.Upsert(ctx, userID, date, 74.5)
	require.NoError(t, err)
	assert.Equal(t, 74.5, first.WeightKG)

	// Second write for the same calendar day replaces the value without
	// creating another row.
	second, err := svc.Upsert(ctx, userID, date.Add(3*time.Hour), 74.1)
	require.NoError(t, err)
	assert.Equal(t, 74.1, second.WeightKG)
	assert.Equal(t, first.ID, second.ID)

	logs, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 74.1, logs[0].WeightKG)
}

func TestWeightListNewestFirst(t *testing.T) {
	db := testhelpers.SetupSQLiteTestDB(t)
	svc := NewWeightService(db)
	userID := createTestUserWithProfile(t, db)
	ctx := context.Background()

	base := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	for i, w := range []float64{75.0, 74.6, 74.2} {
		_, err := svc.Upsert(ctx, userID, base.AddDate(0, 0, i), w)
		require.NoError(t, err)
	}

	logs, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, 74.2, logs[0].WeightKG)
	assert.Equal(t, 75.0, logs[2].WeightKG)
}

func TestWeightListScopedToUser(t *testing.T) {
	db := testhelpers.SetupSQLiteTestDB(t)
	svc := NewWeightService(db)
	alice := createTestUserWithProfile(t, db)
	bob := createTestUserWithProfile(t, db)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, alice, time.Now().UTC(), 62.0)
	require.NoError(t, err)

	logs, err := svc.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
