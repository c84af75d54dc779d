package main

import (
	"testing"
	"time"

	"bookit/internal/database"
	"bookit/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsRepeatable(t *testing.T) {
	db, err := database.Connect("file:seed_repeatable?mode=memory&cache=shared", nil)
	require.NoError(t, err)
	require.NoError(t, database.ConfigurePool(db, database.PoolConfig{MaxOpenConns: 1}))
	require.NoError(t, database.Migrate(db))

	today := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, seed(db, today))
	require.NoError(t, seed(db, today))

	var experiences, slots, promos int64
	require.NoError(t, db.Model(&domain.Experience{}).Count(&experiences).Error)
	require.NoError(t, db.Model(&domain.Slot{}).Count(&slots).Error)
	require.NoError(t, db.Model(&domain.PromoCode{}).Count(&promos).Error)

	assert.EqualValues(t, 4, experiences)
	assert.EqualValues(t, 4*7*3, slots)
	assert.EqualValues(t, 5, promos)

	var stored []domain.Slot
	require.NoError(t, db.Find(&stored).Error)
	for _, s := range stored {
		assert.True(t, domain.DateOf(s.Date).After(today), "slot %d dated %s", s.ID, s.Date)
		assert.Equal(t, s.TotalSpots, s.AvailableSpots)
	}

	var flat domain.PromoCode
	require.NoError(t, db.First(&flat, "code = ?", "FLAT100").Error)
	require.NotNil(t, flat.UsageLimit)
	assert.Equal(t, 100, *flat.UsageLimit)
}
