package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPantryUpsert(t *testing.T) {
	db := newTestDB(t)
	svc := NewPantryService(db)
	user := uuid.New()

	first, err := svc.Upsert(context.Background(), user, " Tomatoes ", 2, "kg", nil)
	require.NoError(t, err)
	assert.Equal(t, "tomatoes", first.IngredientName)
	assert.Equal(t, 2.0, first.Quantity)
	assert.Equal(t, "kg", first.Unit)
	assert.Nil(t, first.ExpiryDate)

	// Same ingredient in a different casing updates the existing row.
	expiry := time.Now().AddDate(0, 0, 5)
	second, err := svc.Upsert(context.Background(), user, "TOMATOES", 5, "kg", &expiry)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5.0, second.Quantity)
	require.NotNil(t, second.ExpiryDate)

	items, err := svc.List(context.Background(), user)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestPantryUpsertDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewPantryService(db)
	user := uuid.New()

	item, err := svc.Upsert(context.Background(), user, "salt", 0, "", nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, item.Quantity)
	assert.Equal(t, "unit", item.Unit)

	_, err = svc.Upsert(context.Background(), user, "   ", 1, "", nil)
	assert.Error(t, err)
}

func TestPantryListOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewPantryService(db)
	user := uuid.New()

	tomorrow := time.Now().AddDate(0, 0, 1)
	nextWeek := time.Now().AddDate(0, 0, 7)

	_, err := svc.Upsert(context.Background(), user, "flour", 1, "kg", nil)
	require.NoError(t, err)
	_, err = svc.Upsert(context.Background(), user, "milk", 1, "l", &tomorrow)
	require.NoError(t, err)
	_, err = svc.Upsert(context.Background(), user, "yogurt", 2, "cup", &nextWeek)
	require.NoError(t, err)

	// Another session's pantry stays invisible.
	_, err = svc.Upsert(context.Background(), uuid.New(), "milk", 1, "l", &tomorrow)
	require.NoError(t, err)

	items, err := svc.List(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "milk", items[0].IngredientName)
	assert.Equal(t, "yogurt", items[1].IngredientName)
	assert.Equal(t, "flour", items[2].IngredientName)
}

func TestPantryRemove(t *testing.T) {
	db := newTestDB(t)
	svc := NewPantryService(db)
	user := uuid.New()

	_, err := svc.Upsert(context.Background(), user, "tomatoes", 1, "kg", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), user, " Tomatoes "))

	items, err := svc.List(context.Background(), user)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.ErrorIs(t, svc.Remove(context.Background(), user, "tomatoes"), gorm.ErrRecordNotFound)
}

func TestPantryExpiring(t *testing.T) {
	db := newTestDB(t)
	svc := NewPantryService(db)
	user := uuid.New()

	expired := time.Now().AddDate(0, 0, -2)
	soon := time.Now().AddDate(0, 0, 2)
	later := time.Now().AddDate(0, 0, 10)

	_, err := svc.Upsert(context.Background(), user, "yogurt", 1, "cup", &expired)
	require.NoError(t, err)
	_, err = svc.Upsert(context.Background(), user, "milk", 1, "l", &soon)
	require.NoError(t, err)
	_, err = svc.Upsert(context.Background(), user, "cheese", 1, "kg", &later)
	require.NoError(t, err)
	_, err = svc.Upsert(context.Background(), user, "rice", 1, "kg", nil)
	require.NoError(t, err)
	_, err = svc.Upsert(context.Background(), uuid.New(), "butter", 1, "kg", &soon)
	require.NoError(t, err)

	items, err := svc.Expiring(context.Background(), user, 3)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Already expired items lead the list.
	assert.Equal(t, "yogurt", items[0].IngredientName)
	assert.Equal(t, "milk", items[1].IngredientName)
}
