package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedisStore() (*RedisStore, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	return NewRedisStore(db, "market"), mock
}

func TestRedisStore_LoadPresent(t *testing.T) {
	store, mock := setupTestRedisStore()
	defer mock.ClearExpect()

	mock.ExpectGet("market:tickets").SetVal(`[{"id":"tkt_1"}]`)

	data, ok, err := store.Load(context.Background(), KeyTickets)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"tkt_1"}]`, string(data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_LoadAbsent(t *testing.T) {
	store, mock := setupTestRedisStore()
	defer mock.ClearExpect()

	mock.ExpectGet("market:offers").RedisNil()

	data, ok, err := store.Load(context.Background(), KeyOffers)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_LoadError(t *testing.T) {
	store, mock := setupTestRedisStore()
	defer mock.ClearExpect()

	mock.ExpectGet("market:transactions").SetErr(errors.New("connection refused"))

	_, _, err := store.Load(context.Background(), KeyTransactions)
	assert.Error(t, err)
}

func TestRedisStore_Save(t *testing.T) {
	store, mock := setupTestRedisStore()
	defer mock.ClearExpect()

	payload := []byte(`[{"id":"off_1","status":"active"}]`)
	mock.ExpectSet("market:offers", payload, 0).SetVal("OK")

	err := store.Save(context.Background(), KeyOffers, payload)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_NoPrefix(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer mock.ClearExpect()
	store := NewRedisStore(db, "")

	mock.ExpectGet("profile").RedisNil()

	_, ok, err := store.Load(context.Background(), KeyProfile)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
