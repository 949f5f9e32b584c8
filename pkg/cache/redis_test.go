package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func TestRedisCacheSetWrapsPrefix(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, "crypto")

	mock.ExpectSet("crypto:alias:btc", []byte("bitcoin"), time.Hour).SetVal("OK")

	err := c.Set(context.Background(), "alias:btc", "bitcoin", time.Hour)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheGetString(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, "crypto")

	mock.ExpectGet("crypto:alias:btc").SetVal("bitcoin")

	var got string
	err := c.Get(context.Background(), "alias:btc", &got)
	require.NoError(t, err)
	assert.Equal(t, "bitcoin", got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheGetMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, "crypto")

	mock.ExpectGet("crypto:tokenomics:nope").RedisNil()

	var got payload
	err := c.Get(context.Background(), "tokenomics:nope", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheJSONRoundTrip(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, "crypto")

	mock.ExpectSet("crypto:tokenomics:bitcoin", []byte(`{"name":"Bitcoin"}`), time.Minute).SetVal("OK")
	mock.ExpectGet("crypto:tokenomics:bitcoin").SetVal(`{"name":"Bitcoin"}`)

	err := c.Set(context.Background(), "tokenomics:bitcoin", payload{Name: "Bitcoin"}, time.Minute)
	require.NoError(t, err)

	var got payload
	err = c.Get(context.Background(), "tokenomics:bitcoin", &got)
	require.NoError(t, err)
	assert.Equal(t, "Bitcoin", got.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheMSetPipelinesWithSharedTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, "crypto")

	// Map iteration order is undefined.
	mock.MatchExpectationsInOrder(false)
	mock.ExpectSetEx("crypto:alias:btc", []byte("bitcoin"), time.Hour).SetVal("OK")
	mock.ExpectSetEx("crypto:alias:eth", []byte("ethereum"), time.Hour).SetVal("OK")

	err := c.MSet(context.Background(), map[string]interface{}{
		"alias:btc": "bitcoin",
		"alias:eth": "ethereum",
	}, time.Hour)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheDeleteUnlinks(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, "crypto")

	mock.ExpectUnlink("crypto:alias:btc", "crypto:alias:eth").SetVal(2)

	err := c.Delete(context.Background(), "alias:btc", "alias:eth")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheStats(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisCacheFromClient(db, "crypto")

	mock.ExpectDBSize().SetVal(42)
	mock.ExpectInfo().SetVal("# Memory\r\nused_memory_human:1.10M\r\n# Clients\r\nconnected_clients:4\r\n")

	stats, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), stats.TotalKeys)
	assert.Equal(t, "1.10M", stats.UsedMemoryHuman)
	assert.Equal(t, int64(4), stats.ConnectedClients)
	assert.NoError(t, mock.ExpectationsWereMet())
}
