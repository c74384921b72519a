package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ssareport/pkg/models"
)

func testOrders() []models.ServiceOrder {
	return []models.ServiceOrder{
		{Number: "10000001", Situation: "ADM", RegistrationWeek: "202403", IssuePriority: "S3.7"},
		{Number: "10000002", Situation: "PEN", RegistrationWeek: "202404", IssuePriority: "S3.2"},
	}
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(a, []byte("content"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("other content"), 0o644))

	hashA, err := HashFile(a)
	require.NoError(t, err)
	assert.Len(t, hashA, 64)

	hashA2, err := HashFile(a)
	require.NoError(t, err)
	assert.Equal(t, hashA, hashA2)

	hashB, err := HashFile(b)
	require.NoError(t, err)
	assert.NotEqual(t, hashA, hashB)
}

func TestHashFile_Missing(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestStoreAndLookup(t *testing.T) {
	c, err := New(t.TempDir(), 24, true)
	require.NoError(t, err)

	hash := "deadbeef"
	_, ok := c.Lookup(hash)
	assert.False(t, ok)

	require.NoError(t, c.Store(hash, testOrders()))

	got, ok := c.Lookup(hash)
	require.True(t, ok)
	assert.Equal(t, testOrders(), got)
}

func TestLookup_Expired(t *testing.T) {
	c, err := New(t.TempDir(), 0, true)
	require.NoError(t, err)

	require.NoError(t, c.Store("deadbeef", testOrders()))

	_, ok := c.Lookup("deadbeef")
	assert.False(t, ok)
}

func TestDisabledCache(t *testing.T) {
	c, err := New("", 24, false)
	require.NoError(t, err)

	require.NoError(t, c.Store("deadbeef", testOrders()))
	_, ok := c.Lookup("deadbeef")
	assert.False(t, ok)
	assert.NoError(t, c.Clear())
}

func TestClear(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir, 24, true)
	require.NoError(t, err)

	require.NoError(t, c.Store("deadbeef", testOrders()))
	require.NoError(t, c.Clear())

	_, ok := c.Lookup("deadbeef")
	assert.False(t, ok)
}
