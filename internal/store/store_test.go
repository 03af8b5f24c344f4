package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/depot/internal/domain"
)

func TestSaveAndReloadModels(t *testing.T) {
	dir := t.TempDir()

	s, err := NewSnapshotStore(dir, "http://127.0.0.1:8000")
	require.NoError(t, err)

	models := []domain.Model{
		{ID: "llama3:8b", Name: "Llama 3 8B", Family: "llama", Downloaded: true},
		{ID: "phi3:mini", Name: "Phi-3 Mini", Downloading: true},
	}
	require.NoError(t, s.SaveModels(models))
	require.NoError(t, s.Close())

	// Reopen from disk, no warm cache.
	s, err = NewSnapshotStore(dir, "http://127.0.0.1:8000")
	require.NoError(t, err)
	defer s.Close()

	got, ok := s.GetModels()
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "llama3:8b", got[0].ID)
	assert.True(t, got[0].Downloaded)
	assert.True(t, got[1].Downloading)
}

func TestSaveIsReplaceAll(t *testing.T) {
	s, err := NewSnapshotStore(t.TempDir(), "http://127.0.0.1:8000")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveModels([]domain.Model{{ID: "a"}, {ID: "b"}}))
	require.NoError(t, s.SaveModels([]domain.Model{{ID: "b"}}))

	got, ok := s.GetModels()
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestEmptyStoreReportsMiss(t *testing.T) {
	s, err := NewSnapshotStore(t.TempDir(), "http://127.0.0.1:8000")
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.GetModels()
	assert.False(t, ok)
}

func TestMemoryOnlyMode(t *testing.T) {
	s, err := NewSnapshotStore("", "http://127.0.0.1:8000")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveModels([]domain.Model{{ID: "a"}}))
	got, ok := s.GetModels()
	require.True(t, ok)
	assert.Len(t, got, 1)
}

func TestEngineURLNamespacing(t *testing.T) {
	dir := t.TempDir()

	first, err := NewSnapshotStore(dir, "http://127.0.0.1:8000")
	require.NoError(t, err)
	require.NoError(t, first.SaveModels([]domain.Model{{ID: "a"}}))
	require.NoError(t, first.Close())

	// A different engine URL must not see the first engine's snapshot.
	second, err := NewSnapshotStore(dir, "http://10.0.0.5:8000")
	require.NoError(t, err)
	defer second.Close()

	_, ok := second.GetModels()
	assert.False(t, ok)
}

func TestHashEngineURLNormalizes(t *testing.T) {
	assert.Equal(t,
		hashEngineURL("http://Example.com:8000/"),
		hashEngineURL("http://example.com:8000"))
	assert.NotEqual(t,
		hashEngineURL("http://example.com:8000"),
		hashEngineURL("http://example.com:9000"))
}
