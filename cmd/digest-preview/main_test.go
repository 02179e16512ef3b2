package main

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_ListReturnsRetrievableNames(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	ctx := context.Background()
	store := &FileStorage{}
	require.NoError(t, store.Store(ctx, "digest-2026-03-04-07-30-00-a.json", []byte(`{"total_events":3}`)))
	require.NoError(t, store.Store(ctx, "alert-2026-03-04-07-30-00-b.json", []byte(`{}`)))

	names, err := store.List(ctx, "digest-")
	require.NoError(t, err)
	assert.Equal(t, []string{"digest-2026-03-04-07-30-00-a.json"}, names)

	data, err := store.Retrieve(ctx, names[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_events":3}`, string(data))

	require.NoError(t, store.Delete(ctx, names[0]))
	names, err = store.List(ctx, "digest-")
	require.NoError(t, err)
	assert.Empty(t, names)
}
