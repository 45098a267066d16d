package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalStore_RoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)
	ctx := context.Background()

	reference, err := store.Save(ctx, "proof.PDF", strings.NewReader("payment proof bytes"))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(reference, "/uploads/"))
	assert.True(t, strings.HasSuffix(reference, ".pdf"))

	file, err := store.Open(ctx, reference)
	assert.NoError(t, err)
	data, err := io.ReadAll(file)
	file.Close()
	assert.NoError(t, err)
	assert.Equal(t, "payment proof bytes", string(data))

	assert.NoError(t, store.Delete(ctx, reference))
	_, err = store.Open(ctx, reference)
	assert.Error(t, err)
}

func TestLocalStore_DeleteUnknownIsNoop(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "/uploads/does-not-exist.png"))
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)
	ctx := context.Background()

	_, err = store.Open(ctx, "/uploads/../etc/passwd")
	assert.Error(t, err)

	err = store.Delete(ctx, "/uploads/../../secret")
	assert.Error(t, err)
}
