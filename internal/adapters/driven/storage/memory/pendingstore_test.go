package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

func newSelection(sessionID string) *domain.PendingSelection {
	record := domain.NewContentRecord("rec-1", domain.KindText, "Title", "Body", domain.SourceText)
	draft := &domain.Draft{Record: record, Suggested: []string{"AI"}, Extra: []string{"RAG"}}
	return domain.NewPendingSelection(sessionID, draft, time.Now())
}

func TestPendingStore_SaveGetDelete(t *testing.T) {
	store := NewPendingStore(0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newSelection("chat-1")))

	got, err := store.Get(ctx, "chat-1")
	require.NoError(t, err)
	assert.Equal(t, "chat-1", got.SessionID)
	assert.Equal(t, []string{"AI", "RAG"}, got.Selected.Slice())

	require.NoError(t, store.Delete(ctx, "chat-1"))
	_, err = store.Get(ctx, "chat-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting nothing is not an error
	assert.NoError(t, store.Delete(ctx, "chat-1"))
}

func TestPendingStore_OnePerSession(t *testing.T) {
	store := NewPendingStore(0)
	ctx := context.Background()

	first := newSelection("chat-1")
	second := newSelection("chat-1")
	second.Selected = domain.NewTagSet("Tools")

	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	got, err := store.Get(ctx, "chat-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tools"}, got.Selected.Slice())
}

func TestPendingStore_GetReturnsCopy(t *testing.T) {
	store := NewPendingStore(0)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, newSelection("chat-1")))

	got, err := store.Get(ctx, "chat-1")
	require.NoError(t, err)
	got.Selected.Toggle("AI")

	again, err := store.Get(ctx, "chat-1")
	require.NoError(t, err)
	assert.True(t, again.Selected.Contains("AI"))
}

func TestPendingStore_Expiry(t *testing.T) {
	store := NewPendingStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newSelection("chat-1")))

	now = now.Add(30 * time.Second)
	_, err := store.Get(ctx, "chat-1")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, "chat-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPendingStore_SaveInvalid(t *testing.T) {
	store := NewPendingStore(0)

	assert.ErrorIs(t, store.Save(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Save(context.Background(), &domain.PendingSelection{}), domain.ErrInvalidInput)
}

func TestVocabularyStore_LoadSave(t *testing.T) {
	store := NewVocabularyStore("AI", "Tools")

	tags, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"AI", "Tools"}, tags)

	// Mutating the loaded slice does not affect the store
	tags[0] = "changed"
	again, _ := store.Load()
	assert.Equal(t, "AI", again[0])

	require.NoError(t, store.Save([]string{"AI", "Tools", "RAG"}))
	again, _ = store.Load()
	assert.Equal(t, []string{"AI", "Tools", "RAG"}, again)
	assert.Equal(t, 1, store.Saves())
}

func TestVocabularyStore_EmptyLoadsNil(t *testing.T) {
	tags, err := NewVocabularyStore().Load()

	require.NoError(t, err)
	assert.Nil(t, tags)
}
