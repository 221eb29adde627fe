package services

import (
	"testing"

	"github.com/flowfam/family-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNoteService(db *gorm.DB) *NoteService {
	return NewNoteService(repository.NewNoteRepository(db), repository.NewFamilyRepository(db))
}

func TestNoteVisibility(t *testing.T) {
	db := setupTestDB(t)
	_, parent, child := seedFamily(t, db)
	svc := newNoteService(db)

	private, err := svc.CreateNote(CreateNoteInput{Actor: parent, Title: "Gift ideas"})
	require.NoError(t, err)

	shared, err := svc.CreateNote(CreateNoteInput{
		Actor:      parent,
		Title:      "Groceries",
		SharedWith: []uint64{child.ID},
	})
	require.NoError(t, err)

	parentNotes, err := svc.ListVisibleNotes(parent)
	require.NoError(t, err)
	assert.Len(t, parentNotes, 2, "the creator sees every note they made")

	childNotes, err := svc.ListVisibleNotes(child)
	require.NoError(t, err)
	require.Len(t, childNotes, 1)
	assert.Equal(t, shared.ID, childNotes[0].ID)

	// Fetching an invisible note looks like it does not exist.
	_, err = svc.GetNote(child, private.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestCreateNoteExcludesCreatorFromShares(t *testing.T) {
	db := setupTestDB(t)
	_, parent, child := seedFamily(t, db)
	svc := newNoteService(db)

	note, err := svc.CreateNote(CreateNoteInput{
		Actor:      parent,
		Title:      "Plans",
		SharedWith: []uint64{parent.ID, child.ID, child.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, []uint64{child.ID}, note.SharedWith())
}

func TestUpdateNoteIsCreatorOnly(t *testing.T) {
	db := setupTestDB(t)
	_, parent, child := seedFamily(t, db)
	svc := newNoteService(db)

	note, err := svc.CreateNote(CreateNoteInput{
		Actor:      parent,
		Title:      "Plans",
		SharedWith: []uint64{child.ID},
	})
	require.NoError(t, err)

	title := "Hijacked"
	_, err = svc.UpdateNote(UpdateNoteInput{Actor: child, NoteID: note.ID, Title: &title})
	assert.ErrorIs(t, err, ErrNotNoteCreator)

	err = svc.DeleteNote(child, note.ID)
	assert.ErrorIs(t, err, ErrNotNoteCreator)
}

func TestUpdateNoteReplacesShareList(t *testing.T) {
	db := setupTestDB(t)
	_, parent, child := seedFamily(t, db)
	svc := newNoteService(db)

	note, err := svc.CreateNote(CreateNoteInput{
		Actor:      parent,
		Title:      "Plans",
		SharedWith: []uint64{child.ID},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateNote(UpdateNoteInput{
		Actor:      parent,
		NoteID:     note.ID,
		SharedWith: []uint64{},
	})
	require.NoError(t, err)

	assert.Empty(t, updated.SharedWith())

	_, err = svc.GetNote(child, note.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}
