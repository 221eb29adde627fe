package services

import (
	"testing"
	"time"

	"github.com/flowfam/family-api/internal/repository"
	"github.com/flowfam/family-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReminderService(t *testing.T, db *gorm.DB) *ReminderService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewReminderService(repository.NewReminderRepository(db), repository.NewFamilyRepository(db), store)
}

func TestAttachPhotoStoresAndReplaces(t *testing.T) {
	db := setupTestDB(t)
	_, parent, _ := seedFamily(t, db)
	svc := newReminderService(t, db)

	reminder, err := svc.CreateReminder(CreateReminderInput{
		Actor: parent,
		Title: "Dentist",
		Date:  time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	first, err := svc.AttachPhoto(parent, reminder.ID, []byte("first photo"))
	require.NoError(t, err)
	require.NotEmpty(t, first.PhotoPath)

	data, err := svc.DownloadPhoto(parent, reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("first photo"), data)

	second, err := svc.AttachPhoto(parent, reminder.ID, []byte("second photo"))
	require.NoError(t, err)
	assert.NotEqual(t, first.PhotoPath, second.PhotoPath)

	data, err = svc.DownloadPhoto(parent, reminder.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("second photo"), data)
}

func TestDownloadPhotoWithoutPhoto(t *testing.T) {
	db := setupTestDB(t)
	_, parent, _ := seedFamily(t, db)
	svc := newReminderService(t, db)

	reminder, err := svc.CreateReminder(CreateReminderInput{
		Actor: parent,
		Title: "Dentist",
		Date:  time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = svc.DownloadPhoto(parent, reminder.ID)
	assert.ErrorIs(t, err, ErrReminderNotFound)
}

func TestPhotoBookListsOnlyPhotographed(t *testing.T) {
	db := setupTestDB(t)
	_, parent, _ := seedFamily(t, db)
	svc := newReminderService(t, db)

	plain, err := svc.CreateReminder(CreateReminderInput{
		Actor: parent,
		Title: "Plain",
		Date:  time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_ = plain

	photographed, err := svc.CreateReminder(CreateReminderInput{
		Actor: parent,
		Title: "With photo",
		Date:  time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = svc.AttachPhoto(parent, photographed.ID, []byte("photo"))
	require.NoError(t, err)

	book, err := svc.PhotoBook(parent)
	require.NoError(t, err)
	require.Len(t, book, 1)
	assert.Equal(t, photographed.ID, book[0].ID)
}
