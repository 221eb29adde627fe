package services

import (
	"testing"

	"github.com/flowfam/family-api/internal/repository"
	"github.com/flowfam/family-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDocumentService(t *testing.T, db *gorm.DB) *DocumentService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewDocumentService(repository.NewDocumentRepository(db), repository.NewFamilyRepository(db), store)
}

func TestUploadDocumentIsParentOnly(t *testing.T) {
	db := setupTestDB(t)
	_, _, child := seedFamily(t, db)
	svc := newDocumentService(t, db)

	_, err := svc.UploadDocument(UploadDocumentInput{
		Actor: child,
		Title: "Passport",
		Data:  []byte("pdf bytes"),
	})
	assert.ErrorIs(t, err, ErrNotParent)
}

func TestDocumentDeniesByDefault(t *testing.T) {
	db := setupTestDB(t)
	_, parent, child := seedFamily(t, db)
	svc := newDocumentService(t, db)

	doc, err := svc.UploadDocument(UploadDocumentInput{
		Actor: parent,
		Title: "Passport",
		Data:  []byte("pdf bytes"),
	})
	require.NoError(t, err)

	// No permission row: the child cannot even see the document.
	_, err = svc.GetDocument(child, doc.ID)
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	docs, err := svc.ListVisibleDocuments(child)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDocumentPermissionTuple(t *testing.T) {
	db := setupTestDB(t)
	_, parent, child := seedFamily(t, db)
	svc := newDocumentService(t, db)

	doc, err := svc.UploadDocument(UploadDocumentInput{
		Actor: parent,
		Title: "School form",
		Data:  []byte("pdf bytes"),
		Permissions: []PermissionInput{
			{MemberID: child.ID, CanView: true},
		},
	})
	require.NoError(t, err)

	// View granted, download withheld.
	got, err := svc.GetDocument(child, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)

	_, _, err = svc.DownloadDocument(child, doc.ID)
	assert.ErrorIs(t, err, ErrDocumentForbidden)

	err = svc.DeleteDocument(child, doc.ID)
	assert.ErrorIs(t, err, ErrDocumentForbidden)
}

func TestUploaderKeepsFullRights(t *testing.T) {
	db := setupTestDB(t)
	_, parent, _ := seedFamily(t, db)
	svc := newDocumentService(t, db)

	doc, err := svc.UploadDocument(UploadDocumentInput{
		Actor: parent,
		Title: "Insurance",
		Data:  []byte("pdf bytes"),
	})
	require.NoError(t, err)

	_, data, err := svc.DownloadDocument(parent, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf bytes"), data)

	require.NoError(t, svc.DeleteDocument(parent, doc.ID))
}

func TestSetPermissionIsUploaderOnly(t *testing.T) {
	db := setupTestDB(t)
	family, parent, child := seedFamily(t, db)
	svc := newDocumentService(t, db)
	_ = family

	doc, err := svc.UploadDocument(UploadDocumentInput{
		Actor: parent,
		Title: "Insurance",
		Data:  []byte("pdf bytes"),
	})
	require.NoError(t, err)

	_, err = svc.SetPermission(child, doc.ID, PermissionInput{MemberID: child.ID, CanView: true})
	assert.ErrorIs(t, err, ErrDocumentForbidden)

	updated, err := svc.SetPermission(parent, doc.ID, PermissionInput{
		MemberID:    child.ID,
		CanView:     true,
		CanDownload: true,
	})
	require.NoError(t, err)
	require.Len(t, updated.Permissions, 1)

	_, data, err := svc.DownloadDocument(child, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf bytes"), data)
}
