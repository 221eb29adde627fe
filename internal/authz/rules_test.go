package authz

import (
	"testing"

	"github.com/flowfam/family-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCanViewNote_Creator(t *testing.T) {
	note := models.FamilyNote{CreatorID: 1}

	assert.True(t, CanViewNote(1, note), "creator can always view, even with empty shares")
	assert.False(t, CanViewNote(2, note), "non-creator with empty shares is denied")
}

func TestCanViewNote_SharedWith(t *testing.T) {
	note := models.FamilyNote{
		CreatorID: 1,
		Shares: []models.NoteShare{
			{NoteID: 10, MemberID: 2},
			{NoteID: 10, MemberID: 3},
		},
	}

	assert.True(t, CanViewNote(2, note))
	assert.True(t, CanViewNote(3, note))
	assert.False(t, CanViewNote(4, note), "member outside sharedWith is denied")
	assert.False(t, CanViewNote(0, note))
}

func TestDocumentPermissions_UploaderOverride(t *testing.T) {
	doc := models.Document{UploadedBy: 5}

	// Uploader has full rights with no permission rows at all.
	assert.True(t, CanViewDocument(5, doc))
	assert.True(t, CanDownloadDocument(5, doc))
	assert.True(t, CanEditDocument(5, doc))
	assert.True(t, CanDeleteDocument(5, doc))
}

func TestDocumentPermissions_ExplicitRows(t *testing.T) {
	doc := models.Document{
		UploadedBy: 5,
		Permissions: []models.DocumentPermission{
			{MemberID: 6, CanView: true, CanDownload: true},
			{MemberID: 7, CanView: true, CanEdit: true, CanDelete: true},
		},
	}

	assert.True(t, CanViewDocument(6, doc))
	assert.True(t, CanDownloadDocument(6, doc))
	assert.False(t, CanEditDocument(6, doc))
	assert.False(t, CanDeleteDocument(6, doc))

	assert.True(t, CanDeleteDocument(7, doc))
	assert.False(t, CanDownloadDocument(7, doc))
}

func TestDocumentPermissions_MissingRowDenies(t *testing.T) {
	doc := models.Document{
		UploadedBy:  5,
		Permissions: []models.DocumentPermission{{MemberID: 6, CanView: true}},
	}

	// No row for member 9: deny everything, never allow by default.
	assert.False(t, CanViewDocument(9, doc))
	assert.False(t, CanDownloadDocument(9, doc))
	assert.False(t, CanEditDocument(9, doc))
	assert.False(t, CanDeleteDocument(9, doc))
}

func TestCanManageFamily(t *testing.T) {
	assert.True(t, CanManageFamily(models.FamilyMember{Role: models.RoleParent}))
	assert.False(t, CanManageFamily(models.FamilyMember{Role: models.RoleChild}))
	assert.False(t, CanManageFamily(models.FamilyMember{}), "missing role is denied")
}

func TestCanChangeRole_SelfServiceOnly(t *testing.T) {
	assert.True(t, CanChangeRole(3, 3))
	assert.False(t, CanChangeRole(3, 4))
}
