package services

import (
	"testing"

	"github.com/flowfam/family-api/internal/mail"
	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFamilyService(t *testing.T, db *gorm.DB) *FamilyService {
	t.Helper()
	mailer, err := mail.NewMailer("", "", "", "")
	require.NoError(t, err)
	return NewFamilyService(repository.NewFamilyRepository(db), mailer)
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestCreateFamilyGeneratesJoinCode(t *testing.T) {
	db := setupTestDB(t)
	svc := newFamilyService(t, db)
	user := seedUser(t, db, "alex@example.com")

	family, member, err := svc.CreateFamily(CreateFamilyInput{
		Name:       "Miller",
		UserID:     user.ID,
		MemberName: "Alex",
	})
	require.NoError(t, err)

	assert.Regexp(t, `^[A-Z0-9]{6}$`, family.JoinCode)
	assert.Equal(t, models.RoleParent, member.Role)
	assert.Equal(t, family.ID, member.FamilyID)
}

func TestCreateFamilyRejectsSecondFamily(t *testing.T) {
	db := setupTestDB(t)
	svc := newFamilyService(t, db)
	user := seedUser(t, db, "alex@example.com")

	_, _, err := svc.CreateFamily(CreateFamilyInput{Name: "Miller", UserID: user.ID, MemberName: "Alex"})
	require.NoError(t, err)

	_, _, err = svc.CreateFamily(CreateFamilyInput{Name: "Second", UserID: user.ID, MemberName: "Alex"})
	assert.ErrorIs(t, err, ErrAlreadyFamilyMember)
}

func TestJoinFamilyMatchesCodeCaseInsensitively(t *testing.T) {
	db := setupTestDB(t)
	svc := newFamilyService(t, db)
	creator := seedUser(t, db, "alex@example.com")
	joiner := seedUser(t, db, "kim@example.com")

	family, _, err := svc.CreateFamily(CreateFamilyInput{Name: "Miller", UserID: creator.ID, MemberName: "Alex"})
	require.NoError(t, err)

	lowercase := "abc123"
	require.NoError(t, db.Model(&models.Family{}).Where("id = ?", family.ID).Update("join_code", "ABC123").Error)

	joined, member, err := svc.JoinFamily(JoinFamilyInput{
		UserID:     joiner.ID,
		Code:       lowercase,
		MemberName: "Kim",
	})
	require.NoError(t, err)

	assert.Equal(t, family.ID, joined.ID)
	assert.Equal(t, models.RoleParent, member.Role)
}

func TestJoinFamilyBadCodeChangesNothing(t *testing.T) {
	db := setupTestDB(t)
	svc := newFamilyService(t, db)
	joiner := seedUser(t, db, "kim@example.com")

	_, _, err := svc.JoinFamily(JoinFamilyInput{UserID: joiner.ID, Code: "NOPE99", MemberName: "Kim"})
	assert.ErrorIs(t, err, ErrJoinCodeNotFound)

	_, _, err = svc.JoinFamily(JoinFamilyInput{UserID: joiner.ID, Code: "short", MemberName: "Kim"})
	assert.ErrorIs(t, err, ErrInvalidJoinCode)

	var count int64
	require.NoError(t, db.Model(&models.FamilyMember{}).Count(&count).Error)
	assert.Zero(t, count, "failed joins must not create memberships")
}

func TestAddMemberIsParentOnly(t *testing.T) {
	db := setupTestDB(t)
	_, parent, child := seedFamily(t, db)
	svc := newFamilyService(t, db)

	_, err := svc.AddMember(AddMemberInput{Actor: child, Name: "Charlie", Role: models.RoleChild})
	assert.ErrorIs(t, err, ErrNotParent)

	added, err := svc.AddMember(AddMemberInput{Actor: parent, Name: "Charlie", Role: models.RoleChild})
	require.NoError(t, err)
	assert.Nil(t, added.UserID, "children never get a login account")
}

func TestUpdateMemberRoleIsSelfServiceOnly(t *testing.T) {
	db := setupTestDB(t)
	_, parent, child := seedFamily(t, db)
	svc := newFamilyService(t, db)

	newRole := models.RoleParent
	_, err := svc.UpdateMember(UpdateMemberInput{
		Actor:    parent,
		MemberID: child.ID,
		Role:     &newRole,
	})
	assert.ErrorIs(t, err, ErrRoleChangeNotSelf)

	childRole := models.RoleChild
	updated, err := svc.UpdateMember(UpdateMemberInput{
		Actor:    parent,
		MemberID: parent.ID,
		Role:     &childRole,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleChild, updated.Role)
}

func TestUpdateMemberSelfEditAllowedForChildren(t *testing.T) {
	db := setupTestDB(t)
	_, _, child := seedFamily(t, db)
	svc := newFamilyService(t, db)

	name := "Sammy"
	updated, err := svc.UpdateMember(UpdateMemberInput{
		Actor:    child,
		MemberID: child.ID,
		Name:     &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sammy", updated.Name)
}

func TestDeleteMemberCascades(t *testing.T) {
	db := setupTestDB(t)
	family, parent, child := seedFamily(t, db)
	svc := newFamilyService(t, db)

	task := models.Task{FamilyID: family.ID, Name: "Tidy", AssignedTo: child.ID}
	require.NoError(t, db.Create(&task).Error)

	reminder := models.Reminder{FamilyID: family.ID, Title: "Dentist", CreatorID: parent.ID}
	require.NoError(t, db.Create(&reminder).Error)
	require.NoError(t, db.Create(&models.ReminderAssignment{ReminderID: reminder.ID, MemberID: child.ID}).Error)
	require.NoError(t, db.Create(&models.ReminderAssignment{ReminderID: reminder.ID, MemberID: parent.ID}).Error)

	require.NoError(t, svc.DeleteMember(parent, child.ID))

	var taskCount int64
	require.NoError(t, db.Model(&models.Task{}).Where("assigned_to = ?", child.ID).Count(&taskCount).Error)
	assert.Zero(t, taskCount, "the member's tasks go with them")

	var assignments []models.ReminderAssignment
	require.NoError(t, db.Where("reminder_id = ?", reminder.ID).Find(&assignments).Error)
	require.Len(t, assignments, 1, "the member is scrubbed from assignment lists")
	assert.Equal(t, parent.ID, assignments[0].MemberID)

	// The reminder itself survives.
	var reminderCount int64
	require.NoError(t, db.Model(&models.Reminder{}).Where("id = ?", reminder.ID).Count(&reminderCount).Error)
	assert.EqualValues(t, 1, reminderCount)
}

func TestDeleteMemberIsParentOnly(t *testing.T) {
	db := setupTestDB(t)
	_, parent, child := seedFamily(t, db)
	svc := newFamilyService(t, db)

	err := svc.DeleteMember(child, parent.ID)
	assert.ErrorIs(t, err, ErrNotParent)
}

func TestMemberOfOtherFamilyIsHidden(t *testing.T) {
	db := setupTestDB(t)
	_, parent, _ := seedFamily(t, db)
	svc := newFamilyService(t, db)

	other := models.Family{Name: "Others", JoinCode: "ZZZ999"}
	require.NoError(t, db.Create(&other).Error)
	outsider := models.FamilyMember{FamilyID: other.ID, Name: "Robin", Role: models.RoleChild}
	require.NoError(t, db.Create(&outsider).Error)

	err := svc.DeleteMember(parent, outsider.ID)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}
