package services

import (
	"testing"
	"time"

	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTaskService(db *gorm.DB) *TaskService {
	return NewTaskService(repository.NewTaskRepository(db), repository.NewFamilyRepository(db))
}

func TestCreateTaskValidation(t *testing.T) {
	db := setupTestDB(t)
	_, parent, child := seedFamily(t, db)
	svc := newTaskService(db)

	_, err := svc.CreateTask(CreateTaskInput{Actor: parent, Name: "  ", AssignedTo: child.ID})
	assert.ErrorIs(t, err, ErrTaskNameRequired)

	_, err = svc.CreateTask(CreateTaskInput{Actor: parent, Name: "Dishes", Coins: -5, AssignedTo: child.ID})
	assert.ErrorIs(t, err, ErrNegativeCoins)

	_, err = svc.CreateTask(CreateTaskInput{Actor: parent, Name: "Dishes", AssignedTo: child.ID, Repeat: "hourly"})
	assert.ErrorIs(t, err, ErrInvalidRepeatRule)

	_, err = svc.CreateTask(CreateTaskInput{Actor: parent, Name: "Dishes", AssignedTo: 9999})
	assert.ErrorIs(t, err, ErrInvalidAssignee)
}

func TestCreateRecurringTaskDropsDueDate(t *testing.T) {
	db := setupTestDB(t)
	_, parent, child := seedFamily(t, db)
	svc := newTaskService(db)

	due := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	task, err := svc.CreateTask(CreateTaskInput{
		Actor:      parent,
		Name:       "Water the plants",
		AssignedTo: child.ID,
		Repeat:     models.RepeatWeekly,
		DueDate:    &due,
	})
	require.NoError(t, err)

	assert.Nil(t, task.DueDate)
	assert.Equal(t, models.RepeatWeekly, task.Repeat)
}

func TestCompleteTaskCreditsCoins(t *testing.T) {
	db := setupTestDB(t)
	_, parent, child := seedFamily(t, db)
	svc := newTaskService(db)

	task, err := svc.CreateTask(CreateTaskInput{
		Actor:      parent,
		Name:       "Tidy room",
		Coins:      10,
		AssignedTo: child.ID,
	})
	require.NoError(t, err)

	completed, err := svc.CompleteTask(parent, task.ID)
	require.NoError(t, err)
	assert.True(t, completed.Completed)

	var reloaded models.FamilyMember
	require.NoError(t, db.First(&reloaded, child.ID).Error)
	assert.Equal(t, 10, reloaded.Coins)
}

func TestCompleteTaskIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	_, parent, child := seedFamily(t, db)
	svc := newTaskService(db)

	task, err := svc.CreateTask(CreateTaskInput{
		Actor:      parent,
		Name:       "Tidy room",
		Coins:      10,
		AssignedTo: child.ID,
	})
	require.NoError(t, err)

	_, err = svc.CompleteTask(parent, task.ID)
	require.NoError(t, err)
	_, err = svc.CompleteTask(parent, task.ID)
	require.NoError(t, err)

	var reloaded models.FamilyMember
	require.NoError(t, db.First(&reloaded, child.ID).Error)
	assert.Equal(t, 10, reloaded.Coins, "second completion must not credit coins again")
}

func TestTaskOfOtherFamilyIsHiddenBehindNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, parent, child := seedFamily(t, db)
	svc := newTaskService(db)

	task, err := svc.CreateTask(CreateTaskInput{
		Actor:      parent,
		Name:       "Tidy room",
		AssignedTo: child.ID,
	})
	require.NoError(t, err)

	other := models.Family{Name: "Others", JoinCode: "ZZZ999"}
	require.NoError(t, db.Create(&other).Error)
	outsiderUserID := uint64(99)
	outsider := models.FamilyMember{
		FamilyID: other.ID,
		UserID:   &outsiderUserID,
		Name:     "Robin",
		Role:     models.RoleParent,
	}
	require.NoError(t, db.Create(&outsider).Error)

	_, err = svc.GetTask(outsider, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	err = svc.DeleteTask(outsider, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTasksDueTodayAppliesRecurrence(t *testing.T) {
	db := setupTestDB(t)
	_, parent, child := seedFamily(t, db)
	svc := newTaskService(db)

	_, err := svc.CreateTask(CreateTaskInput{
		Actor: parent, Name: "Daily stretch", AssignedTo: child.ID, Repeat: models.RepeatDaily,
	})
	require.NoError(t, err)
	_, err = svc.CreateTask(CreateTaskInput{
		Actor: parent, Name: "Weekly laundry", AssignedTo: child.ID, Repeat: models.RepeatWeekly,
	})
	require.NoError(t, err)

	// A Tuesday: the weekly task is off duty.
	day := time.Date(2026, 8, 4, 12, 0, 0, 0, time.UTC)
	due, err := svc.TasksDueToday(parent, child.ID, day)
	require.NoError(t, err)

	require.Len(t, due, 1)
	assert.Equal(t, "Daily stretch", due[0].Name)
}

func TestMemberDashboardIncludesCoinBalance(t *testing.T) {
	db := setupTestDB(t)
	_, parent, child := seedFamily(t, db)
	svc := newTaskService(db)

	done, err := svc.CreateTask(CreateTaskInput{
		Actor: parent, Name: "Water plants", AssignedTo: child.ID, Coins: 5,
	})
	require.NoError(t, err)
	_, err = svc.CompleteTask(parent, done.ID)
	require.NoError(t, err)

	_, err = svc.CreateTask(CreateTaskInput{
		Actor: parent, Name: "Feed cat", AssignedTo: child.ID, Repeat: models.RepeatDaily,
	})
	require.NoError(t, err)

	due, target, err := svc.MemberDashboard(parent, child.ID, time.Now())
	require.NoError(t, err)

	require.Len(t, due, 1)
	assert.Equal(t, "Feed cat", due[0].Name)
	assert.Equal(t, 5, target.Coins)
}
