package services

import (
	"testing"
	"time"

	"github.com/flowfam/family-api/internal/models"
	"github.com/stretchr/testify/assert"
)

// 2026-08-03 is a Monday.
var (
	monday       = time.Date(2026, 8, 3, 15, 30, 0, 0, time.UTC)
	tuesday      = monday.AddDate(0, 0, 1)
	firstOfMonth = time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	midMonth     = time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)
)

func TestDailyTaskIsAlwaysDue(t *testing.T) {
	task := models.Task{Repeat: models.RepeatDaily}

	assert.True(t, TaskDueOn(task, monday))
	assert.True(t, TaskDueOn(task, tuesday))
	assert.True(t, TaskDueOn(task, midMonth))
}

func TestWeeklyTaskIsDueOnMondayOnly(t *testing.T) {
	task := models.Task{Repeat: models.RepeatWeekly}

	assert.True(t, TaskDueOn(task, monday))

	for offset := 1; offset < 7; offset++ {
		day := monday.AddDate(0, 0, offset)
		assert.False(t, TaskDueOn(task, day), "weekly task should not be due on %s", day.Weekday())
	}
}

func TestMonthlyTaskIsDueOnFirstOnly(t *testing.T) {
	task := models.Task{Repeat: models.RepeatMonthly}

	assert.True(t, TaskDueOn(task, firstOfMonth))
	assert.False(t, TaskDueOn(task, midMonth))
	assert.False(t, TaskDueOn(task, monday))
}

func TestOneTimeTaskDueDateIgnoresClockTime(t *testing.T) {
	due := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	task := models.Task{Repeat: models.RepeatNone, DueDate: &due}

	lateOnDueDay := time.Date(2026, 8, 3, 23, 59, 0, 0, time.UTC)
	assert.True(t, TaskDueOn(task, lateOnDueDay))
	assert.False(t, TaskDueOn(task, tuesday))
}

func TestUndatedOneTimeTaskCountsAsDueToday(t *testing.T) {
	task := models.Task{Repeat: models.RepeatNone}

	// Without a due date the task is due every day until it gets completed.
	assert.True(t, TaskDueOn(task, monday))
	assert.True(t, TaskDueOn(task, midMonth))
}

func TestUnknownRepeatRuleIsNeverDue(t *testing.T) {
	task := models.Task{Repeat: models.RepeatRule("fortnightly")}

	assert.False(t, TaskDueOn(task, monday))
}

func TestChoreDuenessMatchesTaskDueness(t *testing.T) {
	chore := models.HouseholdTask{Repeat: models.RepeatWeekly}

	assert.True(t, ChoreDueOn(chore, monday))
	assert.False(t, ChoreDueOn(chore, tuesday))
}

func TestStartOfDayNormalizesClockTime(t *testing.T) {
	normalized := StartOfDay(monday)

	assert.Equal(t, 0, normalized.Hour())
	assert.Equal(t, 0, normalized.Minute())
	assert.Equal(t, monday.Year(), normalized.Year())
	assert.Equal(t, monday.Month(), normalized.Month())
	assert.Equal(t, monday.Day(), normalized.Day())
}
