package services

import (
	"testing"
	"time"

	"github.com/flowfam/family-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestMinuteOfDay(t *testing.T) {
	assert.Equal(t, 540, MinuteOfDay("9:00"))
	assert.Equal(t, 540, MinuteOfDay("09:00"))
	assert.Equal(t, 600, MinuteOfDay("10:00"))
	assert.Equal(t, 23*60+59, MinuteOfDay("23:59"))

	assert.Equal(t, minuteOfDayInvalid, MinuteOfDay(""))
	assert.Equal(t, minuteOfDayInvalid, MinuteOfDay("25:00"))
	assert.Equal(t, minuteOfDayInvalid, MinuteOfDay("9:75"))
	assert.Equal(t, minuteOfDayInvalid, MinuteOfDay("noon"))
}

func TestTodaysAgendaSortsByClockTimeNotLexically(t *testing.T) {
	day := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

	appointments := []models.Appointment{
		{ID: 1, Date: day, TimeOfDay: "10:00"},
		{ID: 2, Date: day, TimeOfDay: "9:00"},
		{ID: 3, Date: day, TimeOfDay: "14:30"},
	}

	agenda := TodaysAgenda(appointments, day)

	// Lexically "10:00" < "9:00"; by clock time 9:00 comes first.
	assert.Len(t, agenda, 3)
	assert.Equal(t, uint64(2), agenda[0].ID)
	assert.Equal(t, uint64(1), agenda[1].ID)
	assert.Equal(t, uint64(3), agenda[2].ID)
}

func TestTodaysAgendaExcludesOtherDays(t *testing.T) {
	day := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

	appointments := []models.Appointment{
		{ID: 1, Date: day, TimeOfDay: "9:00"},
		{ID: 2, Date: day.AddDate(0, 0, 1), TimeOfDay: "8:00"},
		{ID: 3, Date: day.Add(16 * time.Hour), TimeOfDay: "18:00"},
	}

	agenda := TodaysAgenda(appointments, day)

	assert.Len(t, agenda, 2)
	assert.Equal(t, uint64(1), agenda[0].ID)
	assert.Equal(t, uint64(3), agenda[1].ID)
}

func TestTodaysAgendaPutsUntimedEntriesLast(t *testing.T) {
	day := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

	appointments := []models.Appointment{
		{ID: 1, Date: day, TimeOfDay: ""},
		{ID: 2, Date: day, TimeOfDay: "16:00"},
	}

	agenda := TodaysAgenda(appointments, day)

	assert.Equal(t, uint64(2), agenda[0].ID)
	assert.Equal(t, uint64(1), agenda[1].ID)
}

func TestTodaysTasksForMemberFiltersAssigneeAndCompletion(t *testing.T) {
	day := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

	tasks := []models.Task{
		{ID: 1, AssignedTo: 7, Repeat: models.RepeatDaily},
		{ID: 2, AssignedTo: 7, Repeat: models.RepeatDaily, Completed: true},
		{ID: 3, AssignedTo: 8, Repeat: models.RepeatDaily},
	}

	due := TodaysTasksForMember(tasks, 7, day)

	assert.Len(t, due, 1)
	assert.Equal(t, uint64(1), due[0].ID)
}

func TestSummarizeBudget(t *testing.T) {
	items := []models.BudgetItem{
		{Kind: models.BudgetItemIncome, Amount: 3000},
		{Kind: models.BudgetItemIncome, Amount: 500},
		{Kind: models.BudgetItemFixedExpense, Amount: 1200},
	}
	pots := []models.BudgetPot{
		{Budget: 400, Spent: 150},
		{Budget: 200, Spent: 75.50},
	}

	summary := SummarizeBudget(items, pots)

	assert.InDelta(t, 3500, summary.TotalIncome, 0.001)
	assert.InDelta(t, 1200, summary.TotalFixedExpenses, 0.001)
	assert.InDelta(t, 225.50, summary.TotalSpent, 0.001)
	assert.InDelta(t, 2074.50, summary.Remaining, 0.001)
}

func TestSummarizeBudgetEmpty(t *testing.T) {
	summary := SummarizeBudget(nil, nil)

	assert.Zero(t, summary.TotalIncome)
	assert.Zero(t, summary.Remaining)
}
