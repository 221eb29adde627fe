// Derived views over the raw collections: today's agenda, today's tasks per
// member, budget remainder. All pure and recomputed on read; data volumes are
// family-sized, so there is nothing to cache.
package services

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/flowfam/family-api/internal/models"
)

// minuteOfDayInvalid sorts unparseable or empty times after every real time.
const minuteOfDayInvalid = 24 * 60

// MinuteOfDay parses an "HH:MM" or "H:MM" string into minutes since
// midnight. Comparing these, not the raw strings, is what keeps "9:00" from
// sorting after "10:00".
func MinuteOfDay(timeOfDay string) int {
	parts := strings.SplitN(timeOfDay, ":", 2)
	if len(parts) != 2 {
		return minuteOfDayInvalid
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 || hours > 23 {
		return minuteOfDayInvalid
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minutes < 0 || minutes > 59 {
		return minuteOfDayInvalid
	}

	return hours*60 + minutes
}

// TodaysAgenda returns the appointments falling on the given day, sorted by
// minute of day ascending.
func TodaysAgenda(appointments []models.Appointment, day time.Time) []models.Appointment {
	today := StartOfDay(day)

	agenda := make([]models.Appointment, 0)
	for _, appt := range appointments {
		if StartOfDay(appt.Date).Equal(today) {
			agenda = append(agenda, appt)
		}
	}

	sort.SliceStable(agenda, func(i, j int) bool {
		return MinuteOfDay(agenda[i].TimeOfDay) < MinuteOfDay(agenda[j].TimeOfDay)
	})

	return agenda
}

// TodaysTasksForMember returns the member's open tasks due on the given day:
// one-time tasks due today plus recurring tasks evaluated against today,
// excluding anything already completed.
func TodaysTasksForMember(tasks []models.Task, memberID uint64, day time.Time) []models.Task {
	due := make([]models.Task, 0)
	for _, task := range tasks {
		if task.AssignedTo != memberID || task.Completed {
			continue
		}
		if TaskDueOn(task, day) {
			due = append(due, task)
		}
	}
	return due
}

// TodaysChoresForMember is TodaysTasksForMember for household tasks.
func TodaysChoresForMember(chores []models.HouseholdTask, memberID uint64, day time.Time) []models.HouseholdTask {
	due := make([]models.HouseholdTask, 0)
	for _, chore := range chores {
		if chore.AssignedTo != memberID || chore.Completed {
			continue
		}
		if ChoreDueOn(chore, day) {
			due = append(due, chore)
		}
	}
	return due
}

// BudgetSummary is the derived monthly budget position.
type BudgetSummary struct {
	TotalIncome        float64 `json:"total_income"`
	TotalFixedExpenses float64 `json:"total_fixed_expenses"`
	TotalSpent         float64 `json:"total_spent"`
	Remaining          float64 `json:"remaining"`
}

// SummarizeBudget computes income minus fixed expenses minus everything spent
// across the pots.
func SummarizeBudget(items []models.BudgetItem, pots []models.BudgetPot) BudgetSummary {
	var summary BudgetSummary

	for _, item := range items {
		switch item.Kind {
		case models.BudgetItemIncome:
			summary.TotalIncome += item.Amount
		case models.BudgetItemFixedExpense:
			summary.TotalFixedExpenses += item.Amount
		}
	}

	for _, pot := range pots {
		summary.TotalSpent += pot.Spent
	}

	summary.Remaining = summary.TotalIncome - summary.TotalFixedExpenses - summary.TotalSpent
	return summary
}
