// Dueness rules for repeating tasks. Each repeat rule has its own checker so
// the fixed conventions (weekly means Monday, monthly means the 1st) live in
// exactly one place.
package services

import (
	"time"

	"github.com/flowfam/family-api/internal/models"
)

// DuenessChecker decides whether a task with a given due date is due on the
// given day. Implementations are pure: same inputs, same answer, no clock.
type DuenessChecker interface {
	IsDue(dueDate *time.Time, day time.Time) bool
}

// DailyChecker: due every day.
type DailyChecker struct{}

func (DailyChecker) IsDue(_ *time.Time, _ time.Time) bool {
	return true
}

// WeeklyChecker: due on Mondays only. The weekday is a fixed business rule,
// not configurable per task; the due date is ignored.
type WeeklyChecker struct{}

func (WeeklyChecker) IsDue(_ *time.Time, day time.Time) bool {
	return day.Weekday() == time.Monday
}

// MonthlyChecker: due on the 1st of the month only. Same fixed convention.
type MonthlyChecker struct{}

func (MonthlyChecker) IsDue(_ *time.Time, day time.Time) bool {
	return day.Day() == 1
}

// OneTimeChecker: due when the due date, normalized to midnight, equals the
// day. A one-time task without a due date is due today by convention.
type OneTimeChecker struct{}

func (OneTimeChecker) IsDue(dueDate *time.Time, day time.Time) bool {
	if dueDate == nil {
		return true
	}
	return StartOfDay(*dueDate).Equal(StartOfDay(day))
}

var duenessStrategies = map[models.RepeatRule]DuenessChecker{
	models.RepeatNone:    OneTimeChecker{},
	models.RepeatDaily:   DailyChecker{},
	models.RepeatWeekly:  WeeklyChecker{},
	models.RepeatMonthly: MonthlyChecker{},
}

// IsDueOn reports whether a task with the given repeat rule and due date is
// due on the given day. Unknown rules are never due.
func IsDueOn(repeat models.RepeatRule, dueDate *time.Time, day time.Time) bool {
	checker, ok := duenessStrategies[repeat]
	if !ok {
		return false
	}
	return checker.IsDue(dueDate, day)
}

// TaskDueOn reports whether a reward task is due on the given day.
func TaskDueOn(task models.Task, day time.Time) bool {
	return IsDueOn(task.Repeat, task.DueDate, day)
}

// ChoreDueOn reports whether a household task is due on the given day.
func ChoreDueOn(chore models.HouseholdTask, day time.Time) bool {
	return IsDueOn(chore.Repeat, chore.DueDate, day)
}

// StartOfDay normalizes a time to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
