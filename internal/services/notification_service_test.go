package services

import (
	"context"
	"testing"
	"time"

	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/notify"
	"github.com/flowfam/family-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingScheduler captures dispatcher calls for assertions.
type recordingScheduler struct {
	scheduled []string
	cancelled []string
}

func (r *recordingScheduler) ScheduleAt(_ context.Context, _ time.Time, _ notify.Payload, tag string) error {
	r.scheduled = append(r.scheduled, tag)
	return nil
}

func (r *recordingScheduler) CancelByTag(_ context.Context, tag string) error {
	r.cancelled = append(r.cancelled, tag)
	return nil
}

func newNotificationService(db *gorm.DB, scheduler notify.Scheduler) *NotificationService {
	return NewNotificationService(repository.NewSettingsRepository(db), repository.NewFamilyRepository(db), scheduler)
}

func TestUpdateSettingCancelsAndReschedules(t *testing.T) {
	db := setupTestDB(t)
	_, parent, _ := seedFamily(t, db)
	rec := &recordingScheduler{}
	svc := newNotificationService(db, rec)

	setting, err := svc.UpdateSetting(context.Background(), UpdateSettingInput{
		Actor:     parent,
		Type:      models.NotificationDailyOverview,
		Enabled:   true,
		TimeOfDay: "7:30",
	})
	require.NoError(t, err)

	assert.True(t, setting.Enabled)
	require.Len(t, rec.cancelled, 1)
	require.Len(t, rec.scheduled, 1)
	assert.Equal(t, rec.cancelled[0], rec.scheduled[0], "cancel and schedule share the type tag")
}

func TestDisablingSettingOnlyCancels(t *testing.T) {
	db := setupTestDB(t)
	_, parent, _ := seedFamily(t, db)
	rec := &recordingScheduler{}
	svc := newNotificationService(db, rec)

	_, err := svc.UpdateSetting(context.Background(), UpdateSettingInput{
		Actor:     parent,
		Type:      models.NotificationTask,
		Enabled:   false,
		TimeOfDay: "8:00",
	})
	require.NoError(t, err)

	assert.Len(t, rec.cancelled, 1)
	assert.Empty(t, rec.scheduled)
}

func TestUpdateSettingUpsertsOneRowPerType(t *testing.T) {
	db := setupTestDB(t)
	_, parent, _ := seedFamily(t, db)
	svc := newNotificationService(db, notify.NopScheduler{})

	_, err := svc.UpdateSetting(context.Background(), UpdateSettingInput{
		Actor: parent, Type: models.NotificationMeal, Enabled: true, TimeOfDay: "12:00",
	})
	require.NoError(t, err)
	_, err = svc.UpdateSetting(context.Background(), UpdateSettingInput{
		Actor: parent, Type: models.NotificationMeal, Enabled: true, TimeOfDay: "13:00",
	})
	require.NoError(t, err)

	settings, err := svc.ListSettings(parent)
	require.NoError(t, err)
	require.Len(t, settings, 1)
	assert.Equal(t, "13:00", settings[0].TimeOfDay)
}

func TestUpdateSettingValidation(t *testing.T) {
	db := setupTestDB(t)
	_, parent, _ := seedFamily(t, db)
	svc := newNotificationService(db, notify.NopScheduler{})

	_, err := svc.UpdateSetting(context.Background(), UpdateSettingInput{
		Actor: parent, Type: "pager", Enabled: true,
	})
	assert.ErrorIs(t, err, ErrInvalidNotificationType)

	_, err = svc.UpdateSetting(context.Background(), UpdateSettingInput{
		Actor: parent, Type: models.NotificationTask, Enabled: true, TimeOfDay: "25:99",
	})
	assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
}

func TestNextDeliveryAtRollsToTomorrow(t *testing.T) {
	now := time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC)

	ahead := nextDeliveryAt(now, "18:00")
	assert.Equal(t, time.Date(2026, 8, 3, 18, 0, 0, 0, time.UTC), ahead)

	passed := nextDeliveryAt(now, "7:30")
	assert.Equal(t, time.Date(2026, 8, 4, 7, 30, 0, 0, time.UTC), passed)
}
