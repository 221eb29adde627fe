package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/notify"
	"github.com/flowfam/family-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidNotificationType = errors.New("unknown notification type")
	ErrInvalidTimeOfDay        = errors.New("time of day must be HH:MM")
)

// NotificationService manages per-member notification settings and keeps the
// external dispatcher in sync. Changes cancel by type tag and re-register,
// since individual schedule IDs are not retained.
type NotificationService struct {
	settingsRepo repository.SettingsRepository
	familyRepo   repository.FamilyRepository
	scheduler    notify.Scheduler
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(settingsRepo repository.SettingsRepository, familyRepo repository.FamilyRepository, scheduler notify.Scheduler) *NotificationService {
	return &NotificationService{
		settingsRepo: settingsRepo,
		familyRepo:   familyRepo,
		scheduler:    scheduler,
	}
}

func validNotificationType(t models.NotificationType) bool {
	switch t {
	case models.NotificationDailyOverview, models.NotificationAppointment,
		models.NotificationTask, models.NotificationMeal:
		return true
	}
	return false
}

// settingTag is the cancellation handle for every pending notification of one
// type for one member.
func settingTag(t models.NotificationType, memberID uint64) string {
	return fmt.Sprintf("%s:%d", t, memberID)
}

// ListSettings lists a member's notification settings. Members read their own
// settings only.
func (s *NotificationService) ListSettings(actor models.FamilyMember) ([]models.NotificationSetting, error) {
	settings, err := s.settingsRepo.ListByMember(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notification settings: %w", err)
	}
	return settings, nil
}

// UpdateSettingInput represents one setting change.
type UpdateSettingInput struct {
	Actor     models.FamilyMember
	Type      models.NotificationType
	Enabled   bool
	TimeOfDay string
}

// UpdateSetting upserts the setting and reconciles the dispatcher: pending
// notifications for the type are cancelled, and when the setting is enabled
// the next delivery is registered at the configured time of day.
func (s *NotificationService) UpdateSetting(ctx context.Context, input UpdateSettingInput) (*models.NotificationSetting, error) {
	if !validNotificationType(input.Type) {
		return nil, ErrInvalidNotificationType
	}
	if input.TimeOfDay != "" && MinuteOfDay(input.TimeOfDay) == minuteOfDayInvalid {
		return nil, ErrInvalidTimeOfDay
	}

	setting, err := s.settingsRepo.FindByMemberAndType(input.Actor.ID, input.Type)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find notification setting: %w", err)
		}
		setting = &models.NotificationSetting{
			FamilyID: input.Actor.FamilyID,
			MemberID: input.Actor.ID,
			Type:     input.Type,
		}
	}
	setting.Enabled = input.Enabled
	setting.TimeOfDay = input.TimeOfDay

	if err := s.settingsRepo.Upsert(setting); err != nil {
		return nil, fmt.Errorf("failed to save notification setting: %w", err)
	}

	tag := settingTag(input.Type, input.Actor.ID)
	if err := s.scheduler.CancelByTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to cancel pending notifications: %w", err)
	}

	if setting.Enabled && setting.TimeOfDay != "" {
		at := nextDeliveryAt(time.Now(), setting.TimeOfDay)
		payload := notify.Payload{
			Title:    notificationTitle(input.Type),
			MemberID: input.Actor.ID,
		}
		if err := s.scheduler.ScheduleAt(ctx, at, payload, tag); err != nil {
			return nil, fmt.Errorf("failed to schedule notification: %w", err)
		}
	}

	return setting, nil
}

// nextDeliveryAt returns the next occurrence of the clock time, today if it
// is still ahead, otherwise tomorrow.
func nextDeliveryAt(now time.Time, timeOfDay string) time.Time {
	minute := MinuteOfDay(timeOfDay)
	at := StartOfDay(now).Add(time.Duration(minute) * time.Minute)
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

func notificationTitle(t models.NotificationType) string {
	switch t {
	case models.NotificationDailyOverview:
		return "Your day at a glance"
	case models.NotificationAppointment:
		return "Upcoming appointment"
	case models.NotificationTask:
		return "Task reminder"
	case models.NotificationMeal:
		return "Meal reminder"
	}
	return "Reminder"
}
