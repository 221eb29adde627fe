package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/repository"
	"github.com/flowfam/family-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound      = errors.New("appointment not found")
	ErrAppointmentTitleRequired = errors.New("appointment title is required")
	ErrAppointmentDateRequired  = errors.New("appointment date is required")
)

// AppointmentService handles the shared family calendar.
type AppointmentService struct {
	apptRepo repository.AppointmentRepository
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(apptRepo repository.AppointmentRepository) *AppointmentService {
	return &AppointmentService{apptRepo: apptRepo}
}

// CreateAppointmentInput represents input for creating an appointment.
type CreateAppointmentInput struct {
	Actor     models.FamilyMember
	Title     string
	Location  string
	Date      time.Time
	TimeOfDay string
}

// CreateAppointment validates and creates an appointment in the actor's
// family.
func (s *AppointmentService) CreateAppointment(input CreateAppointmentInput) (*models.Appointment, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrAppointmentTitleRequired
	}
	if input.Date.IsZero() {
		return nil, ErrAppointmentDateRequired
	}

	appt := &models.Appointment{
		FamilyID:  input.Actor.FamilyID,
		Title:     input.Title,
		Location:  input.Location,
		Date:      input.Date,
		TimeOfDay: input.TimeOfDay,
		CreatorID: input.Actor.ID,
	}
	if err := s.apptRepo.Create(appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appt, nil
}

// UpdateAppointmentInput represents a partial appointment update.
type UpdateAppointmentInput struct {
	Actor         models.FamilyMember
	AppointmentID uint64
	Title         *string
	Location      *string
	Date          *time.Time
	TimeOfDay     *string
}

// UpdateAppointment applies a partial update to an appointment.
func (s *AppointmentService) UpdateAppointment(input UpdateAppointmentInput) (*models.Appointment, error) {
	appt, err := s.appointmentInFamily(input.AppointmentID, input.Actor.FamilyID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrAppointmentTitleRequired
		}
		appt.Title = *input.Title
	}
	if input.Location != nil {
		appt.Location = *input.Location
	}
	if input.Date != nil {
		appt.Date = *input.Date
	}
	if input.TimeOfDay != nil {
		appt.TimeOfDay = *input.TimeOfDay
	}

	if err := s.apptRepo.Update(appt); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return appt, nil
}

// DeleteAppointment removes an appointment from the actor's family.
func (s *AppointmentService) DeleteAppointment(actor models.FamilyMember, apptID uint64) error {
	if _, err := s.appointmentInFamily(apptID, actor.FamilyID); err != nil {
		return err
	}
	if err := s.apptRepo.Delete(apptID); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}

// ListAppointments lists one page of the actor's family calendar along with
// the total appointment count.
func (s *AppointmentService) ListAppointments(actor models.FamilyMember, params utils.PaginationParams) ([]models.Appointment, int64, error) {
	appts, total, err := s.apptRepo.ListByFamilyPaged(actor.FamilyID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, total, nil
}

// GetAppointment returns one appointment of the actor's family.
func (s *AppointmentService) GetAppointment(actor models.FamilyMember, apptID uint64) (*models.Appointment, error) {
	return s.appointmentInFamily(apptID, actor.FamilyID)
}

// AgendaForDay returns the family's appointments on the given day sorted by
// time of day.
func (s *AppointmentService) AgendaForDay(actor models.FamilyMember, day time.Time) ([]models.Appointment, error) {
	appts, err := s.apptRepo.ListByFamily(actor.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return TodaysAgenda(appts, day), nil
}

func (s *AppointmentService) appointmentInFamily(apptID, familyID uint64) (*models.Appointment, error) {
	appt, err := s.apptRepo.FindByID(apptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to find appointment: %w", err)
	}
	if appt.FamilyID != familyID {
		return nil, ErrAppointmentNotFound
	}
	return appt, nil
}
