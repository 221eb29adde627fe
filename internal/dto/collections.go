package dto

import (
	"time"

	"github.com/flowfam/family-api/internal/models"
)

// TaskDTO represents a reward task in API responses
type TaskDTO struct {
	ID         uint64            `json:"id"`
	Name       string            `json:"name"`
	Icon       string            `json:"icon,omitempty"`
	Coins      int               `json:"coins"`
	AssignedTo uint64            `json:"assigned_to"`
	Completed  bool              `json:"completed"`
	Repeat     models.RepeatRule `json:"repeat"`
	DueDate    *time.Time        `json:"due_date"`
	TimeOfDay  string            `json:"time_of_day,omitempty"`
	CreatorID  *uint64           `json:"creator_id,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// ChoreDTO represents a household task in API responses
type ChoreDTO struct {
	ID         uint64            `json:"id"`
	Name       string            `json:"name"`
	Icon       string            `json:"icon,omitempty"`
	AssignedTo uint64            `json:"assigned_to"`
	Completed  bool              `json:"completed"`
	Repeat     models.RepeatRule `json:"repeat"`
	DueDate    *time.Time        `json:"due_date"`
	TimeOfDay  string            `json:"time_of_day,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// ReminderDTO represents a reminder in API responses
type ReminderDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	TimeOfDay   string    `json:"time_of_day,omitempty"`
	Completed   bool      `json:"completed"`
	PhotoPath   string    `json:"photo_path,omitempty"`
	CreatorID   uint64    `json:"creator_id"`
	AssignedTo  []uint64  `json:"assigned_to"`
	CreatedAt   time.Time `json:"created_at"`
}

// NoteDTO represents a shared note in API responses
type NoteDTO struct {
	ID         uint64    `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	CreatorID  uint64    `json:"creator_id"`
	SharedWith []uint64  `json:"shared_with"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DocumentPermissionDTO represents one member's rights on a document
type DocumentPermissionDTO struct {
	MemberID    uint64 `json:"member_id"`
	CanView     bool   `json:"can_view"`
	CanDownload bool   `json:"can_download"`
	CanEdit     bool   `json:"can_edit"`
	CanDelete   bool   `json:"can_delete"`
}

// DocumentDTO represents a document in API responses. The storage path stays
// server-side; clients go through the download endpoint.
type DocumentDTO struct {
	ID          uint64                  `json:"id"`
	Title       string                  `json:"title"`
	Description string                  `json:"description,omitempty"`
	UploadedBy  uint64                  `json:"uploaded_by"`
	Permissions []DocumentPermissionDTO `json:"permissions,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
}

// Conversion functions

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:         task.ID,
		Name:       task.Name,
		Icon:       task.Icon,
		Coins:      task.Coins,
		AssignedTo: task.AssignedTo,
		Completed:  task.Completed,
		Repeat:     task.Repeat,
		DueDate:    task.DueDate,
		TimeOfDay:  task.TimeOfDay,
		CreatorID:  task.CreatorID,
		CreatedAt:  task.CreatedAt,
		UpdatedAt:  task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToChoreDTO converts a HouseholdTask model to ChoreDTO
func ToChoreDTO(chore models.HouseholdTask) ChoreDTO {
	return ChoreDTO{
		ID:         chore.ID,
		Name:       chore.Name,
		Icon:       chore.Icon,
		AssignedTo: chore.AssignedTo,
		Completed:  chore.Completed,
		Repeat:     chore.Repeat,
		DueDate:    chore.DueDate,
		TimeOfDay:  chore.TimeOfDay,
		CreatedAt:  chore.CreatedAt,
	}
}

// ToChoreDTOs converts a slice of household tasks
func ToChoreDTOs(chores []models.HouseholdTask) []ChoreDTO {
	dtos := make([]ChoreDTO, len(chores))
	for i, chore := range chores {
		dtos[i] = ToChoreDTO(chore)
	}
	return dtos
}

// ToReminderDTO converts a Reminder model to ReminderDTO
func ToReminderDTO(reminder models.Reminder) ReminderDTO {
	assignedTo := make([]uint64, 0, len(reminder.Assignments))
	for _, assignment := range reminder.Assignments {
		assignedTo = append(assignedTo, assignment.MemberID)
	}

	return ReminderDTO{
		ID:          reminder.ID,
		Title:       reminder.Title,
		Description: reminder.Description,
		Date:        reminder.Date,
		TimeOfDay:   reminder.TimeOfDay,
		Completed:   reminder.Completed,
		PhotoPath:   reminder.PhotoPath,
		CreatorID:   reminder.CreatorID,
		AssignedTo:  assignedTo,
		CreatedAt:   reminder.CreatedAt,
	}
}

// ToReminderDTOs converts a slice of reminders
func ToReminderDTOs(reminders []models.Reminder) []ReminderDTO {
	dtos := make([]ReminderDTO, len(reminders))
	for i, reminder := range reminders {
		dtos[i] = ToReminderDTO(reminder)
	}
	return dtos
}

// ToNoteDTO converts a FamilyNote model to NoteDTO
func ToNoteDTO(note models.FamilyNote) NoteDTO {
	return NoteDTO{
		ID:         note.ID,
		Title:      note.Title,
		Body:       note.Body,
		CreatorID:  note.CreatorID,
		SharedWith: note.SharedWith(),
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}
}

// ToNoteDTOs converts a slice of notes
func ToNoteDTOs(notes []models.FamilyNote) []NoteDTO {
	dtos := make([]NoteDTO, len(notes))
	for i, note := range notes {
		dtos[i] = ToNoteDTO(note)
	}
	return dtos
}

// ToDocumentDTO converts a Document model to DocumentDTO. Permission rows
// only go out to the uploader; everyone else just sees the document.
func ToDocumentDTO(doc models.Document, includePermissions bool) DocumentDTO {
	dto := DocumentDTO{
		ID:          doc.ID,
		Title:       doc.Title,
		Description: doc.Description,
		UploadedBy:  doc.UploadedBy,
		CreatedAt:   doc.CreatedAt,
	}

	if includePermissions {
		dto.Permissions = make([]DocumentPermissionDTO, len(doc.Permissions))
		for i, perm := range doc.Permissions {
			dto.Permissions[i] = DocumentPermissionDTO{
				MemberID:    perm.MemberID,
				CanView:     perm.CanView,
				CanDownload: perm.CanDownload,
				CanEdit:     perm.CanEdit,
				CanDelete:   perm.CanDelete,
			}
		}
	}

	return dto
}

// ToDocumentDTOs converts a slice of documents
func ToDocumentDTOs(docs []models.Document, includePermissions bool) []DocumentDTO {
	dtos := make([]DocumentDTO, len(docs))
	for i, doc := range docs {
		dtos[i] = ToDocumentDTO(doc, includePermissions)
	}
	return dtos
}
