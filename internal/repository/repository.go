package repository

import (
	"github.com/flowfam/family-api/internal/models"
	"github.com/flowfam/family-api/internal/utils"
)

// UserRepository defines the interface for login-account data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// FamilyRepository defines the interface for family and member data access
type FamilyRepository interface {
	// CreateWithFirstParent creates a family and its first parent member atomically
	CreateWithFirstParent(family *models.Family, member *models.FamilyMember) error

	// FindByID finds a family by ID
	FindByID(id uint64) (*models.Family, error)

	// FindByJoinCode finds a family by its join code (codes are stored uppercase)
	FindByJoinCode(code string) (*models.Family, error)

	// JoinCodeExists reports whether an active family already uses the code
	JoinCodeExists(code string) (bool, error)

	// AddMember inserts a family member
	AddMember(member *models.FamilyMember) error

	// UpdateMember saves member changes
	UpdateMember(member *models.FamilyMember) error

	// FindMember finds a member by ID
	FindMember(id uint64) (*models.FamilyMember, error)

	// FindMemberByUserID finds the membership linked to a login account
	FindMemberByUserID(userID uint64) (*models.FamilyMember, error)

	// ListMembers lists all members of a family
	ListMembers(familyID uint64) ([]models.FamilyMember, error)

	// DeleteMember removes a member and scrubs them from every assignment list
	DeleteMember(id uint64) error

	// CreditCoins adds coins to a member's balance
	CreditCoins(memberID uint64, coins int) error
}

// TaskRepository defines the interface for reward-task data access
type TaskRepository interface {
	Create(task *models.Task) error
	FindByID(id uint64) (*models.Task, error)
	ListByFamily(familyID uint64) ([]models.Task, error)
	Update(task *models.Task) error
	Delete(id uint64) error

	// CompleteAndCredit flips the completion flag and credits the assignee's
	// coin balance in a single transaction.
	CompleteAndCredit(taskID, memberID uint64, coins int) error
}

// ChoreRepository defines the interface for household-task data access
type ChoreRepository interface {
	Create(chore *models.HouseholdTask) error
	FindByID(id uint64) (*models.HouseholdTask, error)
	ListByFamily(familyID uint64) ([]models.HouseholdTask, error)
	Update(chore *models.HouseholdTask) error
	Delete(id uint64) error
}

// ReminderRepository defines the interface for reminder data access
type ReminderRepository interface {
	// Create creates a reminder and its assignment rows atomically
	Create(reminder *models.Reminder, memberIDs []uint64) error
	FindByID(id uint64) (*models.Reminder, error)
	ListByFamily(familyID uint64) ([]models.Reminder, error)
	Update(reminder *models.Reminder) error

	// SetAssignees replaces the assignment list
	SetAssignees(reminderID uint64, memberIDs []uint64) error
	Delete(id uint64) error

	// ListPhotographed lists reminders that carry a photo, oldest first, capped at limit
	ListPhotographed(familyID uint64, limit int) ([]models.Reminder, error)
}

// NoteRepository defines the interface for shared-note data access
type NoteRepository interface {
	Create(note *models.FamilyNote, sharedWith []uint64) error
	FindByID(id uint64) (*models.FamilyNote, error)
	ListByFamily(familyID uint64) ([]models.FamilyNote, error)
	Update(note *models.FamilyNote) error
	SetShares(noteID uint64, memberIDs []uint64) error
	Delete(id uint64) error
}

// DocumentRepository defines the interface for document data access
type DocumentRepository interface {
	Create(doc *models.Document, perms []models.DocumentPermission) error
	FindByID(id uint64) (*models.Document, error)
	ListByFamily(familyID uint64) ([]models.Document, error)
	Update(doc *models.Document) error

	// SetPermission upserts the permission row for one member
	SetPermission(perm *models.DocumentPermission) error
	Delete(id uint64) error
}

// BudgetRepository defines the interface for budget data access
type BudgetRepository interface {
	CreatePot(pot *models.BudgetPot) error
	FindPot(id uint64) (*models.BudgetPot, error)
	ListPots(familyID uint64) ([]models.BudgetPot, error)
	UpdatePot(pot *models.BudgetPot) error
	DeletePot(id uint64) error

	CreateItem(item *models.BudgetItem) error
	FindItem(id uint64) (*models.BudgetItem, error)
	ListItems(familyID uint64) ([]models.BudgetItem, error)
	UpdateItem(item *models.BudgetItem) error
	DeleteItem(id uint64) error
}

// AppointmentRepository defines the interface for appointment data access
type AppointmentRepository interface {
	Create(appt *models.Appointment) error
	FindByID(id uint64) (*models.Appointment, error)
	ListByFamily(familyID uint64) ([]models.Appointment, error)

	// ListByFamilyPaged lists one page of appointments plus the total count
	ListByFamilyPaged(familyID uint64, params utils.PaginationParams) ([]models.Appointment, int64, error)
	Update(appt *models.Appointment) error
	Delete(id uint64) error
}

// ScheduleRepository defines the interface for the weekday and board entities
type ScheduleRepository interface {
	CreateWork(entry *models.WorkSchedule) error
	ListWorkByMember(memberID uint64) ([]models.WorkSchedule, error)
	UpdateWork(entry *models.WorkSchedule) error
	DeleteWork(id uint64) error
	FindWork(id uint64) (*models.WorkSchedule, error)

	CreateSchool(entry *models.SchoolSchedule) error
	ListSchoolByMember(memberID uint64) ([]models.SchoolSchedule, error)
	UpdateSchool(entry *models.SchoolSchedule) error
	DeleteSchool(id uint64) error
	FindSchool(id uint64) (*models.SchoolSchedule, error)

	CreateBoardItem(item *models.TaskBoardItem) error
	ListBoardByFamily(familyID uint64) ([]models.TaskBoardItem, error)
	UpdateBoardItem(item *models.TaskBoardItem) error
	DeleteBoardItem(id uint64) error
	FindBoardItem(id uint64) (*models.TaskBoardItem, error)
}

// SettingsRepository defines the interface for notification settings
type SettingsRepository interface {
	Upsert(setting *models.NotificationSetting) error
	ListByMember(memberID uint64) ([]models.NotificationSetting, error)
	FindByMemberAndType(memberID uint64, t models.NotificationType) (*models.NotificationSetting, error)
}
