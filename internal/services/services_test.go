package services

import (
	"testing"

	"github.com/flowfam/family-api/internal/database"
	"github.com/flowfam/family-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Family{},
		&models.FamilyMember{},
		&models.Task{},
		&models.HouseholdTask{},
		&models.Reminder{},
		&models.ReminderAssignment{},
		&models.FamilyNote{},
		&models.NoteShare{},
		&models.Document{},
		&models.DocumentPermission{},
		&models.BudgetPot{},
		&models.BudgetItem{},
		&models.Appointment{},
		&models.WorkSchedule{},
		&models.SchoolSchedule{},
		&models.TaskBoardItem{},
		&models.NotificationSetting{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// seedFamily creates a family with one parent and one child member.
func seedFamily(t *testing.T, db *gorm.DB) (models.Family, models.FamilyMember, models.FamilyMember) {
	t.Helper()

	family := models.Family{Name: "Testers", JoinCode: "ABC123"}
	require.NoError(t, db.Create(&family).Error)

	userID := uint64(1)
	parent := models.FamilyMember{
		FamilyID: family.ID,
		UserID:   &userID,
		Name:     "Alex",
		Role:     models.RoleParent,
		Color:    "#ff8800",
	}
	require.NoError(t, db.Create(&parent).Error)

	child := models.FamilyMember{
		FamilyID: family.ID,
		Name:     "Sam",
		Role:     models.RoleChild,
		Color:    "#00cc88",
	}
	require.NoError(t, db.Create(&child).Error)

	return family, parent, child
}
