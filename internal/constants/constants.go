package constants

// Context keys
const (
	ContextKeyUserID       = "user_id"
	ContextKeyFamily       = "family"
	ContextKeyFamilyMember = "family_member"
)

// Auth
const (
	MinPasswordLength = 8
)

// Join codes
const (
	JoinCodeLength      = 6
	JoinCodeMaxAttempts = 5
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Photo book
const (
	MaxPhotoBookReminders = 75
)
