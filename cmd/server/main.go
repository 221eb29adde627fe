package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/flowfam/family-api/internal/config"
	"github.com/flowfam/family-api/internal/database"
	"github.com/flowfam/family-api/internal/handlers"
	"github.com/flowfam/family-api/internal/mail"
	"github.com/flowfam/family-api/internal/middleware"
	"github.com/flowfam/family-api/internal/notify"
	"github.com/flowfam/family-api/internal/repository"
	"github.com/flowfam/family-api/internal/services"
	"github.com/flowfam/family-api/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// File storage for documents and member photos
	store, err := storage.NewLocalStorage(cfg.StorageDir)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Notification dispatcher; without a broker configured, registrations are
	// dropped silently.
	var scheduler notify.Scheduler = notify.NopScheduler{}
	if cfg.AMQPURL != "" {
		amqpScheduler, err := notify.NewAMQPScheduler(cfg.AMQPURL, cfg.NotifyExchange, cfg.NotifyQueue)
		if err != nil {
			log.Fatalf("Failed to connect to AMQP broker: %v", err)
		}
		defer amqpScheduler.Close()
		scheduler = amqpScheduler
	}

	// Outbound mail for join invites; disabled when no sender is configured
	mailer, err := mail.NewMailer(cfg.AWSRegion, cfg.MailFromAddress, cfg.MailFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize mailer: %v", err)
	}

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	choreRepo := repository.NewChoreRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, familyRepo)
	familyService := services.NewFamilyService(familyRepo, mailer)
	taskService := services.NewTaskService(taskRepo, familyRepo)
	choreService := services.NewChoreService(choreRepo, familyRepo)
	reminderService := services.NewReminderService(reminderRepo, familyRepo, store)
	noteService := services.NewNoteService(noteRepo, familyRepo)
	documentService := services.NewDocumentService(documentRepo, familyRepo, store)
	budgetService := services.NewBudgetService(budgetRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo)
	scheduleService := services.NewScheduleService(scheduleRepo, familyRepo)
	notificationService := services.NewNotificationService(settingsRepo, familyRepo, scheduler)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	familyHandler := handlers.NewFamilyHandler(familyService)
	taskHandler := handlers.NewTaskHandler(taskService)
	choreHandler := handlers.NewChoreHandler(choreService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	noteHandler := handlers.NewNoteHandler(noteService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	sessionStore, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions("flowfam_session", sessionStore))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Flow Fam API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Onboarding routes: authenticated but not yet in a family
		families := api.Group("/families")
		families.Use(middleware.RequireAuth())
		{
			families.POST("", familyHandler.CreateFamily)
			families.POST("/join", familyHandler.JoinFamily)
		}

		// Family-scoped routes
		family := api.Group("/family")
		family.Use(middleware.RequireAuth(), middleware.RequireFamilyMember())
		{
			family.GET("", familyHandler.GetFamily)
			family.POST("/invite", middleware.RequireParent(), familyHandler.InviteParent)
			family.POST("/members", middleware.RequireParent(), familyHandler.AddMember)
			family.PATCH("/members/:id", familyHandler.UpdateMember)
			family.DELETE("/members/:id", middleware.RequireParent(), familyHandler.DeleteMember)

			family.GET("/tasks", taskHandler.ListTasks)
			family.POST("/tasks", taskHandler.CreateTask)
			family.GET("/tasks/:id", taskHandler.GetTask)
			family.PATCH("/tasks/:id", taskHandler.UpdateTask)
			family.DELETE("/tasks/:id", taskHandler.DeleteTask)
			family.POST("/tasks/:id/complete", taskHandler.CompleteTask)
			family.GET("/members/:memberId/tasks/today", taskHandler.TasksDueToday)
			family.GET("/members/:memberId/dashboard", taskHandler.MemberDashboard)

			family.GET("/chores", choreHandler.ListChores)
			family.POST("/chores", choreHandler.CreateChore)
			family.PATCH("/chores/:id", choreHandler.UpdateChore)
			family.DELETE("/chores/:id", choreHandler.DeleteChore)
			family.GET("/members/:memberId/chores/today", choreHandler.ChoresDueToday)

			family.GET("/reminders", reminderHandler.ListReminders)
			family.POST("/reminders", reminderHandler.CreateReminder)
			family.GET("/reminders/:id", reminderHandler.GetReminder)
			family.PATCH("/reminders/:id", reminderHandler.UpdateReminder)
			family.DELETE("/reminders/:id", reminderHandler.DeleteReminder)
			family.POST("/reminders/:id/photo", reminderHandler.UploadPhoto)
			family.GET("/reminders/:id/photo", reminderHandler.DownloadPhoto)
			family.GET("/photo-book", reminderHandler.PhotoBook)

			family.GET("/notes", noteHandler.ListNotes)
			family.POST("/notes", noteHandler.CreateNote)
			family.GET("/notes/:id", noteHandler.GetNote)
			family.PATCH("/notes/:id", noteHandler.UpdateNote)
			family.DELETE("/notes/:id", noteHandler.DeleteNote)

			family.GET("/documents", documentHandler.ListDocuments)
			family.POST("/documents", middleware.RequireParent(), documentHandler.UploadDocument)
			family.GET("/documents/:id", documentHandler.GetDocument)
			family.GET("/documents/:id/download", documentHandler.DownloadDocument)
			family.PATCH("/documents/:id", documentHandler.UpdateDocument)
			family.PUT("/documents/:id/permissions", documentHandler.SetPermission)
			family.DELETE("/documents/:id", documentHandler.DeleteDocument)

			family.GET("/budget", budgetHandler.Overview)
			family.POST("/budget/pots", budgetHandler.CreatePot)
			family.PATCH("/budget/pots/:id", budgetHandler.UpdatePot)
			family.DELETE("/budget/pots/:id", budgetHandler.DeletePot)
			family.POST("/budget/items", budgetHandler.CreateItem)
			family.PATCH("/budget/items/:id", budgetHandler.UpdateItem)
			family.DELETE("/budget/items/:id", budgetHandler.DeleteItem)

			family.GET("/appointments", appointmentHandler.ListAppointments)
			family.POST("/appointments", appointmentHandler.CreateAppointment)
			family.PATCH("/appointments/:id", appointmentHandler.UpdateAppointment)
			family.DELETE("/appointments/:id", appointmentHandler.DeleteAppointment)
			family.GET("/agenda", appointmentHandler.TodaysAgenda)

			family.GET("/members/:memberId/work-schedule", scheduleHandler.ListWork)
			family.POST("/work-schedule", scheduleHandler.CreateWork)
			family.PATCH("/work-schedule/:id", scheduleHandler.UpdateWork)
			family.DELETE("/work-schedule/:id", scheduleHandler.DeleteWork)

			family.GET("/members/:memberId/school-schedule", scheduleHandler.ListSchool)
			family.POST("/school-schedule", scheduleHandler.CreateSchool)
			family.PATCH("/school-schedule/:id", scheduleHandler.UpdateSchool)
			family.DELETE("/school-schedule/:id", scheduleHandler.DeleteSchool)

			family.GET("/board", scheduleHandler.ListBoard)
			family.POST("/board", scheduleHandler.CreateBoardItem)
			family.PATCH("/board/:id", scheduleHandler.UpdateBoardItem)
			family.DELETE("/board/:id", scheduleHandler.DeleteBoardItem)

			family.GET("/notification-settings", notificationHandler.ListSettings)
			family.PUT("/notification-settings", notificationHandler.UpdateSetting)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
