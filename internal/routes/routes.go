package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ysw-crm/crm-backend/internal/audit"
	"github.com/ysw-crm/crm-backend/internal/config"
	"github.com/ysw-crm/crm-backend/internal/features"
	"github.com/ysw-crm/crm-backend/internal/handlers"
	infraRepo "github.com/ysw-crm/crm-backend/internal/infra/repository"
	"github.com/ysw-crm/crm-backend/internal/middleware"
	"github.com/ysw-crm/crm-backend/internal/models"
	"github.com/ysw-crm/crm-backend/internal/storage"
	ucAssignment "github.com/ysw-crm/crm-backend/internal/usecase/assignment"
	ucTask "github.com/ysw-crm/crm-backend/internal/usecase/task"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log zerolog.Logger,
	cache *redis.Client,
	uploader *storage.Uploader,
) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID(log))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	taskRepo := infraRepo.NewTaskGormRepository(db)
	assignmentRepo := infraRepo.NewAssignmentGormRepository(db)

	auditRecorder := audit.New(db, log)
	featureStore := features.NewStore(db, cache, auditRecorder)

	// ======================================================
	// USE CASES: TASKS
	// ======================================================
	createTaskUC := ucTask.NewCreateTask(db, taskRepo, auditRecorder)
	completeTaskUC := ucTask.NewCompleteTask(db, taskRepo, auditRecorder)
	listTasksUC := ucTask.NewListTasks(taskRepo)

	// ======================================================
	// USE CASES: ASSIGNMENTS
	// ======================================================
	assignLeaderUC := ucAssignment.NewAssignTeamLeader(db, assignmentRepo, auditRecorder)
	bulkAssignUC := ucAssignment.NewBulkAssignCustomers(db, assignmentRepo, auditRecorder)
	hierarchyUC := ucAssignment.NewHierarchy(assignmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	onboardingHandler := handlers.NewOnboardingHandler(db)
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	userHandler := handlers.NewUserHandler(db, auditRecorder)

	customerHandler := handlers.NewCustomerHandler(db, auditRecorder)
	customFieldHandler := handlers.NewCustomFieldHandler(db, auditRecorder)
	interactionHandler := handlers.NewInteractionHandler(db, auditRecorder)
	followUpHandler := handlers.NewFollowUpHandler(db, auditRecorder)
	conversationHandler := handlers.NewConversationHandler(db)
	attachmentHandler := handlers.NewAttachmentHandler(uploader)

	taskHandler := handlers.NewTaskHandler(createTaskUC, completeTaskUC, listTasksUC)
	assignmentHandler := handlers.NewAssignmentHandler(assignLeaderUC, bulkAssignUC, hierarchyUC)

	featureHandler := handlers.NewFeatureHandler(featureStore)
	analyticsHandler := handlers.NewAnalyticsHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditRecorder)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/onboarding", onboardingHandler.Create)
		api.GET("/features/catalog", featureHandler.Catalog)

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/users", userHandler.List)
			secured.POST("/users",
				middleware.RequireRoles(models.RoleAdmin), userHandler.Create)
			secured.DELETE("/users/:id",
				middleware.RequireRoles(models.RoleAdmin), userHandler.Delete)

			// ------------------------------
			// CUSTOMERS
			// ------------------------------
			secured.GET("/customers", customerHandler.List)
			secured.POST("/customers", customerHandler.Create)
			secured.GET("/customers/:id", customerHandler.Get)
			secured.PATCH("/customers/:id", customerHandler.Update)
			secured.DELETE("/customers/:id",
				middleware.RequireRoles(models.RoleAdmin), customerHandler.Delete)

			secured.GET("/custom-fields", customFieldHandler.List)
			secured.POST("/custom-fields",
				middleware.RequireRoles(models.RoleAdmin), customFieldHandler.Create)

			secured.GET("/interactions", interactionHandler.List)
			secured.POST("/interactions", interactionHandler.Create)

			secured.GET("/followups", followUpHandler.List)
			secured.POST("/followups", followUpHandler.Create)

			secured.GET("/conversations", conversationHandler.List)
			secured.POST("/conversations", conversationHandler.Create)

			secured.POST("/attachments", attachmentHandler.Upload)

			// ------------------------------
			// TASKS
			// ------------------------------
			secured.GET("/tasks", taskHandler.List)
			secured.POST("/tasks", taskHandler.Create)
			secured.PATCH("/tasks/:id/complete", taskHandler.Complete)
			secured.GET("/tasks/:id/logs", taskHandler.Logs)

			// ------------------------------
			// ASSIGNMENTS
			// ------------------------------
			secured.PATCH("/users/:id/team-leader",
				middleware.RequireRoles(models.RoleAdmin), assignmentHandler.AssignTeamLeader)
			secured.POST("/customers/bulk-assign",
				middleware.RequireRoles(models.RoleAdmin), assignmentHandler.BulkAssign)
			secured.GET("/hierarchy",
				middleware.RequireRoles(models.RoleAdmin, models.RoleTeamLeader), assignmentHandler.Hierarchy)

			// ------------------------------
			// FEATURES
			// ------------------------------
			secured.GET("/features", featureHandler.Get)
			secured.PUT("/features",
				middleware.RequireRoles(models.RoleAdmin), featureHandler.Set)

			secured.GET("/analytics/pipeline-counts", analyticsHandler.PipelineCounts)
			secured.GET("/analytics/overview", analyticsHandler.Overview)

			secured.GET("/audit-logs",
				middleware.RequireRoles(models.RoleAdmin), auditLogsHandler.List)
		}
	}
}
