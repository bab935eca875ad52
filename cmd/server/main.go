package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/orgadmin/backend/internal/application/identity"
	inventoryapp "github.com/orgadmin/backend/internal/application/inventory"
	trackerapp "github.com/orgadmin/backend/internal/application/tracker"
	"github.com/orgadmin/backend/internal/infrastructure/config"
	"github.com/orgadmin/backend/internal/infrastructure/logger"
	"github.com/orgadmin/backend/internal/infrastructure/persistence"
	"github.com/orgadmin/backend/internal/infrastructure/storage"
	"github.com/orgadmin/backend/internal/interfaces/http/handler"
	"github.com/orgadmin/backend/internal/interfaces/http/middleware"
	"github.com/orgadmin/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Orgadmin Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	userRepo := persistence.NewGormUserRefRepository(db.DB)
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	departmentRepo := persistence.NewGormDepartmentRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	assetRepo := persistence.NewGormAssetRepository(db.DB)
	attachmentRepo := persistence.NewGormAttachmentRepository(db.DB)
	assignmentRepo := persistence.NewGormAssetAssignmentRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	commentRepo := persistence.NewGormCommentRepository(db.DB)
	activityLogRepo := persistence.NewGormActivityLogRepository(db.DB)

	// Object storage for asset attachments. Without a configured bucket
	// the stub keeps upload flows working in development.
	var objectStorage inventoryapp.ObjectStorageService
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage initialized",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("endpoint", cfg.Storage.Endpoint),
		)
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("No storage bucket configured, using stub object storage")
	}

	// Audit trail service doubles as the activity recorder for the
	// other services.
	activityLogService := trackerapp.NewActivityLogService(activityLogRepo)

	// Initialize application services
	profileService := identityapp.NewProfileService(profileRepo, userRepo, activityLogService)
	addressService := identityapp.NewAddressService(addressRepo, profileRepo, activityLogService)
	departmentService := inventoryapp.NewDepartmentService(departmentRepo, activityLogService)
	categoryService := inventoryapp.NewCategoryService(categoryRepo, activityLogService)
	assetService := inventoryapp.NewAssetService(assetRepo, categoryRepo, departmentRepo, activityLogService)
	attachmentService := inventoryapp.NewAttachmentService(attachmentRepo, assetRepo, objectStorage, storage.NewAttachmentKey, activityLogService)
	if cfg.Storage.PresignExpiration > 0 {
		attachmentService.SetConfig(inventoryapp.AttachmentServiceConfig{
			UploadURLExpiry:   cfg.Storage.PresignExpiration,
			DownloadURLExpiry: cfg.Storage.PresignExpiration,
		})
	}
	assignmentService := inventoryapp.NewAssignmentService(assignmentRepo, assetRepo, userRepo, activityLogService)
	projectService := trackerapp.NewProjectService(projectRepo, userRepo, activityLogService)
	taskService := trackerapp.NewTaskService(taskRepo, projectRepo, userRepo, activityLogService)
	commentService := trackerapp.NewCommentService(commentRepo, taskRepo, userRepo, activityLogService)

	// Initialize HTTP handlers
	profileHandler := handler.NewProfileHandler(profileService)
	addressHandler := handler.NewAddressHandler(addressService)
	departmentHandler := handler.NewDepartmentHandler(departmentService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	assetHandler := handler.NewAssetHandler(assetService)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	commentHandler := handler.NewCommentHandler(commentService)
	activityLogHandler := handler.NewActivityLogHandler(activityLogService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. RequestScope - Push request ID and actor into request context
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.RequestScope(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Identity domain (user profiles, addresses)
	identityRoutes := router.NewDomainGroup("identity", "/identity")
	identityRoutes.POST("/profiles", profileHandler.Create)
	identityRoutes.GET("/profiles", profileHandler.List)
	identityRoutes.GET("/profiles/:id", profileHandler.GetByID)
	identityRoutes.PUT("/profiles/:id", profileHandler.Update)
	identityRoutes.DELETE("/profiles/:id", profileHandler.Delete)
	identityRoutes.GET("/profiles/:id/addresses", addressHandler.ListByProfile)
	identityRoutes.GET("/users/:id/profile", profileHandler.GetByUser)
	identityRoutes.POST("/addresses", addressHandler.Create)
	identityRoutes.GET("/addresses", addressHandler.List)
	identityRoutes.GET("/addresses/:id", addressHandler.GetByID)
	identityRoutes.PUT("/addresses/:id", addressHandler.Update)
	identityRoutes.DELETE("/addresses/:id", addressHandler.Delete)

	// Inventory domain (departments, categories, assets)
	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/departments", departmentHandler.Create)
	inventoryRoutes.GET("/departments", departmentHandler.List)
	inventoryRoutes.GET("/departments/code/:code", departmentHandler.GetByCode)
	inventoryRoutes.GET("/departments/:id", departmentHandler.GetByID)
	inventoryRoutes.PUT("/departments/:id", departmentHandler.Update)
	inventoryRoutes.DELETE("/departments/:id", departmentHandler.Delete)

	inventoryRoutes.POST("/categories", categoryHandler.Create)
	inventoryRoutes.GET("/categories", categoryHandler.List)
	inventoryRoutes.GET("/categories/tree", categoryHandler.GetTree)
	inventoryRoutes.GET("/categories/:id", categoryHandler.GetByID)
	inventoryRoutes.GET("/categories/:id/children", categoryHandler.GetChildren)
	inventoryRoutes.PUT("/categories/:id", categoryHandler.Update)
	inventoryRoutes.PUT("/categories/:id/move", categoryHandler.Move)
	inventoryRoutes.DELETE("/categories/:id", categoryHandler.Delete)

	inventoryRoutes.POST("/assets", assetHandler.Create)
	inventoryRoutes.GET("/assets", assetHandler.List)
	inventoryRoutes.GET("/assets/:id", assetHandler.GetByID)
	inventoryRoutes.PUT("/assets/:id", assetHandler.Update)
	inventoryRoutes.DELETE("/assets/:id", assetHandler.Delete)
	inventoryRoutes.POST("/assets/:id/attachments", attachmentHandler.InitiateUpload)
	inventoryRoutes.GET("/assets/:id/attachments", attachmentHandler.ListByAsset)
	inventoryRoutes.GET("/assets/:id/assignments", assignmentHandler.ListByAsset)

	inventoryRoutes.GET("/attachments", attachmentHandler.List)
	inventoryRoutes.GET("/attachments/:id", attachmentHandler.GetByID)
	inventoryRoutes.DELETE("/attachments/:id", attachmentHandler.Delete)

	inventoryRoutes.POST("/assignments", assignmentHandler.Create)
	inventoryRoutes.GET("/assignments", assignmentHandler.List)
	inventoryRoutes.GET("/assignments/:id", assignmentHandler.GetByID)
	inventoryRoutes.PUT("/assignments/:id", assignmentHandler.Update)
	inventoryRoutes.DELETE("/assignments/:id", assignmentHandler.Delete)
	inventoryRoutes.GET("/users/:id/assignments", assignmentHandler.ListByAssignee)

	// Tracker domain (projects, tasks, comments, audit trail)
	trackerRoutes := router.NewDomainGroup("tracker", "/tracker")
	trackerRoutes.POST("/projects", projectHandler.Create)
	trackerRoutes.GET("/projects", projectHandler.List)
	trackerRoutes.GET("/projects/:id", projectHandler.GetByID)
	trackerRoutes.PUT("/projects/:id", projectHandler.Update)
	trackerRoutes.DELETE("/projects/:id", projectHandler.Delete)
	trackerRoutes.PUT("/projects/:id/members", projectHandler.ReplaceMembers)
	trackerRoutes.POST("/projects/:id/members/:userID", projectHandler.AddMember)
	trackerRoutes.DELETE("/projects/:id/members/:userID", projectHandler.RemoveMember)
	trackerRoutes.GET("/projects/:id/tasks", taskHandler.ListByProject)

	trackerRoutes.POST("/tasks", taskHandler.Create)
	trackerRoutes.GET("/tasks", taskHandler.List)
	trackerRoutes.GET("/tasks/:id", taskHandler.GetByID)
	trackerRoutes.PUT("/tasks/:id", taskHandler.Update)
	trackerRoutes.DELETE("/tasks/:id", taskHandler.Delete)
	trackerRoutes.GET("/tasks/:id/comments", commentHandler.ListByTask)

	trackerRoutes.POST("/comments", commentHandler.Create)
	trackerRoutes.GET("/comments", commentHandler.List)
	trackerRoutes.GET("/comments/:id", commentHandler.GetByID)
	trackerRoutes.PUT("/comments/:id", commentHandler.Update)
	trackerRoutes.DELETE("/comments/:id", commentHandler.Delete)

	trackerRoutes.POST("/activity-logs", activityLogHandler.Append)
	trackerRoutes.GET("/activity-logs", activityLogHandler.List)
	trackerRoutes.GET("/activity-logs/:id", activityLogHandler.GetByID)
	trackerRoutes.GET("/users/:id/tasks", taskHandler.ListByAssignee)
	trackerRoutes.GET("/users/:id/activity-logs", activityLogHandler.ListByActor)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(identityRoutes).
		Register(inventoryRoutes).
		Register(trackerRoutes).
		Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
