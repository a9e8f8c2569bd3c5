package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/smartedu-api/api/swagger"
	"github.com/noah-isme/smartedu-api/internal/handler"
	"github.com/noah-isme/smartedu-api/internal/middleware"
	"github.com/noah-isme/smartedu-api/internal/models"
	"github.com/noah-isme/smartedu-api/internal/repository"
	"github.com/noah-isme/smartedu-api/internal/service"
	"github.com/noah-isme/smartedu-api/pkg/cache"
	"github.com/noah-isme/smartedu-api/pkg/config"
	"github.com/noah-isme/smartedu-api/pkg/database"
	"github.com/noah-isme/smartedu-api/pkg/export"
	"github.com/noah-isme/smartedu-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/smartedu-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/smartedu-api/pkg/middleware/requestid"
	"github.com/noah-isme/smartedu-api/pkg/nlu"
)

// @title SmartEdu API
// @version 1.0.0
// @description College records and chatbot backend
// @BasePath /api/v1
// @schemes http

type handlers struct {
	auth          *handler.AuthHandler
	chat          *handler.ChatHandler
	students      *handler.StudentHandler
	academic      *handler.AcademicHandler
	events        *handler.EventHandler
	registrations *handler.RegistrationHandler
	admission     *handler.AdmissionHandler
	notifications *handler.NotificationHandler
	dashboard     *handler.DashboardHandler
	reports       *handler.ReportHandler
	metrics       *handler.MetricsHandler
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()
	cacheSvc := newCacheService(cfg, metricsSvc, logr)

	studentRepo := repository.NewStudentRepository(db)
	userRepo := repository.NewUserRepository(db)
	markRepo := repository.NewMarkRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	feeRepo := repository.NewFeeRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	eventRepo := repository.NewEventRepository(db)
	registrationRepo := repository.NewEventRegistrationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	chatLogRepo := repository.NewChatLogRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	validate := validator.New()

	authSvc := service.NewAuthService(userRepo, studentRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	studentSvc := service.NewStudentService(service.StudentServiceParams{
		Repo:       studentRepo,
		Marks:      markRepo,
		Attendance: attendanceRepo,
		Fees:       feeRepo,
		Logger:     logr,
	})
	academicSvc := service.NewAcademicService(service.AcademicServiceParams{
		Students:   studentRepo,
		Marks:      markRepo,
		Attendance: attendanceRepo,
		Fees:       feeRepo,
		Cache:      cacheSvc,
		Validator:  validate,
		Logger:     logr,
	})
	eventSvc := service.NewEventService(eventRepo, cacheSvc, validate, logr, service.EventServiceConfig{
		CacheTTL: cfg.Chatbot.EventsCacheTTL,
		Limit:    cfg.Chatbot.UpcomingEvents,
	})
	registrationSvc := service.NewEventRegistrationService(registrationRepo, studentRepo, cacheSvc, logr)
	notificationSvc := service.NewNotificationService(notificationRepo, userRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Repo:    dashboardRepo,
		Cache:   cacheSvc,
		Metrics: metricsSvc,
		Logger:  logr,
		Config:  service.DashboardServiceConfig{CacheTTL: cfg.Chatbot.DashboardCacheTTL},
	})
	exportSvc := service.NewExportService(service.ExportServiceParams{
		Marks:      markRepo,
		Attendance: attendanceRepo,
		Fees:       feeRepo,
		CSV:        export.NewCSVExporter(),
		PDF:        export.NewPDFExporter(),
		Metrics:    metricsSvc,
		Logger:     logr,
	})

	picker := service.NewRandomPicker()
	composer := service.NewComposer(service.ComposerParams{
		Students:      studentRepo,
		Marks:         markRepo,
		Attendance:    attendanceRepo,
		Fees:          feeRepo,
		Subjects:      subjectRepo,
		Events:        eventSvc,
		Notifications: notificationRepo,
		SmallTalk:     service.NewSmallTalk(picker, time.Now),
		College:       service.NewCollegeInfo(service.College),
		Metrics:       metricsSvc,
		Logger:        logr,
		LookupTimeout: cfg.Chatbot.LookupTimeout,
	})
	chatbotSvc := service.NewChatbotService(service.ChatbotServiceParams{
		Classifier: service.NewIntentClassifier(nil),
		Composer:   composer,
		Users:      userRepo,
		Metrics:    metricsSvc,
		Logger:     logr,
	})
	chatSvc := service.NewChatService(service.ChatServiceParams{
		Parser:     nlu.New(cfg.NLU.ServerURL, cfg.NLU.Timeout),
		Sentiment:  service.NewSentimentAnalyzer(),
		Picker:     picker,
		Users:      userRepo,
		Students:   studentRepo,
		Marks:      markRepo,
		Attendance: attendanceRepo,
		Fees:       feeRepo,
		Logs:       chatLogRepo,
		Metrics:    metricsSvc,
		Logger:     logr,
	})

	h := handlers{
		auth:          handler.NewAuthHandler(authSvc),
		chat:          handler.NewChatHandler(chatbotSvc, chatSvc),
		students:      handler.NewStudentHandler(studentSvc),
		academic:      handler.NewAcademicHandler(academicSvc),
		events:        handler.NewEventHandler(eventSvc),
		registrations: handler.NewRegistrationHandler(registrationSvc),
		admission:     handler.NewAdmissionHandler(service.NewAdmissionService(service.College)),
		notifications: handler.NewNotificationHandler(notificationSvc),
		dashboard:     handler.NewDashboardHandler(dashboardSvc),
		reports:       handler.NewReportHandler(exportSvc),
		metrics:       handler.NewMetricsHandler(metricsSvc, db),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc, "/metrics"))
	r.Use(middleware.WithResponseMeta())

	registerRoutes(r, cfg, h, authSvc, studentRepo)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func newCacheService(cfg *config.Config, metricsSvc *service.MetricsService, logr *zap.Logger) *service.CacheService {
	if !cfg.Redis.Enabled {
		return service.NewCacheService(nil, metricsSvc, cfg.Chatbot.EventsCacheTTL, logr, false)
	}
	client, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		return service.NewCacheService(nil, metricsSvc, cfg.Chatbot.EventsCacheTTL, logr, false)
	}
	return service.NewCacheService(repository.NewCacheRepository(client, logr), metricsSvc, cfg.Chatbot.EventsCacheTTL, logr, true)
}

func registerRoutes(r *gin.Engine, cfg *config.Config, h handlers, tokens middleware.TokenValidator, owners middleware.StudentOwnerLookup) {
	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	r.GET("/metrics", h.metrics.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	optional := middleware.OptionalJWT(tokens)
	auth := middleware.JWT(tokens)
	admins := middleware.RequireRoles(models.RoleAdmin, models.RoleHOD)
	staff := []string{string(models.RoleAdmin), string(models.RoleHOD), string(models.RoleFaculty)}
	staffOrSelf := middleware.RBACWithSelf(middleware.StudentParamSelf(owners, "id"), append(staff, middleware.SelfRole)...)
	feesOrSelf := middleware.RBACWithSelf(middleware.StudentParamSelf(owners, "id"), string(models.RoleAdmin), string(models.RoleHOD), middleware.SelfRole)

	// The chat endpoints also answer at the root, where the web client posts.
	r.POST("/chatbot", optional, h.chat.Chatbot)
	r.GET("/chatbot", h.chat.ChatbotStatus)
	r.POST("/chat", optional, h.chat.Chat)

	api := r.Group(cfg.APIPrefix)
	api.POST("/chatbot", optional, h.chat.Chatbot)
	api.GET("/chatbot", h.chat.ChatbotStatus)
	api.POST("/chat", optional, h.chat.Chat)
	api.GET("/chat/:user_id", auth, middleware.RBACWithSelf(middleware.UserParamSelf("user_id"), string(models.RoleAdmin), string(models.RoleHOD), middleware.SelfRole), h.chat.History)

	api.POST("/auth/login", h.auth.Login)
	api.GET("/auth/profile", auth, h.auth.Profile)

	students := api.Group("/students", auth)
	students.GET("", middleware.RBAC(staff...), h.students.List)
	students.GET("/:id", staffOrSelf, h.students.Get)
	students.GET("/:id/marks", staffOrSelf, h.students.Marks)
	students.GET("/:id/attendance-summary", staffOrSelf, h.students.Attendance)
	students.GET("/:id/fees", feesOrSelf, h.students.Fees)

	adminStudents := api.Group("/admin/students", auth, admins)
	adminStudents.PUT("/:id/marks", h.academic.UpdateMarks)
	adminStudents.PUT("/:id/attendance", h.academic.UpdateAttendance)
	adminStudents.PUT("/:id/fees", h.academic.UpdateFees)

	api.GET("/events", h.events.Upcoming)
	api.POST("/events", auth, admins, h.events.Create)
	api.DELETE("/events/:id", auth, admins, h.events.Delete)
	api.GET("/events/my-registrations", auth, h.registrations.Mine)
	api.POST("/events/:id/register", auth, h.registrations.Register)
	api.DELETE("/events/:id/register", auth, h.registrations.Cancel)

	admission := api.Group("/admission")
	admission.GET("/info", h.admission.Info)
	admission.GET("/fees", h.admission.Fees)
	admission.GET("/fees/calculate", h.admission.Calculate)
	admission.GET("/contacts", h.admission.Contacts)

	notifications := api.Group("/notifications", auth)
	notifications.GET("", h.notifications.List)
	notifications.GET("/unread-count", h.notifications.UnreadCount)
	notifications.PUT("/:id/read", h.notifications.MarkRead)
	notifications.POST("", admins, h.notifications.Create)

	api.GET("/dashboard/stats", auth, admins, h.dashboard.Stats)
	api.GET("/reports/:kind", auth, admins, h.reports.Export)
	api.GET("/metrics/summary", auth, admins, h.metrics.Snapshot)
}
