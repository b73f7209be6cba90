package api

import (
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/eventhub/eventhub-api/docs"
	v1 "github.com/eventhub/eventhub-api/internal/api/handler/v1"
	"github.com/eventhub/eventhub-api/internal/api/middleware"
	"github.com/eventhub/eventhub-api/internal/config"
	"github.com/eventhub/eventhub-api/internal/notification"
	"github.com/eventhub/eventhub-api/internal/repository"
	"github.com/eventhub/eventhub-api/internal/repository/dao"
	"github.com/eventhub/eventhub-api/internal/service"
	"github.com/eventhub/eventhub-api/internal/storage"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	mailer := notification.NewMailer(conf.SMTP)
	images, err := storage.NewOSSImageStore(conf.OSS)
	if err != nil {
		return nil, fmt.Errorf("storage.NewOSSImageStore -> %w", err)
	}

	authHandler := s.initAuthHandler(db, mailer)
	userHandler := s.initUserHandler(db)
	eventHandler := s.initEventHandler(db, images)
	registrationHandler := s.initRegistrationHandler(db, mailer)
	feedbackHandler := s.initFeedbackHandler(db)
	adminHandler := s.initAdminHandler(db)
	s.MountHandlers(authHandler, userHandler, eventHandler, registrationHandler, feedbackHandler, adminHandler)

	return s, nil
}

func (s *Server) initAuthHandler(db *gorm.DB, mailer *notification.Mailer) *v1.AuthHandler {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	otpRepo := repository.NewOTPRepository(dao.NewOTPDAO(db))
	svc := service.NewAuthService(userRepo, otpRepo, mailer)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	repo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB, images service.ImageStore) *v1.EventHandler {
	repo := repository.NewEventRepository(dao.NewEventDAO(db))
	activityRepo := repository.NewActivityRepository(dao.NewActivityDAO(db))
	svc := service.NewEventService(repo, images, activityRepo)
	handler := v1.NewEventHandler(svc)

	return handler
}

func (s *Server) initRegistrationHandler(db *gorm.DB, mailer *notification.Mailer) *v1.RegistrationHandler {
	repo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	activityRepo := repository.NewActivityRepository(dao.NewActivityDAO(db))
	svc := service.NewRegistrationService(repo, eventRepo, mailer, activityRepo)
	handler := v1.NewRegistrationHandler(svc)

	return handler
}

func (s *Server) initFeedbackHandler(db *gorm.DB) *v1.FeedbackHandler {
	repo := repository.NewFeedbackRepository(dao.NewFeedbackDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	regRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	svc := service.NewFeedbackService(repo, eventRepo, regRepo)
	handler := v1.NewFeedbackHandler(svc)

	return handler
}

func (s *Server) initAdminHandler(db *gorm.DB) *v1.AdminHandler {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	regRepo := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	activityRepo := repository.NewActivityRepository(dao.NewActivityDAO(db))
	svc := service.NewAdminService(eventRepo, regRepo, activityRepo)
	handler := v1.NewAdminHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	registrationHandler *v1.RegistrationHandler,
	feedbackHandler *v1.FeedbackHandler,
	adminHandler *v1.AdminHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)
		public.POST("/auth/forgot-password", authHandler.HandleForgotPassword)
		public.POST("/auth/verify-otp", authHandler.HandleVerifyOTP)
		public.POST("/auth/reset-password", authHandler.HandleResetPassword)

		public.GET("/events/all", eventHandler.HandleGetEvents)
		public.GET("/events/stats", eventHandler.HandleGetEventStats)
		public.GET("/events/:eventID", eventHandler.HandleGetEvent)
	}

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	protected := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		protected.GET("/users/:userID", userHandler.HandleGetUser)

		protected.POST("/events/create", eventHandler.HandleCreateEvent)
		protected.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		protected.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)

		protected.POST("/registrations", registrationHandler.HandleRegister)
		protected.GET("/registrations", registrationHandler.HandleGetRegistrations)
		protected.GET("/registrations/student/:email", registrationHandler.HandleGetStudentRegistrations)
		protected.GET("/registrations/pending", registrationHandler.HandleGetPendingRegistrations)
		protected.GET("/registrations/pending/count", registrationHandler.HandleGetPendingCount)
		protected.PUT("/registrations/:registrationID/status", registrationHandler.HandleUpdateRegistrationStatus)
		protected.DELETE("/registrations/:registrationID", registrationHandler.HandleDeleteRegistration)

		protected.POST("/feedback", feedbackHandler.HandleSubmitFeedback)
		protected.GET("/feedback/:eventID/:email", feedbackHandler.HandleCheckFeedback)
	}

	admin := s.Router.Group(basePath, authenticator.VerifyJWT(), authenticator.RequireAdmin())
	{
		admin.GET("/feedback", feedbackHandler.HandleGetFeedbacks)
		admin.DELETE("/feedback/:feedbackID", feedbackHandler.HandleDeleteFeedback)
		admin.GET("/admin/stats", adminHandler.HandleGetDashboardStats)
		admin.GET("/admin/activity", adminHandler.HandleGetRecentActivity)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "EventHub API"
	docs.SwaggerInfo.Description = "Campus event management portal API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
