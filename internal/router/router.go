package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/sispa-api/internal/handler"
	"github.com/noah-isme/sispa-api/internal/middleware"
	"github.com/noah-isme/sispa-api/internal/service"
	"github.com/noah-isme/sispa-api/pkg/config"
	"github.com/noah-isme/sispa-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sispa-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sispa-api/pkg/middleware/requestid"
)

// Handlers groups every HTTP handler mounted by the router.
type Handlers struct {
	Auth         *handler.AuthHandler
	Registration *handler.RegistrationHandler
	MOU          *handler.MOUHandler
	School       *handler.SchoolHandler
	Course       *handler.CourseHandler
	Field        *handler.FieldHandler
	Participant  *handler.ParticipantHandler
	Export       *handler.ExportHandler
	Health       *handler.HealthHandler
	Metrics      *handler.MetricsHandler
}

// Options carries the cross-cutting dependencies of the engine.
type Options struct {
	Config    *config.Config
	Logger    *zap.Logger
	Validator middleware.TokenValidator
	Metrics   *service.MetricsService
}

// New builds the gin engine with the public and bearer-protected route groups.
func New(opts Options, h Handlers) *gin.Engine {
	cfg := opts.Config
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	logr := opts.Logger
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(logger.Recovery(logr))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(opts.Metrics))
	}
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)
	if cfg.Metrics.Enabled && h.Metrics != nil {
		r.GET(cfg.Metrics.Path, h.Metrics.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/login", h.Auth.Login)

	admin := api.Group("/admin")
	admin.POST("/register", h.Registration.Register)
	admin.GET("/verify/yes/:pendingAdminId", h.Registration.Confirm)
	admin.GET("/verify/no/:pendingAdminId", h.Registration.Deny)

	secured := api.Group("")
	secured.Use(middleware.JWT(opts.Validator))
	secured.GET("/me", h.Auth.Me)

	mous := secured.Group("/mous")
	mous.GET("", h.MOU.List)
	mous.POST("", h.MOU.Create)
	mous.GET("/export", h.Export.MOUs)

	schools := secured.Group("/schools")
	schools.GET("/active", h.School.ListActive)
	schools.GET("/:schoolId", h.School.Get)

	courses := secured.Group("/courses")
	courses.GET("/running", h.Course.Running)
	courses.GET("/completed", h.Course.Completed)
	courses.POST("", h.Course.Create)
	courses.GET("/export", h.Export.Courses)

	fields := secured.Group("/fields")
	fields.GET("", h.Field.List)
	fields.GET("/:fieldId", h.Field.Get)

	participants := secured.Group("/participants")
	participants.GET("", h.Participant.List)
	participants.POST("", h.Participant.Create)
	participants.GET("/export", h.Export.Participants)

	return r
}
