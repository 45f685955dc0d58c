package router

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/dtroode/gradebook-server/internal/api/rest/handler"
	"github.com/dtroode/gradebook-server/internal/api/rest/middleware"
	"github.com/dtroode/gradebook-server/internal/logger"
	"github.com/dtroode/gradebook-server/internal/model"
)

// Router assembles the echo application.
type Router struct {
	authService    handler.AuthService
	studentService handler.StudentService
	authenticator  middleware.Authenticator
	pinger         handler.Pinger
	contextManager model.ContextManager
	logger         *logger.Logger
}

func New(
	authService handler.AuthService,
	studentService handler.StudentService,
	authenticator middleware.Authenticator,
	pinger handler.Pinger,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		studentService: studentService,
		authenticator:  authenticator,
		pinger:         pinger,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the echo instance with middleware and every route.
func (r *Router) Register() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.NewErrorHandler(r.logger)

	logging := middleware.NewLogging(r.logger)

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(logging.Handle)
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	health := handler.NewHealth(r.pinger, r.logger)
	e.GET("/healthz", health.Check)

	api := e.Group("/api")
	r.registerAuthRoutes(api)
	r.registerStudentRoutes(api)

	return e
}

func (r *Router) registerAuthRoutes(api *echo.Group) {
	auth := handler.NewAuth(r.authService, r.logger)
	api.POST("/register", auth.Register)
	api.POST("/login", auth.Login)
}

func (r *Router) registerStudentRoutes(api *echo.Group) {
	authenticate := middleware.NewAuthenticate(r.authenticator, r.contextManager, r.logger)
	students := handler.NewStudent(r.studentService, r.contextManager, r.logger)

	api.GET("/users/students", students.List, authenticate.Handle)
	api.POST("/students", students.Add, authenticate.Handle)
	api.PUT("/students/:id", students.UpdateScores, authenticate.Handle)
	api.DELETE("/students/:id", students.Delete, authenticate.Handle)
}
