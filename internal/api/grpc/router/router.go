package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/gradebook-server/internal/api/grpc/gradebook"
	"github.com/dtroode/gradebook-server/internal/api/grpc/handler"
	"github.com/dtroode/gradebook-server/internal/api/grpc/middleware"
	"github.com/dtroode/gradebook-server/internal/logger"
	"github.com/dtroode/gradebook-server/internal/model"
)

// Router registers the gradebook and health services with their interceptors.
type Router struct {
	authService    handler.AuthService
	studentService handler.StudentService
	authenticator  middleware.Authenticator
	contextManager model.ContextManager
	logger         *logger.Logger
	health         *health.Server
}

// New creates new gRPC Router instance.
func New(
	authService handler.AuthService,
	studentService handler.StudentService,
	authenticator middleware.Authenticator,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		studentService: studentService,
		authenticator:  authenticator,
		contextManager: contextManager,
		logger:         logger,
		health:         health.NewServer(),
	}
}

// authRequired selects every gradebook method except the public ones.
func authRequired(_ context.Context, c interceptors.CallMeta) bool {
	if c.Service != gradebook.ServiceName {
		return false
	}
	return c.Method != "Register" && c.Method != "Login"
}

// Register builds the gRPC server with logging, panic recovery and
// authentication interceptors.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authenticator, r.contextManager, r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandler(logging.Recover)),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
	)

	gradebook.RegisterGradebookServer(s, handler.NewGradebook(r.authService, r.studentService, r.contextManager, r.logger))

	healthpb.RegisterHealthServer(s, r.health)
	r.health.SetServingStatus(gradebook.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return s
}

// Health exposes the health service so shutdown can mark it not serving.
func (r *Router) Health() *health.Server {
	return r.health
}
