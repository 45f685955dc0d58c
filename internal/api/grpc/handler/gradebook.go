package handler

import (
	"context"

	"github.com/dtroode/gradebook-server/internal/api/grpc/gradebook"
	"github.com/dtroode/gradebook-server/internal/logger"
	"github.com/dtroode/gradebook-server/internal/model"
)

// AuthService defines registration and login.
type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (model.Session, error)
}

// StudentService defines the per-account student operations.
type StudentService interface {
	List(ctx context.Context, username string) ([]model.Student, error)
	Add(ctx context.Context, username, name string) (model.Student, error)
	UpdateScores(ctx context.Context, username string, id int64, patch model.ScoresPatch) (model.Student, error)
	Delete(ctx context.Context, username string, id int64) error
}

var _ gradebook.GradebookServer = (*Gradebook)(nil)

// Gradebook handles the gradebook.v1.Gradebook service.
type Gradebook struct {
	authService    AuthService
	studentService StudentService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewGradebook creates a new Gradebook handler.
func NewGradebook(
	authService AuthService,
	studentService StudentService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Gradebook {
	return &Gradebook{
		authService:    authService,
		studentService: studentService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register creates an account.
func (h *Gradebook) Register(ctx context.Context, req *gradebook.CredentialsRequest) (*gradebook.MessageResponse, error) {
	h.logger.Debug("Gradebook handler: processing registration request",
		"username", req.Username)

	if err := h.authService.Register(ctx, req.Username, req.Password); err != nil {
		return nil, handleError(err)
	}

	return &gradebook.MessageResponse{Message: "registration successful"}, nil
}

// Login exchanges credentials for a bearer token.
func (h *Gradebook) Login(ctx context.Context, req *gradebook.CredentialsRequest) (*gradebook.LoginResponse, error) {
	h.logger.Debug("Gradebook handler: processing login request",
		"username", req.Username)

	session, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, handleError(err)
	}

	return &gradebook.LoginResponse{
		Message:  "login successful",
		Token:    session.Token,
		Username: session.Username,
	}, nil
}

// ListStudents returns the caller's students.
func (h *Gradebook) ListStudents(ctx context.Context, _ *gradebook.ListStudentsRequest) (*gradebook.ListStudentsResponse, error) {
	username, err := h.username(ctx)
	if err != nil {
		return nil, err
	}

	students, err := h.studentService.List(ctx, username)
	if err != nil {
		return nil, handleError(err)
	}

	return &gradebook.ListStudentsResponse{Students: students}, nil
}

// AddStudent appends a student to the caller's collection.
func (h *Gradebook) AddStudent(ctx context.Context, req *gradebook.AddStudentRequest) (*gradebook.StudentResponse, error) {
	username, err := h.username(ctx)
	if err != nil {
		return nil, err
	}

	student, err := h.studentService.Add(ctx, username, req.Name)
	if err != nil {
		return nil, handleError(err)
	}

	return &gradebook.StudentResponse{Student: student}, nil
}

// UpdateScores merges a partial score sheet into one of the caller's students.
func (h *Gradebook) UpdateScores(ctx context.Context, req *gradebook.UpdateScoresRequest) (*gradebook.StudentResponse, error) {
	username, err := h.username(ctx)
	if err != nil {
		return nil, err
	}

	student, err := h.studentService.UpdateScores(ctx, username, req.ID, req.Scores)
	if err != nil {
		return nil, handleError(err)
	}

	return &gradebook.StudentResponse{Student: student}, nil
}

// DeleteStudent removes one of the caller's students.
func (h *Gradebook) DeleteStudent(ctx context.Context, req *gradebook.DeleteStudentRequest) (*gradebook.MessageResponse, error) {
	username, err := h.username(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.studentService.Delete(ctx, username, req.ID); err != nil {
		return nil, handleError(err)
	}

	return &gradebook.MessageResponse{Message: "student deleted"}, nil
}

func (h *Gradebook) username(ctx context.Context) (string, error) {
	username, ok := h.contextManager.GetUsernameFromContext(ctx)
	if !ok {
		h.logger.Error("Gradebook handler: username missing from authenticated context")
		return "", handleError(model.ErrUnauthenticated)
	}
	return username, nil
}
