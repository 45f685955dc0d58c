package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/gradebook-server/internal/logger"
	"github.com/dtroode/gradebook-server/internal/model"
)

// StudentService manages the students owned by one account.
type StudentService interface {
	List(ctx context.Context, username string) ([]model.Student, error)
	Add(ctx context.Context, username, name string) (model.Student, error)
	UpdateScores(ctx context.Context, username string, id int64, patch model.ScoresPatch) (model.Student, error)
	Delete(ctx context.Context, username string, id int64) error
}

type addStudentRequest struct {
	Name string `json:"name" validate:"required"`
}

type updateScoresRequest struct {
	Scores model.ScoresPatch `json:"scores"`
}

// Student serves the authenticated student endpoints.
type Student struct {
	studentService StudentService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewStudent(studentService StudentService, contextManager model.ContextManager, logger *logger.Logger) *Student {
	return &Student{
		studentService: studentService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// List handles GET /api/users/students.
func (h *Student) List(c echo.Context) error {
	ctx := c.Request().Context()
	username, err := h.username(ctx)
	if err != nil {
		return err
	}

	students, err := h.studentService.List(ctx, username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, students)
}

// Add handles POST /api/students.
func (h *Student) Add(c echo.Context) error {
	ctx := c.Request().Context()
	username, err := h.username(ctx)
	if err != nil {
		return err
	}

	var req addStudentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	student, err := h.studentService.Add(ctx, username, req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, student)
}

// UpdateScores handles PUT /api/students/:id.
func (h *Student) UpdateScores(c echo.Context) error {
	ctx := c.Request().Context()
	username, err := h.username(ctx)
	if err != nil {
		return err
	}

	id, err := studentID(c)
	if err != nil {
		return err
	}

	var req updateScoresRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	student, err := h.studentService.UpdateScores(ctx, username, id, req.Scores)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, student)
}

// Delete handles DELETE /api/students/:id.
func (h *Student) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	username, err := h.username(ctx)
	if err != nil {
		return err
	}

	id, err := studentID(c)
	if err != nil {
		return err
	}

	if err := h.studentService.Delete(ctx, username, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "student deleted"})
}

func (h *Student) username(ctx context.Context) (string, error) {
	username, ok := h.contextManager.GetUsernameFromContext(ctx)
	if !ok {
		h.logger.Error("Student handler: username missing from authenticated context")
		return "", model.ErrUnauthenticated
	}
	return username, nil
}

func studentID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid student id")
	}
	return id, nil
}
