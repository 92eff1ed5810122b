package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tutor-match-api/internal/dto"
	"github.com/noah-isme/tutor-match-api/internal/models"
	"github.com/noah-isme/tutor-match-api/internal/repository"
	appErrors "github.com/noah-isme/tutor-match-api/pkg/errors"
)

type connectionRepository interface {
	Create(ctx context.Context, conn *models.Connection) error
	Count(ctx context.Context, teacherID string) (int64, error)
}

// ConnectionService records students reaching out to teachers.
type ConnectionService struct {
	repo      connectionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewConnectionService constructs a ConnectionService.
func NewConnectionService(repo connectionRepository, validate *validator.Validate, logger *zap.Logger) *ConnectionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConnectionService{repo: repo, validator: validate, logger: logger}
}

// Create stores a connection for the given teacher.
func (s *ConnectionService) Create(ctx context.Context, req dto.CreateConnectionRequest) (*models.Connection, error) {
	req.TeacherID = strings.TrimSpace(req.TeacherID)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "teacher_id must be a valid uuid")
	}

	conn := &models.Connection{TeacherID: req.TeacherID}
	if err := s.repo.Create(ctx, conn); err != nil {
		if repository.IsConstraintViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		s.logger.Error("failed to record connection", zap.String("teacher_id", req.TeacherID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record connection")
	}
	return conn, nil
}

// Total counts connections, restricted to teacherID when it is not empty.
func (s *ConnectionService) Total(ctx context.Context, teacherID string) (*dto.ConnectionTotal, error) {
	teacherID = strings.TrimSpace(teacherID)
	if teacherID != "" {
		if err := s.validator.Var(teacherID, "uuid"); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "teacher_id must be a valid uuid")
		}
	}
	total, err := s.repo.Count(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count connections")
	}
	return &dto.ConnectionTotal{Total: total}, nil
}
