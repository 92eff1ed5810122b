package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/tutor-match-api/internal/dto"
	appErrors "github.com/noah-isme/tutor-match-api/pkg/errors"
)

type favoriteRepository interface {
	Add(ctx context.Context, deviceID, classID string) error
	Remove(ctx context.Context, deviceID, classID string) error
	Contains(ctx context.Context, deviceID, classID string) (bool, error)
	List(ctx context.Context, deviceID string) ([]string, error)
}

// FavoriteService keeps per-device favorite classes.
type FavoriteService struct {
	repo    favoriteRepository
	logger  *zap.Logger
	enabled bool
}

// NewFavoriteService constructs a FavoriteService. A nil repo disables the feature.
func NewFavoriteService(repo favoriteRepository, logger *zap.Logger, enabled bool) *FavoriteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FavoriteService{repo: repo, logger: logger, enabled: enabled}
}

// Enabled reports whether favorites can be served.
func (s *FavoriteService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// List returns the favorited class ids of a device.
func (s *FavoriteService) List(ctx context.Context, deviceID string) (*dto.FavoriteList, error) {
	deviceID, err := s.checkDevice(deviceID)
	if err != nil {
		return nil, err
	}
	ids, err := s.repo.List(ctx, deviceID)
	if err != nil {
		return nil, s.storageError(err, "failed to list favorites")
	}
	if ids == nil {
		ids = []string{}
	}
	return &dto.FavoriteList{ClassIDs: ids}, nil
}

// Status reports whether classID is favorited by the device.
func (s *FavoriteService) Status(ctx context.Context, deviceID, classID string) (*dto.FavoriteStatus, error) {
	deviceID, classID, err := s.checkPair(deviceID, classID)
	if err != nil {
		return nil, err
	}
	ok, err := s.repo.Contains(ctx, deviceID, classID)
	if err != nil {
		return nil, s.storageError(err, "failed to read favorite")
	}
	return &dto.FavoriteStatus{ClassID: classID, Favorited: ok}, nil
}

// Add marks classID as favorite for the device.
func (s *FavoriteService) Add(ctx context.Context, deviceID, classID string) (*dto.FavoriteStatus, error) {
	deviceID, classID, err := s.checkPair(deviceID, classID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Add(ctx, deviceID, classID); err != nil {
		return nil, s.storageError(err, "failed to save favorite")
	}
	return &dto.FavoriteStatus{ClassID: classID, Favorited: true}, nil
}

// Remove drops classID from the device favorites. Removing an absent id succeeds.
func (s *FavoriteService) Remove(ctx context.Context, deviceID, classID string) (*dto.FavoriteStatus, error) {
	deviceID, classID, err := s.checkPair(deviceID, classID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Remove(ctx, deviceID, classID); err != nil {
		return nil, s.storageError(err, "failed to remove favorite")
	}
	return &dto.FavoriteStatus{ClassID: classID, Favorited: false}, nil
}

func (s *FavoriteService) checkDevice(deviceID string) (string, error) {
	if !s.Enabled() {
		return "", appErrors.Clone(appErrors.ErrUnavailable, "favorites are disabled")
	}
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" || len(deviceID) > 128 {
		return "", appErrors.Clone(appErrors.ErrValidation, "X-Device-ID header is required")
	}
	return deviceID, nil
}

func (s *FavoriteService) checkPair(deviceID, classID string) (string, string, error) {
	deviceID, err := s.checkDevice(deviceID)
	if err != nil {
		return "", "", err
	}
	classID = strings.TrimSpace(classID)
	if _, err := uuid.Parse(classID); err != nil {
		return "", "", appErrors.Clone(appErrors.ErrValidation, "class id must be a valid uuid")
	}
	return deviceID, classID, nil
}

func (s *FavoriteService) storageError(err error, message string) error {
	s.logger.Warn(message, zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
