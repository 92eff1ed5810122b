package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/tutor-match-api/internal/dto"
	"github.com/noah-isme/tutor-match-api/internal/models"
	"github.com/noah-isme/tutor-match-api/internal/repository"
	appErrors "github.com/noah-isme/tutor-match-api/pkg/errors"
	"github.com/noah-isme/tutor-match-api/pkg/jobs"
	"github.com/noah-isme/tutor-match-api/pkg/timecodec"
)

const (
	searchCachePattern  = "classes:search:*"
	searchGenerationKey = "classes:search-generation"
)

// JobInvalidateSearchCache is the job type used to retry failed search cache invalidations.
const JobInvalidateSearchCache = "invalidate_search_cache"

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

type classRepository interface {
	Search(ctx context.Context, filter models.ClassSearchFilter) ([]models.ClassAvailability, error)
	FindByID(ctx context.Context, id string) (*models.Class, *models.Teacher, []models.ScheduleSlot, error)
	CreateWithSchedule(ctx context.Context, teacher *models.Teacher, class *models.Class, slots []models.ScheduleSlot) error
}

// ClassService matches students to available classes and registers new ones.
type ClassService struct {
	repo      classRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	retries   jobEnqueuer
}

// NewClassService constructs a ClassService. cache and metrics may be nil.
func NewClassService(repo classRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// UseRetryQueue makes failed cache invalidations retry in the background.
func (s *ClassService) UseRetryQueue(q jobEnqueuer) {
	s.retries = q
}

// Search returns every class of the requested subject with a slot on the
// requested week day covering the requested time. Each class appears once.
func (s *ClassService) Search(ctx context.Context, query dto.SearchClassesQuery) ([]dto.ClassSearchResult, error) {
	filter, err := parseSearchQuery(query)
	if err != nil {
		return nil, err
	}

	// The generation is read before the query so a result computed before a
	// registration committed can only land under a key nobody reads anymore.
	gen, genErr := s.cache.Generation(ctx, searchGenerationKey)
	cacheable := genErr == nil
	key := searchCacheKey(gen, filter)
	if cacheable {
		var cached []dto.ClassSearchResult
		if hit, _ := s.cache.Get(ctx, key, &cached); hit {
			return cached, nil
		}
	}

	start := time.Now()
	rows, err := s.repo.Search(ctx, filter)
	s.metrics.ObserveDBQuery("class_search", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search classes")
	}

	results := collapseByClass(rows)
	s.metrics.ObserveSearchResults(len(results))
	if cacheable {
		_ = s.cache.Set(ctx, key, results, 0)
	}
	return results, nil
}

// Get returns a class with its teacher and schedule.
func (s *ClassService) Get(ctx context.Context, id string) (*dto.ClassDetail, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	class, teacher, slots, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	return buildClassDetail(class, teacher, slots), nil
}

// Register validates the payload and stores the teacher, the class and its
// schedule atomically. Validation failures never reach storage; storage
// failures are reported after the transaction has been rolled back.
func (s *ClassService) Register(ctx context.Context, req dto.CreateClassRequest) (*dto.ClassDetail, error) {
	teacher, class, slots, err := s.prepareRegistration(req)
	if err != nil {
		s.metrics.RecordRegistration(RegistrationRejected)
		return nil, err
	}

	if err := s.repo.CreateWithSchedule(ctx, teacher, class, slots); err != nil {
		s.metrics.RecordRegistration(RegistrationRolledBack)
		s.logger.Warn("class registration rolled back",
			zap.String("subject", class.Subject),
			zap.Int("slots", len(slots)),
			zap.Error(err),
		)
		return nil, registrationError(err)
	}

	s.metrics.RecordRegistration(RegistrationCommitted)
	s.logger.Info("class registered",
		zap.String("class_id", class.ID),
		zap.String("teacher_id", teacher.ID),
		zap.Int("slots", len(slots)),
	)
	s.invalidateSearchCache(ctx)

	return buildClassDetail(class, teacher, slots), nil
}

// InvalidateSearchCache retires every cached search result. Bumping the
// generation is what makes old entries unreachable; deleting them afterwards
// only frees memory, so a failed delete is left to the entry TTL.
func (s *ClassService) InvalidateSearchCache(ctx context.Context) error {
	if _, err := s.cache.Bump(ctx, searchGenerationKey); err != nil {
		return err
	}
	_ = s.cache.Invalidate(ctx, searchCachePattern)
	return nil
}

func (s *ClassService) invalidateSearchCache(ctx context.Context) {
	if err := s.InvalidateSearchCache(ctx); err == nil || s.retries == nil {
		return
	}
	if err := s.retries.Enqueue(jobs.Job{Type: JobInvalidateSearchCache, Key: searchGenerationKey}); err != nil {
		s.logger.Warn("failed to schedule search cache invalidation", zap.Error(err))
	}
}

func (s *ClassService) prepareRegistration(req dto.CreateClassRequest) (*models.Teacher, *models.Class, []models.ScheduleSlot, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Avatar = strings.TrimSpace(req.Avatar)
	req.WhatsApp = strings.TrimSpace(req.WhatsApp)
	req.Bio = strings.TrimSpace(req.Bio)
	req.Subject = strings.TrimSpace(req.Subject)

	if err := s.validator.Struct(req); err != nil {
		return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	// cost is stored as NUMERIC(10,2), which would silently round extra digits
	if !hasCents(*req.Cost) {
		return nil, nil, nil, appErrors.Clone(appErrors.ErrValidation, "cost must have at most two decimal places")
	}
	if len(req.Schedule) == 0 {
		return nil, nil, nil, appErrors.Clone(appErrors.ErrInvalidSlot, "schedule must contain at least one entry")
	}

	slots := make([]models.ScheduleSlot, 0, len(req.Schedule))
	for i, item := range req.Schedule {
		slot, err := convertScheduleItem(i, item)
		if err != nil {
			return nil, nil, nil, err
		}
		slots = append(slots, slot)
	}

	teacher := &models.Teacher{
		Name:     req.Name,
		Avatar:   req.Avatar,
		WhatsApp: req.WhatsApp,
		Bio:      req.Bio,
	}
	class := &models.Class{Subject: req.Subject, Cost: *req.Cost}
	return teacher, class, slots, nil
}

func hasCents(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return math.Abs(math.Round(v*100)/100-v) < 1e-9
}

func convertScheduleItem(index int, item dto.ScheduleItem) (models.ScheduleSlot, error) {
	if item.WeekDay == nil || !item.WeekDay.Valid() {
		return models.ScheduleSlot{}, appErrors.Clone(appErrors.ErrInvalidSlot, fmt.Sprintf("schedule[%d]: week_day must be between 0 and 6", index))
	}
	from, err := timecodec.Parse(item.From)
	if err != nil {
		return models.ScheduleSlot{}, appErrors.Wrap(err, appErrors.ErrInvalidTimeFormat.Code, appErrors.ErrInvalidTimeFormat.Status, fmt.Sprintf("schedule[%d]: from must use HH:MM", index))
	}
	to, err := timecodec.Parse(item.To)
	if err != nil {
		return models.ScheduleSlot{}, appErrors.Wrap(err, appErrors.ErrInvalidTimeFormat.Code, appErrors.ErrInvalidTimeFormat.Status, fmt.Sprintf("schedule[%d]: to must use HH:MM", index))
	}
	if from >= to {
		return models.ScheduleSlot{}, appErrors.Clone(appErrors.ErrInvalidSlot, fmt.Sprintf("schedule[%d]: from must be earlier than to", index))
	}
	return models.ScheduleSlot{WeekDay: *item.WeekDay, FromMinute: from, ToMinute: to}, nil
}

func registrationError(err error) error {
	switch {
	case errors.Is(err, repository.ErrEmptySchedule), errors.Is(err, repository.ErrInvalidSlotWindow):
		return appErrors.Wrap(err, appErrors.ErrInvalidSlot.Code, appErrors.ErrInvalidSlot.Status, appErrors.ErrInvalidSlot.Message)
	case repository.IsConstraintViolation(err):
		return appErrors.Wrap(err, appErrors.ErrRegistrationFailed.Code, http.StatusBadRequest, appErrors.ErrRegistrationFailed.Message)
	default:
		return appErrors.Wrap(err, appErrors.ErrRegistrationFailed.Code, appErrors.ErrRegistrationFailed.Status, appErrors.ErrRegistrationFailed.Message)
	}
}

func parseSearchQuery(query dto.SearchClassesQuery) (models.ClassSearchFilter, error) {
	if strings.TrimSpace(query.Subject) == "" || strings.TrimSpace(query.WeekDay) == "" || strings.TrimSpace(query.Time) == "" {
		return models.ClassSearchFilter{}, appErrors.Clone(appErrors.ErrMissingParameter, "")
	}
	day, err := models.ParseWeekDay(query.WeekDay)
	if err != nil {
		return models.ClassSearchFilter{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "week_day must be an integer between 0 and 6")
	}
	minute, err := timecodec.Parse(strings.TrimSpace(query.Time))
	if err != nil {
		return models.ClassSearchFilter{}, appErrors.Wrap(err, appErrors.ErrInvalidTimeFormat.Code, appErrors.ErrInvalidTimeFormat.Status, appErrors.ErrInvalidTimeFormat.Message)
	}
	return models.ClassSearchFilter{Subject: strings.TrimSpace(query.Subject), WeekDay: day, Minute: minute}, nil
}

func searchCacheKey(gen int64, filter models.ClassSearchFilter) string {
	return fmt.Sprintf("classes:search:g%d:%d:%d:%s", gen, filter.WeekDay, filter.Minute, url.QueryEscape(filter.Subject))
}

// collapseByClass keeps the first row of every class id, preserving order.
func collapseByClass(rows []models.ClassAvailability) []dto.ClassSearchResult {
	results := make([]dto.ClassSearchResult, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.ClassID]; ok {
			continue
		}
		seen[row.ClassID] = struct{}{}
		results = append(results, dto.ClassSearchResult{
			ID:        row.ClassID,
			TeacherID: row.TeacherID,
			Name:      row.Name,
			Avatar:    row.Avatar,
			WhatsApp:  row.WhatsApp,
			Bio:       row.Bio,
			Subject:   row.Subject,
			Cost:      row.Cost,
		})
	}
	return results
}

func buildClassDetail(class *models.Class, teacher *models.Teacher, slots []models.ScheduleSlot) *dto.ClassDetail {
	schedule := make([]dto.ScheduleEntry, 0, len(slots))
	for _, slot := range slots {
		schedule = append(schedule, dto.ScheduleEntry{
			ID:      slot.ID,
			WeekDay: slot.WeekDay,
			From:    timecodec.Format(slot.FromMinute),
			To:      timecodec.Format(slot.ToMinute),
		})
	}
	return &dto.ClassDetail{
		ID:        class.ID,
		Subject:   class.Subject,
		Cost:      class.Cost,
		Teacher:   *teacher,
		Schedule:  schedule,
		CreatedAt: class.CreatedAt,
	}
}
