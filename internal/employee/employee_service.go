package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	employeeerrors "github.com/vjorihoxha/tiktak-vjori/internal/employee/errors"
	"github.com/vjorihoxha/tiktak-vjori/internal/events"
	"github.com/vjorihoxha/tiktak-vjori/internal/messaging/kafka"
	"github.com/vjorihoxha/tiktak-vjori/internal/shared/apperror"
	"github.com/vjorihoxha/tiktak-vjori/internal/shared/contextutil"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeListKeyPrefix = "employees:list:"
	listCacheTTL          = 5 * time.Minute
	defaultSyncLimit      = 100
)

func GetEmployeeListKey(provider string) string {
	if provider == "" {
		return EmployeeListKeyPrefix + "all"
	}
	return EmployeeListKeyPrefix + provider
}

// TrackTikAPI is the downstream surface the orchestrator needs. The concrete
// client lives in internal/tracktik.
//
//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type TrackTikAPI interface {
	CreateEmployee(ctx context.Context, employeeData map[string]any) (map[string]any, error)
	UpdateEmployee(ctx context.Context, trackTikID int64, employeeData map[string]any) (map[string]any, error)
}

type Service interface {
	Process(ctx context.Context, provider string, payload map[string]any) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByProvider(ctx context.Context, provider string) ([]EmployeeResponse, error)
	SyncAllPending(ctx context.Context, limit int) (int, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	mappers  *MapperRegistry
	tracktik TrackTikAPI
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	sf       *singleflight.Group
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	mappers *MapperRegistry,
	trackTik TrackTikAPI,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, mappers, trackTik, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	mappers *MapperRegistry,
	trackTik TrackTikAPI,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		mappers:  mappers,
		tracktik: trackTik,
		outbox:   outboxRepo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		validate: validator.New(),
		logger:   l,
	}
}

// Process runs the upsert state machine for one inbound payload: mapper
// lookup, provider validation, find-or-create keyed on (provider,
// external_id), field validation, persist, then an inline TrackTik sync.
// A sync failure is logged and never rolls back the local write; the caller
// always receives the persisted record.
func (s *service) Process(
	ctx context.Context,
	provider string,
	payload map[string]any,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	mapper, ok := s.mappers.Lookup(provider)
	if !ok {
		s.logger.Warn("process employee unsupported provider",
			zap.String("request_id", rid),
			zap.String("provider", provider),
		)
		return EmployeeResponse{}, employeeerrors.UnsupportedProvider(provider)
	}

	if !mapper.Validate(payload) {
		s.logger.Warn("process employee payload validation failed",
			zap.String("request_id", rid),
			zap.String("provider", provider),
		)
		return EmployeeResponse{}, employeeerrors.InvalidPayload(provider)
	}

	externalID := mapper.ExternalID(payload)

	existing, err := s.repo.FindByProviderAndExternalID(ctx, provider, externalID)
	if err != nil {
		s.logger.Error("process employee lookup failed",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	var empl *Employee
	if existing != nil {
		empl, err = s.updateFromProviderData(ctx, existing, mapper, payload)
	} else {
		empl, err = s.createFromProviderData(ctx, mapper, payload)
	}
	if err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateListCache(ctx, provider)

	// Sync runs inline. Outcome is recorded on the record (track_tik_id)
	// and in the logs only.
	s.syncToTrackTik(ctx, empl)

	return mapToResponse(*empl), nil
}

func (s *service) createFromProviderData(
	ctx context.Context,
	mapper Mapper,
	payload map[string]any,
) (*Employee, error) {
	rid := contextutil.GetRequestID(ctx)

	empl := mapper.ToEmployee(payload)
	empl.ID = uuid.New()

	if err := s.validateEmployee(empl); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	if err := s.enqueueOutbox(ctx, tx, empl, events.EmployeeCreatedTopic, events.EmployeeCreatedType); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return nil, err
	}

	s.logger.Info("created new employee",
		zap.String("request_id", rid),
		zap.String("provider", empl.Provider),
		zap.String("external_id", empl.ExternalID),
		zap.String("employee_id", empl.ID.String()),
	)

	return empl, nil
}

func (s *service) updateFromProviderData(
	ctx context.Context,
	existing *Employee,
	mapper Mapper,
	payload map[string]any,
) (*Employee, error) {
	rid := contextutil.GetRequestID(ctx)

	updated := mapper.ToEmployee(payload)

	existing.FirstName = updated.FirstName
	existing.LastName = updated.LastName
	existing.Email = updated.Email
	existing.PhoneNumber = updated.PhoneNumber
	existing.DateOfBirth = updated.DateOfBirth
	existing.HireDate = updated.HireDate
	existing.Department = updated.Department
	existing.Position = updated.Position
	existing.RawData = updated.RawData

	if err := s.validateEmployee(existing); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Update(ctx, existing); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	if err := s.enqueueOutbox(ctx, tx, existing, events.EmployeeUpdatedTopic, events.EmployeeUpdatedType); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return nil, err
	}

	s.logger.Info("updated existing employee",
		zap.String("request_id", rid),
		zap.String("provider", existing.Provider),
		zap.String("external_id", existing.ExternalID),
		zap.String("employee_id", existing.ID.String()),
	)

	return existing, nil
}

func (s *service) validateEmployee(empl *Employee) error {
	if err := s.validate.Struct(empl); err != nil {
		return apperror.MapValidationError(err)
	}
	return nil
}

func (s *service) enqueueOutbox(ctx context.Context, tx *sql.Tx, empl *Employee, topic, eventType string) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.EmployeeEvent{
		EventType:  eventType,
		RequestID:  rid,
		EmployeeID: empl.ID.String(),
		Provider:   empl.Provider,
		ExternalID: empl.ExternalID,
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   empl.ID.String(),
		EventType:     eventType,
		Topic:         topic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("employee outbox persist failed",
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// syncToTrackTik pushes one record downstream. A record without a TrackTik
// id gets a create, and the downstream-assigned id is persisted on success;
// everything after that is an update. Errors never escape this boundary.
func (s *service) syncToTrackTik(ctx context.Context, empl *Employee) bool {
	mapper, ok := s.mappers.Lookup(empl.Provider)
	if !ok {
		s.logger.Error("sync employee has no mapper",
			zap.String("employee_id", empl.ID.String()),
			zap.String("provider", empl.Provider),
		)
		return false
	}

	trackTikData := mapper.ToTrackTik(empl)

	if empl.TrackTikID != nil {
		if _, err := s.tracktik.UpdateEmployee(ctx, *empl.TrackTikID, trackTikData); err != nil {
			s.logger.Error("failed to sync employee to TrackTik",
				zap.String("employee_id", empl.ID.String()),
				zap.Int64("tracktik_id", *empl.TrackTikID),
				zap.Error(err),
			)
			return false
		}
	} else {
		result, err := s.tracktik.CreateEmployee(ctx, trackTikData)
		if err != nil {
			s.logger.Error("failed to sync employee to TrackTik",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return false
		}

		id, ok := extractTrackTikID(result)
		if !ok {
			// Without the assigned id the record stays pending and would be
			// re-created on every sweep if counted as synced.
			s.logger.Error("TrackTik create response missing data.id",
				zap.String("employee_id", empl.ID.String()),
			)
			return false
		}

		empl.TrackTikID = &id
		if err := s.repo.Update(ctx, empl); err != nil {
			s.logger.Error("persist tracktik id failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Int64("tracktik_id", id),
				zap.Error(err),
			)
			return false
		}
	}

	s.logger.Info("employee synced to TrackTik",
		zap.String("employee_id", empl.ID.String()),
		zap.Int64p("tracktik_id", empl.TrackTikID),
	)

	return true
}

// extractTrackTikID digs the downstream-assigned id out of a create
// response ({"data":{"id":...}}). TrackTik serializes it as a number.
func extractTrackTikID(result map[string]any) (int64, bool) {
	data, ok := result["data"].(map[string]any)
	if !ok {
		return 0, false
	}

	switch v := data["id"].(type) {
	case float64:
		return int64(v), true
	case json.Number:
		id, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return id, true
	case int64:
		return v, true
	default:
		return 0, false
	}
}

// SyncAllPending sweeps records still waiting for a successful TrackTik
// sync, sequentially and independently: one failure leaves that record for
// the next sweep without aborting the batch.
func (s *service) SyncAllPending(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = defaultSyncLimit
	}

	pending, err := s.repo.FindPendingSync(ctx, limit)
	if err != nil {
		s.logger.Error("list pending employees failed", zap.Error(err))
		return 0, mapRepositoryError(err)
	}

	syncedCount := 0
	for i := range pending {
		if s.syncToTrackTik(ctx, &pending[i]) {
			syncedCount++
		}
	}

	s.logger.Info("batch sync completed",
		zap.Int("total_pending", len(pending)),
		zap.Int("synced", syncedCount),
		zap.Int("failed", len(pending)-syncedCount),
	)

	return syncedCount, nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	return s.listCached(ctx, "", func() ([]Employee, error) {
		return s.repo.FindAll(ctx)
	})
}

func (s *service) GetByProvider(ctx context.Context, provider string) ([]EmployeeResponse, error) {
	return s.listCached(ctx, provider, func() ([]Employee, error) {
		return s.repo.FindByProvider(ctx, provider)
	})
}

// listCached serves list reads through Redis with a singleflight guard so a
// cold cache never triggers a burst of identical queries.
func (s *service) listCached(
	ctx context.Context,
	provider string,
	fetch func() ([]Employee, error),
) ([]EmployeeResponse, error) {
	cacheKey := GetEmployeeListKey(provider)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empls, err := fetch()
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(empls)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, listCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) invalidateListCache(ctx context.Context, provider string) {
	if s.rdb == nil {
		return
	}

	keys := []string{GetEmployeeListKey(""), GetEmployeeListKey(provider)}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Error("failed to invalidate employee list cache",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
	}
}
