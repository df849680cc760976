package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/vjorihoxha/tiktak-vjori/internal/employee"
	"github.com/vjorihoxha/tiktak-vjori/internal/provider"
	"github.com/vjorihoxha/tiktak-vjori/internal/shared/apperror"

	employeeMock "github.com/vjorihoxha/tiktak-vjori/internal/employee/mock"
	kafkaMock "github.com/vjorihoxha/tiktak-vjori/internal/messaging/kafka/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	tracktik  *employeeMock.MockTrackTikAPI
	outbox    *kafkaMock.MockOutboxRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	dbRedis, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	trackTikAPI := employeeMock.NewMockTrackTikAPI(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	mappers := employee.NewMapperRegistry(
		provider.NewProvider1Mapper(),
		provider.NewProvider2Mapper(),
	)

	svc := employee.NewServiceWithOutbox(db, repo, mappers, trackTikAPI, outboxRepo, dbRedis)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		tracktik:  trackTikAPI,
		outbox:    outboxRepo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func provider1Payload(externalID, email string) map[string]any {
	return map[string]any{
		"id": externalID,
		"personal_info": map[string]any{
			"first_name":    "John",
			"last_name":     "Doe",
			"email_address": email,
			"phone":         "+1-555-123-4567",
			"birth_date":    "1985-06-15",
		},
		"employment": map[string]any{
			"hire_date":       "2023-01-15",
			"department_name": "Security",
			"job_title":       "Security Guard",
		},
	}
}

func TestEmployeeService_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("create then downstream create persists tracktik id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		payload := provider1Payload("12345", "john.doe@example.com")

		deps.repo.EXPECT().
			FindByProviderAndExternalID(gomock.Any(), "provider1", "12345").
			Return(nil, nil)

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "John", e.FirstName)
				assert.Equal(t, "Doe", e.LastName)
				assert.Equal(t, "15551234567", e.PhoneNumber)
				assert.Equal(t, "12345", e.ExternalID)
				assert.Nil(t, e.TrackTikID)
				return nil
			})

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		deps.redismock.ExpectDel(
			employee.GetEmployeeListKey(""),
			employee.GetEmployeeListKey("provider1"),
		).SetVal(2)

		deps.tracktik.EXPECT().
			CreateEmployee(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, data map[string]any) (map[string]any, error) {
				assert.Equal(t, "John", data["firstName"])
				assert.Equal(t, "john.doe@example.com", data["email"])
				custom := data["customFields"].(map[string]any)
				assert.Equal(t, "provider1", custom["source_provider"])
				assert.Equal(t, "12345", custom["external_id"])
				return map[string]any{"data": map[string]any{"id": float64(777)}}, nil
			})

		deps.repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				if assert.NotNil(t, e.TrackTikID) {
					assert.Equal(t, int64(777), *e.TrackTikID)
				}
				return nil
			})

		resp, err := deps.service.Process(ctx, "provider1", payload)

		assert.NoError(t, err)
		assert.Equal(t, "John", resp.FirstName)
		assert.NotEmpty(t, resp.ID)
	})

	t.Run("second submit with same key updates instead of creating", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		trackTikID := int64(777)
		existing := &employee.Employee{
			ID:         uuid.New(),
			FirstName:  "Johnny",
			LastName:   "Doe",
			Email:      "john.doe@example.com",
			Provider:   "provider1",
			ExternalID: "12345",
			TrackTikID: &trackTikID,
		}

		deps.repo.EXPECT().
			FindByProviderAndExternalID(gomock.Any(), "provider1", "12345").
			Return(existing, nil)

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, existing.ID, e.ID)
				assert.Equal(t, "John", e.FirstName)
				return nil
			})

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		deps.redismock.ExpectDel(
			employee.GetEmployeeListKey(""),
			employee.GetEmployeeListKey("provider1"),
		).SetVal(2)

		// An already-accepted record syncs as an update, never a second create.
		deps.tracktik.EXPECT().
			UpdateEmployee(gomock.Any(), trackTikID, gomock.Any()).
			Return(map[string]any{"data": map[string]any{"id": float64(777)}}, nil)

		resp, err := deps.service.Process(ctx, "provider1", provider1Payload("12345", "john.doe@example.com"))

		assert.NoError(t, err)
		assert.Equal(t, existing.ID.String(), resp.ID)
	})

	t.Run("unsupported provider fails without touching storage", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Process(ctx, "unknown", map[string]any{})

		assert.Error(t, err)
		assert.ErrorContains(t, err, "unknown")

		var appErr *apperror.AppError
		if assert.ErrorAs(t, err, &appErr) {
			assert.Equal(t, apperror.CodeUnsupportedProvider, appErr.Code)
		}
	})

	t.Run("invalid payload fails before any persistence", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Process(ctx, "provider1", map[string]any{"id": "1"})

		assert.Error(t, err)
		assert.ErrorContains(t, err, "provider1")
	})

	t.Run("downstream failure does not fail the ingest", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByProviderAndExternalID(gomock.Any(), "provider1", "12345").
			Return(nil, nil)

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		deps.redismock.ExpectDel(
			employee.GetEmployeeListKey(""),
			employee.GetEmployeeListKey("provider1"),
		).SetVal(2)

		deps.tracktik.EXPECT().
			CreateEmployee(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("tracktik unavailable"))

		resp, err := deps.service.Process(ctx, "provider1", provider1Payload("12345", "john.doe@example.com"))

		assert.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Nil(t, resp.TrackTikID)
	})

	t.Run("repo error on create -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindByProviderAndExternalID(gomock.Any(), "provider1", "12345").
			Return(nil, nil)

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db error"))

		_, err := deps.service.Process(ctx, "provider1", provider1Payload("12345", "john.doe@example.com"))

		assert.Error(t, err)
	})
}

func TestEmployeeService_SyncAllPending(t *testing.T) {
	ctx := context.Background()

	t.Run("one failing item leaves the rest of the batch intact", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		pending := []employee.Employee{
			{ID: uuid.New(), FirstName: "A", LastName: "One", Email: "a@example.com", Provider: "provider1", ExternalID: "1"},
			{ID: uuid.New(), FirstName: "B", LastName: "Two", Email: "b@example.com", Provider: "provider1", ExternalID: "2"},
			{ID: uuid.New(), FirstName: "C", LastName: "Three", Email: "c@example.com", Provider: "provider1", ExternalID: "3"},
		}

		deps.repo.EXPECT().
			FindPendingSync(gomock.Any(), 100).
			Return(pending, nil)

		calls := 0
		deps.tracktik.EXPECT().
			CreateEmployee(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, data map[string]any) (map[string]any, error) {
				calls++
				if calls == 2 {
					return nil, errors.New("tracktik unavailable")
				}
				return map[string]any{"data": map[string]any{"id": float64(1000 + calls)}}, nil
			}).
			Times(3)

		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		synced, err := deps.service.SyncAllPending(ctx, 0)

		assert.NoError(t, err)
		assert.Equal(t, 2, synced)
	})

	t.Run("selector error propagates", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindPendingSync(gomock.Any(), 5).
			Return(nil, errors.New("db error"))

		_, err := deps.service.SyncAllPending(ctx, 5)

		assert.Error(t, err)
	})

	t.Run("create response without an id is counted as failed", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		pending := []employee.Employee{
			{ID: uuid.New(), FirstName: "A", LastName: "One", Email: "a@example.com", Provider: "provider1", ExternalID: "1"},
		}

		deps.repo.EXPECT().
			FindPendingSync(gomock.Any(), 100).
			Return(pending, nil)

		deps.tracktik.EXPECT().
			CreateEmployee(gomock.Any(), gomock.Any()).
			Return(map[string]any{"data": map[string]any{"firstName": "A"}}, nil)

		synced, err := deps.service.SyncAllPending(ctx, 0)

		assert.NoError(t, err)
		assert.Equal(t, 0, synced, "the record is still pending and must not be counted")
	})

	t.Run("record without a mapper is counted as failed", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		pending := []employee.Employee{
			{ID: uuid.New(), Provider: "legacy", ExternalID: "9"},
		}

		deps.repo.EXPECT().
			FindPendingSync(gomock.Any(), 100).
			Return(pending, nil)

		synced, err := deps.service.SyncAllPending(ctx, 0)

		assert.NoError(t, err)
		assert.Equal(t, 0, synced)
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss falls through to repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redismock.ExpectGet(employee.GetEmployeeListKey("")).RedisNil()

		deps.repo.EXPECT().
			FindAll(gomock.Any()).
			Return([]employee.Employee{
				{ID: uuid.New(), FirstName: "Andi", Email: "andi@example.com", Provider: "provider1"},
				{ID: uuid.New(), FirstName: "Budi", Email: "budi@example.com", Provider: "provider2"},
			}, nil)

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Andi", resp[0].FirstName)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redismock.ExpectGet(employee.GetEmployeeListKey("")).RedisNil()

		deps.repo.EXPECT().
			FindAll(gomock.Any()).
			Return(nil, errors.New("db error"))

		_, err := deps.service.GetAll(ctx)

		assert.Error(t, err)
	})

	t.Run("provider filter uses the provider scoped query", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redismock.ExpectGet(employee.GetEmployeeListKey("provider2")).RedisNil()

		deps.repo.EXPECT().
			FindByProvider(gomock.Any(), "provider2").
			Return([]employee.Employee{
				{ID: uuid.New(), FirstName: "Jane", Email: "jane@example.com", Provider: "provider2"},
			}, nil)

		resp, err := deps.service.GetByProvider(ctx, "provider2")

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "provider2", resp[0].Provider)
	})
}
