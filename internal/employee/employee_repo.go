package employee

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	Update(ctx context.Context, empl *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	// FindByProviderAndExternalID returns (nil, nil) when no record matches;
	// absence is the signal for the create branch of the upsert.
	FindByProviderAndExternalID(ctx context.Context, provider, externalID string) (*Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	FindByProvider(ctx context.Context, provider string) ([]Employee, error)
	FindByTrackTikID(ctx context.Context, trackTikID int64) (*Employee, error)
	FindPendingSync(ctx context.Context, limit int) ([]Employee, error)
}

type repository struct {
	db    *gorm.DB
	txErr error
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements run on the given transaction,
// so the employee write commits or rolls back together with the outbox row
// staged on the same tx.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	txDB, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return &repository{db: r.db, txErr: err}
	}
	return &repository{db: txDB}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	if r.txErr != nil {
		return r.txErr
	}
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	if r.txErr != nil {
		return r.txErr
	}
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindByProviderAndExternalID(ctx context.Context, provider, externalID string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		First(&empl, "provider = ? AND external_id = ?", provider, externalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByProvider(ctx context.Context, provider string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Where("provider = ?", provider).
		Order("created_at DESC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByTrackTikID(ctx context.Context, trackTikID int64) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		First(&empl, "track_tik_id = ?", trackTikID).Error
	return &empl, err
}

// FindPendingSync selects records never accepted by TrackTik or modified
// after creation, most recently updated first. The updated_at > created_at
// proxy never resets after a successful sync; candidates already in sync are
// re-pushed as updates, which TrackTik treats as idempotent.
func (r *repository) FindPendingSync(ctx context.Context, limit int) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Where("track_tik_id IS NULL OR updated_at > created_at").
		Order("updated_at DESC").
		Limit(limit).
		Find(&empls).Error
	return empls, err
}
