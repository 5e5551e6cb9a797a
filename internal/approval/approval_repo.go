package approval

import (
	"context"
	"database/sql"

	"go-attendance/internal/shared/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=approval_repo.go -destination=mock/approval_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CompareAndDecide(ctx context.Context, target Target, d Decision) (int64, error)
	Exists(ctx context.Context, target Target, id uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: storage.BindTx(r.db, tx)}
}

func (r *repository) CompareAndDecide(ctx context.Context, target Target, d Decision) (int64, error) {
	res := r.db.WithContext(ctx).
		Table(target.Table).
		Where("id = ? AND status = ?", d.RequestID, StatusPending).
		Updates(map[string]any{
			"status":      d.Status,
			"approved_by": d.ApproverID,
			"decided_at":  d.DecidedAt,
			"updated_at":  d.DecidedAt,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) Exists(ctx context.Context, target Target, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table(target.Table).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
