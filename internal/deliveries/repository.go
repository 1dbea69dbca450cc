package deliveries

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/weilintw/farmgate-backend/pkg/db/models"
)

// ErrNotFound reports an update against an id that is not in the store.
var ErrNotFound = errors.New("delivery not found")

// Repository exposes persistence for contract deliveries. There is no delete:
// receipts are corrected in place, never removed.
type Repository interface {
	List(ctx context.Context) ([]models.ContractDelivery, error)
	Create(ctx context.Context, rec *models.ContractDelivery) error
	CreateBatch(ctx context.Context, recs []models.ContractDelivery) ([]models.ContractDelivery, error)
	Update(ctx context.Context, id int64, fields Fields) (*models.ContractDelivery, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository returns a delivery repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) List(ctx context.Context) ([]models.ContractDelivery, error) {
	var recs []models.ContractDelivery
	if err := r.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *gormRepository) Create(ctx context.Context, rec *models.ContractDelivery) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// CreateBatch inserts all records inside one transaction so an import either
// lands whole or not at all.
func (r *gormRepository) CreateBatch(ctx context.Context, recs []models.ContractDelivery) ([]models.ContractDelivery, error) {
	if len(recs) == 0 {
		return []models.ContractDelivery{}, nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&recs).Error
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *gormRepository) Update(ctx context.Context, id int64, fields Fields) (*models.ContractDelivery, error) {
	cols := fields.columns()
	if len(cols) > 0 {
		res := r.db.WithContext(ctx).
			Model(&models.ContractDelivery{}).
			Where("id = ?", id).
			Updates(cols)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	var rec models.ContractDelivery
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}
