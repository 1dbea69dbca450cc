package deliveries

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/weilintw/farmgate-backend/pkg/db/models"
	"github.com/weilintw/farmgate-backend/pkg/enums"
	pkgerrors "github.com/weilintw/farmgate-backend/pkg/errors"
	"github.com/weilintw/farmgate-backend/pkg/logger"
)

// ListResult pairs the full collection with its derived summary so a single
// round trip feeds both the grid and the dashboard cards.
type ListResult struct {
	Items   []models.ContractDelivery `json:"items"`
	Summary Summary                   `json:"summary"`
}

// Service owns the business rules around contract deliveries: schema
// validation on the way in, aggregation on the way out.
type Service interface {
	List(ctx context.Context) (*ListResult, error)
	Summary(ctx context.Context) (*Summary, error)
	Create(ctx context.Context, fields Fields) (*models.ContractDelivery, error)
	CreateBatch(ctx context.Context, fields []Fields) ([]models.ContractDelivery, error)
	Update(ctx context.Context, id int64, fields Fields) (*models.ContractDelivery, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires a delivery service over the given repository.
func NewService(repo Repository, logg *logger.Logger) Service {
	return &service{repo: repo, logg: logg}
}

func (s *service) List(ctx context.Context) (*ListResult, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing deliveries")
	}
	if items == nil {
		items = []models.ContractDelivery{}
	}
	return &ListResult{Items: items, Summary: Summarize(items)}, nil
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "summarizing deliveries")
	}
	summary := Summarize(items)
	return &summary, nil
}

func (s *service) Create(ctx context.Context, fields Fields) (*models.ContractDelivery, error) {
	if errs := ValidateNew(fields); errs != nil {
		return nil, validationError(errs)
	}

	rec := fields.model()
	if err := s.repo.Create(ctx, &rec); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating delivery")
	}

	s.logg.Info(s.logg.WithField(ctx, "delivery_id", rec.ID), "delivery created")
	return &rec, nil
}

func (s *service) CreateBatch(ctx context.Context, fields []Fields) ([]models.ContractDelivery, error) {
	recs := make([]models.ContractDelivery, 0, len(fields))
	for i, f := range fields {
		if errs := ValidateNew(f); errs != nil {
			return nil, pkgerrors.
				New(pkgerrors.CodeValidation, "delivery batch failed validation").
				WithDetails(map[string]any{"row": i, "fields": errs})
		}
		recs = append(recs, f.model())
	}

	created, err := s.repo.CreateBatch(ctx, recs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating delivery batch")
	}

	s.logg.Info(s.logg.WithField(ctx, "count", len(created)), "delivery batch created")
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, fields Fields) (*models.ContractDelivery, error) {
	if fields.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields submitted")
	}
	if errs := ValidatePartial(fields); errs != nil {
		return nil, validationError(errs)
	}

	rec, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating delivery")
	}

	s.logg.Info(s.logg.WithField(ctx, "delivery_id", id), "delivery updated")
	return rec, nil
}

func validationError(errs FieldErrors) error {
	return pkgerrors.
		New(pkgerrors.CodeValidation, "delivery failed validation").
		WithDetails(map[string]any{"fields": errs})
}

// SeedIfEmpty inserts one starter record into an empty store. Development
// only, so a fresh environment has a row to edit.
func SeedIfEmpty(ctx context.Context, repo Repository, logg *logger.Logger) error {
	items, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		return nil
	}

	seed := models.ContractDelivery{
		FreezingType: enums.FreezingTypeFrozen,
		MeatName:     "大雞腿",
		WeightGrade:  decimal.RequireFromString("1.5"),
		BoxCount:     10,
		PieceCount:   100,
		TotalWeight:  decimal.RequireFromString("150.00"),
		AvgWeight:    decimal.RequireFromString("1.50"),
	}
	if err := repo.Create(ctx, &seed); err != nil {
		return err
	}

	logg.Info(logg.WithField(ctx, "delivery_id", seed.ID), "seeded starter delivery")
	return nil
}
