package deliveries

import (
	"context"
	"sort"
	"sync"

	"github.com/weilintw/farmgate-backend/pkg/db/models"
)

// MemoryRepository is an in-process store with the same contract as the
// relational repository. It is constructed explicitly and passed by
// reference, never held as package state, so each test gets an isolated
// collection.
type MemoryRepository struct {
	mu     sync.Mutex
	recs   map[int64]models.ContractDelivery
	nextID int64
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		recs:   map[int64]models.ContractDelivery{},
		nextID: 1,
	}
}

func (m *MemoryRepository) List(ctx context.Context) ([]models.ContractDelivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.ContractDelivery, 0, len(m.recs))
	for _, rec := range m.recs {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryRepository) Create(ctx context.Context, rec *models.ContractDelivery) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec.ID = m.nextID
	m.nextID++
	m.recs[rec.ID] = *rec
	return nil
}

func (m *MemoryRepository) CreateBatch(ctx context.Context, recs []models.ContractDelivery) ([]models.ContractDelivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range recs {
		recs[i].ID = m.nextID
		m.nextID++
		m.recs[recs[i].ID] = recs[i]
	}
	return recs, nil
}

func (m *MemoryRepository) Update(ctx context.Context, id int64, fields Fields) (*models.ContractDelivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.recs[id]
	if !ok {
		return nil, ErrNotFound
	}

	fields.apply(&rec)
	m.recs[id] = rec
	return &rec, nil
}
