package grid

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/weilintw/farmgate-backend/internal/deliveries"
	"github.com/weilintw/farmgate-backend/pkg/db/models"
	"github.com/weilintw/farmgate-backend/pkg/enums"
	"github.com/weilintw/farmgate-backend/pkg/logger"
)

type stubService struct {
	updateFn func(ctx context.Context, id int64, fields deliveries.Fields) (*models.ContractDelivery, error)
	calls    int
}

func (s *stubService) List(ctx context.Context) (*deliveries.ListResult, error) { return nil, nil }
func (s *stubService) Summary(ctx context.Context) (*deliveries.Summary, error) { return nil, nil }
func (s *stubService) Create(ctx context.Context, fields deliveries.Fields) (*models.ContractDelivery, error) {
	return nil, nil
}
func (s *stubService) CreateBatch(ctx context.Context, fields []deliveries.Fields) ([]models.ContractDelivery, error) {
	return nil, nil
}
func (s *stubService) Update(ctx context.Context, id int64, fields deliveries.Fields) (*models.ContractDelivery, error) {
	s.calls++
	if s.updateFn != nil {
		return s.updateFn(ctx, id, fields)
	}
	return nil, errors.New("unexpected update")
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func validRecord() models.ContractDelivery {
	return models.ContractDelivery{
		ID:           1,
		FreezingType: enums.FreezingTypeFrozen,
		MeatName:     "大雞腿",
		WeightGrade:  decimal.RequireFromString("1.5"),
		BoxCount:     10,
		PieceCount:   100,
		TotalWeight:  decimal.RequireFromString("150.00"),
		AvgWeight:    decimal.RequireFromString("1.50"),
	}
}

func newSession(svc deliveries.Service, field, current string) *CellSession {
	return NewCellSession(svc, testLogger(), 1, field, current)
}

func TestSessionBeginSeedsBuffer(t *testing.T) {
	sess := newSession(&stubService{}, deliveries.FieldBoxCount, "10")

	if sess.State() != StateViewing || sess.Value() != "10" {
		t.Fatalf("fresh session: state=%s value=%q", sess.State(), sess.Value())
	}
	if err := sess.Begin(); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if sess.State() != StateEditing || sess.Value() != "10" {
		t.Fatalf("after begin: state=%s value=%q", sess.State(), sess.Value())
	}
	if err := sess.Begin(); err == nil {
		t.Fatal("begin from editing must fail")
	}
}

func TestSessionCancelDiscardsBuffer(t *testing.T) {
	svc := &stubService{}
	sess := newSession(svc, deliveries.FieldBoxCount, "10")

	_ = sess.Begin()
	_ = sess.Input("99")
	if sess.Value() != "99" {
		t.Fatalf("buffer = %q", sess.Value())
	}
	if err := sess.Cancel(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if sess.State() != StateViewing || sess.Value() != "10" {
		t.Fatalf("after cancel: state=%s value=%q", sess.State(), sess.Value())
	}
	if svc.calls != 0 {
		t.Fatalf("cancel must not call the gateway, got %d calls", svc.calls)
	}
}

func TestSessionCommitUnchangedIsSilent(t *testing.T) {
	svc := &stubService{}
	sess := newSession(svc, deliveries.FieldBoxCount, "10")

	_ = sess.Begin()
	result, err := sess.Commit(context.Background())
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if result.Applied || result.Refetch {
		t.Fatalf("unchanged commit must not apply, got %+v", result)
	}
	if svc.calls != 0 {
		t.Fatalf("unchanged commit must not call the gateway, got %d calls", svc.calls)
	}
	if sess.State() != StateViewing || sess.Value() != "10" {
		t.Fatalf("after commit: state=%s value=%q", sess.State(), sess.Value())
	}
}

func TestSessionCommitInvalidRevertsSilently(t *testing.T) {
	svc := &stubService{}
	sess := newSession(svc, deliveries.FieldWeightGrade, "1.5")

	_ = sess.Begin()
	_ = sess.Input("1.55") // two fractional digits, limit is one
	result, err := sess.Commit(context.Background())
	if err != nil {
		t.Fatalf("local validation failure must not surface, got %v", err)
	}
	if result.Applied {
		t.Fatalf("invalid buffer must not apply, got %+v", result)
	}
	if svc.calls != 0 {
		t.Fatalf("invalid buffer must not call the gateway, got %d calls", svc.calls)
	}
	if sess.Value() != "1.5" {
		t.Fatalf("confirmed value lost: %q", sess.Value())
	}
}

func TestSessionCommitSuccess(t *testing.T) {
	svc := &stubService{
		updateFn: func(ctx context.Context, id int64, fields deliveries.Fields) (*models.ContractDelivery, error) {
			if id != 1 {
				t.Fatalf("id = %d", id)
			}
			if fields.BoxCount == nil || *fields.BoxCount != 25 {
				t.Fatalf("fields = %+v", fields)
			}
			rec := validRecord()
			rec.BoxCount = 25
			return &rec, nil
		},
	}
	sess := newSession(svc, deliveries.FieldBoxCount, "10")

	_ = sess.Begin()
	_ = sess.Input("25")
	result, err := sess.Commit(context.Background())
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if !result.Applied || !result.Refetch || result.Record == nil {
		t.Fatalf("unexpected result: %+v", result)
	}
	if sess.State() != StateViewing || sess.Value() != "25" {
		t.Fatalf("after commit: state=%s value=%q", sess.State(), sess.Value())
	}
	if svc.calls != 1 {
		t.Fatalf("expected one gateway call, got %d", svc.calls)
	}
}

func TestSessionCommitFailureRollsBack(t *testing.T) {
	svc := &stubService{
		updateFn: func(ctx context.Context, id int64, fields deliveries.Fields) (*models.ContractDelivery, error) {
			return nil, errors.New("store unavailable")
		},
	}
	sess := newSession(svc, deliveries.FieldBoxCount, "10")

	_ = sess.Begin()
	_ = sess.Input("25")
	_, err := sess.Commit(context.Background())
	if err == nil {
		t.Fatal("gateway failure must surface")
	}
	if sess.State() != StateViewing || sess.Value() != "10" {
		t.Fatalf("rollback must restore confirmed value: state=%s value=%q", sess.State(), sess.Value())
	}

	// The session stays usable after a failed commit.
	if err := sess.Begin(); err != nil {
		t.Fatalf("begin after failure: %v", err)
	}
}

func TestSessionConfirmedValueUsesServerRendering(t *testing.T) {
	svc := &stubService{
		updateFn: func(ctx context.Context, id int64, fields deliveries.Fields) (*models.ContractDelivery, error) {
			rec := validRecord()
			rec.TotalWeight = fields.TotalWeight.Round(2)
			return &rec, nil
		},
	}
	sess := newSession(svc, deliveries.FieldTotalWeight, "150.00")

	_ = sess.Begin()
	_ = sess.Input("160") // server pads to column scale
	result, err := sess.Commit(context.Background())
	if err != nil || !result.Applied {
		t.Fatalf("commit: %v %+v", err, result)
	}
	if sess.Value() != "160.00" {
		t.Fatalf("confirmed value = %q", sess.Value())
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	svc := &stubService{
		updateFn: func(ctx context.Context, id int64, fields deliveries.Fields) (*models.ContractDelivery, error) {
			rec := validRecord()
			if fields.BoxCount != nil {
				rec.BoxCount = *fields.BoxCount
			}
			if fields.MeatName != nil {
				rec.MeatName = *fields.MeatName
			}
			return &rec, nil
		},
	}

	boxes := newSession(svc, deliveries.FieldBoxCount, "10")
	name := newSession(svc, deliveries.FieldMeatName, "大雞腿")

	_ = boxes.Begin()
	_ = name.Begin()
	_ = boxes.Input("11")
	_ = name.Input("雞翅")

	if _, err := boxes.Commit(context.Background()); err != nil {
		t.Fatalf("boxes commit: %v", err)
	}
	if name.State() != StateEditing || name.Value() != "雞翅" {
		t.Fatalf("sibling session disturbed: state=%s value=%q", name.State(), name.Value())
	}
	if _, err := name.Commit(context.Background()); err != nil {
		t.Fatalf("name commit: %v", err)
	}
	if svc.calls != 2 {
		t.Fatalf("expected two independent gateway calls, got %d", svc.calls)
	}
}
