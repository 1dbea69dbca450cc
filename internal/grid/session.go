package grid

import (
	"context"
	"fmt"

	"github.com/weilintw/farmgate-backend/internal/deliveries"
	"github.com/weilintw/farmgate-backend/pkg/db/models"
	"github.com/weilintw/farmgate-backend/pkg/logger"
)

// State is the lifecycle position of a single editable cell.
type State int

const (
	StateViewing State = iota
	StateEditing
	StateCommitting
)

func (s State) String() string {
	switch s {
	case StateViewing:
		return "viewing"
	case StateEditing:
		return "editing"
	case StateCommitting:
		return "committing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// CommitResult reports what a commit attempt did. Applied is false when the
// buffer was unchanged or failed local validation, both of which revert the
// cell silently without touching the gateway. Refetch is true after a
// confirmed write, signalling the caller to reload the collection so the
// summary is recomputed.
type CommitResult struct {
	Applied bool
	Refetch bool
	Record  *models.ContractDelivery
}

// CellSession is the edit state for one cell of one record. The pending
// buffer and the last server-confirmed value are held separately so a rollback
// never loses the confirmed value. Sessions are independent per cell; nothing
// here coordinates across cells.
type CellSession struct {
	svc   deliveries.Service
	logg  *logger.Logger
	id    int64
	field string

	state     State
	confirmed string
	buffer    string
}

// NewCellSession starts a session in Viewing with the cell's current display
// value as the confirmed baseline.
func NewCellSession(svc deliveries.Service, logg *logger.Logger, id int64, field, current string) *CellSession {
	return &CellSession{
		svc:       svc,
		logg:      logg,
		id:        id,
		field:     field,
		state:     StateViewing,
		confirmed: current,
	}
}

func (c *CellSession) State() State { return c.state }

// Value is the cell's display value: the pending buffer while editing, the
// confirmed value otherwise.
func (c *CellSession) Value() string {
	if c.state == StateEditing {
		return c.buffer
	}
	return c.confirmed
}

// Begin moves Viewing→Editing, seeding the buffer with the confirmed value.
func (c *CellSession) Begin() error {
	if c.state != StateViewing {
		return fmt.Errorf("cannot begin edit from %s", c.state)
	}
	c.buffer = c.confirmed
	c.state = StateEditing
	return nil
}

// Input replaces the pending buffer. Only legal while editing.
func (c *CellSession) Input(value string) error {
	if c.state != StateEditing {
		return fmt.Errorf("cannot input from %s", c.state)
	}
	c.buffer = value
	return nil
}

// Cancel discards the buffer and returns to Viewing. No network call.
func (c *CellSession) Cancel() error {
	if c.state != StateEditing {
		return fmt.Errorf("cannot cancel from %s", c.state)
	}
	c.buffer = ""
	c.state = StateViewing
	return nil
}

// Commit confirms the edit. An unchanged buffer or one that fails the field's
// local type/precision rules reverts the cell silently: no gateway call, no
// error. A valid changed buffer goes through the gateway; on success the
// confirmed value advances to the server's, on failure it stays at the last
// known-good value and the error surfaces to the caller.
func (c *CellSession) Commit(ctx context.Context) (CommitResult, error) {
	if c.state != StateEditing {
		return CommitResult{}, fmt.Errorf("cannot commit from %s", c.state)
	}

	buffer := c.buffer
	if buffer == c.confirmed {
		c.state = StateViewing
		return CommitResult{}, nil
	}

	fields, err := deliveries.CellFields(c.field, buffer)
	if err != nil {
		// Local validation failure: silent revert, the confirmed value stands.
		c.state = StateViewing
		c.buffer = ""
		return CommitResult{}, nil
	}

	c.state = StateCommitting
	rec, err := c.svc.Update(ctx, c.id, fields)
	if err != nil {
		c.state = StateViewing
		c.buffer = ""
		c.logg.Error(c.logg.WithFields(ctx, map[string]any{
			"delivery_id": c.id,
			"field":       c.field,
		}), "cell commit failed", err)
		return CommitResult{}, err
	}

	c.confirmed = confirmedValue(rec, c.field, buffer)
	c.state = StateViewing
	c.buffer = ""
	return CommitResult{Applied: true, Refetch: true, Record: rec}, nil
}

// confirmedValue prefers the server's rendering of the field (decimals come
// back padded to column scale) over the raw buffer.
func confirmedValue(rec *models.ContractDelivery, field, fallback string) string {
	if rec == nil {
		return fallback
	}
	switch field {
	case deliveries.FieldFreezingType:
		return rec.FreezingType.String()
	case deliveries.FieldMeatName:
		return rec.MeatName
	case deliveries.FieldWeightGrade:
		return rec.WeightGrade.String()
	case deliveries.FieldBoxCount:
		return fmt.Sprintf("%d", rec.BoxCount)
	case deliveries.FieldPieceCount:
		return fmt.Sprintf("%d", rec.PieceCount)
	case deliveries.FieldTotalWeight:
		return rec.TotalWeight.String()
	case deliveries.FieldAvgWeight:
		return rec.AvgWeight.String()
	default:
		return fallback
	}
}
