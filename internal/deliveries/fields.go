package deliveries

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/weilintw/farmgate-backend/pkg/db/models"
	"github.com/weilintw/farmgate-backend/pkg/enums"
)

// Logical field names as they appear on the wire.
const (
	FieldFreezingType = "freezingType"
	FieldMeatName     = "meatName"
	FieldWeightGrade  = "weightGrade"
	FieldBoxCount     = "boxCount"
	FieldPieceCount   = "pieceCount"
	FieldTotalWeight  = "totalWeight"
	FieldAvgWeight    = "avgWeight"
)

// Fields is a full or partial delivery payload. Nil members were not
// submitted and must be left untouched by an update. Decimal members accept
// both JSON strings and raw numbers (shopspring unmarshals either).
type Fields struct {
	FreezingType *enums.FreezingType `json:"freezingType,omitempty"`
	MeatName     *string             `json:"meatName,omitempty"`
	WeightGrade  *decimal.Decimal    `json:"weightGrade,omitempty"`
	BoxCount     *int                `json:"boxCount,omitempty"`
	PieceCount   *int                `json:"pieceCount,omitempty"`
	TotalWeight  *decimal.Decimal    `json:"totalWeight,omitempty"`
	AvgWeight    *decimal.Decimal    `json:"avgWeight,omitempty"`
}

// IsEmpty reports whether no field was submitted.
func (f Fields) IsEmpty() bool {
	return f.FreezingType == nil &&
		f.MeatName == nil &&
		f.WeightGrade == nil &&
		f.BoxCount == nil &&
		f.PieceCount == nil &&
		f.TotalWeight == nil &&
		f.AvgWeight == nil
}

// columns maps submitted fields to their storage columns, coercing decimals
// to the column scale so "150" lands as 150.00.
func (f Fields) columns() map[string]any {
	cols := map[string]any{}
	if f.FreezingType != nil {
		cols["freezing_type"] = *f.FreezingType
	}
	if f.MeatName != nil {
		cols["meat_name"] = *f.MeatName
	}
	if f.WeightGrade != nil {
		cols["weight_grade"] = f.WeightGrade.Round(gradeScale)
	}
	if f.BoxCount != nil {
		cols["box_count"] = *f.BoxCount
	}
	if f.PieceCount != nil {
		cols["piece_count"] = *f.PieceCount
	}
	if f.TotalWeight != nil {
		cols["total_weight"] = f.TotalWeight.Round(weightScale)
	}
	if f.AvgWeight != nil {
		cols["avg_weight"] = f.AvgWeight.Round(weightScale)
	}
	return cols
}

// apply merges submitted fields into an existing record, last write wins per
// field. Absent fields are untouched.
func (f Fields) apply(rec *models.ContractDelivery) {
	if f.FreezingType != nil {
		rec.FreezingType = *f.FreezingType
	}
	if f.MeatName != nil {
		rec.MeatName = *f.MeatName
	}
	if f.WeightGrade != nil {
		rec.WeightGrade = f.WeightGrade.Round(gradeScale)
	}
	if f.BoxCount != nil {
		rec.BoxCount = *f.BoxCount
	}
	if f.PieceCount != nil {
		rec.PieceCount = *f.PieceCount
	}
	if f.TotalWeight != nil {
		rec.TotalWeight = f.TotalWeight.Round(weightScale)
	}
	if f.AvgWeight != nil {
		rec.AvgWeight = f.AvgWeight.Round(weightScale)
	}
}

// model builds a new record from a complete Fields value. Callers must have
// run ValidateNew first.
func (f Fields) model() models.ContractDelivery {
	var rec models.ContractDelivery
	f.apply(&rec)
	return rec
}

// CellFields parses a single raw cell value into a one-field partial,
// applying the same type and precision rules the schema enforces. This is the
// grid's local validation: a failure here means no network call is made.
func CellFields(field, value string) (Fields, error) {
	value = strings.TrimSpace(value)
	var f Fields

	switch field {
	case FieldFreezingType:
		ft, err := enums.ParseFreezingType(value)
		if err != nil {
			return f, err
		}
		f.FreezingType = &ft

	case FieldMeatName:
		if value == "" {
			return f, fmt.Errorf("%s must not be empty", field)
		}
		f.MeatName = &value

	case FieldWeightGrade:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return f, fmt.Errorf("%s is not a number", field)
		}
		if msg := checkScale(d, gradeScale); msg != "" {
			return f, fmt.Errorf("%s %s", field, msg)
		}
		f.WeightGrade = &d

	case FieldBoxCount, FieldPieceCount:
		n, err := strconv.Atoi(value)
		if err != nil {
			return f, fmt.Errorf("%s must be an integer", field)
		}
		if n < 0 {
			return f, fmt.Errorf("%s must not be negative", field)
		}
		if field == FieldBoxCount {
			f.BoxCount = &n
		} else {
			f.PieceCount = &n
		}

	case FieldTotalWeight, FieldAvgWeight:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return f, fmt.Errorf("%s is not a number", field)
		}
		if msg := checkScale(d, weightScale); msg != "" {
			return f, fmt.Errorf("%s %s", field, msg)
		}
		if field == FieldTotalWeight {
			f.TotalWeight = &d
		} else {
			f.AvgWeight = &d
		}

	default:
		return f, fmt.Errorf("unknown field %q", field)
	}

	return f, nil
}
