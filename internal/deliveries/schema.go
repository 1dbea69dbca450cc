package deliveries

import "github.com/shopspring/decimal"

// Storage scales for the decimal columns: weight_grade keeps one fractional
// digit, the weight columns keep two.
const (
	gradeScale  = 1
	weightScale = 2
)

// FieldErrors maps a wire field name to its rejection reason.
type FieldErrors map[string]string

// ValidatePartial checks only the submitted fields of a partial payload.
// Fields that are absent are fine; fields that are present must individually
// satisfy the schema.
func ValidatePartial(f Fields) FieldErrors {
	errs := FieldErrors{}

	if f.FreezingType != nil && !f.FreezingType.IsValid() {
		errs[FieldFreezingType] = "must be 冷凍 or 冷藏"
	}
	if f.MeatName != nil && *f.MeatName == "" {
		errs[FieldMeatName] = "must not be empty"
	}
	if f.WeightGrade != nil {
		if msg := checkScale(*f.WeightGrade, gradeScale); msg != "" {
			errs[FieldWeightGrade] = msg
		}
	}
	if f.BoxCount != nil && *f.BoxCount < 0 {
		errs[FieldBoxCount] = "must not be negative"
	}
	if f.PieceCount != nil && *f.PieceCount < 0 {
		errs[FieldPieceCount] = "must not be negative"
	}
	if f.TotalWeight != nil {
		if msg := checkScale(*f.TotalWeight, weightScale); msg != "" {
			errs[FieldTotalWeight] = msg
		}
	}
	if f.AvgWeight != nil {
		if msg := checkScale(*f.AvgWeight, weightScale); msg != "" {
			errs[FieldAvgWeight] = msg
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateNew checks a create payload: every field must be present and valid.
func ValidateNew(f Fields) FieldErrors {
	errs := ValidatePartial(f)
	if errs == nil {
		errs = FieldErrors{}
	}

	required := []struct {
		name    string
		present bool
	}{
		{FieldFreezingType, f.FreezingType != nil},
		{FieldMeatName, f.MeatName != nil},
		{FieldWeightGrade, f.WeightGrade != nil},
		{FieldBoxCount, f.BoxCount != nil},
		{FieldPieceCount, f.PieceCount != nil},
		{FieldTotalWeight, f.TotalWeight != nil},
		{FieldAvgWeight, f.AvgWeight != nil},
	}
	for _, req := range required {
		if !req.present {
			if _, taken := errs[req.name]; !taken {
				errs[req.name] = "is required"
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// checkScale rejects negative values and values carrying more fractional
// digits than the column stores. "1.55" has exponent -2 and fails a scale of
// 1; "1.5" passes.
func checkScale(d decimal.Decimal, scale int32) string {
	if d.IsNegative() {
		return "must not be negative"
	}
	if d.Exponent() < -scale {
		switch scale {
		case 1:
			return "allows at most 1 decimal place"
		default:
			return "allows at most 2 decimal places"
		}
	}
	return ""
}
