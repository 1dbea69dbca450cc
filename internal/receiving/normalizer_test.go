package receiving

import (
	"testing"

	"github.com/weilintw/farmgate-backend/internal/deliveries"
	"github.com/weilintw/farmgate-backend/pkg/enums"
)

func TestNormalizeMapsAliasedHeaders(t *testing.T) {
	rows := [][]string{
		{"冷凍別", "品名", "規格", "箱數", "隻數", "總重量", "平均單隻重"},
		{"冷凍", "大雞腿", "1.5", "10", "100", "150.00", "1.50"},
	}

	fields := Normalize(rows)
	if len(fields) != 1 {
		t.Fatalf("expected one record, got %d", len(fields))
	}

	f := fields[0]
	if *f.FreezingType != enums.FreezingTypeFrozen {
		t.Fatalf("freezingType = %s", *f.FreezingType)
	}
	if *f.MeatName != "大雞腿" {
		t.Fatalf("meatName = %s", *f.MeatName)
	}
	if f.WeightGrade.String() != "1.5" {
		t.Fatalf("weightGrade = %s", f.WeightGrade)
	}
	if *f.BoxCount != 10 || *f.PieceCount != 100 {
		t.Fatalf("counts = %d/%d", *f.BoxCount, *f.PieceCount)
	}
	if f.TotalWeight.String() != "150.00" || f.AvgWeight.String() != "1.50" {
		t.Fatalf("weights = %s/%s", f.TotalWeight, f.AvgWeight)
	}

	if errs := deliveries.ValidateNew(f); errs != nil {
		t.Fatalf("normalized row must validate, got %v", errs)
	}
}

func TestNormalizeAlternateAliasesAndUnits(t *testing.T) {
	rows := [][]string{
		{"冷凍別", "肉品名稱", "重量分布", "箱數", "隻數", "總重量 (kg)", "平均單隻重 (kg)"},
		{"冷凍", "雞翅", "2", "5", "50", "60", "1.2"},
	}

	fields := Normalize(rows)
	if len(fields) != 1 {
		t.Fatalf("expected one record, got %d", len(fields))
	}
	if *fields[0].MeatName != "雞翅" {
		t.Fatalf("meatName = %s", *fields[0].MeatName)
	}
	if fields[0].TotalWeight.String() != "60.00" {
		t.Fatalf("totalWeight = %s", fields[0].TotalWeight)
	}
}

func TestNormalizeChilledSubstring(t *testing.T) {
	rows := [][]string{
		{"冷凍別", "品名", "規格", "箱數", "隻數", "總重量", "平均單隻重"},
		{"冷藏包裝", "雞胸", "1.0", "1", "10", "12.00", "1.20"},
		{"", "雞胸", "1.0", "1", "10", "12.00", "1.20"},
		{"garbled", "雞胸", "1.0", "1", "10", "12.00", "1.20"},
	}

	fields := Normalize(rows)
	if len(fields) != 3 {
		t.Fatalf("expected three records, got %d", len(fields))
	}
	if *fields[0].FreezingType != enums.FreezingTypeChilled {
		t.Fatalf("冷藏包裝 must classify chilled, got %s", *fields[0].FreezingType)
	}
	if *fields[1].FreezingType != enums.FreezingTypeFrozen {
		t.Fatalf("empty cell must default frozen, got %s", *fields[1].FreezingType)
	}
	if *fields[2].FreezingType != enums.FreezingTypeFrozen {
		t.Fatalf("garbled cell must default frozen, got %s", *fields[2].FreezingType)
	}
}

func TestNormalizeMissingPieceColumn(t *testing.T) {
	rows := [][]string{
		{"冷凍別", "品名", "規格", "箱數", "總重量"},
		{"冷凍", "雞腿", "1.5", "3", "45.00"},
	}

	fields := Normalize(rows)
	if len(fields) != 1 {
		t.Fatalf("expected one record, got %d", len(fields))
	}
	f := fields[0]
	if *f.PieceCount != 0 {
		t.Fatalf("pieceCount = %d", *f.PieceCount)
	}
	if f.AvgWeight.String() != "0.00" {
		t.Fatalf("avgWeight must be 0.00 when pieces are missing, got %s", f.AvgWeight)
	}
}

func TestNormalizeDerivesAverage(t *testing.T) {
	rows := [][]string{
		{"冷凍別", "品名", "規格", "箱數", "隻數", "總重量"},
		{"冷凍", "雞腿", "1.5", "3", "30", "45.00"},
	}

	fields := Normalize(rows)
	if fields[0].AvgWeight.String() != "1.50" {
		t.Fatalf("avgWeight = %s", fields[0].AvgWeight)
	}
}

func TestNormalizeDefaultsMalformedCells(t *testing.T) {
	rows := [][]string{
		{"冷凍別", "品名", "規格", "箱數", "隻數", "總重量", "平均單隻重"},
		{"冷凍", "", "abc", "x", "-5", "not-a-number", ""},
	}

	fields := Normalize(rows)
	if len(fields) != 1 {
		t.Fatalf("expected one record, got %d", len(fields))
	}
	f := fields[0]
	if *f.MeatName != "Unknown" {
		t.Fatalf("meatName = %s", *f.MeatName)
	}
	if f.WeightGrade.String() != "0.0" {
		t.Fatalf("weightGrade = %s", f.WeightGrade)
	}
	if *f.BoxCount != 0 || *f.PieceCount != 0 {
		t.Fatalf("counts = %d/%d", *f.BoxCount, *f.PieceCount)
	}
	if f.TotalWeight.String() != "0.00" || f.AvgWeight.String() != "0.00" {
		t.Fatalf("weights = %s/%s", f.TotalWeight, f.AvgWeight)
	}

	if errs := deliveries.ValidateNew(f); errs != nil {
		t.Fatalf("defaulted row must still validate, got %v", errs)
	}
}

func TestNormalizeSkipsEmptyRowsAndShortInput(t *testing.T) {
	rows := [][]string{
		{"冷凍別", "品名", "規格", "箱數", "隻數", "總重量", "平均單隻重"},
		{"", "", ""},
		{},
		{"冷凍", "雞腿", "1.5", "1", "10", "15.00", "1.50"},
	}
	if got := Normalize(rows); len(got) != 1 {
		t.Fatalf("expected one record after skipping blanks, got %d", len(got))
	}

	if got := Normalize([][]string{{"冷凍別"}}); len(got) != 0 {
		t.Fatalf("header-only input must yield nothing, got %d", len(got))
	}
	if got := Normalize(nil); len(got) != 0 {
		t.Fatalf("nil input must yield nothing, got %d", len(got))
	}
}
