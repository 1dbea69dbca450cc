package receiving

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/weilintw/farmgate-backend/internal/deliveries"
	"github.com/weilintw/farmgate-backend/pkg/enums"
)

// Header aliases for each logical column. Spreadsheets from different packing
// plants label the same column differently; first match wins.
var headerAliases = map[string][]string{
	deliveries.FieldFreezingType: {"冷凍別"},
	deliveries.FieldMeatName:     {"肉品名稱", "品名"},
	deliveries.FieldWeightGrade:  {"重量分布", "規格"},
	deliveries.FieldBoxCount:     {"箱數"},
	deliveries.FieldPieceCount:   {"隻數"},
	deliveries.FieldTotalWeight:  {"總重量"},
	deliveries.FieldAvgWeight:    {"平均單隻重"},
}

const fallbackName = "Unknown"

// Normalize maps a raw cell grid (header row first) into candidate delivery
// payloads. It never fails on cell content: unknown freezing labels default to
// frozen, missing numbers to zero, missing names to "Unknown". Rows that are
// entirely empty are skipped.
func Normalize(rows [][]string) []deliveries.Fields {
	if len(rows) < 2 {
		return []deliveries.Fields{}
	}

	cols := resolveColumns(rows[0])
	out := make([]deliveries.Fields, 0, len(rows)-1)

	for _, row := range rows[1:] {
		if rowEmpty(row) {
			continue
		}
		out = append(out, normalizeRow(row, cols))
	}
	return out
}

// resolveColumns maps each logical field to its column index, or -1 when no
// alias matches. Header cells match on their trimmed text containing an alias,
// so "總重量 (kg)" still resolves.
func resolveColumns(header []string) map[string]int {
	cols := make(map[string]int, len(headerAliases))
	for field := range headerAliases {
		cols[field] = -1
	}

	for idx, cell := range header {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		for field, aliases := range headerAliases {
			if cols[field] != -1 {
				continue
			}
			for _, alias := range aliases {
				if strings.Contains(cell, alias) {
					cols[field] = idx
					break
				}
			}
		}
	}
	return cols
}

func normalizeRow(row []string, cols map[string]int) deliveries.Fields {
	ft := classifyFreezing(cellAt(row, cols[deliveries.FieldFreezingType]))
	name := cellAt(row, cols[deliveries.FieldMeatName])
	if name == "" {
		name = fallbackName
	}

	grade := cellDecimal(row, cols[deliveries.FieldWeightGrade], 1)
	boxes := cellInt(row, cols[deliveries.FieldBoxCount])
	pieces := cellInt(row, cols[deliveries.FieldPieceCount])
	total := cellDecimal(row, cols[deliveries.FieldTotalWeight], 2)
	avg := cellDecimal(row, cols[deliveries.FieldAvgWeight], 2)

	if cellAt(row, cols[deliveries.FieldAvgWeight]) == "" {
		avg = deriveAverage(total, pieces)
	}

	return deliveries.Fields{
		FreezingType: &ft,
		MeatName:     &name,
		WeightGrade:  &grade,
		BoxCount:     &boxes,
		PieceCount:   &pieces,
		TotalWeight:  &total,
		AvgWeight:    &avg,
	}
}

// classifyFreezing is a substring test, not an enum parse: anything carrying
// the chilled label counts as chilled, everything else (including empty or
// garbled cells) defaults to frozen.
func classifyFreezing(cell string) enums.FreezingType {
	if strings.Contains(cell, string(enums.FreezingTypeChilled)) {
		return enums.FreezingTypeChilled
	}
	return enums.FreezingTypeFrozen
}

// deriveAverage computes total/pieces, fixed at zero when there are no pieces.
func deriveAverage(total decimal.Decimal, pieces int) decimal.Decimal {
	if pieces <= 0 {
		return decimal.Zero.Round(2)
	}
	return total.Div(decimal.NewFromInt(int64(pieces))).Round(2)
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func cellDecimal(row []string, idx int, scale int32) decimal.Decimal {
	cell := cellAt(row, idx)
	if cell == "" {
		return decimal.Zero.Round(scale)
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(cell, ",", ""))
	if err != nil || d.IsNegative() {
		return decimal.Zero.Round(scale)
	}
	return d.Round(scale)
}

func cellInt(row []string, idx int) int {
	cell := cellAt(row, idx)
	if cell == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(cell, ",", ""))
	if err != nil {
		// Spreadsheets sometimes store counts as "12.0".
		f, ferr := strconv.ParseFloat(cell, 64)
		if ferr != nil || f != float64(int(f)) || f < 0 {
			return 0
		}
		return int(f)
	}
	if n < 0 {
		return 0
	}
	return n
}
