package deliveries

import (
	"github.com/shopspring/decimal"

	"github.com/weilintw/farmgate-backend/pkg/db/models"
	"github.com/weilintw/farmgate-backend/pkg/enums"
)

// Summary is the derived aggregate over the full record collection. It is
// recomputed on every read and never persisted.
type Summary struct {
	TotalWeight       decimal.Decimal `json:"totalWeight"`
	TotalBoxes        int             `json:"totalBoxes"`
	TotalCount        int             `json:"totalCount"`
	FrozenWeight      decimal.Decimal `json:"frozenWeight"`
	ChilledWeight     decimal.Decimal `json:"chilledWeight"`
	FrozenPercentage  int             `json:"frozenPercentage"`
	ChilledPercentage int             `json:"chilledPercentage"`
}

// Summarize folds the collection into totals and frozen/chilled partitions.
// Percentages are rounded shares of total weight and are exactly zero when
// the total weight is zero.
func Summarize(items []models.ContractDelivery) Summary {
	s := Summary{
		TotalWeight:   decimal.Zero,
		FrozenWeight:  decimal.Zero,
		ChilledWeight: decimal.Zero,
	}

	for _, item := range items {
		s.TotalWeight = s.TotalWeight.Add(item.TotalWeight)
		s.TotalBoxes += item.BoxCount
		s.TotalCount += item.PieceCount

		switch item.FreezingType {
		case enums.FreezingTypeChilled:
			s.ChilledWeight = s.ChilledWeight.Add(item.TotalWeight)
		default:
			s.FrozenWeight = s.FrozenWeight.Add(item.TotalWeight)
		}
	}

	s.TotalWeight = s.TotalWeight.Round(weightScale)
	s.FrozenWeight = s.FrozenWeight.Round(weightScale)
	s.ChilledWeight = s.ChilledWeight.Round(weightScale)

	if s.TotalWeight.IsPositive() {
		s.FrozenPercentage = percentage(s.FrozenWeight, s.TotalWeight)
		s.ChilledPercentage = percentage(s.ChilledWeight, s.TotalWeight)
	}

	return s
}

var hundred = decimal.NewFromInt(100)

func percentage(part, total decimal.Decimal) int {
	return int(part.Mul(hundred).Div(total).Round(0).IntPart())
}
