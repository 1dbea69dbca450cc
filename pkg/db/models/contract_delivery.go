package models

import (
	"github.com/shopspring/decimal"

	"github.com/weilintw/farmgate-backend/pkg/enums"
)

// ContractDelivery is one line item of a contract-delivery receipt: a product
// grade with box/piece counts and weights. Weight columns are fixed-precision
// decimals so repeated partial updates never accumulate float drift.
//
// AvgWeight is not derived from TotalWeight/PieceCount at update time; the
// receiving desk may override it manually, so the two are allowed to drift.
type ContractDelivery struct {
	ID           int64              `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FreezingType enums.FreezingType `gorm:"column:freezing_type;not null" json:"freezingType"`
	MeatName     string             `gorm:"column:meat_name;not null" json:"meatName"`
	WeightGrade  decimal.Decimal    `gorm:"column:weight_grade;type:numeric(10,1);not null" json:"weightGrade"`
	BoxCount     int                `gorm:"column:box_count;not null" json:"boxCount"`
	PieceCount   int                `gorm:"column:piece_count;not null" json:"pieceCount"`
	TotalWeight  decimal.Decimal    `gorm:"column:total_weight;type:numeric(10,2);not null" json:"totalWeight"`
	AvgWeight    decimal.Decimal    `gorm:"column:avg_weight;type:numeric(10,2);not null" json:"avgWeight"`
}

// TableName pins the relational table name.
func (ContractDelivery) TableName() string {
	return "contract_deliveries"
}
