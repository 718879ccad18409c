package domain

import (
	"github.com/shopspring/decimal"
)

// RateSchedule holds the capital-gains rate table. Indian equity
// defaults: 15% STCG, 10% LTCG past a flat 1 lakh exemption.
type RateSchedule struct {
	ShortTermRate decimal.Decimal `json:"shortTermRate"`
	LongTermRate  decimal.Decimal `json:"longTermRate"`
	LTCGExemption decimal.Decimal `json:"ltcgExemption"`
}

func DefaultRateSchedule() RateSchedule {
	return RateSchedule{
		ShortTermRate: decimal.NewFromFloat(0.15),
		LongTermRate:  decimal.NewFromFloat(0.10),
		LTCGExemption: decimal.NewFromInt(100000),
	}
}
