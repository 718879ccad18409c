package tax

import (
	"fmt"
	"time"

	"nivesh/internal/domain"

	"github.com/shopspring/decimal"
)

// Report is the capital-gains summary for the active financial year.
// Every monetary figure is zero when no lots were sold.
type Report struct {
	FinancialYear string `json:"financialYear"`

	ShortTermPL decimal.Decimal `json:"shortTermPL"`
	LongTermPL  decimal.Decimal `json:"longTermPL"`

	ShortTermTaxable decimal.Decimal `json:"shortTermTaxable"`
	LongTermTaxable  decimal.Decimal `json:"longTermTaxable"`

	ShortTermTax decimal.Decimal `json:"shortTermTax"`
	LongTermTax  decimal.Decimal `json:"longTermTax"`
	TotalTax     decimal.Decimal `json:"totalTax"`

	ShortTermLots int `json:"shortTermLots"`
	LongTermLots  int `json:"longTermLots"`
}

// Compute partitions sold lots by holding category and applies the rate
// schedule. Losses net against gains inside each bucket before the bucket
// is floored at zero; they never carry across buckets. Pure function.
func Compute(lots []domain.SoldLot, schedule domain.RateSchedule) Report {
	report := Report{
		FinancialYear:    FinancialYearLabel(time.Now()),
		ShortTermPL:      decimal.Zero,
		LongTermPL:       decimal.Zero,
		ShortTermTaxable: decimal.Zero,
		LongTermTaxable:  decimal.Zero,
		ShortTermTax:     decimal.Zero,
		LongTermTax:      decimal.Zero,
		TotalTax:         decimal.Zero,
	}

	for _, lot := range lots {
		if lot.TaxCategory == domain.TaxCategory_ShortTerm {
			report.ShortTermPL = report.ShortTermPL.Add(lot.RealizedPL)
			report.ShortTermLots++
		} else {
			report.LongTermPL = report.LongTermPL.Add(lot.RealizedPL)
			report.LongTermLots++
		}
	}

	if report.ShortTermPL.IsPositive() {
		report.ShortTermTaxable = report.ShortTermPL
		report.ShortTermTax = report.ShortTermPL.Mul(schedule.ShortTermRate).Round(2)
	}

	longTermTaxable := report.LongTermPL.Sub(schedule.LTCGExemption)
	if longTermTaxable.IsPositive() {
		report.LongTermTaxable = longTermTaxable
		report.LongTermTax = longTermTaxable.Mul(schedule.LongTermRate).Round(2)
	}

	report.TotalTax = report.ShortTermTax.Add(report.LongTermTax)
	return report
}

// FinancialYearLabel renders the Indian fiscal year (April to March),
// e.g. "2025-26" for any date from 2025-04-01 through 2026-03-31.
func FinancialYearLabel(now time.Time) string {
	startYear := now.Year()
	if now.Month() < time.April {
		startYear--
	}
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}
