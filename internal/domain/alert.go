package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AlertDirection string

const (
	AlertDirection_Above AlertDirection = "above"
	AlertDirection_Below AlertDirection = "below"
)

func (d AlertDirection) Valid() bool {
	return d == AlertDirection_Above || d == AlertDirection_Below
}

// Alert describes a future price crossing. Only the Triggered /
// TriggeredAt fields mutate after creation; triggered alerts stay in the
// list until deleted explicitly.
type Alert struct {
	ID          uuid.UUID       `json:"id"`
	Symbol      string          `json:"symbol"`
	TargetPrice decimal.Decimal `json:"targetPrice"`
	Direction   AlertDirection  `json:"direction"`
	CreatedAt   time.Time       `json:"createdAt"`
	Triggered   bool            `json:"triggered"`
	TriggeredAt *time.Time      `json:"triggeredAt,omitempty"`
}

// ConditionMet reports whether the crossing the alert describes holds at
// the given price.
func (a Alert) ConditionMet(price decimal.Decimal) bool {
	switch a.Direction {
	case AlertDirection_Above:
		return price.GreaterThanOrEqual(a.TargetPrice)
	case AlertDirection_Below:
		return price.LessThanOrEqual(a.TargetPrice)
	}
	return false
}
