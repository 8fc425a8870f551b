package model

import "github.com/shopspring/decimal"

// Movement is the direction a price moved since the previous quote.
// Keep these values stable; they are used in CSV and XLSX output.
type Movement string

const (
	MovementUp        Movement = "UP"
	MovementUnchanged Movement = "UNCHANGED"
	MovementDown      Movement = "DOWN"
)

func MovementFromChange(change decimal.Decimal) Movement {
	switch change.Sign() {
	case 1:
		return MovementUp
	case -1:
		return MovementDown
	default:
		return MovementUnchanged
	}
}
