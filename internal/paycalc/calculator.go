// Package paycalc holds the monthly salary computation. It is a pure
// function over its inputs: no persistence, no clock, no globals, so the
// finalization flow and any dry-run estimate share the exact same math.
package paycalc

import (
	"math"
	"time"
)

const (
	// Statutory basic-wage fraction and contribution rates.
	epfBasicFraction = 0.70
	epfRate          = 0.12
	esiRate          = 0.0075
)

type Input struct {
	GrossSalary    float64
	LOPDays        float64
	Deductions     map[string]float64
	Reimbursements []float64
	Month          int
	Year           int
	EPFEligible    bool
	ESIEligible    bool
}

// Breakdown exposes every intermediate of the computation, not just the
// final figures. Payslips and audit exports render all of them.
type Breakdown struct {
	GrossSalary            float64 `json:"gross_salary"`
	LOPDays                float64 `json:"lop_days"`
	LOPAmount              float64 `json:"lop_amount"`
	RoundedLOP             int     `json:"rounded_lop"`
	LOPAmountForEPFESI     float64 `json:"lop_amount_for_epf_esi"`
	AdjustedGross          float64 `json:"adjusted_gross"`
	AdjustedGrossForEPFESI float64 `json:"adjusted_gross_for_epf_esi"`
	EPF                    float64 `json:"epf"`
	ESI                    float64 `json:"esi"`
	TotalManualDeductions  float64 `json:"total_manual_deductions"`
	TotalReimbursements    float64 `json:"total_reimbursements"`
	TotalDeductions        float64 `json:"total_deductions"`
	NetSalary              float64 `json:"net_salary"`
}

// DaysInMonth returns the number of calendar days in (year, month),
// leap years included.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Compute maps gross salary, attendance loss, deductions and reimbursements
// to a full salary breakdown.
//
// Two distinct LOP prorations are intentional: net pay uses the exact
// fractional day count, while the EPF/ESI base uses a ceiling-rounded day
// count, so statutory contributions are computed on an equal-or-lower
// adjusted gross. Do not "fix" one to match the other.
//
// Negative LOP days, LOP days exceeding the month length, and negative
// deduction or reimbursement entries are the caller's responsibility;
// the calculator applies them as given.
func Compute(in Input) Breakdown {
	daysInMonth := float64(DaysInMonth(in.Year, in.Month))

	// Exact proration for net pay.
	lopAmount := (in.LOPDays / daysInMonth) * in.GrossSalary
	adjustedGross := in.GrossSalary - lopAmount

	// Ceiling-rounded day count for the statutory base.
	roundedLOP := int(math.Ceil(in.LOPDays))
	lopForEPFESI := (float64(roundedLOP) / daysInMonth) * in.GrossSalary
	adjustedForEPFESI := in.GrossSalary - lopForEPFESI

	var epf, esi float64
	if in.EPFEligible {
		epf = math.Ceil(adjustedForEPFESI * epfBasicFraction * epfRate)
	}
	if in.ESIEligible {
		esi = math.Ceil(adjustedForEPFESI * esiRate)
	}

	var totalManual float64
	for _, v := range in.Deductions {
		totalManual += v
	}

	var totalReimb float64
	for _, v := range in.Reimbursements {
		totalReimb += v
	}

	// The LOP amount is already removed from gross above; adding it here
	// would deduct it twice.
	totalDeductions := epf + esi + totalManual

	netSalary := adjustedGross - totalDeductions + totalReimb

	return Breakdown{
		GrossSalary:            round2(in.GrossSalary),
		LOPDays:                in.LOPDays,
		LOPAmount:              round2(lopAmount),
		RoundedLOP:             roundedLOP,
		LOPAmountForEPFESI:     round2(lopForEPFESI),
		AdjustedGross:          round2(adjustedGross),
		AdjustedGrossForEPFESI: round2(adjustedForEPFESI),
		EPF:                    round2(epf),
		ESI:                    round2(esi),
		TotalManualDeductions:  round2(totalManual),
		TotalReimbursements:    round2(totalReimb),
		TotalDeductions:        round2(totalDeductions),
		NetSalary:              round2(netSalary),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
