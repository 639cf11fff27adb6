package salaryrecord

import "go-payroll/internal/paycalc"

type LOPEntry struct {
	StaffID string  `json:"staff_id" binding:"required,uuid"`
	LOPDays float64 `json:"lop_days" binding:"min=0"`
}

type SetLOPRequest struct {
	Month   int        `json:"month" binding:"required,min=1,max=12"`
	Year    int        `json:"year" binding:"required,min=2000"`
	Entries []LOPEntry `json:"entries" binding:"required,min=1,dive"`
}

// SetLOPResponse aggregates the batch outcome; the batch is all-or-nothing
// so created+updated always equals the number of entries on success.
type SetLOPResponse struct {
	Month   int `json:"month"`
	Year    int `json:"year"`
	Created int `json:"created"`
	Updated int `json:"updated"`
}

type LOPResponse struct {
	StaffID string  `json:"staff_id"`
	Month   int     `json:"month"`
	Year    int     `json:"year"`
	LOPDays float64 `json:"lop_days"`
	Status  string  `json:"status"`
}

// DeductionInputs carries the manual deduction categories captured at
// finalization. Professional tax is not accepted here; the lifecycle adds
// it from the slab lookup.
type DeductionInputs struct {
	IT       float64 `json:"it"`
	Loan     float64 `json:"loan"`
	Advance  float64 `json:"advance"`
	Uniform  float64 `json:"uniform"`
	CD       float64 `json:"cd"`
	Hostel   float64 `json:"hostel"`
	Suspense float64 `json:"suspense"`
	Misc     float64 `json:"misc"`
}

type FinalizeRequest struct {
	StaffID        string          `json:"staff_id" binding:"required,uuid"`
	Month          int             `json:"month" binding:"required,min=1,max=12"`
	Year           int             `json:"year" binding:"required,min=2000"`
	Deductions     DeductionInputs `json:"deductions"`
	Reimbursements []float64       `json:"reimbursements"`
}

// EstimateRequest is a dry run of the calculator with explicit inputs; no
// record is read or written.
type EstimateRequest struct {
	GrossSalary    float64         `json:"gross_salary" binding:"min=0"`
	LOPDays        float64         `json:"lop_days" binding:"min=0"`
	Month          int             `json:"month" binding:"required,min=1,max=12"`
	Year           int             `json:"year" binding:"required,min=2000"`
	EPFEligible    bool            `json:"epf_eligible"`
	ESIEligible    bool            `json:"esi_eligible"`
	Deductions     DeductionInputs `json:"deductions"`
	Reimbursements []float64       `json:"reimbursements"`
}

type SalaryRecordResponse struct {
	ID                 string            `json:"id"`
	StaffID            string            `json:"staff_id"`
	Month              int               `json:"month"`
	Year               int               `json:"year"`
	Status             string            `json:"status"`
	Breakdown          paycalc.Breakdown `json:"breakdown"`
	Deductions         DeductionInputs   `json:"deductions"`
	ProfessionalTax    float64           `json:"professional_tax"`
	PayslipURL         *string           `json:"payslip_url,omitempty"`
	PayslipGeneratedAt string            `json:"payslip_generated_at,omitempty"`
}

type FinalizedRecordResponse struct {
	ID              string  `json:"id"`
	StaffID         string  `json:"staff_id"`
	StaffNumber     int64   `json:"staff_number"`
	StaffName       string  `json:"staff_name"`
	Department      string  `json:"department"`
	Month           int     `json:"month"`
	Year            int     `json:"year"`
	GrossSalary     float64 `json:"gross_salary"`
	LOPDays         float64 `json:"lop_days"`
	TotalDeductions float64 `json:"total_deductions"`
	NetSalary       float64 `json:"net_salary"`
	PayslipURL      *string `json:"payslip_url,omitempty"`
}

type ListFinalizedFilter struct {
	Month *int
	Year  *int
}
