package increment

type ApplyIncrementRequest struct {
	StaffID        string  `json:"staff_id" binding:"required,uuid"`
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	EffectiveMonth int     `json:"effective_month" binding:"required,min=1,max=12"`
	EffectiveYear  int     `json:"effective_year" binding:"required,min=2000"`
}

type ApplyBulkIncrementRequest struct {
	Department     string  `json:"department" binding:"required"`
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	EffectiveMonth int     `json:"effective_month" binding:"required,min=1,max=12"`
	EffectiveYear  int     `json:"effective_year" binding:"required,min=2000"`
}

type IncrementHistoryResponse struct {
	ID             string  `json:"id"`
	StaffID        string  `json:"staff_id"`
	Mode           string  `json:"mode"`
	Department     string  `json:"department,omitempty"`
	Amount         float64 `json:"amount"`
	PreviousSalary float64 `json:"previous_salary"`
	NewSalary      float64 `json:"new_salary"`
	EffectiveMonth int     `json:"effective_month"`
	EffectiveYear  int     `json:"effective_year"`
	AppliedBy      string  `json:"applied_by,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// BulkIncrementResponse reports how many staff rows the bulk run touched.
type BulkIncrementResponse struct {
	Department string  `json:"department"`
	Amount     float64 `json:"amount"`
	Applied    int     `json:"applied"`
}
