package staff

type CreateStaffRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Department  string  `json:"department" binding:"required"`
	Designation string  `json:"designation" binding:"required"`
	BaseSalary  float64 `json:"base_salary" binding:"min=0"`
	Allowances  float64 `json:"allowances"`
	EPFEligible bool    `json:"epf_eligible"`
	ESIEligible bool    `json:"esi_eligible"`
	DateJoined  string  `json:"date_joined" binding:"required"`
	BankAccount string  `json:"bank_account" binding:"required"`
	Aadhar      string  `json:"aadhar" binding:"required,len=12"`
	PFNumber    *string `json:"pf_number"`
	ESINumber   *string `json:"esi_number"`
}

type UpdateStaffRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Department  string  `json:"department" binding:"required"`
	Designation string  `json:"designation" binding:"required"`
	Allowances  float64 `json:"allowances"`
	EPFEligible bool    `json:"epf_eligible"`
	ESIEligible bool    `json:"esi_eligible"`
	BankAccount string  `json:"bank_account" binding:"required"`
	PFNumber    *string `json:"pf_number"`
	ESINumber   *string `json:"esi_number"`
}

type StaffResponse struct {
	ID          string  `json:"id"`
	StaffNumber int64   `json:"staff_number"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Department  string  `json:"department"`
	Designation string  `json:"designation"`
	BaseSalary  float64 `json:"base_salary"`
	Allowances  float64 `json:"allowances"`
	EPFEligible bool    `json:"epf_eligible"`
	ESIEligible bool    `json:"esi_eligible"`
	DateJoined  string  `json:"date_joined"`
	BankAccount string  `json:"bank_account"`
	Aadhar      string  `json:"aadhar"`
	PFNumber    *string `json:"pf_number,omitempty"`
	ESINumber   *string `json:"esi_number,omitempty"`
	Active      bool    `json:"active"`
}

// StaffOptionResponse is the slim shape for dropdowns (attendance and
// deduction entry screens).
type StaffOptionResponse struct {
	ID          string `json:"id"`
	StaffNumber int64  `json:"staff_number"`
	Name        string `json:"name"`
}
