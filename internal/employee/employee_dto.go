package employee

import "go-hcm/internal/compensation"

// CompensationInput adalah bentuk input keempat field snapshot. Amount
// menormalisasi input non-numerik menjadi 0 alih-alih menolaknya.
type CompensationInput struct {
	GrossSalary      compensation.Amount `json:"gross_salary"`
	HouseRent        compensation.Amount `json:"house_rent"`
	UtilityAllowance compensation.Amount `json:"utility_allowance"`
	OtherAllowance   compensation.Amount `json:"other_allowance"`
}

func (c CompensationInput) Snapshot() compensation.Snapshot {
	return compensation.Snapshot{
		GrossSalary:      c.GrossSalary.Float64(),
		HouseRent:        c.HouseRent.Float64(),
		UtilityAllowance: c.UtilityAllowance.Float64(),
		OtherAllowance:   c.OtherAllowance.Float64(),
	}
}

type CreateEmployeeRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department"`

	// Kompensasi awal, ditulis langsung ke snapshot selama BOOTSTRAP
	// tanpa membuat entry ledger.
	Compensation *CompensationInput `json:"compensation"`
}

type UpdateEmployeeRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department"`

	// Ditolak dengan COMPENSATION_LOCKED setelah record dipersist.
	Compensation *CompensationInput `json:"compensation"`
}

type CompensationResponse struct {
	GrossSalary      float64 `json:"gross_salary"`
	HouseRent        float64 `json:"house_rent"`
	UtilityAllowance float64 `json:"utility_allowance"`
	OtherAllowance   float64 `json:"other_allowance"`
}

type EmployeeResponse struct {
	ID               string               `json:"id"`
	CompanyID        string               `json:"company_id"`
	EmployeeNumber   string               `json:"employee_number"`
	FullName         string               `json:"full_name"`
	Email            string               `json:"email"`
	Department       string               `json:"department"`
	Compensation     CompensationResponse `json:"compensation"`
	CompensationLock string               `json:"compensation_lock"`
	ChangeCount      int                  `json:"change_count"`
}
