package salarychange

import "go-hcm/internal/compensation"

// Field names mengikuti wire shape ChangeRecord yang dipakai console
// (newGross, newHouseRent, ...). Amount menormalisasi input non-numerik
// menjadi 0.
type AppendChangeRequest struct {
	EffectiveDate    string              `json:"effectiveDate" binding:"required"`
	GrossSalary      compensation.Amount `json:"newGross"`
	HouseRent        compensation.Amount `json:"newHouseRent"`
	UtilityAllowance compensation.Amount `json:"newUtilityAllowance"`
	OtherAllowance   compensation.Amount `json:"newOtherAllowance"`
	ChangeType       string              `json:"type" binding:"required"`
	Remarks          string              `json:"remarks"`
}

type EditChangeFieldRequest struct {
	Field string              `json:"field" binding:"required"`
	Value compensation.Amount `json:"value"`
}

type ChangeRecordResponse struct {
	Index            int     `json:"index"`
	EffectiveDate    string  `json:"effectiveDate"`
	GrossSalary      float64 `json:"newGross"`
	HouseRent        float64 `json:"newHouseRent"`
	UtilityAllowance float64 `json:"newUtilityAllowance"`
	OtherAllowance   float64 `json:"newOtherAllowance"`
	ChangeType       string  `json:"type"`
	Remarks          string  `json:"remarks"`
	CreatedAt        string  `json:"createdAt"`
	CreatedBy        string  `json:"createdBy"`
}

// SnapshotResponse ikut dikembalikan pada operasi mutasi supaya client
// tidak perlu reload untuk melihat kompensasi saat ini.
type SnapshotResponse struct {
	GrossSalary      float64 `json:"gross_salary"`
	HouseRent        float64 `json:"house_rent"`
	UtilityAllowance float64 `json:"utility_allowance"`
	OtherAllowance   float64 `json:"other_allowance"`
}

type MutationResponse struct {
	Record   *ChangeRecordResponse `json:"record,omitempty"`
	Snapshot SnapshotResponse      `json:"snapshot"`
	Count    int                   `json:"count"`
}
