package compensation

import "time"

const (
	ChangeTypeHiring     = "Hiring"
	ChangeTypeIncrement  = "Increment"
	ChangeTypePromotion  = "Promotion"
	ChangeTypeAdjustment = "Adjustment"
	ChangeTypeCorrection = "Correction"
)

// ChangeRecord adalah satu event perubahan kompensasi dalam ledger.
// CreatedAt/CreatedBy distempel sekali saat pembuatan dan tidak pernah
// dimutasi setelahnya. JSON tags mengikuti wire format yang dipakai
// frontend console (newGross, newHouseRent, ...).
type ChangeRecord struct {
	EffectiveDate    string    `json:"effectiveDate"`
	GrossSalary      float64   `json:"newGross"`
	HouseRent        float64   `json:"newHouseRent,omitempty"`
	UtilityAllowance float64   `json:"newUtilityAllowance,omitempty"`
	OtherAllowance   float64   `json:"newOtherAllowance,omitempty"`
	ChangeType       string    `json:"type"`
	Remarks          string    `json:"remarks"`
	CreatedAt        time.Time `json:"createdAt"`
	CreatedBy        string    `json:"createdBy"`
}

func ValidChangeType(t string) bool {
	switch t {
	case ChangeTypeHiring, ChangeTypeIncrement, ChangeTypePromotion,
		ChangeTypeAdjustment, ChangeTypeCorrection:
		return true
	}
	return false
}
