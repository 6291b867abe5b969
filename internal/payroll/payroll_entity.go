package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const StatusProcessed = "Processed"

// PayrollRecord adalah hasil satu kali generate gaji. Append-only:
// sekali dibuat tidak pernah di-update; koreksi dilakukan dengan
// generate ulang setelah ledger kompensasi dikoreksi.
type PayrollRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	EmployeeName string `gorm:"type:varchar(120)"`
	Department   string `gorm:"type:varchar(80)"`

	// Nilai finansial dibekukan saat generate dari snapshot kompensasi;
	// perubahan ledger setelahnya tidak menyentuh record ini.
	BasicSalary float64 `gorm:"type:numeric;not null;default:0"`
	Allowances  float64 `gorm:"type:numeric;not null;default:0"`
	GrossSalary float64 `gorm:"type:numeric;not null;default:0"`
	Tax         float64 `gorm:"type:numeric;not null;default:0"`
	Deductions  float64 `gorm:"type:numeric;not null;default:0"`
	NetPayable  float64 `gorm:"type:numeric;not null;default:0"`

	Status      string    `gorm:"type:varchar(20);not null;default:'Processed'"`
	Month       string    `gorm:"type:varchar(20);not null"`
	PaymentDate time.Time `gorm:"type:date;not null"`
	GeneratedBy string    `gorm:"type:varchar(64)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
