package employee

import (
	"time"

	"go-hcm/internal/compensation"
	employeeerrors "go-hcm/internal/employee/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"type:uuid;index"`
	EmployeeNumber string    `gorm:"type:varchar(20);not null"`
	FullName       string
	Email          string `gorm:"uniqueIndex"`
	Department     string `gorm:"type:varchar(80)"`

	// Snapshot kompensasi saat ini. Selama history tidak kosong, nilai ini
	// adalah proyeksi dari elemen terakhir history, dijaga eager oleh
	// engine di internal/compensation, bukan dihitung ulang saat read.
	GrossSalary      float64 `gorm:"type:numeric;not null;default:0"`
	HouseRent        float64 `gorm:"type:numeric;not null;default:0"`
	UtilityAllowance float64 `gorm:"type:numeric;not null;default:0"`
	OtherAllowance   float64 `gorm:"type:numeric;not null;default:0"`

	CompensationLock    compensation.LockState `gorm:"type:varchar(20);not null;default:'BOOTSTRAP'"`
	CompensationHistory compensation.History   `gorm:"type:jsonb;not null;default:'[]'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Snapshot mengembalikan salinan empat field kompensasi saat ini.
func (e *Employee) Snapshot() compensation.Snapshot {
	return compensation.Snapshot{
		GrossSalary:      e.GrossSalary,
		HouseRent:        e.HouseRent,
		UtilityAllowance: e.UtilityAllowance,
		OtherAllowance:   e.OtherAllowance,
	}
}

// ApplySnapshot menulis hasil sinkronisasi engine kembali ke kolom
// karyawan. Dipakai oleh jalur ledger; tidak melewati lock gating.
func (e *Employee) ApplySnapshot(snap compensation.Snapshot) {
	e.GrossSalary = snap.GrossSalary
	e.HouseRent = snap.HouseRent
	e.UtilityAllowance = snap.UtilityAllowance
	e.OtherAllowance = snap.OtherAllowance
}

// SetCompensationDirect adalah satu-satunya jalur tulis langsung ke
// snapshot. Hanya legal selama BOOTSTRAP (record belum pernah
// dipersist); setelah LOCKED, perubahan kompensasi wajib lewat ledger.
func (e *Employee) SetCompensationDirect(snap compensation.Snapshot) error {
	if !e.CompensationLock.Editable() {
		return employeeerrors.ErrCompensationLocked
	}
	e.ApplySnapshot(snap)
	return nil
}

// CommitFirstSave menandai persistensi pertama yang sukses.
func (e *Employee) CommitFirstSave() error {
	next, err := e.CompensationLock.CommitFirstSave()
	if err != nil {
		return err
	}
	e.CompensationLock = next
	return nil
}
