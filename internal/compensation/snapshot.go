package compensation

// Snapshot adalah empat field "kompensasi saat ini" yang hidup langsung
// di record karyawan. Invariannya: selama ledger tidak kosong, snapshot
// sama dengan field dari elemen terakhir ledger. Sinkronisasi dilakukan
// eager oleh method mutasi History, bukan lazy saat read.
type Snapshot struct {
	GrossSalary      float64
	HouseRent        float64
	UtilityAllowance float64
	OtherAllowance   float64
}

// applyRecord menimpa keempat field snapshot dari satu record.
func (s *Snapshot) applyRecord(rec ChangeRecord) {
	s.GrossSalary = rec.GrossSalary
	s.HouseRent = rec.HouseRent
	s.UtilityAllowance = rec.UtilityAllowance
	s.OtherAllowance = rec.OtherAllowance
}

// applyField menimpa satu field saja. Field lain dibiarkan: per invarian,
// field tersebut sudah konsisten dengan record terakhir.
func (s *Snapshot) applyField(f Field, value float64) {
	switch f {
	case FieldGrossSalary:
		s.GrossSalary = value
	case FieldHouseRent:
		s.HouseRent = value
	case FieldUtilityAllowance:
		s.UtilityAllowance = value
	case FieldOtherAllowance:
		s.OtherAllowance = value
	}
}
