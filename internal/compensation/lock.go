package compensation

// LockState menentukan apakah field snapshot boleh ditulis langsung oleh
// caller atau hanya lewat ledger. Hanya ada dua state dan satu transisi
// legal: BOOTSTRAP -> LOCKED lewat CommitFirstSave, dipicu oleh
// persistensi pertama record karyawan. Tidak ada jalan kembali dalam satu
// sesi edit; state kembali BOOTSTRAP hanya ketika record karyawan baru
// dimulai dari nol.
type LockState string

const (
	LockBootstrap LockState = "BOOTSTRAP"
	LockLocked    LockState = "LOCKED"
)

// Editable melaporkan apakah snapshot masih boleh ditulis langsung tanpa
// membuat entry ledger.
func (s LockState) Editable() bool {
	return s == LockBootstrap
}

// CommitFirstSave melakukan transisi BOOTSTRAP -> LOCKED. Pemanggilan
// kedua kalinya ditolak; transisi ilegal tidak bisa direpresentasikan.
func (s LockState) CommitFirstSave() (LockState, error) {
	if s != LockBootstrap {
		return s, ErrAlreadyLocked
	}
	return LockLocked, nil
}
