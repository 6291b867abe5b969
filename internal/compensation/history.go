package compensation

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// History adalah ledger perubahan kompensasi untuk satu karyawan.
// Urutan adalah urutan insert (belum tentu kronologis berdasarkan
// effectiveDate) dan tidak pernah di-reorder atau di-dedup. Disimpan
// sebagai kolom JSONB pada baris employee, sehingga seluruh ledger ikut
// terkirim setiap kali record karyawan dipersist.
//
// Semua mutasi menerima *Snapshot dan menyinkronkannya di dalam method.
// Dengan begitu tidak ada call site yang bisa lupa sync.
type History []ChangeRecord

// Append menambahkan record ke akhir ledger dan menimpa keempat field
// snapshot dari record tersebut.
func (h *History) Append(rec ChangeRecord, snap *Snapshot) {
	*h = append(*h, rec)
	snap.applyRecord(rec)
}

// EditField mengganti satu field dari record pada index secara in-place
// (bukan insert/remove struktural). Snapshot hanya dipropagasi ketika
// index adalah elemen terakhir; edit pada index historis adalah koreksi
// masa lalu dan tidak mengubah kompensasi saat ini.
func (h History) EditField(index int, field Field, value float64, snap *Snapshot) error {
	if index < 0 || index >= len(h) {
		return ErrIndexOutOfRange
	}

	switch field {
	case FieldGrossSalary:
		h[index].GrossSalary = value
	case FieldHouseRent:
		h[index].HouseRent = value
	case FieldUtilityAllowance:
		h[index].UtilityAllowance = value
	case FieldOtherAllowance:
		h[index].OtherAllowance = value
	default:
		return ErrUnknownField
	}

	if index == len(h)-1 {
		snap.applyField(field, value)
	}

	return nil
}

// RemoveAt menghapus record pada index dan menggeser sisanya ke kiri.
// Jika yang dihapus adalah elemen terakhir dan ledger masih berisi,
// snapshot di-resync penuh ke record terakhir yang baru. Jika ledger
// menjadi kosong, snapshot mempertahankan nilai terakhirnya (tidak
// di-reset ke nol).
func (h *History) RemoveAt(index int, snap *Snapshot) error {
	old := *h
	if index < 0 || index >= len(old) {
		return ErrIndexOutOfRange
	}

	wasLast := index == len(old)-1
	*h = append(old[:index], old[index+1:]...)

	if wasLast && len(*h) > 0 {
		snap.applyRecord((*h)[len(*h)-1])
	}

	return nil
}

// Last mengembalikan record terakhir ledger, false jika kosong.
func (h History) Last() (ChangeRecord, bool) {
	if len(h) == 0 {
		return ChangeRecord{}, false
	}
	return h[len(h)-1], true
}

// Value mengimplementasikan driver.Valuer agar gorm menyimpan History
// sebagai JSONB.
func (h History) Value() (driver.Value, error) {
	if h == nil {
		h = History{}
	}
	return json.Marshal(h)
}

// Scan mengimplementasikan sql.Scanner.
func (h *History) Scan(value interface{}) error {
	if value == nil {
		*h = History{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for compensation history: %T", value)
	}

	return json.Unmarshal(raw, h)
}
