package compensation

import "encoding/json"

// Amount adalah nilai kompensasi pada boundary input. Input non-numerik
// (string, null, object) dinormalisasi diam-diam menjadi 0, bukan
// ditolak: perilaku yang sama dengan editor console lama.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*a = Amount(f)
		return nil
	}

	// Coba angka yang dikirim sebagai string ("50000") sebelum fallback.
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		var sf float64
		if err := json.Unmarshal([]byte(s), &sf); err == nil {
			*a = Amount(sf)
			return nil
		}
	}

	*a = 0
	return nil
}

func (a Amount) Float64() float64 {
	return float64(a)
}
