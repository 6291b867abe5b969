package payroll

// TaxPolicy menghitung potongan pajak dari gaji pokok. Dipisah sebagai
// interface supaya tarif bisa diganti per negara/perusahaan tanpa
// menyentuh alur generate.
type TaxPolicy interface {
	Compute(basicSalary float64) float64
}

type FlatRatePolicy struct {
	Rate float64
}

func (p FlatRatePolicy) Compute(basicSalary float64) float64 {
	return basicSalary * p.Rate
}

// DefaultTaxPolicy: flat 5% dari gaji pokok.
func DefaultTaxPolicy() TaxPolicy {
	return FlatRatePolicy{Rate: 0.05}
}
