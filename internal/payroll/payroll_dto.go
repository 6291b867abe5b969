package payroll

// GeneratePayrollRequest sengaja tidak membawa angka: seluruh nilai
// finansial dibaca dari snapshot kompensasi karyawan saat generate.
type GeneratePayrollRequest struct {
	Remarks string `json:"remarks"`
}

// PayrollRecordResponse mengikuti kontrak wire payroll: dept, gross,
// dan net dikirim dengan nama pendek, dept selalu ada walau kosong.
type PayrollRecordResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employeeId"`
	Department  string  `json:"dept"`
	BasicSalary float64 `json:"basicSalary"`
	Allowances  float64 `json:"allowances"`
	GrossSalary float64 `json:"gross"`
	Tax         float64 `json:"tax"`
	Deductions  float64 `json:"deductions"`
	NetPayable  float64 `json:"net"`
	Status      string  `json:"status"`
	Month       string  `json:"month"`
	PaymentDate string  `json:"paymentDate"`
}
