package compensation

import "errors"

var (
	ErrIndexOutOfRange = errors.New("change record index out of range")
	ErrUnknownField    = errors.New("unknown compensation field")
	ErrAlreadyLocked   = errors.New("compensation already locked")
)

// Field adalah satu dari empat field numerik yang ikut disinkronkan ke
// snapshot. changeType dan remarks tidak pernah menyentuh snapshot.
type Field string

const (
	FieldGrossSalary      Field = "gross_salary"
	FieldHouseRent        Field = "house_rent"
	FieldUtilityAllowance Field = "utility_allowance"
	FieldOtherAllowance   Field = "other_allowance"
)

func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldGrossSalary, FieldHouseRent, FieldUtilityAllowance, FieldOtherAllowance:
		return Field(s), nil
	}
	return "", ErrUnknownField
}
