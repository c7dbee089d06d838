package enum

// PaymentMethod is how a sale was settled.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentGCash PaymentMethod = "gcash"
	PaymentMaya  PaymentMethod = "maya"
)

// RequiresTender reports whether the method involves counted cash. Digital
// methods carry no tendered amount or change.
func (m PaymentMethod) RequiresTender() bool {
	return m == PaymentCash
}

// IsValid reports whether the value is one of the supported methods.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentGCash, PaymentMaya:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}
