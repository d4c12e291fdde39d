package entity

// PaymentMethodType classifies how a subscription is billed.
type PaymentMethodType string

const (
	PaymentCreditCard  PaymentMethodType = "credit_card"
	PaymentDebitCard   PaymentMethodType = "debit_card"
	PaymentBankAccount PaymentMethodType = "bank_account"
	PaymentPayPal      PaymentMethodType = "paypal"
	PaymentOther       PaymentMethodType = "other"
)

// ParsePaymentMethodType maps a raw string onto a PaymentMethodType,
// falling back to PaymentOther.
func ParsePaymentMethodType(s string) PaymentMethodType {
	switch PaymentMethodType(s) {
	case PaymentCreditCard, PaymentDebitCard, PaymentBankAccount, PaymentPayPal, PaymentOther:
		return PaymentMethodType(s)
	}
	return PaymentOther
}

// PaymentMethod is a card or account subscriptions can reference. Deleting
// one clears the reference on every subscription that used it; the
// subscriptions themselves are untouched.
type PaymentMethod struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Type     PaymentMethodType `json:"type"`
	LastFour string            `json:"lastFour,omitempty"`
	Color    string            `json:"color,omitempty"`
}
