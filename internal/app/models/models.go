package models

// Role defines the administrator role type
type Role string

const (
	RoleSuper Role = "super"
	RoleSub   Role = "sub"
)

// PaymentMethod is how a payment was made
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "Cash"
	MethodBankTransfer PaymentMethod = "Bank Transfer"
	MethodOnline       PaymentMethod = "Online"
	MethodCheck        PaymentMethod = "Check"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodOnline, MethodCheck:
		return true
	}
	return false
}

// FeeStatus is the settlement state of a fee payment
type FeeStatus string

const (
	FeePaid    FeeStatus = "Paid"
	FeePartial FeeStatus = "Partial"
	FeeDebt    FeeStatus = "Debt"
)

// ValidFeeStatus reports whether s is an accepted fee status.
func ValidFeeStatus(s FeeStatus) bool {
	switch s {
	case FeePaid, FeePartial, FeeDebt:
		return true
	}
	return false
}

// SalaryStatus is the settlement state of a salary payment
type SalaryStatus string

const (
	SalaryPaid    SalaryStatus = "Paid"
	SalaryPending SalaryStatus = "Pending"
	SalaryPartial SalaryStatus = "Partial"
)

// ValidSalaryStatus reports whether s is an accepted salary status.
func ValidSalaryStatus(s SalaryStatus) bool {
	switch s {
	case SalaryPaid, SalaryPending, SalaryPartial:
		return true
	}
	return false
}
