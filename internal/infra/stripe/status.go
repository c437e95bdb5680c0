package stripe

import "strings"

// NormalizePaymentStatus folds Stripe checkout payment states onto paid|unpaid.
// Free sessions count as paid.
func NormalizePaymentStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "paid", "no_payment_required":
		return "paid"
	case "":
		return "unpaid"
	default:
		return strings.TrimSpace(s)
	}
}

// NormalizeSessionStatus maps an empty session status to "open".
func NormalizeSessionStatus(s string) string {
	if strings.TrimSpace(s) == "" {
		return "open"
	}
	return strings.TrimSpace(s)
}
