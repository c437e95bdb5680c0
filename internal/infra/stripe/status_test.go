package stripe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePaymentStatus(t *testing.T) {
	cases := map[string]string{
		"paid":                "paid",
		"no_payment_required": "paid",
		"unpaid":              "unpaid",
		"":                    "unpaid",
		" paid ":              "paid",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePaymentStatus(in), "input %q", in)
	}
}

func TestNormalizeSessionStatus(t *testing.T) {
	assert.Equal(t, "open", NormalizeSessionStatus(""))
	assert.Equal(t, "complete", NormalizeSessionStatus("complete"))
	assert.Equal(t, "expired", NormalizeSessionStatus(" expired"))
}
