package money_test

import (
	"testing"

	"storefront/pkg/money"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "$59.99", money.Format(59.99, "CAD"))
	assert.Equal(t, "$0.00", money.Format(0, "CAD"))
	assert.Equal(t, "$119.98", money.Format(119.98, "CAD"))
}

func TestFormatThousandsSeparator(t *testing.T) {
	assert.Equal(t, "$1,234.50", money.Format(1234.5, "CAD"))
}

func TestFormatIsDeterministic(t *testing.T) {
	first := money.Format(42.42, "USD")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, money.Format(42.42, "USD"))
	}
}
