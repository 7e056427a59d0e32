package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0.00", money(0))
	assert.Equal(t, "$50.00", money(50))
	assert.Equal(t, "$19.99", money(19.99))
	// Half away from zero: one pinned rounding convention.
	assert.Equal(t, "$20.00", money(19.995))
	assert.Equal(t, "$1234567.89", money(1234567.89), "no grouping separators")
	assert.Equal(t, "$-5.50", money(-5.5))
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "10", number(10))
	assert.Equal(t, "8.25", number(8.25))
	assert.Equal(t, "0", number(0))
}
