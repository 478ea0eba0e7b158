package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundDecimal(t *testing.T) {
	assert.Equal(t, 7.3, RoundDecimal(7.25, 1))
	assert.Equal(t, 7.0, RoundDecimal(7.04, 1))
	assert.Equal(t, 3.14, RoundDecimal(3.14159, 2))
	assert.Equal(t, 10.0, RoundDecimal(9.96, 1))
}

func TestNonEmptyStrings(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, NonEmptyStrings([]string{" http://a", "", "  ", "http://b "}))
	assert.Nil(t, NonEmptyStrings([]string{"", " "}))
}
