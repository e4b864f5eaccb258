package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"04141234567", "584141234567", true},
		{"4141234567", "584141234567", true},
		{"584141234567", "584141234567", true},
		{"+58 414-123-4567", "584141234567", true},
		{"(0414) 123.45.67", "584141234567", true},
		{"02121234567", "582121234567", true},
		{"414123", "", false},
		{"not a phone", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := Normalize(tt.in)
		assert.Equal(t, tt.ok, ok, "Normalize(%q) ok", tt.in)
		assert.Equal(t, tt.want, got, "Normalize(%q)", tt.in)
	}
}

func TestIsMobile(t *testing.T) {
	assert.True(t, IsMobile("584141234567"))
	assert.True(t, IsMobile("584261234567"))
	assert.False(t, IsMobile("584151234567"), "415 is not an assigned prefix")
	assert.False(t, IsMobile("582121234567"))
	assert.False(t, IsMobile("4141234567"), "must be normalized first")
}

func TestIsLandline(t *testing.T) {
	assert.True(t, IsLandline("582121234567"))
	assert.True(t, IsLandline("582511234567"))
	assert.False(t, IsLandline("584141234567"))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("04141234567"))
	assert.True(t, IsValid("0212 123 45 67"))
	assert.False(t, IsValid("04151234567"))
	assert.False(t, IsValid("123"))
}
