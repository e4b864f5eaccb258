package masker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigits(t *testing.T) {
	assert.Equal(t, "XXXXXXXXXX", Digits("4141234567"))
	assert.Equal(t, "V-XXXXXXXX", Digits("V-12345678"))
	assert.Equal(t, "sin digitos", Digits("sin digitos"))
	assert.Equal(t, "", Digits(""))
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "j*****@clinica.com", Email("jperez@clinica.com"))
	assert.Equal(t, "a@x.com", Email("a@x.com"))
	// Not an email: fall back to digit masking.
	assert.Equal(t, "XXXX", Email("1234"))
}

func TestDocument(t *testing.T) {
	assert.Equal(t, "V-XXXXXXXX", Document("V-12345678"))
	assert.Equal(t, "E-XXXXXX", Document("E-123456"))
}
