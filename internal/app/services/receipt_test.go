package services

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReceiptGeneratorFormat(t *testing.T) {
	gen := NewReceiptGenerator(fixedNow)

	pattern := regexp.MustCompile(`^RCPT-\d+-\d{3}$`)
	for i := 0; i < 50; i++ {
		receipt := gen()
		assert.Regexp(t, pattern, receipt)
		assert.True(t, strings.HasPrefix(receipt, "RCPT-1736935200000-"))
	}
}
