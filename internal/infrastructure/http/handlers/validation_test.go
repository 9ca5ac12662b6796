package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeEmail(t *testing.T) {
	assert.Equal(t, "shop@example.com", SanitizeEmail("  Shop@Example.COM "))
	assert.Equal(t, "", SanitizeEmail(strings.Repeat("a", MaxEmailLength)+"@x.io"))
}

func TestSanitizePassword(t *testing.T) {
	assert.Equal(t, "hunter22", SanitizePassword(" hunter22 "))
	assert.Equal(t, "", SanitizePassword(strings.Repeat("p", MaxPasswordLength+1)))
}

func TestSanitizeTitle(t *testing.T) {
	assert.Equal(t, "A Brief History of Time", SanitizeTitle("  A Brief History of Time "))
	assert.Equal(t, "", SanitizeTitle(strings.Repeat("t", MaxTitleLength+1)))
}
