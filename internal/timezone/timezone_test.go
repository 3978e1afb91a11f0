package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("UTC"))
	assert.True(t, IsValid("America/Sao_Paulo"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus_Mons"))
}

func TestLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Location(""))
	assert.Equal(t, time.UTC, Location("not-a-zone"))

	loc := Location("America/Sao_Paulo")
	assert.Equal(t, "America/Sao_Paulo", loc.String())
}
