package services

import (
	"testing"

	"casefile/models"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveMaxStorage(t *testing.T) {
	const fallback = int64(10 << 30)

	// no profile yet
	assert.Equal(t, fallback, effectiveMaxStorage(nil, fallback))

	// profile without an override
	assert.Equal(t, fallback, effectiveMaxStorage(&models.User{}, fallback))

	// negative values never become a quota
	assert.Equal(t, fallback, effectiveMaxStorage(&models.User{MaxStorage: -1}, fallback))

	// a positive override wins
	assert.Equal(t, int64(50<<30), effectiveMaxStorage(&models.User{MaxStorage: 50 << 30}, fallback))
}
