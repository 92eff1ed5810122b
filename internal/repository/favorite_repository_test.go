package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFavoritesKeyIsScopedPerDevice(t *testing.T) {
	assert.Equal(t, "favorites:device-1", favoritesKey("device-1"))
	assert.NotEqual(t, favoritesKey("device-1"), favoritesKey("device-2"))
}
