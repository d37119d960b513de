package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIDShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.Len(t, id, 24)
		assert.True(t, IsHexID(id))
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestIsHexID(t *testing.T) {
	assert.True(t, IsHexID("507f1f77bcf86cd799439011"))
	assert.True(t, IsHexID("507F1F77BCF86CD799439011"))
	assert.False(t, IsHexID(""))
	assert.False(t, IsHexID("507f1f77bcf86cd79943901"))
	assert.False(t, IsHexID("507f1f77bcf86cd7994390111"))
	assert.False(t, IsHexID("507f1f77bcf86cd79943901z"))
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "507f1f77bcf86cd799439011", NormalizeCode("  507f1f77bcf86cd799439011  "))
	assert.Equal(t, "", NormalizeCode(" \t\n "))
}
