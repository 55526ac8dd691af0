package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()

	service := NewSheetService()
	require.NoError(t, registry.RegisterService(service))

	got, err := registry.GetService("sheet")
	require.NoError(t, err)
	assert.Same(t, any(service), any(got))
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.RegisterService(NewSheetService()))
	err := registry.RegisterService(NewSheetService())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_GetMissingService(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.GetService("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRegistry_InitializeAll(t *testing.T) {
	registry := NewRegistry()
	sheet := NewSheetService()
	require.NoError(t, registry.RegisterService(sheet))
	require.NoError(t, registry.RegisterService(NewAutoCompleteService()))

	require.NoError(t, registry.InitializeAll())
	assert.True(t, sheet.initialized)
}
