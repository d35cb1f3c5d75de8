package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viajaia/internal/models/request_models"
)

func samplePrefs(destination string) request_models.TravelPreferencesRequest {
	return request_models.TravelPreferencesRequest{
		Destination: destination,
		Duration:    3,
		BudgetLevel: request_models.BudgetEconomic,
		Travelers:   request_models.TravelersSolo,
	}
}

func TestPendingPreferencesConsumeIsSingleUse(t *testing.T) {
	store := NewPendingPreferences()
	store.Set("t1", samplePrefs("Curitiba"), time.Minute)

	prefs, ok := store.Consume("t1")
	require.True(t, ok)
	assert.Equal(t, "Curitiba", prefs.Destination)

	_, ok = store.Consume("t1")
	assert.False(t, ok)
}

func TestPendingPreferencesExpiry(t *testing.T) {
	store := NewPendingPreferences()
	store.Set("t1", samplePrefs("Natal"), -time.Second)

	_, ok := store.Consume("t1")
	assert.False(t, ok)
}

func TestPendingPreferencesSetOverwrites(t *testing.T) {
	store := NewPendingPreferences()
	store.Set("t1", samplePrefs("Natal"), time.Minute)
	store.Set("t1", samplePrefs("Fortaleza"), time.Minute)

	prefs, ok := store.Consume("t1")
	require.True(t, ok)
	assert.Equal(t, "Fortaleza", prefs.Destination)
}

func TestPendingPreferencesPeekDoesNotConsume(t *testing.T) {
	store := NewPendingPreferences()
	store.Set("t1", samplePrefs("Belém"), time.Minute)

	prefs, ok := store.Peek("t1")
	require.True(t, ok)
	assert.Equal(t, "Belém", prefs.Destination)

	_, ok = store.Consume("t1")
	assert.True(t, ok)
}

func TestResetTokensConsume(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok", "ana@example.com", time.Minute)

	assert.Equal(t, "ana@example.com", store.Consume("tok"))
	assert.Equal(t, "", store.Consume("tok"))
	assert.Equal(t, "", store.Consume("missing"))
}

func TestResetTokensExpiry(t *testing.T) {
	store := NewResetTokens()
	store.Set("tok", "ana@example.com", -time.Second)

	assert.Equal(t, "", store.Consume("tok"))
}
