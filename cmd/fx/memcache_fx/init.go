package memcache_fx

import (
	"go.uber.org/fx"

	mem "viajaia/pkg/memcache"
)

var Module = fx.Provide(
	provideResetTokens,
	providePendingPreferences,
)

func provideResetTokens() mem.ResetTokenStore {
	return mem.NewResetTokens()
}

func providePendingPreferences() mem.PendingPreferenceStore {
	return mem.NewPendingPreferences()
}
