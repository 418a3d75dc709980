package billing

import (
	"strings"

	"github.com/garagehub/GarageHub/internal/pkg/entitlements"
)

// normalizeTier maps a persisted tier string to a known tier id. Unknown
// values fall back to the lowest tier so a corrupted row can never grant
// entitlements it should not.
func normalizeTier(tier string) entitlements.TierID {
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case string(entitlements.TierStarter):
		return entitlements.TierStarter
	case string(entitlements.TierProfessional):
		return entitlements.TierProfessional
	default:
		return entitlements.TierSolo
	}
}

func tierRank(tier string) int {
	switch normalizeTier(tier) {
	case entitlements.TierProfessional:
		return 2
	case entitlements.TierStarter:
		return 1
	default:
		return 0
	}
}
