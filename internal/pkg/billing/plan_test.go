package billing

import (
	"testing"

	"github.com/garagehub/GarageHub/internal/pkg/entitlements"
)

func TestNormalizeTier(t *testing.T) {
	tests := []struct {
		in   string
		want entitlements.TierID
	}{
		{in: "solo", want: entitlements.TierSolo},
		{in: "starter", want: entitlements.TierStarter},
		{in: "professional", want: entitlements.TierProfessional},
		{in: "PROFESSIONAL", want: entitlements.TierProfessional},
		{in: "  starter  ", want: entitlements.TierStarter},
		{in: "enterprise", want: entitlements.TierSolo},
		{in: "", want: entitlements.TierSolo},
	}

	for _, tt := range tests {
		if got := normalizeTier(tt.in); got != tt.want {
			t.Fatalf("normalizeTier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTierRank(t *testing.T) {
	if tierRank("solo") >= tierRank("starter") {
		t.Fatalf("expected starter to outrank solo")
	}
	if tierRank("starter") >= tierRank("professional") {
		t.Fatalf("expected professional to outrank starter")
	}
}
