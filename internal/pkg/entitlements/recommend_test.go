package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRecommendPolicy(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		name    string
		current TierID
		users   int
		want    TierID
	}{
		{"starter above threshold", TierStarter, 6, TierProfessional},
		{"starter at threshold", TierStarter, 5, ""},
		{"starter below threshold", TierStarter, 2, ""},
		{"solo never recommended", TierSolo, 10, ""},
		{"professional never recommended", TierProfessional, 50, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usage := UsageSnapshot{ResourceUsers: tt.users}
			assert.Equal(t, tt.want, DefaultRecommendPolicy(catalog, tt.current, usage))
		})
	}
}
