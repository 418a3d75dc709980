package entitlements

import (
	"fmt"
	"strings"
)

// TierID identifies a subscription tier. The set is closed and ordered:
// solo < starter < professional.
type TierID string

const (
	TierSolo         TierID = "solo"
	TierStarter      TierID = "starter"
	TierProfessional TierID = "professional"
)

// ResourceType identifies a countable resource limited per tier.
type ResourceType string

const (
	ResourceUsers       ResourceType = "users"
	ResourceCars        ResourceType = "cars"
	ResourceServiceBays ResourceType = "service_bays"
)

// ResourceTypes lists all resource types in a stable order.
var ResourceTypes = []ResourceType{ResourceUsers, ResourceCars, ResourceServiceBays}

// Unlimited is the sentinel limit value for resources without a ceiling.
const Unlimited = -1

// ResourceLimits maps resource types to their per-tier ceiling.
// A missing entry means the resource is unlimited on that tier.
type ResourceLimits map[ResourceType]int

// Limit returns the ceiling for a resource type, or Unlimited if none is set.
func (l ResourceLimits) Limit(rt ResourceType) int {
	if v, ok := l[rt]; ok {
		return v
	}
	return Unlimited
}

// FeatureFlag is a named capability that is enabled or disabled per tier.
// RequiresUpgrade optionally names the minimum tier that unlocks a disabled
// feature; empty means no tier currently enables it (or it is already enabled).
type FeatureFlag struct {
	Key             string `json:"key"`
	Enabled         bool   `json:"enabled"`
	RequiresUpgrade TierID `json:"requires_upgrade,omitempty"`
}

// Feature keys known to the catalog.
const (
	FeatureAppointments   = "appointments"
	FeatureEmailReminders = "email_reminders"
	FeatureInvoicing      = "invoicing"
	FeatureSMSReminders   = "sms_reminders"
	FeatureReports        = "reports"
	FeatureMultiBay       = "multi_bay_scheduling"
	FeatureInventory      = "inventory"
	FeatureAPIAccess      = "api_access"
	FeatureCustomerPortal = "customer_portal"
)

// Tier is an immutable subscription plan definition.
type Tier struct {
	ID         TierID         `json:"id"`
	Name       string         `json:"name"`
	PriceCents int64          `json:"price_cents"`
	Currency   string         `json:"currency"`
	Features   []FeatureFlag  `json:"features"`
	Limits     ResourceLimits `json:"limits"`
}

// feature returns the flag for a key and whether it exists on this tier.
func (t Tier) feature(key string) (FeatureFlag, bool) {
	for _, f := range t.Features {
		if f.Key == key {
			return f, true
		}
	}
	return FeatureFlag{}, false
}

// enabledKeys returns the set of enabled feature keys on this tier.
func (t Tier) enabledKeys() map[string]struct{} {
	keys := make(map[string]struct{}, len(t.Features))
	for _, f := range t.Features {
		if f.Enabled {
			keys[f.Key] = struct{}{}
		}
	}
	return keys
}

// Catalog holds the ordered, read-only set of subscription tiers.
// Position in the catalog defines the capability order used by every
// tier comparison; it is fixed at construction.
type Catalog struct {
	tiers []Tier
	index map[TierID]int
}

// NewCatalog validates tier definitions and builds the catalog.
// Construction fails on empty or duplicate tier ids, negative limits, and
// violations of the feature-superset order (a feature enabled at one tier
// must stay enabled at every higher tier). A stale RequiresUpgrade
// annotation pointing at a tier that does not enable the feature is
// rejected for the same reason.
func NewCatalog(tiers []Tier) (*Catalog, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("catalog: no tiers defined")
	}

	index := make(map[TierID]int, len(tiers))
	for i, t := range tiers {
		id := TierID(strings.TrimSpace(string(t.ID)))
		if id == "" {
			return nil, fmt.Errorf("catalog: tier at position %d has empty id", i)
		}
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("catalog: duplicate tier id %q", id)
		}
		index[id] = i

		for rt, limit := range t.Limits {
			if limit < Unlimited {
				return nil, fmt.Errorf("catalog: tier %q has negative limit %d for %q", id, limit, rt)
			}
		}
	}

	c := &Catalog{tiers: tiers, index: index}
	if err := c.checkFeatureOrder(); err != nil {
		return nil, err
	}
	return c, nil
}

// checkFeatureOrder asserts the monotonic feature-superset invariant.
func (c *Catalog) checkFeatureOrder() error {
	for i := 1; i < len(c.tiers); i++ {
		lower := c.tiers[i-1]
		higher := c.tiers[i]
		higherKeys := higher.enabledKeys()
		for key := range lower.enabledKeys() {
			if _, ok := higherKeys[key]; !ok {
				return fmt.Errorf("catalog: feature %q enabled on %q but disabled on higher tier %q", key, lower.ID, higher.ID)
			}
		}
	}

	for _, t := range c.tiers {
		for _, f := range t.Features {
			if f.Enabled || f.RequiresUpgrade == "" {
				continue
			}
			target, ok := c.Tier(f.RequiresUpgrade)
			if !ok {
				return fmt.Errorf("catalog: feature %q on %q requires unknown tier %q", f.Key, t.ID, f.RequiresUpgrade)
			}
			if tf, ok := target.feature(f.Key); !ok || !tf.Enabled {
				return fmt.Errorf("catalog: feature %q on %q requires tier %q which does not enable it", f.Key, t.ID, f.RequiresUpgrade)
			}
		}
	}
	return nil
}

// Tiers returns all tiers in ascending capability order.
func (c *Catalog) Tiers() []Tier {
	out := make([]Tier, len(c.tiers))
	copy(out, c.tiers)
	return out
}

// Tier returns the tier with the given id.
func (c *Catalog) Tier(id TierID) (Tier, bool) {
	i, ok := c.index[id]
	if !ok {
		return Tier{}, false
	}
	return c.tiers[i], true
}

// Index returns the catalog position of a tier, or -1 for unknown ids.
func (c *Catalog) Index(id TierID) int {
	i, ok := c.index[id]
	if !ok {
		return -1
	}
	return i
}

// DefaultCatalog returns the production tier definitions.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog([]Tier{
		// Solo and Starter share one feature set; Starter is a capacity
		// upgrade. Keeping the sets identical is what makes a
		// Starter-to-Solo downgrade a pure limit question.
		{
			ID:         TierSolo,
			Name:       "Solo",
			PriceCents: 1900,
			Currency:   "EUR",
			Features: []FeatureFlag{
				{Key: FeatureAppointments, Enabled: true},
				{Key: FeatureEmailReminders, Enabled: true},
				{Key: FeatureInvoicing, Enabled: true},
				{Key: FeatureSMSReminders, RequiresUpgrade: TierProfessional},
				{Key: FeatureReports, RequiresUpgrade: TierProfessional},
				{Key: FeatureMultiBay, RequiresUpgrade: TierProfessional},
				{Key: FeatureInventory, RequiresUpgrade: TierProfessional},
				{Key: FeatureAPIAccess, RequiresUpgrade: TierProfessional},
				{Key: FeatureCustomerPortal},
			},
			Limits: ResourceLimits{
				ResourceUsers:       1,
				ResourceCars:        50,
				ResourceServiceBays: 2,
			},
		},
		{
			ID:         TierStarter,
			Name:       "Starter",
			PriceCents: 4900,
			Currency:   "EUR",
			Features: []FeatureFlag{
				{Key: FeatureAppointments, Enabled: true},
				{Key: FeatureEmailReminders, Enabled: true},
				{Key: FeatureInvoicing, Enabled: true},
				{Key: FeatureSMSReminders, RequiresUpgrade: TierProfessional},
				{Key: FeatureReports, RequiresUpgrade: TierProfessional},
				{Key: FeatureMultiBay, RequiresUpgrade: TierProfessional},
				{Key: FeatureInventory, RequiresUpgrade: TierProfessional},
				{Key: FeatureAPIAccess, RequiresUpgrade: TierProfessional},
				{Key: FeatureCustomerPortal},
			},
			Limits: ResourceLimits{
				ResourceUsers:       5,
				ResourceCars:        200,
				ResourceServiceBays: 5,
			},
		},
		{
			ID:         TierProfessional,
			Name:       "Professional",
			PriceCents: 9900,
			Currency:   "EUR",
			Features: []FeatureFlag{
				{Key: FeatureAppointments, Enabled: true},
				{Key: FeatureEmailReminders, Enabled: true},
				{Key: FeatureInvoicing, Enabled: true},
				{Key: FeatureSMSReminders, Enabled: true},
				{Key: FeatureReports, Enabled: true},
				{Key: FeatureMultiBay, Enabled: true},
				{Key: FeatureInventory, Enabled: true},
				{Key: FeatureAPIAccess, Enabled: true},
				{Key: FeatureCustomerPortal},
			},
			Limits: ResourceLimits{},
		},
	})
	if err != nil {
		// The built-in catalog is validated by tests; a failure here is a
		// programming error and must abort startup.
		panic(err)
	}
	return c
}
