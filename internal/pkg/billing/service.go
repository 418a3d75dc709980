package billing

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/garagehub/GarageHub/app/models"
	"github.com/garagehub/GarageHub/app/repository"
	"github.com/garagehub/GarageHub/internal/pkg/entitlements"
	"github.com/garagehub/GarageHub/internal/pkg/metrics/counter"
)

// Service owns the in-process entitlement engine and its durable backing
// record. It is the single place where tier changes are validated, applied
// and written back.
type Service struct {
	store     SubscriptionStore
	account   *entitlements.Account
	evaluator *entitlements.Evaluator
	validator *entitlements.Validator
	gate      *entitlements.Gate
}

// NewService builds the engine state from the persisted subscription record
// and the given live resource counts.
func NewService(store SubscriptionStore, counts ResourceCounts) (*Service, error) {
	sub, err := store.Load(string(entitlements.TierSolo))
	if err != nil {
		return nil, fmt.Errorf("billing: load subscription: %w", err)
	}

	// Roll a lapsed renewal period forward so day counts stay meaningful.
	if sub.IsActive && sub.RenewalDate.Before(time.Now()) {
		next := sub.RenewalDate
		for next.Before(time.Now()) {
			next = next.AddDate(0, 1, 0)
		}
		if err := store.SaveRenewal(next, sub.IsActive); err != nil {
			return nil, fmt.Errorf("billing: roll renewal forward: %w", err)
		}
		sub.RenewalDate = next
	}

	catalog := entitlements.DefaultCatalog()
	usage := entitlements.NewUsageTracker()
	usage.Seed(entitlements.ResourceUsers, int(counts.Users))
	usage.Seed(entitlements.ResourceCars, int(counts.Cars))
	usage.Seed(entitlements.ResourceServiceBays, int(counts.ServiceBays))

	account, err := entitlements.NewAccount(catalog, usage, normalizeTier(sub.CurrentTier), sub.RenewalDate)
	if err != nil {
		return nil, err
	}
	account.SetRenewal(sub.RenewalDate, sub.IsActive)

	evaluator := entitlements.NewEvaluator(catalog, usage, account)

	return &Service{
		store:     store,
		account:   account,
		evaluator: evaluator,
		validator: entitlements.NewValidator(catalog, usage, account),
		gate:      entitlements.NewGate(evaluator),
	}, nil
}

// Setup initializes the global billing service. The usage tracker is seeded
// from the current database counts so limits reflect reality after restarts.
func Setup(db *gorm.DB) (*Service, error) {
	repos := repository.GetGlobalRepositories()

	users, err := repos.User.CountActive()
	if err != nil {
		return nil, fmt.Errorf("billing: count users: %w", err)
	}
	cars, err := repos.Vehicle.Count()
	if err != nil {
		return nil, fmt.Errorf("billing: count vehicles: %w", err)
	}
	bays, err := repos.ServiceBay.CountActive()
	if err != nil {
		return nil, fmt.Errorf("billing: count service bays: %w", err)
	}

	svc, err := NewService(NewSubscriptionStore(db), ResourceCounts{
		Users:       users,
		Cars:        cars,
		ServiceBays: bays,
	})
	if err != nil {
		return nil, err
	}

	globalService = svc
	return svc, nil
}

// Global service instance
var globalService *Service

// SetService replaces the global billing service instance. Intended for tests.
func SetService(s *Service) {
	globalService = s
}

// GetService returns the global billing service instance
func GetService() *Service {
	if globalService == nil {
		panic("Billing service not initialized. Call Setup first.")
	}
	return globalService
}

// Account returns the in-process subscription account.
func (s *Service) Account() *entitlements.Account { return s.account }

// Evaluator returns the entitlement evaluator bound to the account.
func (s *Service) Evaluator() *entitlements.Evaluator { return s.evaluator }

// Gate returns the feature gate bound to the account.
func (s *Service) Gate() *entitlements.Gate { return s.gate }

// Usage returns the live usage tracker.
func (s *Service) Usage() *entitlements.UsageTracker { return s.account.Usage() }

// Status returns the current subscription status.
func (s *Service) Status() entitlements.SubscriptionStatus {
	return s.account.Status()
}

// Compare returns the tier comparison with the default recommendation.
func (s *Service) Compare() entitlements.TierComparison {
	return s.account.Compare(entitlements.DefaultRecommendPolicy)
}

// CheckFeature evaluates a feature key through the gate, recording a blocked
// event when access is denied.
func (s *Service) CheckFeature(key string) entitlements.Verdict {
	return s.gate.Evaluate(key)
}

// ValidateChange reports whether a change to the target tier would be
// allowed right now, without applying it.
func (s *Service) ValidateChange(target string) entitlements.TransitionVerdict {
	return s.validator.CanChangeTo(entitlements.TierID(strings.ToLower(strings.TrimSpace(target))))
}

// ChangeTier validates and applies a tier change, then persists the new
// tier. The in-memory state is authoritative during the request; a persist
// failure is returned so the caller can surface it.
func (s *Service) ChangeTier(target string) (entitlements.TransitionVerdict, error) {
	from := s.account.CurrentTier()
	verdict := s.account.ChangeTier(entitlements.TierID(strings.ToLower(strings.TrimSpace(target))))
	if !verdict.Allowed {
		return verdict, nil
	}

	to := s.account.CurrentTier()
	if err := counter.AddTierChange(string(from), string(to)); err != nil {
		log.Printf("[Billing] tier change counter failed: %v", err)
	}
	if err := s.store.SaveTier(string(to)); err != nil {
		return verdict, fmt.Errorf("billing: persist tier change: %w", err)
	}
	return verdict, nil
}

// StartBlockedRecorder drains blocked feature events in the background,
// bumping the Redis counters and notifying owner accounts. Runs for the
// life of the process, so it is started once at boot.
func (s *Service) StartBlockedRecorder(db *gorm.DB) {
	go func() {
		for ev := range s.gate.Blocked() {
			if err := counter.AddFeatureBlocked(ev.FeatureKey); err != nil {
				log.Printf("[Billing] blocked counter failed: %v", err)
			}

			var owners []models.User
			if err := db.Where("role = ?", models.ROLE_OWNER).Find(&owners).Error; err != nil {
				log.Printf("[Billing] load owners for notification failed: %v", err)
				continue
			}
			content := fmt.Sprintf("Feature %s is not available on your plan. Upgrade to %s to unlock it.", ev.FeatureKey, ev.RequiredTier)
			for _, owner := range owners {
				if err := models.CreateNotification(db, owner.ID, models.NotificationTypeFeatureBlocked, content, ev.FeatureKey); err != nil {
					log.Printf("[Billing] create notification failed: %v", err)
				}
			}
		}
	}()
}
