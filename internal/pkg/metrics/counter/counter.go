package counter

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/garagehub/GarageHub/internal/pkg/cache"
)

const (
	featureBlockedKey = "entitlements:counters:blocked"
	tierChangesKey    = "entitlements:counters:tier_changes"
)

// AddFeatureBlocked increments the counter for a feature that was requested
// but is not part of the current plan
func AddFeatureBlocked(featureKey string) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, featureBlockedKey, featureKey, 1).Err()
}

// AddTierChange increments the counter for a completed plan transition
func AddTierChange(from, to string) error {
	ctx := context.Background()
	field := fmt.Sprintf("%s:%s", from, to)
	return cache.GetClient().HIncrBy(ctx, tierChangesKey, field, 1).Err()
}

// FeatureBlockedCounts returns how often each locked feature was requested
func FeatureBlockedCounts() (map[string]int64, error) {
	return readHash(featureBlockedKey)
}

// TierChangeCounts returns how often each plan transition happened, keyed "from:to"
func TierChangeCounts() (map[string]int64, error) {
	return readHash(tierChangesKey)
}

func readHash(key string) (map[string]int64, error) {
	ctx := context.Background()
	data, err := cache.GetClient().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(data))
	for field, value := range data {
		count, perr := strconv.ParseInt(value, 10, 64)
		if perr != nil {
			continue
		}
		result[field] = count
	}
	return result, nil
}

// Reset atomically drains both counter hashes. Uses RENAME to a temporary key
// so in-flight increments are not lost.
func Reset() error {
	for _, key := range []string{featureBlockedKey, tierChangesKey} {
		if err := drainHash(key); err != nil {
			return err
		}
	}
	return nil
}

func drainHash(key string) error {
	ctx := context.Background()
	rdb := cache.GetClient()

	tmpKey := fmt.Sprintf("%s:tmp:%d", key, time.Now().UnixNano())
	if err := rdb.Do(ctx, "RENAME", key, tmpKey).Err(); err != nil {
		// If key does not exist, nothing to drain
		if strings.Contains(strings.ToLower(err.Error()), "no such key") {
			return nil
		}
		if err.Error() == "redis: nil" {
			return nil
		}
		return err
	}

	return rdb.Del(ctx, tmpKey).Err()
}
