package entitlements

// Verdict is the feature-gate result consumers branch on. The three
// consumption modes are patterns over this one value: hide (render only when
// Enabled), disable (render but mark non-interactive when Locked, mirrored
// in assistive-technology metadata), and show (branch on the fields freely).
type Verdict struct {
	Enabled      bool   `json:"enabled"`
	Locked       bool   `json:"locked"`
	RequiredTier TierID `json:"required_tier,omitempty"`
	CanUpgrade   bool   `json:"can_upgrade"`
}

// BlockedEvent is emitted whenever a gate evaluation finds a feature locked,
// so callers can log or prompt without polling.
type BlockedEvent struct {
	FeatureKey   string `json:"feature_key"`
	RequiredTier TierID `json:"required_tier,omitempty"`
}

const blockedBuffer = 64

// Gate is the boundary contract presentation layers call to branch on
// entitlements. Evaluation stays pure; the blocked side channel is the only
// effect, and sends never block (events are dropped when no one drains them).
type Gate struct {
	eval    *Evaluator
	blocked chan BlockedEvent
}

// NewGate wraps an evaluator into a feature gate.
func NewGate(eval *Evaluator) *Gate {
	return &Gate{
		eval:    eval,
		blocked: make(chan BlockedEvent, blockedBuffer),
	}
}

// Evaluate resolves the gate verdict for a feature key. Locked evaluations
// additionally emit a BlockedEvent on the side channel.
func (g *Gate) Evaluate(key string) Verdict {
	if g.eval.IsFeatureEnabled(key) {
		return Verdict{Enabled: true}
	}

	required, _ := g.eval.RequiredTier(key)
	v := Verdict{
		Locked:       true,
		RequiredTier: required,
		CanUpgrade:   required != "",
	}
	select {
	case g.blocked <- BlockedEvent{FeatureKey: key, RequiredTier: required}:
	default:
	}
	return v
}

// Blocked returns the side channel of blocked-feature events.
func (g *Gate) Blocked() <-chan BlockedEvent {
	return g.blocked
}
