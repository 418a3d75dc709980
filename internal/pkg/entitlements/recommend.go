package entitlements

// RecommendPolicy picks an advisory upgrade target for the tier comparison,
// or "" for no recommendation. It never constrains transitions.
type RecommendPolicy func(catalog *Catalog, current TierID, usage UsageSnapshot) TierID

// starterUsersRecommendAt is the staff-user count above which a starter
// account gets a professional recommendation.
// TODO: confirm this threshold with product; it was carried over from the
// pricing page without a recorded rationale.
const starterUsersRecommendAt = 5

// DefaultRecommendPolicy recommends professional for starter accounts whose
// staff-user usage has outgrown the starter ceiling.
func DefaultRecommendPolicy(catalog *Catalog, current TierID, usage UsageSnapshot) TierID {
	if current == TierStarter && usage.Count(ResourceUsers) > starterUsersRecommendAt {
		if catalog.Index(TierProfessional) > catalog.Index(current) {
			return TierProfessional
		}
	}
	return ""
}
