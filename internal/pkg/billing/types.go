package billing

// ResourceCounts carries the live database counts used to seed the usage
// tracker at startup.
type ResourceCounts struct {
	Users       int64
	Cars        int64
	ServiceBays int64
}
