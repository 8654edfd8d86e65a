package session

// RetryPolicy bounds transient submission retries. A failed submission
// never consumes a round; the controller waits the round delay and asks
// the policy whether to try again.
type RetryPolicy struct {
	// MaxAttempts caps consecutive failures; 0 or less retries forever.
	MaxAttempts int
}

// Exhausted reports whether the given consecutive failure count has used
// up the policy.
func (p RetryPolicy) Exhausted(failures int) bool {
	return p.MaxAttempts > 0 && failures >= p.MaxAttempts
}
