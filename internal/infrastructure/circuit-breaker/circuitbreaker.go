package circuitbreaker

import "github.com/sony/gobreaker/v2"

// CreateCircuitBreaker builds a breaker that trips once 60% of at least
// three requests have failed. The payment gateway client runs its
// outbound calls through one of these.
func CreateCircuitBreaker[T any](name string) *gobreaker.CircuitBreaker[T] {
	var st gobreaker.Settings
	st.Name = name
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}

	cb := gobreaker.NewCircuitBreaker[T](st)

	return cb
}
