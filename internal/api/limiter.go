package api

import "sync"

const (
	defaultMaxPerIP = 4
	defaultMaxTotal = 64 // across all clients
)

// limiter tracks in-flight computations per client IP and globally.
type limiter struct {
	mu       sync.Mutex
	inFlight map[string]int
	total    int
	maxPerIP int
	maxTotal int
}

func newLimiter(maxPerIP int) *limiter {
	if maxPerIP < 1 {
		maxPerIP = defaultMaxPerIP
	}
	return &limiter{
		inFlight: make(map[string]int),
		maxPerIP: maxPerIP,
		maxTotal: defaultMaxTotal,
	}
}

// acquire registers a computation for ip.
// Returns false if the IP or global limit has been reached.
func (l *limiter) acquire(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.total >= l.maxTotal || l.inFlight[ip] >= l.maxPerIP {
		return false
	}
	l.inFlight[ip]++
	l.total++
	return true
}

func (l *limiter) release(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.inFlight[ip]--
	l.total--
	if l.inFlight[ip] <= 0 {
		delete(l.inFlight, ip)
	}
}

func (l *limiter) count(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight[ip]
}
