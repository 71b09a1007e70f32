package probe

// Status is the outcome of a single probe cycle. Timeouts are ordinary
// outcomes that have already triggered recovery by the time the probe
// returns; everything else is reported as an error.
type Status int

const (
	StatusUnknown Status = iota
	StatusHealthy
	StatusConnectTimeout
	StatusWriteTimeout
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusConnectTimeout:
		return "connect timeout"
	case StatusWriteTimeout:
		return "write timeout"
	default:
		return "unknown"
	}
}

// Recoverer restarts the monitored daemon when a probe times out.
type Recoverer interface {
	Recover() error
}
