package metrics

// NoopMetrics is a no-operation implementation of Recorder
// All methods are empty and do nothing, providing zero overhead when metrics are disabled
type NoopMetrics struct{}

// Ensure NoopMetrics implements Recorder interface at compile time
var _ Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordSignup(success bool)                                             {}
func (n *NoopMetrics) RecordLogin(authSource string, success bool)                           {}
func (n *NoopMetrics) RecordLogout()                                                         {}
func (n *NoopMetrics) RecordOAuthCallback(provider string, success bool)                     {}
func (n *NoopMetrics) RecordHTTPRequest(method, path, status string, durationSeconds float64) {}
func (n *NoopMetrics) HTTPInFlightInc()                                                      {}
func (n *NoopMetrics) HTTPInFlightDec()                                                      {}
