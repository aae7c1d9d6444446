package policies

// Telemetry counts business outcomes. The obs package backs it with Prometheus.
type Telemetry interface {
	QuoteComputed(rooms int)
	DiscountEvaluated(accepted bool, reason string)
	ReservationTransitioned(state string)
}

// NopTelemetry discards everything.
type NopTelemetry struct{}

func (NopTelemetry) QuoteComputed(int)              {}
func (NopTelemetry) DiscountEvaluated(bool, string) {}
func (NopTelemetry) ReservationTransitioned(string) {}

// Or returns t, or NopTelemetry when t is nil.
func Or(t Telemetry) Telemetry {
	if t == nil {
		return NopTelemetry{}
	}
	return t
}
