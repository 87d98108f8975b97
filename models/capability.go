package models

// CapabilityState is the startup outcome of an external processing capability.
type CapabilityState int

const (
	// CapabilityUnavailable means initialization failed; the capability must
	// not be invoked.
	CapabilityUnavailable CapabilityState = iota

	// CapabilityAvailable means the capability initialized and can serve calls.
	CapabilityAvailable
)

// String implements fmt.Stringer using the wording of the health endpoint.
func (s CapabilityState) String() string {
	if s == CapabilityAvailable {
		return "loaded"
	}
	return "failed"
}
