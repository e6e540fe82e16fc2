package types

// APIStatus is the last known reachability of the generation service
type APIStatus int

const (
	APIStatusChecking APIStatus = iota
	APIStatusConnected
	APIStatusDisconnected
	APIStatusError
)

// String returns the label shown on the dashboard
func (s APIStatus) String() string {
	switch s {
	case APIStatusChecking:
		return "Checking..."
	case APIStatusConnected:
		return "Connected"
	case APIStatusDisconnected:
		return "Disconnected"
	case APIStatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Healthy reports whether the service answered the last check
func (s APIStatus) Healthy() bool {
	return s == APIStatusConnected
}

// MarshalText lets the status be written by the json and yaml encoders
func (s APIStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
