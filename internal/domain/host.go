package domain

// Host is a network host described entirely by parameter fields.
// It is the record persisted by the repository and exchanged by the codecs.
type Host struct {
	ID       UniqueIdentifier
	Address  PolymorphicAddress
	MAC      MacAddressValue
	Ports    PortList
	Enabled  BooleanCode
	LastSeen Timestamp
}

// NewHost returns an enabled host with a fresh identifier.
func NewHost() *Host {
	return &Host{ID: NewUniqueIdentifier(), Enabled: BoolEnabled}
}

// RecordName returns "host".
func (h *Host) RecordName() string { return "host" }

// Fields lists the host's parameters in serialization order.
func (h *Host) Fields() []Field {
	return []Field{
		{Name: "id", Value: &h.ID},
		{Name: "address", Value: &h.Address},
		{Name: "mac", Value: &h.MAC},
		{Name: "ports", Value: &h.Ports},
		{Name: "enabled", Value: &h.Enabled},
		{Name: "last_seen", Value: &h.LastSeen},
	}
}

// Touch records the current instant from clock as LastSeen.
func (h *Host) Touch(clock Clock) {
	h.LastSeen.CaptureNow(clock)
}

// Listens reports whether the host is enabled and one of its ports matches port.
func (h *Host) Listens(port int) bool {
	return h.Enabled.IsTrue() && h.Ports.Contains(port)
}
