package domain

// Capability is a closed two-variant access tag, resolved once at the API
// boundary from the authenticated role claim. Handlers and the engine
// compare the tag, never raw role strings.
type Capability int

const (
	RegularUser Capability = iota
	Administrator
)

func (c Capability) String() string {
	if c == Administrator {
		return "admin"
	}
	return "user"
}

// ParseCapability maps a stored role string to its capability tag.
// Unknown roles degrade to RegularUser rather than failing open.
func ParseCapability(role string) Capability {
	if role == "admin" {
		return Administrator
	}
	return RegularUser
}

// Requester identifies who is performing a booking operation.
type Requester struct {
	UserID     int64
	Email      string
	Capability Capability
}

// IsAdmin reports administrator capability.
func (r Requester) IsAdmin() bool { return r.Capability == Administrator }
