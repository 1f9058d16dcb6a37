package types

// Identity is the caller as asserted by the external identity provider.
// The service never authenticates; it only compares CallerID with resource owners.
type Identity struct {
	CallerID string `json:"caller_id"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
}

func (i Identity) IsZero() bool {
	return i.CallerID == ""
}
