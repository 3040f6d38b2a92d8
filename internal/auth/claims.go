package auth

// UserClaims is the identity attached to an authenticated request,
// regardless of which credential produced it.
type UserClaims interface {
	UserID() string
	Source() string
	ReadOnly() bool
}

// APIKeyClaims is a full-access identity established from an API key plus
// the X-User-Id header.
type APIKeyClaims struct {
	UserIDValue string
}

func (c *APIKeyClaims) UserID() string { return c.UserIDValue }
func (c *APIKeyClaims) Source() string { return "API_KEY" }
func (c *APIKeyClaims) ReadOnly() bool { return false }

// ShareClaims is the read-only identity carried by a single-use share token.
// It is scoped to exactly one car.
type ShareClaims struct {
	OwnerIDValue string
	CarIDValue   string
}

func (c *ShareClaims) UserID() string { return c.OwnerIDValue }
func (c *ShareClaims) Source() string { return "SHARE_TOKEN" }
func (c *ShareClaims) ReadOnly() bool { return true }
func (c *ShareClaims) CarID() string  { return c.CarIDValue }
