package tokens

import "github.com/golang-jwt/jwt/v5"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is what a verified token proves about its bearer.
type Identity struct {
	UserID string
	Role   string
}

func (c *AccessClaims) Identity() Identity {
	return Identity{UserID: c.Subject, Role: c.Role}
}
