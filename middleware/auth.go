package middleware

import (
	"strings"

	"keyless-stay/apperror"
	"keyless-stay/types"
	"keyless-stay/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	localsClaims   = "user"
	localsIdentity = "identity"
)

// bearerToken reads the token from the Authorization header, falling back to the access cookie
func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if token := c.Cookies("access"); token != "" {
			return token, nil
		}
		return "", apperror.Unauthorized("Authorization token missing")
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
		return "", apperror.Unauthorized("Invalid authorization header format")
	}
	return tokenParts[1], nil
}

func authenticate(c *fiber.Ctx, verifier *TokenVerifier, token string) error {
	claims, err := verifier.Verify(token)
	if err != nil {
		return apperror.Unauthorized("Session expired. Login again.")
	}
	identity := IdentityFromClaims(claims)
	if identity.IsZero() {
		return apperror.Unauthorized("Token carries no caller id")
	}
	c.Locals(localsClaims, claims)
	c.Locals(localsIdentity, identity)
	return nil
}

// RequireAuthentication rejects requests without a valid token
func RequireAuthentication(verifier *TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return utils.RespondError(c, err, "")
		}
		if err := authenticate(c, verifier, token); err != nil {
			return utils.RespondError(c, err, "")
		}
		return c.Next()
	}
}

// OptionalAuthentication attaches the identity when a valid token is sent and lets
// anonymous requests through. An invalid token is still rejected.
func OptionalAuthentication(verifier *TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" && c.Cookies("access") == "" {
			return c.Next()
		}
		token, err := bearerToken(c)
		if err != nil {
			return utils.RespondError(c, err, "")
		}
		if err := authenticate(c, verifier, token); err != nil {
			return utils.RespondError(c, err, "")
		}
		return c.Next()
	}
}

// RequireRole allows only callers whose role is one of roles. It must run after RequireAuthentication.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		identity := GetIdentity(c)
		if identity.IsZero() {
			return utils.RespondError(c, apperror.Unauthorized(""), "")
		}
		if !allowed[identity.Role] {
			return utils.RespondError(c, apperror.Forbidden("Insufficient permissions"), "")
		}
		return c.Next()
	}
}

// GetIdentity returns the authenticated caller, or a zero Identity for anonymous requests
func GetIdentity(c *fiber.Ctx) types.Identity {
	identity, ok := c.Locals(localsIdentity).(types.Identity)
	if !ok {
		return types.Identity{}
	}
	return identity
}
