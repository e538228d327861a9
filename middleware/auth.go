package middleware

import (
	apierrors "tickets-webapp/errors"
	"tickets-webapp/model"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
)

const identityKey = "identity"

// Identity is the caller as decoded from a verified bearer token.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

func Authorize(signingKey string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    []byte(signingKey),
		SigningMethod: "HS256",
		ErrorHandler:  jwtError,
		ContextKey:    identityKey,
	})
}

func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFrom(c)
		if !ok || !identity.IsAdmin() {
			return apierrors.RaisePermissionsError(c, "only admin can perform this operation")
		}
		return c.Next()
	}
}

// IdentityFrom reads the identity stored by Authorize. It reports false when
// the route is not behind Authorize or the token carries no user id.
func IdentityFrom(c *fiber.Ctx) (Identity, bool) {
	token, ok := c.Locals(identityKey).(*jwt.Token)
	if !ok || token == nil {
		return Identity{}, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, false
	}

	identity := Identity{}
	identity.UserID, _ = claims["userId"].(string)
	identity.Email, _ = claims["email"].(string)
	identity.Role, _ = claims["role"].(string)

	return identity, identity.UserID != ""
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return apierrors.RaiseBadRequestError(c, "Missing or malformed JWT")
	}
	return apierrors.RaiseUnauthorizedError(c, "Invalid or expired JWT")
}
