package http

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Roles recognized by the transport layer. The core trusts the identity
// supplied here and never re-checks it.
const (
	RoleOperator   = "OPERATOR"
	RoleSupervisor = "SUPERVISOR"
)

const userContextKey = "auth.user"

// User is one configured account with its workflow role.
type User struct {
	Name     string
	Password string
	Role     string
}

// ParseUsers parses the AUTH_USERS environment value, a comma-separated list
// of name:password:role entries.
func ParseUsers(raw string) (map[string]User, error) {
	users := make(map[string]User)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid user entry %q, expected name:password:role", entry)
		}
		name := strings.TrimSpace(parts[0])
		password := parts[1]
		role := strings.ToUpper(strings.TrimSpace(parts[2]))
		if name == "" || password == "" {
			return nil, fmt.Errorf("invalid user entry %q, name and password are required", entry)
		}
		if role != RoleOperator && role != RoleSupervisor {
			return nil, fmt.Errorf("invalid user entry %q, unknown role %q", entry, role)
		}
		users[name] = User{Name: name, Password: password, Role: role}
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no users configured")
	}
	return users, nil
}

// Authenticator validates basic-auth credentials against the configured users
// and attaches the resolved identity to the request context.
type Authenticator struct {
	users map[string]User
}

// NewAuthenticator creates an Authenticator over the given accounts.
func NewAuthenticator(users map[string]User) *Authenticator {
	return &Authenticator{users: users}
}

// Middleware returns the Echo basic-auth middleware.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return middleware.BasicAuth(func(username, password string, c echo.Context) (bool, error) {
		user, ok := a.users[username]
		if !ok {
			return false, nil
		}
		if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
			return false, nil
		}
		c.Set(userContextKey, user)
		return true, nil
	})
}

// CurrentUser returns the authenticated identity of the request.
func CurrentUser(c echo.Context) (User, bool) {
	user, ok := c.Get(userContextKey).(User)
	return user, ok
}

// RequireRole rejects requests whose authenticated user lacks the role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok || user.Role != role {
				return c.JSON(http.StatusForbidden, ErrorResponse{
					Code:    http.StatusForbidden,
					Message: "Insufficient role",
				})
			}
			return next(c)
		}
	}
}
