package middleware

import (
	"strings"

	"feinkost-backend/internal/adapters/persistence/models"
	"feinkost-backend/internal/core/services"
	"feinkost-backend/internal/pkg/response"
	"feinkost-backend/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
)

const sessionLocalsKey = "session"

// tokenFromRequest extracts the session token from the cookie or the
// Authorization header
func tokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(session.CookieName); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// SessionMiddleware rebuilds the session on every request and stores
// it in locals. Anonymous requests pass through with no session set.
func SessionMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sess := authService.ReadSession(c.Context(), tokenFromRequest(c)); sess != nil {
			c.Locals(sessionLocalsKey, sess)
		}
		return c.Next()
	}
}

// SessionFromCtx returns the session stored by SessionMiddleware, or
// nil for anonymous requests
func SessionFromCtx(c *fiber.Ctx) *services.Session {
	sess, _ := c.Locals(sessionLocalsKey).(*services.Session)
	return sess
}

// RequireAuth rejects anonymous API requests
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if SessionFromCtx(c) == nil {
			return response.Unauthorized(c, "Authentication required")
		}
		return c.Next()
	}
}

// RequireRole creates role-based authorization middleware for API
// routes
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := SessionFromCtx(c)
		if sess == nil {
			return response.Unauthorized(c, "Authentication required")
		}

		for _, allowedRole := range allowedRoles {
			if sess.Role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RequireRole(models.RoleAdmin)
}

// StaffOnly middleware allows employee or admin roles
func StaffOnly() fiber.Handler {
	return RequireRole(models.RoleEmployee, models.RoleAdmin)
}

// CustomerOnly middleware allows only the customer role
func CustomerOnly() fiber.Handler {
	return RequireRole(models.RoleCustomer)
}

// ============================================================
// Route Guard (browser navigation)
// ============================================================

// Decision is the outcome of the route guard for one navigation
type Decision struct {
	Allow      bool
	RedirectTo string
}

var allow = Decision{Allow: true}

func redirect(to string) Decision {
	return Decision{RedirectTo: to}
}

// Decide maps a navigation path and session to allow-or-redirect.
// First matching prefix wins; it is a pure function with no side
// effects and runs before any page data is touched.
func Decide(path string, sess *services.Session) Decision {
	switch {
	case strings.HasPrefix(path, "/login"), strings.HasPrefix(path, "/register"):
		// Public entry pages; signed-in users are bounced home
		if sess != nil {
			return redirect(models.RoleHome(sess.Role))
		}
		return allow

	case strings.HasPrefix(path, "/admin"):
		return decideProtected(sess, models.RoleAdmin)

	case strings.HasPrefix(path, "/employee"):
		return decideProtected(sess, models.RoleEmployee)

	case strings.HasPrefix(path, "/dashboard"):
		return decideProtected(sess, models.RoleCustomer)

	default:
		return allow
	}
}

func decideProtected(sess *services.Session, requiredRole string) Decision {
	if sess == nil {
		return redirect("/login")
	}
	if sess.Role != requiredRole {
		return redirect(models.RoleHome(sess.Role))
	}
	return allow
}

// RouteGuard enforces Decide on browser navigations. Redirects are
// silent: no error message hints at what lives behind a protected
// path.
func RouteGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := Decide(c.Path(), SessionFromCtx(c))
		if !decision.Allow {
			return c.Redirect(decision.RedirectTo, fiber.StatusFound)
		}
		return c.Next()
	}
}
