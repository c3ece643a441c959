package middleware

import (
	"strings"

	"github.com/calltrack/dnc-registry/internal/models"
)

// Decision is the outcome of the access policy for one request.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionRedirect
	DecisionUnauthorized
)

// PolicyResult carries the decision and, for redirects, the target path.
type PolicyResult struct {
	Decision Decision
	Location string
}

// Route tables. Matching is by prefix, so the whole dashboard tree is
// admin-only and the whole capture/consult tree is seller-only.
const (
	SignInPath    = "/auth/signin"
	DashboardHome = "/dashboard"
	CapturePath   = "/capturar-numero"
	ConsultPath   = "/consultar-dnc"
)

var (
	authPrefixes       = []string{"/auth/", "/api/auth/"}
	adminOnlyPrefixes  = []string{DashboardHome}
	sellerOnlyPrefixes = []string{CapturePath, ConsultPath}
	protectedPrefixes  = []string{DashboardHome, CapturePath, ConsultPath, "/api/"}
)

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// IsAPIPath reports whether an unauthenticated request should get a 401
// body instead of a sign-in redirect.
func IsAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

// roleHome is where each role lands after sign-in or a wrong-tree request.
func roleHome(role models.Role) string {
	if role == models.RoleAdmin {
		return DashboardHome
	}
	return CapturePath
}

// Decide is the access policy: a total, stateless function of the request
// path and the (possibly absent) role claim, re-evaluated on every request.
//
// The signed-in-on-sign-in check runs before the general auth-surface allow;
// otherwise the allow rule would shadow it.
func Decide(path string, role *models.Role) PolicyResult {
	// Authenticated principals have no business on the sign-in page.
	if strings.HasPrefix(path, SignInPath) && role != nil {
		return PolicyResult{Decision: DecisionRedirect, Location: roleHome(*role)}
	}

	// Auth surface and the public landing page are always reachable.
	if hasAnyPrefix(path, authPrefixes) || path == "/" {
		return PolicyResult{Decision: DecisionAllow}
	}

	if role == nil {
		if hasAnyPrefix(path, protectedPrefixes) {
			return PolicyResult{Decision: DecisionUnauthorized}
		}
		return PolicyResult{Decision: DecisionAllow}
	}

	if *role == models.RoleUser && hasAnyPrefix(path, adminOnlyPrefixes) {
		return PolicyResult{Decision: DecisionRedirect, Location: CapturePath}
	}

	if *role == models.RoleAdmin && hasAnyPrefix(path, sellerOnlyPrefixes) {
		return PolicyResult{Decision: DecisionRedirect, Location: DashboardHome}
	}

	return PolicyResult{Decision: DecisionAllow}
}
