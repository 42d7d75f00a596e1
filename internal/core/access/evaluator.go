// Package access decides what a signed-in session may see and change.
//
// Every check is a pure function of the session value passed in; nothing is
// cached, so a check made after sign-in or sign-out always reflects the new
// state. A nil session fails every check.
package access

import "github.com/soldiers/admin-gateway/internal/core/domain"

// Evaluator answers permission questions about a session.
type Evaluator struct {
	fallbackAdminEmail string
}

// NewEvaluator returns an Evaluator. A non-empty fallbackAdminEmail makes the
// user with that exact email an administrator regardless of profile.
func NewEvaluator(fallbackAdminEmail string) *Evaluator {
	return &Evaluator{fallbackAdminEmail: fallbackAdminEmail}
}

// IsAdmin reports whether s has the ADMIN profile or the fallback admin email.
func (e *Evaluator) IsAdmin(s *domain.Session) bool {
	if s == nil {
		return false
	}
	if pb, ok := s.Profile(); ok && pb.Profile.Name == domain.AdminProfileName {
		return true
	}
	return e.fallbackAdminEmail != "" && s.User.Email == e.fallbackAdminEmail
}

// HasPermission checks the literal "RESOURCE:ACTION" pair. Legacy-role
// sessions have no permission set and always get false.
func (e *Evaluator) HasPermission(s *domain.Session, r domain.Resource, a domain.Action) bool {
	if s == nil {
		return false
	}
	if e.IsAdmin(s) {
		return true
	}
	switch m := s.Auth.(type) {
	case domain.ProfileBased:
		return m.Permissions.Has(r, a)
	case domain.LegacyRole:
		return false
	default:
		return false
	}
}

// CanView reports whether s may see r. EDIT implies VIEW.
func (e *Evaluator) CanView(s *domain.Session, r domain.Resource) bool {
	if e.IsAdmin(s) {
		return true
	}
	return e.HasPermission(s, r, domain.ActionView) || e.HasPermission(s, r, domain.ActionEdit)
}

// CanEdit reports whether s may change r.
func (e *Evaluator) CanEdit(s *domain.Session, r domain.Resource) bool {
	if e.IsAdmin(s) {
		return true
	}
	return e.HasPermission(s, r, domain.ActionEdit)
}

// Gate guards a destination or control. An empty Resource means the
// destination has no granular permission; an empty Action means VIEW.
type Gate struct {
	Resource     domain.Resource
	Action       domain.Action
	RequireAdmin bool
}

// Allows reports whether the gate lets s through.
func (e *Evaluator) Allows(s *domain.Session, g Gate) bool {
	if s == nil {
		return false
	}
	if g.RequireAdmin && !e.IsAdmin(s) {
		return false
	}
	if g.Resource == "" {
		return true
	}
	if g.Action == domain.ActionEdit {
		return e.CanEdit(s, g.Resource)
	}
	return e.CanView(s, g.Resource)
}

// Grant is the per-resource summary handed to the dashboard.
type Grant struct {
	Resource domain.Resource `json:"resource"`
	View     bool            `json:"view"`
	Edit     bool            `json:"edit"`
}

// Grants lists the view and edit rights of s for every resource.
func (e *Evaluator) Grants(s *domain.Session) []Grant {
	out := make([]Grant, 0, len(domain.Resources))
	for _, r := range domain.Resources {
		out = append(out, Grant{Resource: r, View: e.CanView(s, r), Edit: e.CanEdit(s, r)})
	}
	return out
}
