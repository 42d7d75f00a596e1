package domain

import "time"

// Role is the legacy single-tag authorization model.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleNormal Role = "NORMAL"
)

// AdminProfileName is the profile name that grants every permission.
const AdminProfileName = "ADMIN"

// User is the signed-in identity.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Profile is a named bundle of permissions.
type Profile struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AuthModel is either LegacyRole or ProfileBased.
type AuthModel interface {
	authModel()
}

// LegacyRole sessions carry no permission set.
type LegacyRole struct {
	Role Role
}

// ProfileBased sessions carry a profile and its hydrated permission set.
type ProfileBased struct {
	Profile     Profile
	Permissions PermissionSet
}

func (LegacyRole) authModel()   {}
func (ProfileBased) authModel() {}

// Session is replaced wholesale on sign-in and removed on sign-out; it is
// never updated in place.
type Session struct {
	ID        string
	User      User
	Token     string // backend bearer token, empty when the backend issued none
	Auth      AuthModel
	CreatedAt time.Time
}

// Profile returns the profile variant when the session uses one.
func (s *Session) Profile() (ProfileBased, bool) {
	if s == nil || s.Auth == nil {
		return ProfileBased{}, false
	}
	pb, ok := s.Auth.(ProfileBased)
	return pb, ok
}
