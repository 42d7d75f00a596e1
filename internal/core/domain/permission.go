package domain

import (
	"encoding/json"
	"sort"
	"strings"
)

// Resource is a feature area subject to permission control.
type Resource string

const (
	ResourceDashboard Resource = "DASHBOARD"
	ResourceUsers     Resource = "USERS"
	ResourceProducts  Resource = "PRODUCTS"
	ResourceSales     Resource = "SALES"
	ResourceTrips     Resource = "TRIPS"
	ResourceNews      Resource = "NEWS"
	ResourceBudget    Resource = "BUDGET"
	ResourceGames     Resource = "GAMES"
	ResourceTeam      Resource = "TEAM"
)

// Resources lists every resource in display order.
var Resources = []Resource{
	ResourceDashboard,
	ResourceUsers,
	ResourceProducts,
	ResourceSales,
	ResourceTrips,
	ResourceNews,
	ResourceBudget,
	ResourceGames,
	ResourceTeam,
}

// Action is a permission level. EDIT implies VIEW.
type Action string

const (
	ActionView Action = "VIEW"
	ActionEdit Action = "EDIT"
)

// PermissionKey renders the literal "RESOURCE:ACTION" pair.
func PermissionKey(r Resource, a Action) string {
	return string(r) + ":" + string(a)
}

// PermissionSet is the set of "RESOURCE:ACTION" strings granted by a profile.
type PermissionSet map[string]struct{}

func NewPermissionSet(perms ...string) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		set[p] = struct{}{}
	}
	return set
}

// Has matches the literal key; it does not apply EDIT-implies-VIEW.
func (p PermissionSet) Has(r Resource, a Action) bool {
	if p == nil {
		return false
	}
	_, ok := p[PermissionKey(r, a)]
	return ok
}

// List returns the permissions sorted.
func (p PermissionSet) List() []string {
	out := make([]string, 0, len(p))
	for k := range p {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (p PermissionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.List())
}

func (p *PermissionSet) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*p = NewPermissionSet(list...)
	return nil
}
