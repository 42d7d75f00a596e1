package domain

import (
	"fmt"
	"strings"
)

// Screen binds a dashboard list/edit form to a backend collection and the
// permission that guards it.
type Screen struct {
	Name         string
	Path         string // backend collection path
	CreatePath   string // defaults to Path
	Resource     Resource
	RequireAdmin bool
	SearchFields []string
	FilterFields []string
	ReadOnly     bool
}

func (s Screen) CreateURL() string {
	if s.CreatePath != "" {
		return s.CreatePath
	}
	return s.Path
}

func (s Screen) ItemURL(id string) string {
	return s.Path + "/" + id
}

var (
	ScreenProducts = Screen{
		Name: "products", Path: "/products", Resource: ResourceProducts,
		SearchFields: []string{"name", "description"},
	}
	ScreenGames = Screen{
		Name: "games", Path: "/games", Resource: ResourceGames,
		SearchFields: []string{"name", "location", "description"},
		FilterFields: []string{"status"},
	}
	ScreenNews = Screen{
		Name: "news", Path: "/news", Resource: ResourceNews,
		SearchFields: []string{"title", "content"},
	}
	ScreenBudgets = Screen{
		Name: "budgets", Path: "/budgets", Resource: ResourceBudget,
		SearchFields: []string{"description", "notes"},
		FilterFields: []string{"type"},
	}
	ScreenTrips = Screen{
		Name: "trips", Path: "/trips", Resource: ResourceTrips,
		SearchFields: []string{"destination", "description"},
		FilterFields: []string{"status"},
	}
	ScreenTripBudgets = Screen{
		Name: "trip-budgets", Path: "/trip-budgets", Resource: ResourceTrips,
		SearchFields: []string{"description"},
		FilterFields: []string{"type"},
	}
	ScreenTripExpenses = Screen{
		Name: "trip-expenses", Path: "/trip-expenses", Resource: ResourceTrips,
		SearchFields: []string{"description"},
	}
	ScreenTeams = Screen{
		Name: "teams", Path: "/teams", Resource: ResourceTeam, RequireAdmin: true,
		SearchFields: []string{"name"},
		FilterFields: []string{"status"},
	}
	ScreenPlayers = Screen{
		Name: "players", Path: "/players", Resource: ResourceTeam, RequireAdmin: true,
		SearchFields: []string{"name", "position", "number"},
		FilterFields: []string{"status"},
	}
	ScreenUsers = Screen{
		Name: "users", Path: "/auth/users", CreatePath: "/auth/register",
		Resource: ResourceUsers, RequireAdmin: true,
		SearchFields: []string{"name", "email"},
	}
	ScreenProfiles = Screen{
		Name: "profiles", Path: "/profiles", Resource: ResourceUsers, RequireAdmin: true,
		SearchFields: []string{"name", "description"},
	}
	ScreenSales = Screen{
		Name: "sales", Path: "/sales", Resource: ResourceSales, ReadOnly: true,
	}
)

// Screens lists every registered screen.
var Screens = []Screen{
	ScreenProducts, ScreenGames, ScreenNews, ScreenBudgets, ScreenTrips,
	ScreenTripBudgets, ScreenTripExpenses, ScreenTeams, ScreenPlayers,
	ScreenUsers, ScreenProfiles, ScreenSales,
}

func ScreenByName(name string) (Screen, error) {
	for _, s := range Screens {
		if s.Name == name {
			return s, nil
		}
	}
	return Screen{}, fmt.Errorf("%w: %s", ErrUnknownScreen, name)
}

// Record is one row of a screen's list as the backend returned it.
type Record map[string]any

// Matches reports whether any of fields contains needle, case-insensitive.
func (r Record) Matches(fields []string, needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, f := range fields {
		v, ok := r[f]
		if !ok || v == nil {
			continue
		}
		if strings.Contains(strings.ToLower(fmt.Sprint(v)), needle) {
			return true
		}
	}
	return false
}

// FieldEquals compares a field to want, case-insensitive.
func (r Record) FieldEquals(field, want string) bool {
	v, ok := r[field]
	if !ok || v == nil {
		return false
	}
	return strings.EqualFold(fmt.Sprint(v), want)
}
