package access

import "github.com/soldiers/admin-gateway/internal/core/domain"

// MenuItem is one sidebar destination.
type MenuItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
	Gate  Gate   `json:"-"`
}

// Menu is the full sidebar in display order.
var Menu = []MenuItem{
	{Path: "/dashboard", Label: "Dashboard"},
	{Path: "/products", Label: "Produtos", Gate: Gate{Resource: domain.ResourceProducts}},
	{Path: "/games", Label: "Jogos", Gate: Gate{Resource: domain.ResourceGames}},
	{Path: "/sales", Label: "Vendas", Gate: Gate{Resource: domain.ResourceSales}},
	{Path: "/history", Label: "Histórico", Gate: Gate{Resource: domain.ResourceSales}},
	{Path: "/budget", Label: "Orçamento", Gate: Gate{Resource: domain.ResourceBudget}},
	{Path: "/trips", Label: "Viagens", Gate: Gate{Resource: domain.ResourceTrips}},
	{Path: "/team", Label: "Time", Gate: Gate{Resource: domain.ResourceTeam, RequireAdmin: true}},
	{Path: "/news", Label: "Notícias", Gate: Gate{Resource: domain.ResourceNews}},
	{Path: "/users", Label: "Usuários", Gate: Gate{Resource: domain.ResourceUsers, RequireAdmin: true}},
	{Path: "/profiles", Label: "Perfis", Gate: Gate{Resource: domain.ResourceUsers, RequireAdmin: true}},
}

// Navigation returns the menu entries the session may open.
func (e *Evaluator) Navigation(s *domain.Session) []MenuItem {
	out := make([]MenuItem, 0, len(Menu))
	for _, item := range Menu {
		if e.Allows(s, item.Gate) {
			out = append(out, item)
		}
	}
	return out
}
