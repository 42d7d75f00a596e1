package handler

import (
	"github.com/shopspring/decimal"

	"github.com/soldiers/admin-gateway/internal/core/domain"
)

// Each screen form binds into one of these commands. Required fields carry a
// validate tag; everything else is optional and omitted when empty.

type productCommand struct {
	Name        string          `json:"name"                  validate:"required"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"                 validate:"gt=0"`
	Stock       int             `json:"stock"                 validate:"gte=0"`
}

type gameCommand struct {
	Name        string `json:"name"                  validate:"required"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"                  validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
	Location    string `json:"location,omitempty"`
	Status      string `json:"status,omitempty"      validate:"omitempty,oneof=SCHEDULED IN_PROGRESS FINISHED CANCELLED"`
}

type newsCommand struct {
	Title    string `json:"title"              validate:"required"`
	Content  string `json:"content"            validate:"required"`
	ImageURL string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

type budgetCommand struct {
	Description string          `json:"description"     validate:"required"`
	Amount      decimal.Decimal `json:"amount"          validate:"gt=0"`
	Type        string          `json:"type"            validate:"required,oneof=INCOME EXPENSE"`
	Notes       string          `json:"notes,omitempty"`
}

type tripCommand struct {
	Destination   string `json:"destination"      validate:"required"`
	Description   string `json:"description"      validate:"required"`
	DepartureDate string `json:"departureDate"    validate:"required,datetime=2006-01-02"`
	ReturnDate    string `json:"returnDate"       validate:"required,datetime=2006-01-02"`
	Status        string `json:"status,omitempty" validate:"omitempty,oneof=PLANNED IN_PROGRESS COMPLETED CANCELLED"`
	Notes         string `json:"notes,omitempty"`
}

type tripBudgetCommand struct {
	Description string          `json:"description"     validate:"required"`
	Amount      decimal.Decimal `json:"amount"          validate:"gt=0"`
	TripID      int64           `json:"tripId"          validate:"required,gt=0"`
	Type        string          `json:"type"            validate:"required,oneof=INCOME EXPENSE"`
	Notes       string          `json:"notes,omitempty"`
}

type tripExpenseCommand struct {
	Description string          `json:"description"     validate:"required"`
	Amount      decimal.Decimal `json:"amount"          validate:"gt=0"`
	TripID      int64           `json:"tripId"          validate:"required,gt=0"`
	Notes       string          `json:"notes,omitempty"`
}

type teamCommand struct {
	Name        string  `json:"name"                  validate:"required"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status"                validate:"required,oneof=ACTIVE INACTIVE DISBANDED"`
	PlayerIDs   []int64 `json:"playerIds,omitempty"`
}

type playerCommand struct {
	Name        string  `json:"name"                  validate:"required"`
	Position    string  `json:"position"              validate:"required"`
	Number      string  `json:"number"                validate:"required"`
	Status      string  `json:"status"                validate:"required,oneof=ACTIVE INACTIVE INJURED SUSPENDED"`
	Description string  `json:"description,omitempty"`
	TeamIDs     []int64 `json:"teamIds,omitempty"`
}

type userCreateCommand struct {
	Name        string `json:"name"                  validate:"required"`
	Email       string `json:"email"                 validate:"required,email"`
	Password    string `json:"password"              validate:"required,min=6"`
	ProfileName string `json:"profileName,omitempty"`
}

// userUpdateCommand keeps the current password when none is sent.
type userUpdateCommand struct {
	Name        string `json:"name"                  validate:"required"`
	Email       string `json:"email"                 validate:"required,email"`
	Password    string `json:"password,omitempty"    validate:"omitempty,min=6"`
	ProfileName string `json:"profileName,omitempty"`
}

type permissionCommand struct {
	Resource string `json:"resource" validate:"required,oneof=DASHBOARD USERS PRODUCTS SALES TRIPS NEWS BUDGET GAMES TEAM"`
	Action   string `json:"action"   validate:"required,oneof=VIEW EDIT"`
	Active   bool   `json:"active"`
}

type profileCommand struct {
	Name        string              `json:"name"                  validate:"required"`
	Description string              `json:"description,omitempty"`
	Active      *bool               `json:"active"                validate:"required"`
	Permissions []permissionCommand `json:"permissions,omitempty" validate:"dive"`
}

// commandFactory builds the create and update commands of a screen.
type commandFactory struct {
	create func() any
	update func() any
}

func same(f func() any) commandFactory { return commandFactory{create: f, update: f} }

var screenCommands = map[string]commandFactory{
	domain.ScreenProducts.Name:     same(func() any { return &productCommand{} }),
	domain.ScreenGames.Name:        same(func() any { return &gameCommand{} }),
	domain.ScreenNews.Name:         same(func() any { return &newsCommand{} }),
	domain.ScreenBudgets.Name:      same(func() any { return &budgetCommand{} }),
	domain.ScreenTrips.Name:        same(func() any { return &tripCommand{} }),
	domain.ScreenTripBudgets.Name:  same(func() any { return &tripBudgetCommand{} }),
	domain.ScreenTripExpenses.Name: same(func() any { return &tripExpenseCommand{} }),
	domain.ScreenTeams.Name:        same(func() any { return &teamCommand{} }),
	domain.ScreenPlayers.Name:      same(func() any { return &playerCommand{} }),
	domain.ScreenProfiles.Name:     same(func() any { return &profileCommand{} }),
	domain.ScreenUsers.Name: {
		create: func() any { return &userCreateCommand{} },
		update: func() any { return &userUpdateCommand{} },
	},
}

// normalize fills defaults the backend expects but the form may leave out.
func normalize(cmd any) {
	switch c := cmd.(type) {
	case *gameCommand:
		if c.Status == "" {
			c.Status = string(domain.GameScheduled)
		}
	case *tripCommand:
		if c.Status == "" {
			c.Status = "PLANNED"
		}
	}
}
