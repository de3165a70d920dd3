package view

import (
	"context"
	"slices"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MrJamesThe3rd/fleetledger/internal/actor"
)

const dbTimeout = 5 * time.Second

var amountPrinter = message.NewPrinter(language.Spanish)

// Operator is the actor every TUI action runs as. The console is a local
// back-office tool, so it carries the admin role.
var Operator = actor.Actor{Subject: "tui", Role: actor.RoleAdmin}

// FormatAmount groups thousands in a whole-unit amount.
func FormatAmount(amount int64) string {
	return amountPrinter.Sprintf("%d", amount)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(actor.WithActor(context.Background(), Operator), dbTimeout)
}

// SortByDate orders items oldest first, keeping ties in their current order.
func SortByDate[T any](items []T, date func(T) time.Time) {
	slices.SortStableFunc(items, func(a, b T) int {
		return date(a).Compare(date(b))
	})
}
