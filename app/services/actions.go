package services

import (
	"context"
	"errors"
	"log"

	"github.com/sellaap/go-storefront/app/helpers"
	"github.com/sellaap/go-storefront/app/models"
	"github.com/sellaap/go-storefront/app/repositories"
	"gorm.io/gorm"
)

// Result is the uniform shape every mutating action returns. Callers
// branch on Err being empty instead of using panics for control flow;
// Warnings carry non-fatal findings (broken internal links) alongside
// a successful save.
type Result struct {
	Success  bool     `json:"success"`
	Data     any      `json:"data,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Err      string   `json:"error,omitempty"`
}

func ok(data any, warnings ...string) Result {
	return Result{Success: true, Data: data, Warnings: warnings}
}

func fail(msg string) Result {
	return Result{Err: msg}
}

const msgUnauthorized = "Unauthorized"

// actorFromContext reads the authenticated user the session middleware
// stored on the request context.
func actorFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(helpers.ContextKeyUser).(*models.User)
	return user
}

// requireAdmin is the cross-cutting authorization gate: every mutating
// action re-checks the caller's role before touching the store. It
// returns a non-nil failure result for missing sessions and non-admin
// callers.
func requireAdmin(ctx context.Context) *Result {
	user := actorFromContext(ctx)
	if !user.IsAdmin() {
		r := fail(msgUnauthorized)
		return &r
	}
	return nil
}

// failureMessage flattens store errors into the flat taxonomy the
// admin UI shows: integrity violations get a specific message, the
// rest collapses to "failed to <op>".
func failureMessage(op string, err error) string {
	log.Printf("%s: %v", op, err)
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return "duplicate slug or name"
	case errors.Is(err, repositories.ErrCategoryInUse):
		return repositories.ErrCategoryInUse.Error()
	case errors.Is(err, repositories.ErrParentOutsideMenu):
		return repositories.ErrParentOutsideMenu.Error()
	case errors.Is(err, repositories.ErrMenuItemCycle):
		return repositories.ErrMenuItemCycle.Error()
	case errors.Is(err, repositories.ErrDuplicateSiblingOrder):
		return repositories.ErrDuplicateSiblingOrder.Error()
	default:
		return "failed to " + op
	}
}
