package domain

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Principal is the authenticated caller. The zero value is unauthenticated.
type Principal struct {
	UserID string
	Role   Role
	Email  string
	Name   string
}

// Authenticated reports whether p carries a usable identity.
func (p Principal) Authenticated() bool {
	return p.UserID != "" && p.Role.Valid()
}

// IsAdmin reports whether p holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Authenticated() && p.Role == RoleAdmin
}

// Operation names an action checked by Authorize.
type Operation string

const (
	// Self-service operations, scoped to the caller's own entries.
	OpOpenShift        Operation = "shift.open"
	OpCloseShift       Operation = "shift.close"
	OpCreateRetroShift Operation = "shift.create_retroactive"
	OpListOwnEntries   Operation = "shift.list_own"
	OpViewActiveEntry  Operation = "shift.view_active"
	OpDeleteOwnEntry   Operation = "shift.delete_own"
	OpListConcerts     Operation = "concert.list"

	// Admin operations.
	OpManageConcerts    Operation = "concert.manage"
	OpManageTranslators Operation = "translator.manage"
	OpListAllEntries    Operation = "entry.list_all"
	OpEditEntry         Operation = "entry.edit"
	OpExportReports     Operation = "report.export"
)

var adminOnly = map[Operation]bool{
	OpManageConcerts:    true,
	OpManageTranslators: true,
	OpListAllEntries:    true,
	OpEditEntry:         true,
	OpExportReports:     true,
}

var ownerScoped = map[Operation]bool{
	OpCloseShift:     true,
	OpDeleteOwnEntry: true,
}

// Authorize decides whether p may perform op. ownerID is the owning user of
// the resource for owner-scoped operations and is ignored otherwise.
//
// A mismatched owner yields ErrTimeEntryNotFound rather than ErrForbidden so a
// caller probing foreign ids cannot tell them apart from missing ones.
func Authorize(p Principal, op Operation, ownerID string) error {
	if !p.Authenticated() {
		return ErrUnauthorized
	}
	if adminOnly[op] && p.Role != RoleAdmin {
		return ErrForbidden
	}
	if ownerScoped[op] && ownerID != "" && ownerID != p.UserID {
		return ErrTimeEntryNotFound
	}
	return nil
}
