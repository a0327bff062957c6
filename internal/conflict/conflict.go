// Package conflict decides whether a candidate shortcut may be assigned.
package conflict

import (
	"shortcut-recorder/internal/menu"
	"shortcut-recorder/internal/shortcut"
)

// Verdict is the outcome of a conflict check.
type Verdict int

const (
	OK Verdict = iota
	ClaimedByMenu
	ClaimedByName
	Disallowed
	ReservedBySystem
)

func (v Verdict) String() string {
	switch v {
	case OK:
		return "ok"
	case ClaimedByMenu:
		return "claimed-by-menu"
	case ClaimedByName:
		return "claimed-by-name"
	case Disallowed:
		return "disallowed"
	case ReservedBySystem:
		return "reserved-by-system"
	default:
		return "unknown"
	}
}

// Result carries the verdict plus whatever claimed the shortcut.
type Result struct {
	Verdict Verdict
	Item    menu.Item // set for ClaimedByMenu
	Name    string    // set for ClaimedByName
	Owner   string    // set for ReservedBySystem when known
}

// Menu answers whether a visible menu item binds a shortcut.
type Menu interface {
	ItemClaiming(s shortcut.Shortcut) (menu.Item, bool)
}

// Assigned answers whether another name already uses a shortcut.
type Assigned func(s shortcut.Shortcut) (name string, ok bool)

// Predicate classifies a shortcut against a static table.
type Predicate func(s shortcut.Shortcut) bool

// OwnerFunc names what holds a reserved shortcut.
type OwnerFunc func(s shortcut.Shortcut) (owner string, ok bool)

// Resolve checks candidate against the menu, then the disallowed table, then
// the system-reserved table. The two tables never depend on the menu, so a
// candidate gets the same table verdict whatever the menu holds. A nil menu
// or predicate is skipped. Owner is left empty; a Resolver with an Owner
// func fills it in.
func Resolve(candidate shortcut.Shortcut, m Menu, reserved, disallowed Predicate) Result {
	return resolve(candidate, m, nil, reserved, nil, disallowed)
}

func resolve(candidate shortcut.Shortcut, m Menu, assigned Assigned, reserved Predicate, owner OwnerFunc, disallowed Predicate) Result {
	if m != nil {
		if item, ok := m.ItemClaiming(candidate); ok {
			return Result{Verdict: ClaimedByMenu, Item: item}
		}
	}
	if assigned != nil {
		if name, ok := assigned(candidate); ok {
			return Result{Verdict: ClaimedByName, Name: name}
		}
	}
	if disallowed != nil && disallowed(candidate) {
		return Result{Verdict: Disallowed}
	}
	if reserved != nil && reserved(candidate) {
		res := Result{Verdict: ReservedBySystem}
		if owner != nil {
			res.Owner, _ = owner(candidate)
		}
		return res
	}
	return Result{Verdict: OK}
}

// Resolver bundles the reservation sources for repeated checks. Owner
// describes the shortcuts Reserved matches, so the two are replaced together.
type Resolver struct {
	Menu       Menu
	Assigned   Assigned
	Reserved   Predicate
	Owner      OwnerFunc
	Disallowed Predicate
}

// NewResolver returns a resolver using the platform tables and m.
func NewResolver(m Menu) *Resolver {
	return &Resolver{
		Menu:       m,
		Reserved:   shortcut.IsReservedBySystem,
		Owner:      shortcut.SystemOwner,
		Disallowed: shortcut.IsDisallowed,
	}
}

// SetReserved replaces the reserved table with a fixed set of shortcuts and
// the owner of each.
func (r *Resolver) SetReserved(table map[shortcut.Shortcut]string) {
	r.Reserved = func(s shortcut.Shortcut) bool {
		_, ok := table[s]
		return ok
	}
	r.Owner = func(s shortcut.Shortcut) (string, bool) {
		owner, ok := table[s]
		return owner, ok
	}
}

// Resolve checks candidate against every configured source.
func (r *Resolver) Resolve(candidate shortcut.Shortcut) Result {
	return resolve(candidate, r.Menu, r.Assigned, r.Reserved, r.Owner, r.Disallowed)
}
