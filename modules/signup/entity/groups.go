package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"vfd-portal/core/errors"

	"github.com/google/uuid"
)

// SlotMember is one member's claim on a position.
type SlotMember struct {
	MemberID uuid.UUID `json:"id"`
	Note     string    `json:"note,omitempty"`
	RemindMe bool      `json:"remindMe"`
}

// Position holds at most MaxSlots members; MaxSlots <= 0 means unlimited.
type Position struct {
	Name     string       `json:"name"`
	MaxSlots int          `json:"maxSlots"`
	Members  []SlotMember `json:"members"`
}

func (p Position) Unlimited() bool {
	return p.MaxSlots <= 0
}

func (p Position) Available() bool {
	return p.Unlimited() || len(p.Members) < p.MaxSlots
}

// Remaining is -1 for unlimited positions.
func (p Position) Remaining() int {
	if p.Unlimited() {
		return -1
	}
	if n := p.MaxSlots - len(p.Members); n > 0 {
		return n
	}
	return 0
}

type Group struct {
	Name      string     `json:"name"`
	Positions []Position `json:"positions"`
}

// Groups is stored as a single JSONB column and always written back whole.
type Groups []Group

func (g Groups) Value() (driver.Value, error) {
	if g == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(g)
}

func (g *Groups) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*g = Groups{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("groups: unsupported type %T", src)
	}
	return json.Unmarshal(raw, g)
}

// Locate returns the indices of the named group and position.
func (g Groups) Locate(groupName, positionName string) (int, int, *errors.AppError) {
	for gi, group := range g {
		if group.Name != groupName {
			continue
		}
		for pi, position := range group.Positions {
			if position.Name == positionName {
				return gi, pi, nil
			}
		}
		return -1, -1, errors.NewAppError(errors.ErrPositionNotFound, "Selected position not found", nil)
	}
	return -1, -1, errors.NewAppError(errors.ErrPositionNotFound, "Selected group not found", nil)
}

// Clone deep-copies the structure so callers can mutate the result freely.
func (g Groups) Clone() Groups {
	if g == nil {
		return nil
	}
	out := make(Groups, len(g))
	for gi, group := range g {
		positions := make([]Position, len(group.Positions))
		for pi, position := range group.Positions {
			members := make([]SlotMember, len(position.Members))
			copy(members, position.Members)
			position.Members = members
			positions[pi] = position
		}
		out[gi] = Group{Name: group.Name, Positions: positions}
	}
	return out
}

// WithMember returns a copy of g with member appended to the named position.
// g itself is never modified.
func (g Groups) WithMember(groupName, positionName string, member SlotMember) (Groups, *errors.AppError) {
	gi, pi, appErr := g.Locate(groupName, positionName)
	if appErr != nil {
		return nil, appErr
	}
	if !g[gi].Positions[pi].Available() {
		return nil, errors.NewAppError(errors.ErrNoSlotsAvailable, "This position has no more available slots", nil)
	}

	out := g.Clone()
	out[gi].Positions[pi].Members = append(out[gi].Positions[pi].Members, member)
	return out, nil
}

// HasMember reports whether memberID already holds a slot in the position.
func (g Groups) HasMember(groupName, positionName string, memberID uuid.UUID) bool {
	gi, pi, appErr := g.Locate(groupName, positionName)
	if appErr != nil {
		return false
	}
	for _, m := range g[gi].Positions[pi].Members {
		if m.MemberID == memberID {
			return true
		}
	}
	return false
}

// AvailablePositions lists the open positions of the named group.
func (g Groups) AvailablePositions(groupName string) []Position {
	var out []Position
	for _, group := range g {
		if group.Name != groupName {
			continue
		}
		for _, position := range group.Positions {
			if position.Available() {
				out = append(out, position)
			}
		}
	}
	return out
}

// Totals counts capped slots and members signed up. Unlimited positions add
// nothing to total.
func (g Groups) Totals() (total, filled int) {
	for _, group := range g {
		for _, position := range group.Positions {
			if position.MaxSlots > 0 {
				total += position.MaxSlots
			}
			filled += len(position.Members)
		}
	}
	return total, filled
}

// MemberIDs returns every member holding a slot, without duplicates.
func (g Groups) MemberIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, group := range g {
		for _, position := range group.Positions {
			for _, m := range position.Members {
				if !seen[m.MemberID] {
					seen[m.MemberID] = true
					out = append(out, m.MemberID)
				}
			}
		}
	}
	return out
}

// ValidateGroups checks the structure submitted when a sheet is created.
func ValidateGroups(g Groups) *errors.AppError {
	if len(g) == 0 {
		return errors.NewAppError(errors.ErrInvalidInput, "Please add at least one group with positions", nil)
	}

	invalid := errors.NewAppError(errors.ErrInvalidInput, "All groups must have a name and at least one position with a name", nil)
	groupNames := make(map[string]bool, len(g))
	for _, group := range g {
		name := strings.TrimSpace(group.Name)
		if name == "" || len(group.Positions) == 0 {
			return invalid
		}
		if groupNames[name] {
			return errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("Duplicate group name %q", name), nil)
		}
		groupNames[name] = true

		positionNames := make(map[string]bool, len(group.Positions))
		for _, position := range group.Positions {
			pname := strings.TrimSpace(position.Name)
			if pname == "" {
				return invalid
			}
			if positionNames[pname] {
				return errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("Duplicate position name %q in group %q", pname, name), nil)
			}
			positionNames[pname] = true
			if position.MaxSlots < -1 {
				return errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("Position %q has an invalid slot limit", pname), nil)
			}
		}
	}
	return nil
}
