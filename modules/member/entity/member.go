package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleWebmaster Role = "webmaster"
	RoleMember    Role = "member"
)

func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleWebmaster, RoleMember:
		return true
	}
	return false
}

// Member is a row of site_users. AuthID links it to the auth provider's user.
type Member struct {
	ID        uuid.UUID `db:"id" json:"id"`
	AuthID    uuid.UUID `db:"authid" json:"auth_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Role      Role      `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Actor is the signed-in member performing a request.
type Actor struct {
	MemberID uuid.UUID
	AuthID   uuid.UUID
	Name     string
	Email    string
	Role     Role
}

func NewActor(m *Member) *Actor {
	return &Actor{
		MemberID: m.ID,
		AuthID:   m.AuthID,
		Name:     m.Name,
		Email:    m.Email,
		Role:     m.Role,
	}
}

func (a *Actor) Can(c Capability) bool {
	return a != nil && Can(a.Role, c)
}

// CanModify reports whether the actor owns the record (ownerAuthID) or holds
// the capability that covers records owned by anyone.
func (a *Actor) CanModify(ownerAuthID uuid.UUID, anyCap Capability) bool {
	if a == nil || !a.Role.Valid() {
		return false
	}
	if ownerAuthID != uuid.Nil && a.AuthID == ownerAuthID {
		return true
	}
	return Can(a.Role, anyCap)
}
