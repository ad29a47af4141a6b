package authz

import (
	"github.com/google/uuid"

	"github.com/postbook/postbook/internal/models"
)

// Principal is the authenticated identity extracted from a validated bearer
// token. It is passed explicitly to every operation that needs it.
type Principal struct {
	ID     uuid.UUID
	Email  string
	Roles  []string
	Claims map[string]string
}

func PrincipalFromUser(u *models.User) Principal {
	p := Principal{
		ID:     u.ID,
		Email:  u.Email,
		Claims: make(map[string]string, len(u.Claims)),
	}
	for _, r := range u.Roles {
		p.Roles = append(p.Roles, r.Name)
	}
	for _, c := range u.Claims {
		p.Claims[c.Name] = c.Value
	}
	return p
}

func (p Principal) HasRole(names ...string) bool {
	for _, have := range p.Roles {
		for _, want := range names {
			if have == want {
				return true
			}
		}
	}
	return false
}

func (p Principal) HasClaim(name, value string) bool {
	return p.Claims[name] == value
}

// Owns is the ownership check: the resource's owning-user id equals the
// principal's id.
func (p Principal) Owns(ownerID uuid.UUID) bool {
	return p.ID == ownerID
}
