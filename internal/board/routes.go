package board

import (
	"fmt"
	"strings"

	"listmerge/internal/model"
)

// Role names one of the three lists taking part in a merge session.
type Role string

const (
	RoleFirst  Role = "first"
	RoleSecond Role = "second"
	RoleMerged Role = "merged"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleFirst, RoleSecond, RoleMerged:
		return r, nil
	default:
		return "", fmt.Errorf("unknown list role: %q (want first|second|merged)", s)
	}
}

// Route allows items to move from one session list to another.
type Route struct {
	From Role `json:"from" yaml:"from"`
	To   Role `json:"to" yaml:"to"`
}

// DefaultRoutes lets items flow between each selected list and the merged list,
// never directly between the two selected lists.
func DefaultRoutes() []Route {
	return []Route{
		{From: RoleFirst, To: RoleMerged},
		{From: RoleSecond, To: RoleMerged},
		{From: RoleMerged, To: RoleFirst},
		{From: RoleMerged, To: RoleSecond},
	}
}

// Session records which lists are active in a merge.
type Session struct {
	First  model.ListID `json:"first"`
	Second model.ListID `json:"second"`
	Merged model.ListID `json:"merged"`
}

func (s Session) ListFor(r Role) model.ListID {
	switch r {
	case RoleFirst:
		return s.First
	case RoleSecond:
		return s.Second
	case RoleMerged:
		return s.Merged
	default:
		return ""
	}
}

func (s Session) RoleOf(id model.ListID) (Role, bool) {
	if id == "" {
		return "", false
	}
	switch id {
	case s.First:
		return RoleFirst, true
	case s.Second:
		return RoleSecond, true
	case s.Merged:
		return RoleMerged, true
	default:
		return "", false
	}
}

// Contains reports whether id is one of the three active lists.
func (s Session) Contains(id model.ListID) bool {
	_, ok := s.RoleOf(id)
	return ok
}
