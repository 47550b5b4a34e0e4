package domain

import "time"

const (
	GroupManager      = "Manager"
	GroupDeliveryCrew = "Delivery crew"
)

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsSuperuser  bool
	Roles        RoleSet
	CreatedAt    time.Time
}

// RoleSet is derived fresh from group membership on every request,
// never cached across requests.
type RoleSet struct {
	Manager      bool
	DeliveryCrew bool
	Superuser    bool
}

func RolesFromGroups(groups []string, superuser bool) RoleSet {
	rs := RoleSet{Superuser: superuser}
	for _, g := range groups {
		switch g {
		case GroupManager:
			rs.Manager = true
		case GroupDeliveryCrew:
			rs.DeliveryCrew = true
		}
	}
	return rs
}
