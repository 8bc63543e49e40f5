// Package models defines the resources exchanged with the service
// territoriale API.
package models

import "time"

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// Status is the account moderation state. New accounts wait for an
// administrator to accept or reject them.
type Status string

const (
	StatusPending  Status = "ATTENTE"
	StatusActive   Status = "ACTIF"
	StatusRejected Status = "REJETER"
)

type User struct {
	ID        string    `json:"idUtilisateur"`
	Pseudo    string    `json:"pseudo"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	Status    Status    `json:"statut,omitempty"`
	CreatedAt time.Time `json:"dateCreation,omitempty"`
	UpdatedAt time.Time `json:"dateModification,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserUpdate carries the fields an administrator may change on an account.
// Nil fields are left out of the request.
type UserUpdate struct {
	Pseudo *string `json:"pseudo,omitempty"`
	Email  *string `json:"email,omitempty"`
	Role   *Role   `json:"role,omitempty"`
	Status *Status `json:"statut,omitempty"`
}

// UsersPage is one page of the administrator user listing.
type UsersPage struct {
	Data  []User `json:"data"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// Session is what a successful login yields.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *User
}
