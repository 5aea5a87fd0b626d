package domain

import "time"

// Identity is the set of claims carried by an access token. IsAdmin is nil when
// the issuing deployment does not embed the role flag.
type Identity struct {
	Email   string `json:"email"`
	UserID  string `json:"userId"`
	IsAdmin *bool  `json:"isAdmin,omitempty"`
}

// Admin reports the role flag, treating an absent claim as false.
func (i Identity) Admin() bool {
	return i.IsAdmin != nil && *i.IsAdmin
}

// AccessToken is a signed bearer credential and its expiry.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}
