package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the identity aggregate. Cart is populated under the embedded order
// strategy and Orders under the referenced one.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	FirstName    string               `bson:"firstName" json:"firstName"`
	LastName     string               `bson:"lastName" json:"lastName"`
	Email        string               `bson:"email" json:"email"`
	MobileNumber string               `bson:"mobileNumber" json:"mobileNumber"`
	PasswordHash string               `bson:"password" json:"-"`
	IsAdmin      bool                 `bson:"isAdmin" json:"isAdmin"`
	Cart         []CartLine           `bson:"cart" json:"cart"`
	Orders       []primitive.ObjectID `bson:"orders,omitempty" json:"orders,omitempty"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// FullName joins first and last name the way order reports display it.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
