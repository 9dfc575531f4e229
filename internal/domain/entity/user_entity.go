package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the aggregate root for the user directory. Email is stored
// lowercased; the collection carries a unique index on it.
//
// Address and Geo are embedded value objects with no identity of their own.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username    string             `bson:"username" json:"username" validate:"required"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber" validate:"required,phone10"`
	Email       string             `bson:"email" json:"email" validate:"required,email"`
	Company     string             `bson:"company,omitempty" json:"company,omitempty"`
	Address     Address            `bson:"address" json:"address"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Address struct {
	Street string   `bson:"street" json:"street" validate:"required"`
	City   string   `bson:"city" json:"city" validate:"required"`
	Zip    string   `bson:"zip" json:"zip" validate:"required"`
	Geo    GeoPoint `bson:"geo" json:"geo"`
}

// GeoPoint carries plain coordinates. Zero is a valid latitude and
// longitude, so presence is checked at the request boundary, not here.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}
