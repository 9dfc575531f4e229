package cli

import (
	"strings"

	"github.com/userboard/userboard/pkg/client"
)

// Draft is the local unsaved state of the create and edit forms. Mutation
// goes through one typed setter per nesting depth instead of string paths.
type Draft struct {
	u client.NewUser
}

func NewDraft() *Draft { return &Draft{} }

// User returns the payload to send.
func (d *Draft) User() client.NewUser { return d.u }

// HasRequired is the client-side presence check: username and email only,
// the full rule set stays on the server.
func (d *Draft) HasRequired() bool {
	return strings.TrimSpace(d.u.Username) != "" && strings.TrimSpace(d.u.Email) != ""
}

type Field int

const (
	FieldUsername Field = iota
	FieldEmail
	FieldPhoneNumber
	FieldCompany
)

type AddressField int

const (
	AddressStreet AddressField = iota
	AddressCity
	AddressZip
)

type GeoField int

const (
	GeoLat GeoField = iota
	GeoLng
)

func (d *Draft) Set(f Field, v string) {
	switch f {
	case FieldUsername:
		d.u.Username = v
	case FieldEmail:
		d.u.Email = v
	case FieldPhoneNumber:
		d.u.PhoneNumber = v
	case FieldCompany:
		d.u.Company = v
	}
}

func (d *Draft) Get(f Field) string {
	switch f {
	case FieldUsername:
		return d.u.Username
	case FieldEmail:
		return d.u.Email
	case FieldPhoneNumber:
		return d.u.PhoneNumber
	case FieldCompany:
		return d.u.Company
	}
	return ""
}

func (d *Draft) SetAddress(f AddressField, v string) {
	switch f {
	case AddressStreet:
		d.u.Address.Street = v
	case AddressCity:
		d.u.Address.City = v
	case AddressZip:
		d.u.Address.Zip = v
	}
}

func (d *Draft) GetAddress(f AddressField) string {
	switch f {
	case AddressStreet:
		return d.u.Address.Street
	case AddressCity:
		return d.u.Address.City
	case AddressZip:
		return d.u.Address.Zip
	}
	return ""
}

func (d *Draft) SetGeo(f GeoField, v float64) {
	switch f {
	case GeoLat:
		d.u.Address.Geo.Lat = v
	case GeoLng:
		d.u.Address.Geo.Lng = v
	}
}

func (d *Draft) GetGeo(f GeoField) float64 {
	switch f {
	case GeoLat:
		return d.u.Address.Geo.Lat
	case GeoLng:
		return d.u.Address.Geo.Lng
	}
	return 0
}
