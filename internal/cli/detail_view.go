package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/userboard/userboard/pkg/client"
)

// runDetail shows one user read-only and flips to editable mode on demand.
// Cancel discards local edits without re-fetching; back returns to the list.
func (a *App) runDetail(ctx context.Context, id string) {
	fmt.Fprintln(a.out, "Loading user...")
	u, err := a.api.Get(ctx, id)
	for err != nil {
		fmt.Fprintln(a.out, "Failed to load user.")
		cmd, ok := a.readLine("[r]etry, [b]ack: ")
		if !ok || cmd != "r" {
			return
		}
		fmt.Fprintln(a.out, "Loading user...")
		u, err = a.api.Get(ctx, id)
	}

	for {
		a.renderUser(u)
		cmd, ok := a.readLine("[e]dit, [b]ack: ")
		if !ok || cmd == "b" {
			return
		}
		if cmd == "e" {
			if updated := a.runEdit(ctx, u); updated != nil {
				u = updated
			}
		}
	}
}

func (a *App) renderUser(u *client.User) {
	fmt.Fprintln(a.out, "== Profile ==")
	fmt.Fprintf(a.out, "Username: %s\n", u.Username)
	fmt.Fprintf(a.out, "Email:    %s\n", u.Email)
	fmt.Fprintf(a.out, "Phone:    %s\n", u.PhoneNumber)
	fmt.Fprintf(a.out, "Company:  %s\n", u.Company)
	fmt.Fprintf(a.out, "Address:  %s, %s %s\n", u.Address.Street, u.Address.City, u.Address.Zip)
	fmt.Fprintf(a.out, "Geo:      %g, %g\n", u.Address.Geo.Lat, u.Address.Geo.Lng)
}

// runEdit holds the edits in a local draft and only sends them on save.
// Returns the saved user, or nil when the edit was cancelled or failed.
func (a *App) runEdit(ctx context.Context, u *client.User) *client.User {
	draft := NewDraft()
	draft.Set(FieldUsername, u.Username)
	draft.Set(FieldEmail, u.Email)
	draft.Set(FieldPhoneNumber, u.PhoneNumber)
	draft.Set(FieldCompany, u.Company)
	draft.SetAddress(AddressStreet, u.Address.Street)
	draft.SetAddress(AddressCity, u.Address.City)
	draft.SetAddress(AddressZip, u.Address.Zip)
	draft.SetGeo(GeoLat, u.Address.Geo.Lat)
	draft.SetGeo(GeoLng, u.Address.Geo.Lng)

	a.fillDraft(draft)

	cmd, ok := a.readLine("[s]ave, [c]ancel: ")
	if !ok || cmd != "s" {
		return nil
	}
	saved, err := a.api.Update(ctx, u.ID, draft.User())
	if err != nil {
		fmt.Fprintln(a.out, "Error updating profile. Please try again.")
		return nil
	}
	fmt.Fprintln(a.out, "Profile updated successfully!")
	return saved
}

// fillDraft prompts for every field; an empty answer keeps the draft value.
func (a *App) fillDraft(d *Draft) {
	a.promptField("Username", FieldUsername, d)
	a.promptField("Email", FieldEmail, d)
	a.promptField("Phone number", FieldPhoneNumber, d)
	a.promptField("Company", FieldCompany, d)
	a.promptAddress("Street", AddressStreet, d)
	a.promptAddress("City", AddressCity, d)
	a.promptAddress("Zip", AddressZip, d)
	a.promptGeo("Latitude", GeoLat, d)
	a.promptGeo("Longitude", GeoLng, d)
}

func (a *App) promptField(label string, f Field, d *Draft) {
	v, ok := a.readLine(fmt.Sprintf("%s [%s]: ", label, d.Get(f)))
	if ok && v != "" {
		d.Set(f, v)
	}
}

func (a *App) promptAddress(label string, f AddressField, d *Draft) {
	v, ok := a.readLine(fmt.Sprintf("%s [%s]: ", label, d.GetAddress(f)))
	if ok && v != "" {
		d.SetAddress(f, v)
	}
}

func (a *App) promptGeo(label string, f GeoField, d *Draft) {
	v, ok := a.readLine(fmt.Sprintf("%s [%g]: ", label, d.GetGeo(f)))
	if !ok || v == "" {
		return
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Not a number, keeping previous value.")
		return
	}
	d.SetGeo(f, n)
}
