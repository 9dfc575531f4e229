package cli_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userapp "github.com/userboard/userboard/internal/application"
	"github.com/userboard/userboard/internal/cli"
	"github.com/userboard/userboard/internal/infrastructure/inmemory"
	handlers "github.com/userboard/userboard/internal/interface/http"
	"github.com/userboard/userboard/internal/router"
	"github.com/userboard/userboard/internal/router/modules"
	"github.com/userboard/userboard/pkg/client"
	"github.com/userboard/userboard/pkg/validation"
)

func newAPI(t *testing.T) *client.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := userapp.NewService(inmemory.NewUserRepository(), logger)
	engine := gin.New()
	reg := router.NewRegistry(engine)
	reg.Add(modules.NewUserModule(handlers.NewUserHandler(svc, logger)))
	reg.RegisterAll()

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return client.New(srv.URL)
}

// runSession feeds scripted input lines to the app and returns everything
// it printed.
func runSession(t *testing.T, api *client.Client, lines ...string) string {
	t.Helper()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out strings.Builder
	app := cli.New(api, in, &out)
	require.NoError(t, app.Run(context.Background()))
	return out.String()
}

func seedAna(t *testing.T, api *client.Client) *client.User {
	t.Helper()
	u, err := api.Create(context.Background(), client.NewUser{
		Username:    "ana",
		PhoneNumber: "1234567890",
		Email:       "ana@x.com",
		Address: client.Address{
			Street: "1 Rd", City: "X", Zip: "00000",
			Geo: client.GeoPoint{Lat: 1, Lng: 2},
		},
	})
	require.NoError(t, err)
	return u
}

func TestListViewEmptyState(t *testing.T) {
	api := newAPI(t)

	out := runSession(t, api, "q")
	assert.Contains(t, out, "Loading users...")
	assert.Contains(t, out, "No users found. Try creating one!")
}

func TestListViewErrorAndRetryPrompt(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close() // unreachable backend
	api := client.New(srv.URL)

	out := runSession(t, api, "q")
	assert.Contains(t, out, "Failed to load user list.")
	assert.NotContains(t, out, "== Users ==")
}

func TestCreateViewSubmits(t *testing.T) {
	api := newAPI(t)

	out := runSession(t, api,
		"c",
		"ana", "ANA@x.com", "1234567890", "Acme",
		"1 Rd", "X", "00000", "1", "2",
		"s",
		"q",
	)
	assert.Contains(t, out, "== Create User ==")
	assert.Contains(t, out, "User created successfully!")
	// list refreshed after create, with the server-normalized email
	assert.Contains(t, out, "ana@x.com")

	users, err := api.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "ana@x.com", users[0].Email)
	assert.Equal(t, 1.0, users[0].Address.Geo.Lat)
}

func TestCreateViewPresenceCheckIsLocal(t *testing.T) {
	api := newAPI(t)

	// submit with everything empty; input then ends, which backs out
	out := runSession(t, api,
		"c",
		"", "", "", "", "", "", "", "", "",
		"s",
	)
	assert.Contains(t, out, "Username and email are required.")

	users, err := api.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users, "nothing was sent to the server")
}

func TestCreateViewServerRejection(t *testing.T) {
	api := newAPI(t)

	// passes the local presence check, fails server-side validation
	out := runSession(t, api,
		"c",
		"ana", "ana@x.com", "123", "",
		"", "", "", "", "",
		"s",
	)
	assert.Contains(t, out, "Error creating user. Please try again.")
}

func TestDetailViewEditSave(t *testing.T) {
	api := newAPI(t)
	seedAna(t, api)

	out := runSession(t, api,
		"1",
		"e",
		"", "", "", "", // username, email, phone, company unchanged
		"", "Y", "", // street kept, city changed, zip kept
		"", "", // geo kept
		"s",
		"b",
		"q",
	)
	assert.Contains(t, out, "== Profile ==")
	assert.Contains(t, out, "Profile updated successfully!")

	users, err := api.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Y", users[0].Address.City)
	assert.Equal(t, "1 Rd", users[0].Address.Street)
	assert.Equal(t, client.GeoPoint{Lat: 1, Lng: 2}, users[0].Address.Geo)
}

func TestDetailViewCancelDiscardsEdits(t *testing.T) {
	api := newAPI(t)
	seedAna(t, api)

	out := runSession(t, api,
		"1",
		"e",
		"zed", "", "", "",
		"", "", "",
		"", "",
		"c", // cancel, discard local edits
		"b",
		"q",
	)
	assert.NotContains(t, out, "Profile updated successfully!")

	users, err := api.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ana", users[0].Username)
}

func TestListViewDeleteWithConfirmation(t *testing.T) {
	api := newAPI(t)
	seedAna(t, api)

	out := runSession(t, api,
		"d 1",
		"y",
		"q",
	)
	assert.Contains(t, out, `Delete "ana"?`)
	assert.Contains(t, out, "User deleted successfully!")
	assert.Contains(t, out, "No users found. Try creating one!")

	users, err := api.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestListViewDeleteDeclined(t *testing.T) {
	api := newAPI(t)
	seedAna(t, api)

	out := runSession(t, api,
		"d 1",
		"n",
		"q",
	)
	assert.NotContains(t, out, "User deleted successfully!")

	users, err := api.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
