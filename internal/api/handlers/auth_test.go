package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/spacerent/space-rental-backend/internal/domain"
	"github.com/spacerent/space-rental-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authResponse struct {
	User         domain.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(payload))
	require.NoError(t, err)
	return resp
}

func TestAuthHandler_SignUp(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful registration",
			request: map[string]string{
				"email":    "new@example.com",
				"password": "password123",
				"role":     "renter",
				"fullName": "New User",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result authResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, "new@example.com", result.User.Email)
				assert.NotEmpty(t, result.AccessToken)
				assert.NotEmpty(t, result.RefreshToken)
			},
		},
		{
			name: "missing password",
			request: map[string]string{
				"email": "new@example.com",
				"role":  "renter",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid role",
			request: map[string]string{
				"email":    "new@example.com",
				"password": "password123",
				"role":     "super-admin",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email and role",
			request: map[string]string{
				"email":    "taken@example.com",
				"password": "password123",
				"role":     "renter",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("taken@example.com").
					WithRole(domain.RoleRenter).
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			resp := postJSON(t, ts.APIURL("/auth/sign-up"), tt.request)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_SignInAndRefresh(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewUserBuilder().
		WithEmail("flow@example.com").
		WithRole(domain.RoleOwner).
		WithPassword("ownerpassword").
		Build(t, ts.DB.DB)

	// Sign in.
	resp := postJSON(t, ts.APIURL("/auth/sign-in"), map[string]string{
		"email":    "flow@example.com",
		"password": "ownerpassword",
		"role":     "owner",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var signedIn authResponse
	testutil.AssertJSONResponse(t, resp, &signedIn)
	require.NotEmpty(t, signedIn.RefreshToken)

	// Refresh keeps the role and the refresh token.
	resp = postJSON(t, ts.APIURL("/auth/refresh"), map[string]string{
		"refreshToken": signedIn.RefreshToken,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var refreshed authResponse
	testutil.AssertJSONResponse(t, resp, &refreshed)
	assert.Equal(t, domain.RoleOwner, refreshed.User.Role)
	assert.Equal(t, signedIn.RefreshToken, refreshed.RefreshToken)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Revoke, then refresh must fail.
	resp = postJSON(t, ts.APIURL("/auth/revoke"), map[string]string{
		"refreshToken": signedIn.RefreshToken,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, ts.APIURL("/auth/refresh"), map[string]string{
		"refreshToken": signedIn.RefreshToken,
	})
	defer resp.Body.Close()
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "invalid or expired")
}

func TestAuthHandler_SignIn_WrongRole(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewUserBuilder().
		WithEmail("roles@example.com").
		WithRole(domain.RoleRenter).
		WithPassword("somepassword").
		Build(t, ts.DB.DB)

	resp := postJSON(t, ts.APIURL("/auth/sign-in"), map[string]string{
		"email":    "roles@example.com",
		"password": "somepassword",
		"role":     "owner",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuthHandler_AdminSignIn(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewUserBuilder().
		WithEmail("admin@example.com").
		WithRole(domain.RoleAdmin).
		WithPassword("adminpassword").
		Build(t, ts.DB.DB)

	resp := postJSON(t, ts.APIURL("/auth/admin/sign-in"), map[string]string{
		"email":    "admin@example.com",
		"password": "adminpassword",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result authResponse
	testutil.AssertJSONResponse(t, resp, &result)
	assert.Equal(t, domain.RoleAdmin, result.User.Role)
}

func TestAuthHandler_Me(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, accessToken := testutil.NewUserBuilder().
		WithEmail("me@example.com").
		BuildAndAuthenticate(t, ts)

	t.Run("with a valid token", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/auth/me"), nil, accessToken)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result domain.User
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, user.ID, result.ID)
		assert.Equal(t, "me@example.com", result.Email)
	})

	t.Run("without a token", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/auth/me"), nil, "")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
