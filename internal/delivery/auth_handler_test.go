package delivery

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

func setupAuthRouter(t *testing.T, uc domain.UserUseCase) (*testRouterBundle, *AuthHandler) {
	t.Helper()
	bundle := newRouterBundle(t)
	handler := NewAuthHandler(uc, testLogger())
	handler.RegisterRoutes(bundle.api, bundle.requireAuth)
	return bundle, handler
}

func TestSignup_Success(t *testing.T) {
	uc := &stubUserUseCase{
		registerFn: func(name, email, password string) (*domain.User, error) {
			assert.Equal(t, "Eun Woo", name)
			return &domain.User{ID: 7, Name: name, Email: email, Role: domain.RoleCustomer}, nil
		},
	}
	bundle, _ := setupAuthRouter(t, uc)

	recorder := doJSON(t, bundle.router, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Eun Woo",
		"email":    "eunwoo@example.com",
		"password": "Sup3rSecret",
	})

	require.Equal(t, http.StatusCreated, recorder.Code)
	resp := decodeResponse(t, recorder)
	assert.Equal(t, "Success", resp.Status)
	assert.EqualValues(t, 7, dataAsMap(t, resp)["id"])
}

func TestSignup_ValidationErrorMapsToBadRequest(t *testing.T) {
	uc := &stubUserUseCase{
		registerFn: func(name, email, password string) (*domain.User, error) {
			return nil, errors.New("password must be at least 8 characters long")
		},
	}
	bundle, _ := setupAuthRouter(t, uc)

	recorder := doJSON(t, bundle.router, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "x", "email": "x@example.com", "password": "weak",
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	resp := decodeResponse(t, recorder)
	assert.Equal(t, "Fail", resp.Status)
	assert.Equal(t, "password must be at least 8 characters long", resp.Message)
}

func TestSignup_DuplicateEmailMapsToConflict(t *testing.T) {
	uc := &stubUserUseCase{
		registerFn: func(name, email, password string) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	bundle, _ := setupAuthRouter(t, uc)

	recorder := doJSON(t, bundle.router, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "x", "email": "taken@example.com", "password": "Sup3rSecret",
	})

	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestLogin_ReturnsTokenAndUser(t *testing.T) {
	uc := &stubUserUseCase{
		authenticateFn: func(email, password string) (*domain.AuthResponse, error) {
			return &domain.AuthResponse{
				Authenticated: true,
				Token:         "jwt-token",
				User:          domain.UserProfile{ID: 7, Name: "Eun Woo", Email: email, Role: domain.RoleCustomer},
			}, nil
		},
	}
	bundle, _ := setupAuthRouter(t, uc)

	recorder := doJSON(t, bundle.router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "eunwoo@example.com", "password": "Sup3rSecret",
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	data := dataAsMap(t, decodeResponse(t, recorder))
	assert.Equal(t, "jwt-token", data["token"])
	user, ok := data["user"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 7, user["id"])
}

func TestLogin_BadCredentials(t *testing.T) {
	uc := &stubUserUseCase{
		authenticateFn: func(email, password string) (*domain.AuthResponse, error) {
			return &domain.AuthResponse{Authenticated: false, ErrorMessage: domain.ErrInvalidCredentials.Error()}, nil
		},
	}
	bundle, _ := setupAuthRouter(t, uc)

	recorder := doJSON(t, bundle.router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "eunwoo@example.com", "password": "wrong",
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	resp := decodeResponse(t, recorder)
	assert.Equal(t, "Fail", resp.Status)
	assert.Equal(t, domain.ErrInvalidCredentials.Error(), resp.Message)
}

func TestMe_RequiresToken(t *testing.T) {
	bundle, _ := setupAuthRouter(t, &stubUserUseCase{})

	recorder := doJSON(t, bundle.router, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = doJSON(t, bundle.router, http.MethodGet, "/api/auth/me", "Bearer not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestMe_ReturnsProfileOfTokenOwner(t *testing.T) {
	uc := &stubUserUseCase{
		getProfileFn: func(id int64) (*domain.UserProfile, error) {
			assert.Equal(t, int64(7), id, "id must come from the token, not the request")
			return &domain.UserProfile{ID: id, Name: "Eun Woo", Email: "eunwoo@example.com", Role: domain.RoleCustomer}, nil
		},
	}
	bundle, _ := setupAuthRouter(t, uc)

	bearer := bearerFor(t, bundle.tokens, 7, domain.RoleCustomer)
	recorder := doJSON(t, bundle.router, http.MethodGet, "/api/auth/me", bearer, nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	data := dataAsMap(t, decodeResponse(t, recorder))
	assert.EqualValues(t, 7, data["id"])
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	uc := &stubUserUseCase{
		changePasswordFn: func(id int64, currentPassword, newPassword string) error {
			return errors.New("current password is incorrect")
		},
	}
	bundle, _ := setupAuthRouter(t, uc)

	bearer := bearerFor(t, bundle.tokens, 7, domain.RoleCustomer)
	recorder := doJSON(t, bundle.router, http.MethodPut, "/api/auth/me/password", bearer, map[string]string{
		"currentPassword": "wrong", "newPassword": "An0therSecret",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
