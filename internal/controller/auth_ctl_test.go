package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"store_rating_v1/internal/api/dto"
	"store_rating_v1/internal/model"
)

func TestAuthController_Register(t *testing.T) {
	env := newCtlEnv(t)
	env.seedUser(t, "Existing Account Holder", "taken@example.com", model.RoleUser)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		wantField  string
	}{
		{
			name: "valid",
			body: dto.RegisterRequest{
				Name: "Alice Wonderland Smith", Email: "Alice@Example.com",
				Password: "Passw0rd!", Address: "12 Rabbit Hole",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "name too short",
			body:       dto.RegisterRequest{Name: "Al", Email: "al@example.com", Password: "Passw0rd!"},
			wantStatus: http.StatusBadRequest,
			wantField:  "name",
		},
		{
			name:       "weak password",
			body:       dto.RegisterRequest{Name: "Bob Builder The Second", Email: "bob@example.com", Password: "password"},
			wantStatus: http.StatusBadRequest,
			wantField:  "password",
		},
		{
			name:       "bad email",
			body:       dto.RegisterRequest{Name: "Bob Builder The Second", Email: "not-an-email", Password: "Passw0rd!"},
			wantStatus: http.StatusBadRequest,
			wantField:  "email",
		},
		{
			name:       "malformed json",
			body:       "{",
			wantStatus: http.StatusBadRequest,
			wantField:  "body",
		},
		{
			name:       "email taken",
			body:       dto.RegisterRequest{Name: "Another Account Holder", Email: "TAKEN@example.com", Password: "Passw0rd!"},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/api/auth/register", "", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantField != "" {
				var resp dto.ErrorResponse
				decode(t, w, &resp)
				if !hasFieldError(resp, tt.wantField) {
					t.Errorf("errors = %+v, want field %s", resp.Errors, tt.wantField)
				}
			}
		})
	}

	t.Run("response shape", func(t *testing.T) {
		w := env.do(http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
			Name: "Carol Danvers Marvellous", Email: "carol@example.com", Password: "Passw0rd!",
		})
		var resp dto.AuthResponse
		decode(t, w, &resp)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "user", resp.User.Role)
		assert.NotContains(t, w.Body.String(), "password")
	})
}

func TestAuthController_Login(t *testing.T) {
	env := newCtlEnv(t)
	env.seedUser(t, "Login Test Account Name", "login@example.com", model.RoleUser)

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{"valid", dto.LoginRequest{Email: "login@example.com", Password: testPassword}, http.StatusOK},
		{"email case and space", dto.LoginRequest{Email: "  LOGIN@example.com ", Password: testPassword}, http.StatusOK},
		{"wrong password", dto.LoginRequest{Email: "login@example.com", Password: "Wrong123!"}, http.StatusUnauthorized},
		{"unknown email", dto.LoginRequest{Email: "ghost@example.com", Password: testPassword}, http.StatusUnauthorized},
		{"missing fields", map[string]string{}, http.StatusUnauthorized},
		{"empty body", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/api/auth/login", "", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestAuthController_MeAndLogout(t *testing.T) {
	env := newCtlEnv(t)
	user, token := env.seedUser(t, "Session Test Account Name", "session@example.com", model.RoleUser)

	w := env.do(http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d, want %d", w.Code, http.StatusOK)
	}
	var me dto.MeResponse
	decode(t, w, &me)
	assert.Equal(t, user.ID, me.User.ID)
	assert.Equal(t, "session@example.com", me.User.Email)

	if w := env.do(http.MethodPost, "/api/auth/logout", token, nil); w.Code != http.StatusOK {
		t.Fatalf("logout status = %d, want %d", w.Code, http.StatusOK)
	}
	if w := env.do(http.MethodGet, "/api/auth/me", token, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("me after logout status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthController_ChangePassword(t *testing.T) {
	env := newCtlEnv(t)
	_, token := env.seedUser(t, "Password Test Account Name", "pw@example.com", model.RoleUser)

	w := env.do(http.MethodPut, "/api/auth/password", token, dto.ChangePasswordRequest{
		CurrentPassword: "Nope1234!", NewPassword: "NewPass1!",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong current: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	w = env.do(http.MethodPut, "/api/auth/password", token, dto.ChangePasswordRequest{
		CurrentPassword: testPassword, NewPassword: "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("weak new password: status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	w = env.do(http.MethodPut, "/api/auth/password", token, dto.ChangePasswordRequest{
		CurrentPassword: testPassword, NewPassword: "NewPass1!",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("change: status = %d, want %d, body = %s", w.Code, http.StatusOK, w.Body.String())
	}

	if w := env.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "pw@example.com", Password: testPassword}); w.Code != http.StatusUnauthorized {
		t.Errorf("old password login: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if w := env.do(http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "pw@example.com", Password: "NewPass1!"}); w.Code != http.StatusOK {
		t.Errorf("new password login: status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestAuthController_Unauthenticated(t *testing.T) {
	env := newCtlEnv(t)

	tests := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"garbage token", "not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodGet, "/api/auth/me", tt.token, nil)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
		})
	}
}
