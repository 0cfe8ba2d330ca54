package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"

	"github.com/afroforma/roommaster/internal/domain"
	"github.com/afroforma/roommaster/internal/service"
	"github.com/afroforma/roommaster/pkg/auth"
	"github.com/afroforma/roommaster/pkg/config"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      testSecret,
			AccessTokenTTL: time.Hour,
		},
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		t.Fatalf("CreateHash: %v", err)
	}
	return hash
}

func TestLoginSuccess(t *testing.T) {
	tenants := newFakeTenantRepo()
	users := newFakeUserRepo()
	demo := tenants.add("demo", "Demo Hotel")
	admin := users.add(demo.ID, "admin@demo.tld", mustHash(t, "Password123!"), domain.RoleAdmin, true)

	svc := service.NewAuthService(tenants, users, testConfig())

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{
		Tenant:   "demo",
		Email:    "Admin@Demo.TLD", // mixed case normalizes
		Password: "Password123!",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}

	claims, err := auth.Parse(resp.AccessToken, testSecret)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Sub != admin.ID {
		t.Errorf("sub = %q, want %q", claims.Sub, admin.ID)
	}
	if claims.TenantID != demo.ID {
		t.Errorf("tenant claim = %q, want %q", claims.TenantID, demo.ID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("role claim = %q, want %q", claims.Role, domain.RoleAdmin)
	}
	if resp.User.TenantID != demo.ID {
		t.Errorf("user info tenant = %q, want %q", resp.User.TenantID, demo.ID)
	}
}

func TestLoginByTenantID(t *testing.T) {
	tenants := newFakeTenantRepo()
	users := newFakeUserRepo()
	demo := tenants.add("demo", "Demo Hotel")
	users.add(demo.ID, "admin@demo.tld", mustHash(t, "Password123!"), domain.RoleAdmin, true)

	svc := service.NewAuthService(tenants, users, testConfig())

	// The tenant field accepts the raw id as well as the slug.
	resp, err := svc.Login(context.Background(), &domain.LoginRequest{
		Tenant:   demo.ID,
		Email:    "admin@demo.tld",
		Password: "Password123!",
	})
	if err != nil {
		t.Fatalf("Login by id: %v", err)
	}
	if resp.User.TenantID != demo.ID {
		t.Errorf("tenant = %q, want %q", resp.User.TenantID, demo.ID)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	tenants := newFakeTenantRepo()
	users := newFakeUserRepo()
	demo := tenants.add("demo", "Demo Hotel")
	other := tenants.add("other", "Other Hotel")
	users.add(demo.ID, "admin@demo.tld", mustHash(t, "Password123!"), domain.RoleAdmin, true)
	users.add(demo.ID, "gone@demo.tld", mustHash(t, "Password123!"), domain.RoleStaff, false)

	svc := service.NewAuthService(tenants, users, testConfig())

	tests := []struct {
		name  string
		req   domain.LoginRequest
		wantK domain.ErrorKind
		// every rejection must carry one of exactly two messages so the
		// response never distinguishes bad-user from bad-password
		wantMsg string
	}{
		{
			name:    "unknown tenant",
			req:     domain.LoginRequest{Tenant: "ghost", Email: "admin@demo.tld", Password: "Password123!"},
			wantK:   domain.KindUnauthenticated,
			wantMsg: "unknown tenant",
		},
		{
			name:    "wrong password",
			req:     domain.LoginRequest{Tenant: "demo", Email: "admin@demo.tld", Password: "not-the-password"},
			wantK:   domain.KindUnauthenticated,
			wantMsg: "invalid credentials",
		},
		{
			name:    "no such user",
			req:     domain.LoginRequest{Tenant: "demo", Email: "nobody@demo.tld", Password: "Password123!"},
			wantK:   domain.KindUnauthenticated,
			wantMsg: "invalid credentials",
		},
		{
			name:    "user from another tenant",
			req:     domain.LoginRequest{Tenant: other.Slug, Email: "admin@demo.tld", Password: "Password123!"},
			wantK:   domain.KindUnauthenticated,
			wantMsg: "invalid credentials",
		},
		{
			name:    "deactivated user",
			req:     domain.LoginRequest{Tenant: "demo", Email: "gone@demo.tld", Password: "Password123!"},
			wantK:   domain.KindUnauthenticated,
			wantMsg: "invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			resp, err := svc.Login(context.Background(), &req)
			if resp != nil {
				t.Fatal("expected nil response")
			}
			if got := domain.KindOf(err); got != tt.wantK {
				t.Errorf("kind = %v, want %v", got, tt.wantK)
			}
			if err == nil || err.Error() != tt.wantMsg {
				t.Errorf("message = %v, want %q", err, tt.wantMsg)
			}
		})
	}
}
