package users

import (
	"context"
	"fmt"
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shopmart-io/shopmart-backend/pkg/auth"
	"github.com/shopmart-io/shopmart-backend/pkg/config"
	"github.com/shopmart-io/shopmart-backend/pkg/enums"
	pkgerrors "github.com/shopmart-io/shopmart-backend/pkg/errors"
	"github.com/shopmart-io/shopmart-backend/pkg/types"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("SHOPMART_DB_DSN")
	if dsn == "" {
		t.Skip("SHOPMART_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}

func testConfigs() (config.JWTConfig, config.PasswordConfig) {
	jwtCfg := config.JWTConfig{Secret: "test-secret", Issuer: "shopmart-test", ExpirationMinutes: 15}
	pwCfg := config.PasswordConfig{
		ArgonMemoryKB:    32768,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
	return jwtCfg, pwCfg
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Jane.Doe@Example.COM "); got != "jane.doe@example.com" {
		t.Fatalf("unexpected normalization %q", got)
	}
}

func TestRegisterLoginFlow(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	ctx := context.Background()
	jwtCfg, pwCfg := testConfigs()
	svc, err := NewService(NewRepository(tx), jwtCfg, pwCfg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	email := fmt.Sprintf("flow-%d@example.com", os.Getpid())

	result, err := svc.Register(ctx, RegisterInput{
		Name:     "Flow Tester",
		Email:    "  " + email + " ",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.User.Email != email {
		t.Fatalf("expected normalized email %q, got %q", email, result.User.Email)
	}
	if result.User.Role != enums.UserRoleCustomer {
		t.Fatalf("expected customer role, got %s", result.User.Role)
	}
	if result.Token == "" {
		t.Fatal("expected an access token")
	}

	claims, err := auth.ParseAccessToken(jwtCfg, result.Token)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != result.User.ID {
		t.Fatalf("token subject mismatch: %s vs %s", claims.UserID, result.User.ID)
	}

	t.Run("duplicateEmailConflicts", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{Name: "Dup", Email: email, Password: "irrelevant1"})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("loginStampsLastLogin", func(t *testing.T) {
		login, err := svc.Login(ctx, email, "correct-horse")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if login.User.LastLoginAt == nil {
			t.Fatal("expected last_login_at to be set")
		}
	})

	t.Run("wrongPasswordUnauthorized", func(t *testing.T) {
		_, err := svc.Login(ctx, email, "wrong-password")
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})

	t.Run("unknownEmailSameMessage", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "whatever1")
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
		if typed.Message() != "invalid email or password" {
			t.Fatalf("unexpected message %q", typed.Message())
		}
	})

	t.Run("profileRoundTrip", func(t *testing.T) {
		phone := "555-0100"
		addresses := types.AddressList{{
			Street:  "1 Main St",
			City:    "Springfield",
			State:   "IL",
			ZipCode: "62701",
			Country: "US",
		}}
		updated, err := svc.UpdateProfile(ctx, result.User.ID, UpdateProfileInput{
			Phone:     &phone,
			Addresses: &addresses,
		})
		if err != nil {
			t.Fatalf("update profile: %v", err)
		}
		if updated.Phone == nil || *updated.Phone != phone {
			t.Fatalf("expected phone saved, got %v", updated.Phone)
		}
		if len(updated.Addresses) != 1 {
			t.Fatalf("expected 1 address, got %d", len(updated.Addresses))
		}
	})

	t.Run("incompleteAddressRejected", func(t *testing.T) {
		addresses := types.AddressList{{City: "Nowhere"}}
		_, err := svc.UpdateProfile(ctx, result.User.ID, UpdateProfileInput{Addresses: &addresses})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestRegisterValidation(t *testing.T) {
	conn := openTestDB(t)
	tx := conn.Begin()
	defer tx.Rollback()

	jwtCfg, pwCfg := testConfigs()
	svc, err := NewService(NewRepository(tx), jwtCfg, pwCfg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"missingName", RegisterInput{Email: "a@b.co", Password: "long-enough"}},
		{"badEmail", RegisterInput{Name: "A", Email: "not-an-email", Password: "long-enough"}},
		{"shortPassword", RegisterInput{Name: "A", Email: "a@b.co", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.input)
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
