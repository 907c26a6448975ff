package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"intranet/internal/domain/employees"
)

type fakeCredentialStore struct {
	employee employees.Employee
	hash     string
}

func (f *fakeCredentialStore) GetByEmail(ctx context.Context, email string) (employees.Employee, error) {
	if email != f.employee.Email {
		return employees.Employee{}, errors.New("not found")
	}
	return f.employee, nil
}

func (f *fakeCredentialStore) PasswordHash(ctx context.Context, id string) (string, error) {
	return f.hash, nil
}

func testStore(t *testing.T, active bool) *fakeCredentialStore {
	t.Helper()
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return &fakeCredentialStore{
		employee: employees.Employee{
			ID:      "emp-1",
			Email:   "ana@acme.mx",
			Role:    employees.RoleAdmin,
			IsAdmin: true,
			Active:  active,
		},
		hash: hash,
	}
}

func TestLoginIssuesParsableToken(t *testing.T) {
	svc := NewService(testStore(t, true), "test-secret")

	sess, err := svc.Login(context.Background(), "ana@acme.mx", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := ParseToken("test-secret", sess.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Subject != "emp-1" || claims.Email != "ana@acme.mx" {
		t.Fatalf("claims = %+v", claims)
	}
	if !claims.IsAdmin || claims.Role != employees.RoleAdmin {
		t.Fatalf("role claims = %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewService(testStore(t, true), "test-secret")

	if _, err := svc.Login(context.Background(), "ana@acme.mx", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewService(testStore(t, true), "test-secret")

	if _, err := svc.Login(context.Background(), "nobody@acme.mx", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginInactiveEmployee(t *testing.T) {
	svc := NewService(testStore(t, false), "test-secret")

	if _, err := svc.Login(context.Background(), "ana@acme.mx", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", "emp-1", "ana@acme.mx", "usuario", false, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken("secret-b", token); err == nil {
		t.Fatal("expected parse failure with mismatched secret")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("secret", "emp-1", "ana@acme.mx", "usuario", false, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected parse failure for expired token")
	}
}
