package session

import (
	"testing"

	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	nameIDClaim  = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
	roleURIClaim = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestResolveIdentityMalformedTokens(t *testing.T) {
	cases := map[string]string{
		"empty":             "",
		"not a jwt":         "garbage",
		"two segments":      "abc.def",
		"bad base64":        "abc.!!!.def",
		"non-json payload":  "eyJhbGciOiJIUzI1NiJ9.bm90anNvbg.sig",
		"header only":       "eyJhbGciOiJIUzI1NiJ9",
		"trailing segments": "a.b.c.d",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			if got := ResolveIdentity(token); got != nil {
				t.Fatalf("expected nil identity, got %+v", got)
			}
		})
	}
}

func TestResolveIdentityRole(t *testing.T) {
	t.Run("long-form role URI", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"sub": "u1", roleURIClaim: "Vendor"})
		ident := ResolveIdentity(token)
		if ident == nil || ident.Role != "Vendor" {
			t.Fatalf("expected role Vendor, got %+v", ident)
		}
	})

	t.Run("long-form wins over short", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{roleURIClaim: "Vendor", "role": "User"})
		if ident := ResolveIdentity(token); ident.Role != "Vendor" {
			t.Fatalf("expected role Vendor, got %q", ident.Role)
		}
	})

	t.Run("short role claim", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"role": "Customer"})
		if ident := ResolveIdentity(token); ident.Role != "Customer" {
			t.Fatalf("expected role Customer, got %q", ident.Role)
		}
	})

	t.Run("no role claim defaults to User", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"sub": "u1"})
		if ident := ResolveIdentity(token); ident.Role != "User" {
			t.Fatalf("expected default role User, got %q", ident.Role)
		}
	})
}

func TestResolveIdentityID(t *testing.T) {
	t.Run("long-form nameidentifier wins", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{nameIDClaim: "n1", "sub": "s1", "id": "i1"})
		if ident := ResolveIdentity(token); ident.ID != "n1" {
			t.Fatalf("expected id n1, got %q", ident.ID)
		}
	})

	t.Run("sub before id", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"sub": "s1", "id": "i1"})
		if ident := ResolveIdentity(token); ident.ID != "s1" {
			t.Fatalf("expected id s1, got %q", ident.ID)
		}
	})

	t.Run("id as last resort", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"id": "i1"})
		if ident := ResolveIdentity(token); ident.ID != "i1" {
			t.Fatalf("expected id i1, got %q", ident.ID)
		}
	})
}

func TestResolveIdentityEmail(t *testing.T) {
	t.Run("email claim", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"sub": "s1", "email": "a@b.test"})
		if ident := ResolveIdentity(token); ident.Email != "a@b.test" {
			t.Fatalf("expected email a@b.test, got %q", ident.Email)
		}
	})

	t.Run("falls back to sub", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"sub": "a@b.test"})
		if ident := ResolveIdentity(token); ident.Email != "a@b.test" {
			t.Fatalf("expected email a@b.test, got %q", ident.Email)
		}
	})
}

func TestResolveIdentityVendorID(t *testing.T) {
	for _, key := range []string{"VendorId", "vendorId", "vendorID"} {
		t.Run(key, func(t *testing.T) {
			token := signToken(t, jwt.MapClaims{"sub": "v1", key: "42"})
			ident := ResolveIdentity(token)
			if ident.VendorID == nil || *ident.VendorID != "42" {
				t.Fatalf("expected vendor id 42, got %+v", ident.VendorID)
			}
		})
	}

	t.Run("numeric claim", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"sub": "v1", "VendorId": 7})
		ident := ResolveIdentity(token)
		if ident.VendorID == nil || *ident.VendorID != "7" {
			t.Fatalf("expected vendor id 7, got %+v", ident.VendorID)
		}
	})

	t.Run("absent means nil", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"sub": "u1"})
		if ident := ResolveIdentity(token); ident.VendorID != nil {
			t.Fatalf("expected nil vendor id, got %q", *ident.VendorID)
		}
	})
}

func TestIdentityRoleHelpers(t *testing.T) {
	if !(&Identity{Role: "User"}).IsCustomer() {
		t.Error("User should be a customer role")
	}
	if !(&Identity{Role: "Customer"}).IsCustomer() {
		t.Error("Customer should be a customer role")
	}
	if (&Identity{Role: "Vendor"}).IsCustomer() {
		t.Error("Vendor should not be a customer role")
	}
	if !(&Identity{Role: "Vendor"}).IsVendor() {
		t.Error("Vendor should be a vendor role")
	}
	var nilIdent *Identity
	if nilIdent.IsVendor() || nilIdent.IsCustomer() {
		t.Error("nil identity has no role")
	}
}
