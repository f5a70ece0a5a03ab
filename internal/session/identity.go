package session

import (
	"encoding/json"
	"strconv"

	jwt "github.com/golang-jwt/jwt/v5"
)

// DefaultRole is assumed when a token carries no role claim at all.
const DefaultRole = "User"

// RoleVendor gates the vendor side of the dashboard.
const RoleVendor = "Vendor"

// Claim aliases per logical field, in priority order. Identity-provider
// tokens use long-form URI keys; plainer issuers use the short names.
var (
	idClaimKeys = []string{
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier",
		"sub",
		"id",
	}
	roleClaimKeys = []string{
		"http://schemas.microsoft.com/ws/2008/06/identity/claims/role",
		"role",
	}
	vendorIDClaimKeys = []string{"VendorId", "vendorId", "vendorID"}
)

// Identity is the client's normalized view of the token's claims. It drives
// which dashboard sections render and how API calls are scoped; it is never
// a security boundary, since the backend re-authorizes every request.
type Identity struct {
	ID       string
	Role     string
	Email    string
	VendorID *string
}

// IsVendor reports whether the vendor navigation and views apply.
func (i *Identity) IsVendor() bool {
	return i != nil && i.Role == RoleVendor
}

// IsCustomer reports whether the customer navigation and views apply.
// "User" and "Customer" are the same tier; issuers disagree on the name.
func (i *Identity) IsCustomer() bool {
	return i != nil && (i.Role == "User" || i.Role == "Customer")
}

// ResolveIdentity decodes the payload of token without verifying its
// signature and normalizes the claims of interest. Verification is the
// backend's job; the client only needs the claims to shape the UI.
//
// It returns nil for an empty token and for anything that cannot be decoded.
// Callers treat nil identically to "anonymous".
func ResolveIdentity(token string) *Identity {
	if token == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	role := firstClaim(claims, roleClaimKeys...)
	if role == "" {
		role = DefaultRole
	}
	email := firstClaim(claims, "email")
	if email == "" {
		email = firstClaim(claims, "sub")
	}

	ident := &Identity{
		ID:    firstClaim(claims, idClaimKeys...),
		Role:  role,
		Email: email,
	}
	if v := firstClaim(claims, vendorIDClaimKeys...); v != "" {
		ident.VendorID = &v
	}
	return ident
}

// firstClaim returns the first present, non-empty claim among keys,
// rendered as a string. Numeric claims (vendor ids in particular) are
// formatted without an exponent.
func firstClaim(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		val, ok := claims[key]
		if !ok {
			continue
		}
		switch v := val.(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case json.Number:
			return v.String()
		}
	}
	return ""
}
