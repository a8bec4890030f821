package tokenx

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeToken(payload string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	return header + "." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig"
}

func TestDecode_WellFormed(t *testing.T) {
	claims, err := Decode(makeToken(`{"_id":"u1","email":"a@b.com"}`))
	require.NoError(t, err)

	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, map[string]any{"_id": "u1", "email": "a@b.com"}, claims.Raw)

	id, ok := claims.Identity()
	require.True(t, ok)
	assert.Equal(t, "u1", id.ID)
	assert.Equal(t, "a@b.com", id.Email)
}

func TestDecode_RealSignedToken(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"_id":        "6650c1",
		"isBusiness": true,
		"isAdmin":    false,
		"iat":        time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC).Unix(),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)

	claims, err := Decode(signed)
	require.NoError(t, err)

	assert.Equal(t, "6650c1", claims.UserID)
	assert.True(t, claims.IsBusiness)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, 2026, claims.IssuedAt.Year())
}

func TestDecode_StandardBase64Payload(t *testing.T) {
	// "??>" encodes to "Pz8+" in std base64 and "Pz8-" in base64url.
	payload := base64.StdEncoding.EncodeToString([]byte(`{"_id":"u2","email":"??>"}`))
	claims, err := Decode("h." + payload + ".s")
	require.NoError(t, err)
	assert.Equal(t, "??>", claims.Email)
}

func TestDecode_PaddedPayload(t *testing.T) {
	payload := base64.URLEncoding.EncodeToString([]byte(`{"_id":"u3"}`))
	claims, err := Decode("h." + payload + ".s")
	require.NoError(t, err)
	assert.Equal(t, "u3", claims.UserID)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"one segment", "abc"},
		{"two segments", "a.b"},
		{"four segments", "a.b.c.d"},
		{"empty payload", "a..c"},
		{"invalid base64", "a.!!!notbase64!!!.c"},
		{"invalid json", makeToken(`{"_id":`)},
		{"json array", makeToken(`["u1"]`)},
		{"json null", makeToken(`null`)},
		{"json string", makeToken(`"u1"`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var claims *Claims
			var err error
			require.NotPanics(t, func() { claims, err = Decode(tt.token) })
			require.ErrorIs(t, err, ErrMalformedToken)
			assert.Nil(t, claims)
		})
	}
}

func TestDecode_ToleratesUnexpectedClaimTypes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantID  string
		wantBiz bool
	}{
		{"string exp", `{"_id":"u1","exp":"soon"}`, "u1", false},
		{"numeric aud", `{"_id":"u1","aud":5}`, "u1", false},
		{"string isBusiness", `{"_id":"u1","isBusiness":"true"}`, "u1", false},
		{"numeric email", `{"_id":"u1","email":7,"isBusiness":true}`, "u1", true},
		{"name not an object", `{"_id":"u1","name":"Ada"}`, "u1", false},
		{"numeric id", `{"_id":42}`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := Decode(makeToken(tt.payload))
			require.NoError(t, err)
			require.NotNil(t, claims)
			assert.Equal(t, tt.wantID, claims.UserID)
			assert.Equal(t, tt.wantBiz, claims.IsBusiness)
			assert.Nil(t, claims.ExpiresAt)
			assert.Nil(t, claims.Name)
			assert.NotEmpty(t, claims.Raw)
		})
	}
}

func TestClaims_IdentityRequiresIdentifier(t *testing.T) {
	claims, err := Decode(makeToken(`{"email":"a@b.com","isBusiness":true}`))
	require.NoError(t, err)

	_, ok := claims.Identity()
	assert.False(t, ok)

	var nilClaims *Claims
	_, ok = nilClaims.Identity()
	assert.False(t, ok)
}

func TestClaims_IdentityCarriesName(t *testing.T) {
	claims, err := Decode(makeToken(`{"_id":"u1","name":{"first":"Ada","last":"Lovelace"},"isAdmin":true}`))
	require.NoError(t, err)

	id, ok := claims.Identity()
	require.True(t, ok)
	assert.Equal(t, "Ada Lovelace", id.Name.Full())
	assert.True(t, id.IsAdmin)
}
