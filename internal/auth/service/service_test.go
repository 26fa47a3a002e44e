package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"nexus_backend/internal/auth/token"
)

type testAuthConfig struct{}

func (testAuthConfig) GetJWTAccessSecret() string        { return "test-access-secret" }
func (testAuthConfig) GetJWTRefreshSecret() string       { return "test-refresh-secret" }
func (testAuthConfig) GetAccessTokenTTL() time.Duration  { return 15 * time.Minute }
func (testAuthConfig) GetRefreshTokenTTL() time.Duration { return 720 * time.Hour }
func (testAuthConfig) GetInviteTokenTTL() time.Duration  { return 72 * time.Hour }

func TestSignJWTClaims(t *testing.T) {
	svc := &Service{cfg: testAuthConfig{}}
	userID := uuid.New()

	signed, err := svc.signJWT(userID, []string{"admin", "sales"})
	if err != nil {
		t.Fatalf("signJWT: %v", err)
	}

	parsed, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-access-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("claims are %T, want MapClaims", parsed.Claims)
	}
	if claims["sub"] != userID.String() {
		t.Errorf("sub = %v, want %s", claims["sub"], userID)
	}
	if claims["type"] != "access" {
		t.Errorf("type = %v, want access", claims["type"])
	}

	roles, ok := claims["roles"].([]interface{})
	if !ok || len(roles) != 2 {
		t.Fatalf("roles = %v, want two entries", claims["roles"])
	}
	if roles[0] != "admin" || roles[1] != "sales" {
		t.Errorf("roles = %v, want [admin sales]", roles)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("exp claim: %v", err)
	}
	ttl := time.Until(exp.Time)
	if ttl < 14*time.Minute || ttl > 15*time.Minute {
		t.Errorf("access token TTL %v, want about 15m", ttl)
	}
}

func TestSignJWTRejectsWrongSecret(t *testing.T) {
	svc := &Service{cfg: testAuthConfig{}}

	signed, err := svc.signJWT(uuid.New(), []string{"admin"})
	if err != nil {
		t.Fatalf("signJWT: %v", err)
	}

	_, err = jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("some-other-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err == nil {
		t.Fatal("token verified with the wrong secret")
	}
}

func TestRefreshTokenHashRoundTrip(t *testing.T) {
	raw, err := token.GenerateRandomToken(refreshTokenBytes)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if raw == "" {
		t.Fatal("empty refresh token")
	}

	first := token.HashSHA256(raw)
	second := token.HashSHA256(raw)
	if first != second {
		t.Error("hashing the same token twice gave different digests")
	}
	if first == token.HashSHA256(raw+"x") {
		t.Error("different tokens hashed to the same digest")
	}
}
