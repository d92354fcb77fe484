package app

import (
	"errors"
	"testing"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

func signGatewayToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token error: %v", err)
	}
	return token
}

func parseGatewayClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not a map")
	}
	return claims
}

func stringClaim(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	value, ok := claims[key].(string)
	if !ok {
		t.Fatalf("claim %s missing or not a string", key)
	}
	return value
}

func TestVerifyDeposit(t *testing.T) {
	svc := NewGatewayService("test-secret", "gateway")
	token := signGatewayToken(t, "test-secret", jwt.MapClaims{
		"iss":  "gateway",
		"sub":  "user-1",
		"act":  GatewayActionDeposit,
		"amt":  500,
		"txid": "tx-42",
	})

	claim, err := svc.VerifyDeposit(token)
	if err != nil {
		t.Fatalf("verify deposit error: %v", err)
	}
	if claim.UserID != "user-1" {
		t.Fatalf("user = %s, want user-1", claim.UserID)
	}
	if claim.Amount != 500 {
		t.Fatalf("amount = %d, want 500", claim.Amount)
	}
	if claim.TxID != "tx-42" {
		t.Fatalf("txid = %s, want tx-42", claim.TxID)
	}
}

func TestVerifyDepositRejectsForgedAndMismatchedTokens(t *testing.T) {
	svc := NewGatewayService("test-secret", "gateway")
	base := jwt.MapClaims{
		"iss":  "gateway",
		"sub":  "user-1",
		"act":  GatewayActionDeposit,
		"amt":  500,
		"txid": "tx-42",
	}

	cases := []struct {
		name  string
		token string
	}{
		{"wrong secret", signGatewayToken(t, "other-secret", base)},
		{"wrong issuer", signGatewayToken(t, "test-secret", jwt.MapClaims{
			"iss": "someone-else", "sub": "user-1", "act": GatewayActionDeposit, "amt": 500, "txid": "tx-42",
		})},
		{"wrong action", signGatewayToken(t, "test-secret", jwt.MapClaims{
			"iss": "gateway", "sub": "user-1", "act": GatewayActionWithdraw, "amt": 500, "txid": "tx-42",
		})},
		{"garbage", "not-a-token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.VerifyDeposit(tc.token); !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("error = %v, want ErrUnauthorized", err)
			}
		})
	}
}

func TestVerifyDepositRejectsUnsignedToken(t *testing.T) {
	svc := NewGatewayService("test-secret", "gateway")
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"iss": "gateway", "sub": "user-1", "act": GatewayActionDeposit, "amt": 500, "txid": "tx-42",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign unsigned token error: %v", err)
	}

	if _, err := svc.VerifyDeposit(token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
}

func TestVerifyDepositRejectsMalformedClaims(t *testing.T) {
	svc := NewGatewayService("test-secret", "gateway")
	cases := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"missing user", jwt.MapClaims{"iss": "gateway", "act": GatewayActionDeposit, "amt": 500, "txid": "tx-42"}},
		{"missing txid", jwt.MapClaims{"iss": "gateway", "sub": "user-1", "act": GatewayActionDeposit, "amt": 500}},
		{"zero amount", jwt.MapClaims{"iss": "gateway", "sub": "user-1", "act": GatewayActionDeposit, "amt": 0, "txid": "tx-42"}},
		{"negative amount", jwt.MapClaims{"iss": "gateway", "sub": "user-1", "act": GatewayActionDeposit, "amt": -5, "txid": "tx-42"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.VerifyDeposit(signGatewayToken(t, "test-secret", tc.claims)); err == nil {
				t.Fatal("expected error for malformed claims")
			}
		})
	}
}

func TestSignWithdrawal(t *testing.T) {
	secret := "test-secret"
	svc := NewGatewayService(secret, "gateway")

	tokenString, err := svc.SignWithdrawal("user-1", 250)
	if err != nil {
		t.Fatalf("sign withdrawal error: %v", err)
	}

	claims := parseGatewayClaims(t, tokenString, secret)
	if got := stringClaim(t, claims, "iss"); got != "gateway" {
		t.Fatalf("iss = %s, want gateway", got)
	}
	if got := stringClaim(t, claims, "sub"); got != "user-1" {
		t.Fatalf("sub = %s, want user-1", got)
	}
	if got := stringClaim(t, claims, "act"); got != GatewayActionWithdraw {
		t.Fatalf("act = %s, want %s", got, GatewayActionWithdraw)
	}
	if amt, _ := claims["amt"].(float64); int64(amt) != 250 {
		t.Fatalf("amt = %v, want 250", claims["amt"])
	}
	if stringClaim(t, claims, "txid") == "" {
		t.Fatal("txid missing")
	}
	exp, _ := claims["exp"].(float64)
	if int64(exp) <= time.Now().Unix() {
		t.Fatalf("exp = %v, want a future timestamp", claims["exp"])
	}
}

func TestSignWithdrawalValidatesInput(t *testing.T) {
	svc := NewGatewayService("secret", "gateway")
	if _, err := svc.SignWithdrawal("", 100); err == nil {
		t.Fatal("expected error for empty user")
	}
	if _, err := svc.SignWithdrawal("user-1", 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("error = %v, want ErrInvalidAmount", err)
	}

	unconfigured := NewGatewayService("", "")
	if _, err := unconfigured.SignWithdrawal("user-1", 100); err == nil {
		t.Fatal("expected error for incomplete gateway config")
	}
	if _, err := unconfigured.VerifyDeposit("anything"); err == nil {
		t.Fatal("expected error for incomplete gateway config")
	}
}
