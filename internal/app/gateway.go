package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// GatewayService handles token-contract interop: it verifies signed deposit
// notifications from the chip-token gateway and mints withdrawal vouchers
// the gateway pays out against. Both directions share one HS256 secret and
// issuer pair agreed with the gateway.
type GatewayService struct {
	gatewaySecret string
	gatewayIssuer string
}

const (
	GatewayActionDeposit  = "deposit"
	GatewayActionWithdraw = "withdraw"

	withdrawalVoucherTTL = time.Hour
)

func NewGatewayService(secret, issuer string) *GatewayService {
	return &GatewayService{
		gatewaySecret: secret,
		gatewayIssuer: issuer,
	}
}

// DepositClaim is a verified transfer notification from the gateway.
type DepositClaim struct {
	UserID string
	Amount int64
	TxID   string
}

// VerifyDeposit checks the signature and issuer of a deposit notification
// and extracts its transfer details. Any identity failure maps to
// ErrUnauthorized so callers cannot distinguish forged from misconfigured
// tokens.
func (s *GatewayService) VerifyDeposit(token string) (*DepositClaim, error) {
	if s == nil || s.gatewaySecret == "" || s.gatewayIssuer == "" {
		return nil, fmt.Errorf("gateway config is incomplete")
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.gatewaySecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthorized
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnauthorized
	}
	if iss, _ := claims["iss"].(string); iss != s.gatewayIssuer {
		return nil, ErrUnauthorized
	}
	if act, _ := claims["act"].(string); act != GatewayActionDeposit {
		return nil, ErrUnauthorized
	}

	userID, _ := claims["sub"].(string)
	txID, _ := claims["txid"].(string)
	amount, _ := claims["amt"].(float64)
	if userID == "" || txID == "" || amount <= 0 {
		return nil, fmt.Errorf("deposit notification is malformed")
	}

	return &DepositClaim{
		UserID: userID,
		Amount: int64(amount),
		TxID:   txID,
	}, nil
}

// SignWithdrawal mints a voucher for a withdrawal already debited from the
// chip ledger. The gateway verifies it and releases tokens to the user.
func (s *GatewayService) SignWithdrawal(userID string, amount int64) (string, error) {
	if s == nil {
		return "", fmt.Errorf("gateway service is nil")
	}
	if userID == "" {
		return "", fmt.Errorf("user is required")
	}
	if amount <= 0 {
		return "", ErrInvalidAmount
	}
	if s.gatewaySecret == "" || s.gatewayIssuer == "" {
		return "", fmt.Errorf("gateway config is incomplete")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":  s.gatewayIssuer,
		"sub":  userID,
		"act":  GatewayActionWithdraw,
		"amt":  amount,
		"exp":  now.Add(withdrawalVoucherTTL).Unix(),
		"txid": fmt.Sprintf("%d-%d", now.UnixNano(), rand.Int63()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.gatewaySecret))
}
