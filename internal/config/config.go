package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// GatewayConfig holds the shared-secret contract with the chip-token
// gateway that notifies deposits and honors withdrawal vouchers.
type GatewayConfig struct {
	Secret string `json:"secret"`
	Issuer string `json:"issuer"`
}

type GameConfig struct {
	// StartingChips is the one-time stack granted at onboarding.
	StartingChips int64 `json:"starting_chips"`
	// MaxBet caps a single bet; 0 disables the cap.
	MaxBet  int64         `json:"max_bet"`
	Gateway GatewayConfig `json:"gateway"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or safe defaults
// when no config file was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return &GameConfig{StartingChips: 1000}
	}
	return cfg
}
