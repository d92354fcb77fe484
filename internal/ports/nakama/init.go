package nakama

import (
	"context"
	"database/sql"

	"blackjack/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

const gameConfigPath = "data/blackjack_config.json"

// InitModule wires RPCs and hooks for the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.LoadGameConfig(gameConfigPath); err != nil {
		// Defaults keep the tables open; gateway RPCs reject until configured.
		logger.Warn("InitModule: Could not load game config: %v", err)
	}

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return err
	}

	logger.Info("Blackjack Go module loaded.")
	return nil
}
