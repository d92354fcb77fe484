package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"blackjack/internal/ports"
)

const defaultStartingChips = 1000

// Result captures non-fatal onboarding outcomes.
type Result struct {
	// ProfileUpdateErr is set when the profile update failed but
	// onboarding continued.
	ProfileUpdateErr error
	// StackGranted is false when the starting stack was already granted.
	StackGranted bool
}

// Service handles post-auth onboarding for new users: a table name and a
// one-time starting chip stack.
type Service struct {
	accounts ports.AccountPort
	stack    ports.StartingStackPort
	chips    int64
	rng      *rand.Rand
}

// NewService constructs an onboarding service with required ports.
// accounts/stack must be non-nil; chips <= 0 uses the default starting
// stack; rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, stack ports.StartingStackPort, chips int64, rng *rand.Rand) *Service {
	if chips <= 0 {
		chips = defaultStartingChips
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		accounts: accounts,
		stack:    stack,
		chips:    chips,
		rng:      rng,
	}
}

// OnboardNewUser initializes profile and chip balance for a newly created
// account. Returns a Result with any non-fatal issues and an error if the
// starting stack cannot be granted.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil || s.stack == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}

	result := Result{}
	displayName := s.generateTableName()
	if err := s.accounts.UpdateProfile(ctx, userID, displayName, displayName); err != nil {
		// Profile updates are best-effort; the chip grant is what matters.
		result.ProfileUpdateErr = err
	}

	granted, err := s.stack.GrantStartingStackOnce(ctx, userID, s.chips, map[string]interface{}{
		"reason": "starting_stack",
	})
	if err != nil {
		return result, fmt.Errorf("failed to grant starting stack: %w", err)
	}
	result.StackGranted = granted

	return result, nil
}

func (s *Service) generateTableName() string {
	adjectives := []string{"Lucky", "Steady", "Bold", "Quiet", "Sharp", "Cool", "Wired", "Smooth", "Stoic", "Swift"}
	nouns := []string{"Shark", "Dealer", "Whale", "Joker", "Maverick", "Counter", "Gambler", "Ace", "Baron", "Duke"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
