package onboarding

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

type fakeAccountPort struct {
	updateErr error
}

func (f fakeAccountPort) UpdateProfile(ctx context.Context, userID, username, displayName string) error {
	return f.updateErr
}

type fakeStartingStackPort struct {
	grantErr error
	grants   []stackGrantCall
	granted  bool
}

type stackGrantCall struct {
	userID   string
	amount   int64
	metadata map[string]interface{}
}

func (f *fakeStartingStackPort) GrantStartingStackOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error) {
	f.grants = append(f.grants, stackGrantCall{
		userID:   userID,
		amount:   amount,
		metadata: metadata,
	})
	if f.grantErr != nil {
		return false, f.grantErr
	}
	return f.granted, nil
}

func TestOnboardNewUser_GrantsStartingStack(t *testing.T) {
	stack := &fakeStartingStackPort{granted: true}
	service := NewService(fakeAccountPort{}, stack, 0, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.ProfileUpdateErr != nil {
		t.Fatalf("Expected no profile update error, got %v", result.ProfileUpdateErr)
	}

	if len(stack.grants) != 1 {
		t.Fatalf("Expected 1 starting stack call, got %d", len(stack.grants))
	}
	if stack.grants[0].amount != defaultStartingChips {
		t.Fatalf("Expected starting stack %d, got %d", defaultStartingChips, stack.grants[0].amount)
	}
	if !result.StackGranted {
		t.Fatal("Expected starting stack to be marked as granted")
	}
}

func TestOnboardNewUser_ConfiguredChipAmount(t *testing.T) {
	stack := &fakeStartingStackPort{granted: true}
	service := NewService(fakeAccountPort{}, stack, 2500, rand.New(rand.NewSource(1)))

	if _, err := service.OnboardNewUser(context.Background(), "user-1"); err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if stack.grants[0].amount != 2500 {
		t.Fatalf("Expected starting stack 2500, got %d", stack.grants[0].amount)
	}
}

func TestOnboardNewUser_AccountUpdateFailureStillGrantsStack(t *testing.T) {
	stack := &fakeStartingStackPort{granted: true}
	service := NewService(fakeAccountPort{updateErr: errors.New("update failed")}, stack, 0, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.ProfileUpdateErr == nil {
		t.Fatal("Expected profile update error to be captured")
	}

	if len(stack.grants) != 1 {
		t.Fatalf("Expected 1 starting stack call, got %d", len(stack.grants))
	}
	if !result.StackGranted {
		t.Fatal("Expected starting stack to be marked as granted")
	}
}

func TestOnboardNewUser_StackFailureReturnsError(t *testing.T) {
	service := NewService(fakeAccountPort{}, &fakeStartingStackPort{grantErr: errors.New("wallet failed")}, 0, rand.New(rand.NewSource(1)))

	if _, err := service.OnboardNewUser(context.Background(), "user-1"); err == nil {
		t.Fatal("Expected error when the starting stack grant fails")
	}
}

func TestOnboardNewUser_StackAlreadyGranted(t *testing.T) {
	stack := &fakeStartingStackPort{granted: false}
	service := NewService(fakeAccountPort{}, stack, 0, rand.New(rand.NewSource(1)))

	result, err := service.OnboardNewUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("OnboardNewUser returned error: %v", err)
	}
	if result.StackGranted {
		t.Fatal("Expected starting stack to be marked as already granted")
	}
}
