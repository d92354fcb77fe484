package ports

import "context"

// AccountPort updates host account profiles. Used during onboarding to
// assign a table name to freshly created accounts.
type AccountPort interface {
	// UpdateProfile sets the username and display name for userID.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error
}
