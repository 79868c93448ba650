package meetauth

import "context"

// TokenPair carries one access token and the refresh token that can replace it.
// Both are signed JWTs; the refresh token additionally references a stored
// single-use record.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserRecord is the account record returned by [UserProvider]. The engine never
// inspects PasswordHash beyond handing it to the password verifier.
type UserRecord struct {
	ID           string
	Username     string
	PasswordHash string
}

// CreateUserInput is the input for [UserProvider.CreateUser]. PasswordHash is
// already hashed by the engine; providers must store it opaquely.
type CreateUserInput struct {
	Username     string
	PasswordHash string
}

// UserProvider is the interface that callers must implement to integrate
// meetauth with their user database. It covers credential lookup, identity
// lookup, and account creation.
//
// GetUserByUsername must return an error wrapping [ErrUserNotFound] when no
// account matches. CreateUser must return an error wrapping
// [ErrProviderDuplicateUsername] when the username is already taken.
type UserProvider interface {
	GetUserByUsername(ctx context.Context, username string) (UserRecord, error)
	GetUserByID(ctx context.Context, userID string) (UserRecord, error)
	CreateUser(ctx context.Context, input CreateUserInput) (UserRecord, error)
}
