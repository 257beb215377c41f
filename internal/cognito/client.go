package cognito

import "context"

// Client is the boundary for Cognito authentication operations.
type Client interface {
	SignUp(ctx context.Context, input SignUpInput) (SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, input ConfirmSignUpInput) error
	Login(ctx context.Context, input LoginInput) (AuthOutput, error)
	RefreshTokens(ctx context.Context, input RefreshInput) (AuthOutput, error)
	ForgotPassword(ctx context.Context, input ForgotPasswordInput) error
	ConfirmForgotPassword(ctx context.Context, input ConfirmForgotPasswordInput) error
	GlobalSignOut(ctx context.Context, input GlobalSignOutInput) error
}

type SignUpInput struct {
	Email    string
	Password string
}

type SignUpOutput struct {
	UserSub      string
	Confirmed    bool
	CodeDelivery string // e.g. "EMAIL"
}

type ConfirmSignUpInput struct {
	Email string
	Code  string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthOutput carries the token set returned after a successful
// authentication or refresh.
type AuthOutput struct {
	IDToken      string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int32
	TokenType    string
}

type RefreshInput struct {
	Email        string
	RefreshToken string
}

type ForgotPasswordInput struct {
	Email string
}

type ConfirmForgotPasswordInput struct {
	Email       string
	Code        string
	NewPassword string
}

type GlobalSignOutInput struct {
	AccessToken string
}
