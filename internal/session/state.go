// Package session keeps the client-side view of who is signed in. The state
// is restored from a LocalStore at startup and changes only through Reduce.
package session

import (
	"strings"

	"github.com/pageza/greenmeal/backend/internal/types"
)

// User is the signed-in account as the client knows it.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserFromEmail builds the profile kept after a successful login. The API
// only returns a token, so the email doubles as the ID and its local part
// as the display name.
func UserFromEmail(email string) User {
	name, _, _ := strings.Cut(email, "@")
	return User{ID: email, Email: email, Name: name}
}

// AuthState is the client's authentication state.
type AuthState struct {
	User            *User  `json:"user"`
	Token           string `json:"token"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	IsLoading       bool   `json:"isLoading"`
	Error           string `json:"error,omitempty"`
}

// Initial is the state before the local store has been read.
func Initial() AuthState {
	return AuthState{IsLoading: true}
}

// Action is an auth state transition.
type Action interface {
	apply(AuthState) (AuthState, *types.Notification)
}

// Restored finishes startup. A nil User means nothing usable was stored.
type Restored struct {
	User  *User
	Token string
}

// LoginStart marks a login or registration request as in flight.
type LoginStart struct{}

// LoginSuccess records the signed-in user and their token.
type LoginSuccess struct {
	User  User
	Token string
	// Registered selects the welcome message for a new account.
	Registered bool
}

// LoginFailure records why a login or registration failed.
type LoginFailure struct {
	Err        error
	Registered bool
}

// Logout signs the user out.
type Logout struct{}

// Reduce applies a to s and returns the new state with the notification to
// show, if any.
func Reduce(s AuthState, a Action) (AuthState, *types.Notification) {
	return a.apply(s)
}

func (a Restored) apply(AuthState) (AuthState, *types.Notification) {
	if a.User == nil || a.Token == "" {
		return AuthState{}, nil
	}
	u := *a.User
	return AuthState{User: &u, Token: a.Token, IsAuthenticated: true}, nil
}

func (LoginStart) apply(s AuthState) (AuthState, *types.Notification) {
	s.IsLoading = true
	s.Error = ""
	return s, nil
}

func (a LoginSuccess) apply(AuthState) (AuthState, *types.Notification) {
	u := a.User
	next := AuthState{User: &u, Token: a.Token, IsAuthenticated: true}
	if a.Registered {
		return next, &types.Notification{
			Title:       "Registration Successful",
			Description: "Welcome to GreenMeal!",
		}
	}
	return next, &types.Notification{
		Title:       "Login Successful",
		Description: "Welcome back!",
	}
}

func (a LoginFailure) apply(AuthState) (AuthState, *types.Notification) {
	msg := "Login failed"
	title := "Login Failed"
	if a.Registered {
		msg = "Registration failed"
		title = "Registration Failed"
	}
	if a.Err != nil && a.Err.Error() != "" {
		msg = a.Err.Error()
	}
	return AuthState{Error: msg}, &types.Notification{
		Title:       title,
		Description: msg,
		Variant:     "destructive",
	}
}

func (Logout) apply(AuthState) (AuthState, *types.Notification) {
	return AuthState{}, &types.Notification{
		Title:       "Logged Out",
		Description: "You have been successfully logged out.",
	}
}
