package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/greenmeal/backend/internal/types"
)

var ErrNotAuthenticated = errors.New("not logged in")

// APIError is a non-2xx response from the GreenMeal API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the GreenMeal API on behalf of one local user and keeps
// the auth state in sync with the local store.
type Client struct {
	baseURL string
	http    *http.Client
	store   *LocalStore
	log     *zap.Logger

	mu    sync.Mutex
	state AuthState
}

// NewClient builds a client and restores any saved session from store.
func NewClient(baseURL string, store *LocalStore, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		store:   store,
		log:     log,
		state:   Initial(),
	}
	c.restore()
	return c
}

// State returns a copy of the current auth state.
func (c *Client) State() AuthState {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

func (c *Client) dispatch(a Action) *types.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, note := Reduce(c.state, a)
	c.state = next
	return note
}

func (c *Client) restore() {
	var token string
	var user User
	hasToken, err := c.store.Get(KeyToken, &token)
	if err != nil {
		hasToken = false
	}
	hasUser, err := c.store.Get(KeyUser, &user)
	if err != nil {
		c.log.Warn("discarding unreadable saved user", zap.Error(err))
		if err := c.store.Delete(KeyToken, KeyUser); err != nil {
			c.log.Warn("failed to clear saved session", zap.Error(err))
		}
		c.dispatch(Restored{})
		return
	}
	if hasToken && hasUser {
		c.dispatch(Restored{User: &user, Token: token})
		return
	}
	c.dispatch(Restored{})
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token and saves the session.
func (c *Client) Login(ctx context.Context, email, password string) (*types.Notification, error) {
	c.dispatch(LoginStart{})

	token, err := c.login(ctx, email, password)
	if err != nil {
		return c.dispatch(LoginFailure{Err: err}), err
	}
	if err := c.persist(email, token); err != nil {
		return c.dispatch(LoginFailure{Err: err}), err
	}
	return c.dispatch(LoginSuccess{User: UserFromEmail(email), Token: token}), nil
}

// Register creates an account and signs in with it.
func (c *Client) Register(ctx context.Context, email, password string) (*types.Notification, error) {
	c.dispatch(LoginStart{})

	var out struct {
		Success bool `json:"success"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/register", "", credentials{email, password}, &out); err != nil {
		return c.dispatch(LoginFailure{Err: err, Registered: true}), err
	}

	token, err := c.login(ctx, email, password)
	if err != nil {
		return c.dispatch(LoginFailure{Err: err, Registered: true}), err
	}
	if err := c.persist(email, token); err != nil {
		return c.dispatch(LoginFailure{Err: err, Registered: true}), err
	}
	return c.dispatch(LoginSuccess{User: UserFromEmail(email), Token: token, Registered: true}), nil
}

// Logout forgets the token and user. Saved plans and recipes stay cached.
func (c *Client) Logout() (*types.Notification, error) {
	if err := c.store.Delete(KeyToken, KeyUser); err != nil {
		return nil, err
	}
	return c.dispatch(Logout{}), nil
}

// MealPlan fetches the saved meal plan and caches it with its shopping list.
func (c *Client) MealPlan(ctx context.Context) (*types.MealPlan, error) {
	token, err := c.token()
	if err != nil {
		return nil, err
	}
	var plan types.MealPlan
	if err := c.do(ctx, http.MethodGet, "/api/v1/meal-plan", token, nil, &plan); err != nil {
		return nil, err
	}
	if err := c.store.Set(KeySavedMealPlan, plan.Days); err != nil {
		return nil, err
	}
	if plan.ShoppingList != nil {
		if err := c.store.Set(KeySavedShoppingList, plan.ShoppingList); err != nil {
			return nil, err
		}
	}
	return &plan, nil
}

// SavedRecipes fetches the user's saved recipes and caches them.
func (c *Client) SavedRecipes(ctx context.Context) ([]types.Recipe, error) {
	token, err := c.token()
	if err != nil {
		return nil, err
	}
	var out struct {
		SavedRecipes []struct {
			Recipe types.Recipe `json:"recipe"`
		} `json:"saved_recipes"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/saved-recipes", token, nil, &out); err != nil {
		return nil, err
	}
	recipes := make([]types.Recipe, len(out.SavedRecipes))
	for i, s := range out.SavedRecipes {
		recipes[i] = s.Recipe
	}
	if err := c.store.Set(KeySavedRecipes, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (c *Client) token() (string, error) {
	s := c.State()
	if !s.IsAuthenticated || s.Token == "" {
		return "", ErrNotAuthenticated
	}
	return s.Token, nil
}

func (c *Client) login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/login", "", credentials{email, password}, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("login response did not include a token")
	}
	return out.Token, nil
}

func (c *Client) persist(email, token string) error {
	if err := c.store.Set(KeyToken, token); err != nil {
		return err
	}
	return c.store.Set(KeyUser, UserFromEmail(email))
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		c.log.Debug("api request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("error", msg))
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
