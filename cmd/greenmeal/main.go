// Command greenmeal signs in to a GreenMeal API and keeps the session in a
// local file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/pageza/greenmeal/backend/internal/logger"
	"github.com/pageza/greenmeal/backend/internal/session"
	"github.com/pageza/greenmeal/backend/internal/types"
)

const usage = `Usage: greenmeal [flags] <command>

Commands:
  register   create an account and sign in
  login      sign in
  logout     forget the saved session
  status     show who is signed in
  plan       download and cache the saved meal plan
  saved      download and cache the saved recipes

Flags:
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("greenmeal", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	defaultStore, err := session.DefaultPath()
	if err != nil {
		defaultStore = "greenmeal-session.json"
	}

	apiURL := fs.StringP("api", "a", envOr("GREENMEAL_API_URL", "http://localhost:8080"), "GreenMeal API base URL")
	storePath := fs.StringP("store", "s", defaultStore, "session file")
	email := fs.StringP("email", "e", "", "account email")
	password := fs.StringP("password", "p", os.Getenv("GREENMEAL_PASSWORD"), "account password (or GREENMEAL_PASSWORD)")
	timeout := fs.Duration("timeout", 30*time.Second, "request timeout")
	verbose := fs.BoolP("verbose", "v", false, "log requests")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one command")
	}

	level := "error"
	if *verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Format: "console", Environment: "cli"})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	store, err := session.OpenLocalStore(*storePath)
	if err != nil {
		return err
	}
	client := session.NewClient(*apiURL, store, nil, log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch cmd := fs.Arg(0); cmd {
	case "register", "login":
		if *email == "" || *password == "" {
			return errors.New("--email and --password are required")
		}
		var note *types.Notification
		if cmd == "register" {
			note, err = client.Register(ctx, *email, *password)
		} else {
			note, err = client.Login(ctx, *email, *password)
		}
		printNotification(stdout, note)
		if err != nil {
			log.Debug("authentication failed", zap.String("command", cmd), zap.Error(err))
			return errors.New("authentication failed")
		}
		return nil

	case "logout":
		note, err := client.Logout()
		if err != nil {
			return err
		}
		printNotification(stdout, note)
		return nil

	case "status":
		state := client.State()
		if !state.IsAuthenticated {
			fmt.Fprintln(stdout, "Not logged in")
			return nil
		}
		fmt.Fprintf(stdout, "Logged in as %s (%s)\n", state.User.Name, state.User.Email)
		return nil

	case "plan":
		plan, err := client.MealPlan(ctx)
		if err != nil {
			return err
		}
		for _, d := range plan.Days {
			fmt.Fprintf(stdout, "%s: %s | %s | %s\n", d.Day, d.Breakfast.Name, d.Lunch.Name, d.Dinner.Name)
		}
		fmt.Fprintf(stdout, "Total carbon footprint: %.1f kg CO2e\n", plan.TotalCarbonFootprint())
		return nil

	case "saved":
		recipes, err := client.SavedRecipes(ctx)
		if err != nil {
			return err
		}
		if len(recipes) == 0 {
			fmt.Fprintln(stdout, "No saved recipes")
			return nil
		}
		for _, r := range recipes {
			fmt.Fprintf(stdout, "%s  %s (%d min, %.1f kg CO2e)\n", r.ID, r.Name, r.PrepTime, r.TotalCarbonFootprint)
		}
		return nil

	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printNotification(w io.Writer, note *types.Notification) {
	if note == nil {
		return
	}
	fmt.Fprintf(w, "%s: %s\n", note.Title, strings.TrimSpace(note.Description))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
