// Command sessionctl exercises the session client from the terminal:
// restore the persisted session, log in, log out, and show where the
// post-login redirect would land.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"runtime/debug"
	"time"

	"github.com/common-nighthawk/go-figure"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/nepdora/go-storefront-auth/httpapi"
	"github.com/nepdora/go-storefront-auth/internal/config"
	"github.com/nepdora/go-storefront-auth/session"
	"github.com/nepdora/go-storefront-auth/session/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %s\n", err)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	email := flag.String("email", "", "log in with this email")
	password := flag.String("password", "", "log in with this password")
	logout := flag.Bool("logout", false, "log out and clear the stored session")
	currentURL := flag.String("url", "", "URL the session is acting from, for redirect resolution")
	flag.Parse()

	c := config.New()
	displayAppname(c.GetAppName())

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	manager, err := buildManager(c, logger, *currentURL)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	state := manager.Restore(ctx)
	logger.Info().Stringer("state", state).Msg("Session restored")

	switch {
	case *logout:
		manager.Logout(ctx)
	case *email != "":
		if err := manager.Login(ctx, session.Credentials{Email: *email, Password: *password}); err != nil {
			return fmt.Errorf("login: %w", err)
		}
	}

	printSession(manager)
	return nil
}

func buildManager(c config.Config, logger zerolog.Logger, currentURL string) (*session.Manager, error) {
	api := httpapi.New(c.GetAPIBaseURL(), httpapi.WithLogger(logger))

	var store, stash storage.Repo
	if addr := c.GetRedisAddr(); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		store = storage.NewRedisRepo(client, "sessionctl", 0)
		stash = storage.NewRedisRepo(client, "sessionctl:stash", 10*time.Minute)
	} else {
		store = storage.NewFileRepo(c.GetStoragePath())
		stash = storage.NewInMemoryRepo()
	}

	return session.New(
		session.Deps{
			API:       api,
			Store:     store,
			Stash:     stash,
			Notifier:  consoleNotifier{},
			Navigator: consoleNavigator{},
			Locator:   staticLocator{raw: currentURL},
		},
		session.WithLogger(logger),
		session.WithHostSuffixes(c.GetLocalHostSuffix(), c.GetProductionHostSuffix()),
	)
}

func printSession(manager *session.Manager) {
	if !manager.IsAuthenticated() {
		fmt.Println("Not logged in.")
		return
	}
	user := manager.User()
	fmt.Printf("Logged in as %s %s <%s>\n", user.FirstName, user.LastName, user.Email)
}

// consoleNotifier prints user notices to stdout.
type consoleNotifier struct{}

func (consoleNotifier) Success(text string) { fmt.Println("✔", text) }
func (consoleNotifier) Error(text string)   { fmt.Println("✘", text) }

// consoleNavigator prints where a browser would navigate.
type consoleNavigator struct{}

func (consoleNavigator) GoTo(path string) { fmt.Println("→", path) }

// staticLocator reports the URL passed on the command line.
type staticLocator struct{ raw string }

func (l staticLocator) Current() *url.URL {
	if l.raw == "" {
		return nil
	}
	parsed, err := url.Parse(l.raw)
	if err != nil {
		return nil
	}
	return parsed
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
