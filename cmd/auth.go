package main

import (
	"context"
	"fmt"
	"syscall"

	"github.com/st-doval17/myflix/internal/models"
	"github.com/st-doval17/myflix/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// AuthRegister creates a new account on the catalog server.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	input := models.UserInput{
		Username: cmd.String("username"),
		Password: cmd.String("password"),
		Email:    cmd.String("email"),
		Birthday: cmd.String("birthday"),
	}

	if input.Password == "" {
		password, err := r.promptPassword("Password: ")
		if err != nil {
			return err
		}
		input.Password = password
	}

	r.logger.Infof("registering user %v", input.Username)

	user, err := r.flix.Register(ctx, input)
	if err != nil {
		return err
	}

	r.writePlain("✓ Account created for %s\n", user.Username)
	r.writePlain("You can now use: myflix auth login\n")
	return nil
}

// AuthLogin exchanges credentials for a session and persists it.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	password := cmd.String("password")

	if username == "" {
		return fmt.Errorf("%w: username", shared.ErrMissingArgument)
	}

	if password == "" {
		entered, err := r.promptPassword("Password: ")
		if err != nil {
			return err
		}
		password = entered
	}

	r.logger.Infof("logging in as %v", username)

	sess, err := r.flix.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := r.store.Save(sess); err != nil {
		return fmt.Errorf("login succeeded but session not persisted: %w", err)
	}

	r.flix.Authenticate(sess.Token)
	r.index.Initialize(sess)

	r.writePlain("✓ Logged in as %s\n", sess.User.Username)
	return nil
}

// AuthLogout discards the stored session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.store.Clear(); err != nil {
		return err
	}

	r.flix.Authenticate("")
	r.index.Initialize(nil)

	r.writePlain("✓ Logged out\n")
	return nil
}

// AuthWhoami prints the currently stored session's user.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.store.Load()
	if err != nil {
		return err
	}

	if sess == nil {
		r.writePlain("Not logged in\n")
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(sess.User, cmd.Bool("pretty"))
	}

	r.writePlain("Logged in as %s", sess.User.Username)
	if sess.User.Email != "" {
		r.writePlain(" <%s>", sess.User.Email)
	}
	r.writePlain("\nFavorites: %d\n", len(sess.User.FavoriteMovies))
	return nil
}

// promptPassword reads a password from the terminal without echo.
func (r *Runner) promptPassword(prompt string) (string, error) {
	r.writePlain("%s", prompt)

	data, err := term.ReadPassword(int(syscall.Stdin))
	r.writePlain("\n")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(data), nil
}
