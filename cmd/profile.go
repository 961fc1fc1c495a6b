package main

import (
	"context"
	"fmt"

	"github.com/st-doval17/myflix/internal/models"
	"github.com/st-doval17/myflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// ProfileShow fetches and prints the logged-in user's profile.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.requireSession()
	if err != nil {
		return err
	}

	user, err := r.flix.User(ctx, sess.User.Username)
	if err != nil {
		return err
	}

	// Refresh the stored profile so favorites stay in step with the server.
	if err := r.store.Save(&models.Session{User: *user, Token: sess.Token}); err != nil {
		r.logger.Warnf("failed to refresh stored session: %v", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, cmd.Bool("pretty"))
	}

	r.writePlainHeader(user.Username)
	if user.Email != "" {
		r.writePlain("Email: %s\n", user.Email)
	}
	if user.Birthday != "" {
		r.writePlain("Birthday: %s\n", user.Birthday)
	}
	r.writePlain("Favorites: %d\n", len(user.FavoriteMovies))
	return nil
}

// ProfileEdit applies a partial update to the profile.
func (r *Runner) ProfileEdit(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.requireSession()
	if err != nil {
		return err
	}

	patch := models.UserPatch{
		Username: cmd.String("username"),
		Password: cmd.String("password"),
		Email:    cmd.String("email"),
		Birthday: cmd.String("birthday"),
	}

	if patch.Empty() {
		return fmt.Errorf("%w: nothing to update, pass at least one flag", shared.ErrInvalidInput)
	}

	user, err := r.flix.UpdateUser(ctx, sess.User.Username, patch)
	if err != nil {
		return err
	}

	if err := r.store.Save(&models.Session{User: *user, Token: sess.Token}); err != nil {
		return fmt.Errorf("profile updated but session not persisted: %w", err)
	}

	r.writePlain("✓ Profile updated for %s\n", user.Username)
	return nil
}

// ProfileDelete deletes the account and clears the local session.
//
// The session is only cleared after the server confirms the deletion.
func (r *Runner) ProfileDelete(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.requireSession()
	if err != nil {
		return err
	}

	if !cmd.Bool("yes") {
		return fmt.Errorf("%w: pass --yes to confirm deleting account %q", shared.ErrInvalidArgument, sess.User.Username)
	}

	r.logger.Warnf("deleting account %v", sess.User.Username)

	if err := r.flix.DeleteUser(ctx, sess.User.Username); err != nil {
		return err
	}

	if err := r.store.Clear(); err != nil {
		return fmt.Errorf("account deleted but session not cleared: %w", err)
	}

	r.flix.Authenticate("")
	r.index.Initialize(nil)

	r.writePlain("✓ Account %s deleted\n", sess.User.Username)
	return nil
}
