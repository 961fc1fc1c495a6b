package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/st-doval17/myflix/internal/services"
	"github.com/st-doval17/myflix/internal/shared"
	"github.com/urfave/cli/v3"
)

// apiService returns the raw API client, building one from the stored
// session when none was injected.
func (r *Runner) apiService() *services.APIService {
	if r.api != nil {
		return r.api
	}

	token := ""
	if sess, err := r.store.Load(); err == nil && sess != nil {
		token = sess.Token
	}

	r.api = services.NewAPIService(r.config.API.BaseURL, token, r.httpClient)
	return r.api
}

// APIGet performs a raw GET against the catalog server and prints the body.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: endpoint path", shared.ErrMissingArgument)
	}

	r.logger.Infof("GET %v", path)

	body, err := r.apiService().Get(ctx, path)
	if err != nil {
		if len(body) > 0 {
			r.writePlain("%s\n", body)
		}
		return err
	}

	if cmd.Bool("pretty") {
		if err := r.prettyPrint(body); err == nil {
			return nil
		}
	}

	return r.writePlain("%s\n", body)
}

// APIPost performs a raw POST with a JSON body and prints the response.
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: endpoint path", shared.ErrMissingArgument)
	}

	payload := []byte(cmd.String("data"))
	if dataFile := cmd.String("data-file"); dataFile != "" {
		fileData, err := shared.VerifyAndReadFile(dataFile)
		if err != nil {
			return err
		}
		payload = fileData
	}
	if len(payload) == 0 {
		return fmt.Errorf("%w: --data or --data-file", shared.ErrMissingArgument)
	}

	r.logger.Infof("POST %v", path)

	body, err := r.apiService().Post(ctx, path, payload)
	if err != nil {
		if len(body) > 0 {
			r.writePlain("%s\n", body)
		}
		return err
	}

	return r.writePlain("%s\n", body)
}

// prettyPrint re-indents a JSON body for terminal output.
func (r *Runner) prettyPrint(body []byte) error {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return err
	}

	pretty, err := shared.MarshalJSON(decoded, true)
	if err != nil {
		return err
	}

	return r.writePlain("%s\n", pretty)
}
