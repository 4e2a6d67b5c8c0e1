package commands

import (
	"QRBoxer/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"QRBoxer/internal/cli/api"
	fsrepo "QRBoxer/internal/cli/repo/fs"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Register a new account and store auth cookie" }
func (registerCmd) Usage() string       { return "register <username> <email> <password>" }

func (registerCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	username, email, password := args[0], args[1], args[2]
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/user/register"
	req := RegisterRequest{Username: username, Email: email, Password: password}
	resp, body, err := api.PostJSON(endpoint, req, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		if err := api.PersistAuthFromResponse(resp); err != nil {
			return fmt.Errorf("saving auth: %w", err)
		}
		store := fsrepo.AuthFSStore{}
		if err := store.SaveLogin(username); err != nil {
			return fmt.Errorf("saving login: %w", err)
		}
		fmt.Fprintln(Out, "Registered successfully")
		return nil
	case http.StatusConflict:
		return errors.New("username already taken")
	case http.StatusBadRequest:
		return fmt.Errorf("invalid input: %s", strings.TrimSpace(string(body)))
	default:
		return fmt.Errorf("server error: %s", strings.TrimSpace(string(body)))
	}
}

func init() { RegisterCmd(registerCmd{}) }
