package commands

import (
	"QRBoxer/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"QRBoxer/internal/cli/api"
	fsrepo "QRBoxer/internal/cli/repo/fs"
)

type dataResponse struct {
	Result string `json:"result"`
}

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show authentication status" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(_ context.Context, cfg *config.Config, _ []string) error {
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/user/test"
	token, _ := fsrepo.AuthFSStore{}.Load()
	resp, body, err := api.PostJSON(endpoint, struct{}{}, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var dr dataResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintln(Out, "Status:", dr.Result)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
