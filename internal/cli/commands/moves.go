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

type moveDTO struct {
	ID       int64  `json:"id"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Username string `json:"username"`
}

type movesCmd struct{}

func (movesCmd) Name() string        { return "moves" }
func (movesCmd) Description() string { return "List your moves" }
func (movesCmd) Usage() string       { return "moves" }

func (movesCmd) Run(_ context.Context, cfg *config.Config, _ []string) error {
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/moves"
	token, err := fsrepo.AuthFSStore{}.Load()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}
	resp, body, err := api.GetJSON(endpoint, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("session expired, login again")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var moves []moveDTO
	if err := json.Unmarshal(body, &moves); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(moves) == 0 {
		fmt.Fprintln(Out, "No moves yet")
		return nil
	}
	for _, m := range moves {
		fmt.Fprintf(Out, "%d\t%s\t%s\t%s\n", m.ID, m.Date, m.Location, m.Username)
	}
	return nil
}

func init() { RegisterCmd(movesCmd{}) }
