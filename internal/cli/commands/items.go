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

type itemDTO struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Box         int64  `json:"box"`
}

type itemsCmd struct{}

func (itemsCmd) Name() string        { return "items" }
func (itemsCmd) Description() string { return "List your items across all boxes" }
func (itemsCmd) Usage() string       { return "items" }

func (itemsCmd) Run(_ context.Context, cfg *config.Config, _ []string) error {
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/items"
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
	var items []itemDTO
	if err := json.Unmarshal(body, &items); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(items) == 0 {
		fmt.Fprintln(Out, "No items yet")
		return nil
	}
	for _, it := range items {
		fmt.Fprintf(Out, "%d\tbox %d\t%s\t%s\n", it.ID, it.Box, it.Description, it.Image)
	}
	return nil
}

func init() { RegisterCmd(itemsCmd{}) }
