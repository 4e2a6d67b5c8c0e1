package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	fsrepo "QRBoxer/internal/cli/repo/fs"

	"github.com/stretchr/testify/assert"
)

func TestStatusCmd(t *testing.T) {
	ctx := context.Background()

	t.Run("authorized", func(t *testing.T) {
		withTempConfig(t)
		buf := captureOut(t)
		assert.NoError(t, fsrepo.AuthFSStore{}.Save("tok"))

		mux := http.NewServeMux()
		mux.HandleFunc("/api/user/test", func(w http.ResponseWriter, r *http.Request) {
			// token travels as auth cookie
			c, err := r.Cookie("auth_token")
			assert.NoError(t, err)
			assert.Equal(t, "tok", c.Value)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"result": "User = alice"})
		})
		_, cfg := newFakeServer(t, mux)

		assert.NoError(t, statusCmd{}.Run(ctx, cfg, nil))
		assert.Contains(t, buf.String(), "Status: User = alice")
	})

	t.Run("anonymous without a stored token", func(t *testing.T) {
		withTempConfig(t)
		buf := captureOut(t)

		mux := http.NewServeMux()
		mux.HandleFunc("/api/user/test", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"result": "anonymous"})
		})
		_, cfg := newFakeServer(t, mux)

		assert.NoError(t, statusCmd{}.Run(ctx, cfg, nil))
		assert.Contains(t, buf.String(), "Status: anonymous")
	})
}

func TestMovesCmd(t *testing.T) {
	ctx := context.Background()

	t.Run("prints one line per move", func(t *testing.T) {
		withTempConfig(t)
		buf := captureOut(t)
		assert.NoError(t, fsrepo.AuthFSStore{}.Save("tok"))

		mux := http.NewServeMux()
		mux.HandleFunc("/api/moves", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]moveDTO{
				{ID: 1, Location: "Location 1", Date: "2024-01-01", Username: "alice"},
				{ID: 2, Location: "Location 2", Date: "2024-02-01", Username: "alice"},
			})
		})
		_, cfg := newFakeServer(t, mux)

		assert.NoError(t, movesCmd{}.Run(ctx, cfg, nil))
		out := buf.String()
		assert.Contains(t, out, "Location 1")
		assert.Contains(t, out, "2024-02-01")
	})

	t.Run("empty list", func(t *testing.T) {
		withTempConfig(t)
		buf := captureOut(t)
		assert.NoError(t, fsrepo.AuthFSStore{}.Save("tok"))

		mux := http.NewServeMux()
		mux.HandleFunc("/api/moves", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]moveDTO{})
		})
		_, cfg := newFakeServer(t, mux)

		assert.NoError(t, movesCmd{}.Run(ctx, cfg, nil))
		assert.Contains(t, buf.String(), "No moves yet")
	})

	t.Run("not logged in", func(t *testing.T) {
		withTempConfig(t)
		captureOut(t)
		_, cfg := newFakeServer(t, http.NewServeMux())

		err := movesCmd{}.Run(ctx, cfg, nil)
		assert.ErrorContains(t, err, "not logged in")
	})

	t.Run("expired session", func(t *testing.T) {
		withTempConfig(t)
		captureOut(t)
		assert.NoError(t, fsrepo.AuthFSStore{}.Save("stale"))

		mux := http.NewServeMux()
		mux.HandleFunc("/api/moves", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		_, cfg := newFakeServer(t, mux)

		err := movesCmd{}.Run(ctx, cfg, nil)
		assert.ErrorContains(t, err, "session expired")
	})
}

func TestItemsCmd(t *testing.T) {
	ctx := context.Background()

	t.Run("prints items with box references", func(t *testing.T) {
		withTempConfig(t)
		buf := captureOut(t)
		assert.NoError(t, fsrepo.AuthFSStore{}.Save("tok"))

		mux := http.NewServeMux()
		mux.HandleFunc("/api/items", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]itemDTO{
				{ID: 1, Description: "Item 1", Image: "image1.jpg", Box: 5},
			})
		})
		_, cfg := newFakeServer(t, mux)

		assert.NoError(t, itemsCmd{}.Run(ctx, cfg, nil))
		out := buf.String()
		assert.Contains(t, out, "Item 1")
		assert.Contains(t, out, "box 5")
	})

	t.Run("empty list", func(t *testing.T) {
		withTempConfig(t)
		buf := captureOut(t)
		assert.NoError(t, fsrepo.AuthFSStore{}.Save("tok"))

		mux := http.NewServeMux()
		mux.HandleFunc("/api/items", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode([]itemDTO{})
		})
		_, cfg := newFakeServer(t, mux)

		assert.NoError(t, itemsCmd{}.Run(ctx, cfg, nil))
		assert.Contains(t, buf.String(), "No items yet")
	})
}
