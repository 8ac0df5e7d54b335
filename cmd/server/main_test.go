package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sumeshkk123/cloud-sub008/cmd/internal/bootstrap"
)

func useEnvironment(t *testing.T, environment map[string]string) {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })
	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		opts.Environment = environment
		return bootstrap.BuildModule(opts)
	}
}

func startServer(t *testing.T, args ...string) (string, context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, append([]string{"-addr", "127.0.0.1:0"}, args...), ready)
	}()

	select {
	case addr := <-ready:
		return "http://" + addr, cancel, done
	case err := <-done:
		cancel()
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatalf("server did not start")
	}
	return "", cancel, done
}

func stopServer(t *testing.T, cancel context.CancelFunc, done <-chan error) {
	t.Helper()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
}

func TestRunServesAdminRoutesAndShutsDown(t *testing.T) {
	useEnvironment(t, map[string]string{"CMS_FEATURE_PUBLIC_API": "true"})
	base, cancel, done := startServer(t)

	for _, path := range []string{"/healthz", "/admin/api/icons?q=house", "/api/public/features"} {
		resp, err := http.Get(base + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode >= 300 {
			t.Fatalf("GET %s returned %d", path, resp.StatusCode)
		}
	}

	stopServer(t, cancel, done)
}

func TestRunImportsSeedOnStart(t *testing.T) {
	dir := t.TempDir()
	doc := "---\nkind: features\nid: 6f1d3c2a-8e4b-4c1a-9d2e-3b5a7c9e1f00\nlocale: en\ntitle: Binary Plan\nicon: lucide:Zap\ncategory: Plans\n---\nTwo legs per distributor.\n"
	if err := os.WriteFile(filepath.Join(dir, "binary.md"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	useEnvironment(t, map[string]string{"CMS_SEED_DIR": dir})
	base, cancel, done := startServer(t, "-seed")

	resp, err := http.Get(base + "/admin/api/features?locale=en")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list returned %d", resp.StatusCode)
	}
	var rows []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 1 || rows[0]["title"] != "Binary Plan" {
		t.Fatalf("expected the seeded feature, got %v", rows)
	}

	stopServer(t, cancel, done)
}
