package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTableSourceDefaults(t *testing.T) {
	s, err := NewTableSource("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Tables() == nil || len(s.Tables().Tiers) != BossTierCount {
		t.Fatal("default source has no tables")
	}
	if err := s.Reload(); err != nil {
		t.Errorf("Reload on default source: %v", err)
	}
}

func TestTableSourceReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bosses.yaml")
	if err := os.WriteFile(path, defaultTables, 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := NewTableSource(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	before := s.Tables()

	if err := os.WriteFile(path, []byte("tiers: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err == nil {
		t.Fatal("Reload of broken file succeeded")
	}
	if s.Tables() != before {
		t.Error("failed reload replaced tables")
	}
}

func TestTableSourceWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bosses.yaml")
	if err := os.WriteFile(path, defaultTables, 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := NewTableSource(path, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	renamed := strings.Replace(string(defaultTables), "name: Sentinel", "name: Warden", 1)
	if err := os.WriteFile(path, []byte(renamed), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if tier, _ := s.Tables().Tier(1); tier.Name == "Warden" {
			if s.Reloads() < 1 {
				t.Errorf("Reloads = %d, want >= 1", s.Reloads())
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("tables were not reloaded after write")
}
