package main

import (
	"testing"
)

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "dumpsift" {
			t.Errorf("expected use 'dumpsift', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has verbose flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("verbose")
		if flag == nil {
			t.Fatal("expected verbose flag")
		}
		if flag.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %q", flag.Shorthand)
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has db-dir flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("db-dir")
		if flag == nil {
			t.Fatal("expected db-dir flag")
		}
		if flag.DefValue == "" {
			t.Error("expected non-empty default database directory")
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		subcommands := cmd.Commands()
		if len(subcommands) == 0 {
			t.Error("expected subcommands")
		}

		hasIngest := false
		hasSearch := false
		hasStats := false
		for _, sub := range subcommands {
			switch sub.Use {
			case "ingest <dump-files...>":
				hasIngest = true
			case "search <query>":
				hasSearch = true
			case "stats":
				hasStats = true
			}
		}
		if !hasIngest {
			t.Error("expected ingest subcommand")
		}
		if !hasSearch {
			t.Error("expected search subcommand")
		}
		if !hasStats {
			t.Error("expected stats subcommand")
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}
