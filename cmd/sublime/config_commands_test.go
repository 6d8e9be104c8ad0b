package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("SUBLIME_LANGUAGES", "")

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.configPath)

	target := filepath.Join(t.TempDir(), "nested", "sublime.toml")
	out, _, err = runCLI(t, []string{"config", "init", "-l", "fr", "-l", "de"}, target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote "+target)
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init"}, target); err == nil {
		t.Fatal("expected init to refuse an existing file")
	}

	out, _, err = runCLI(t, []string{"--json", "config", "validate"}, target)
	if err != nil {
		t.Fatalf("validate sample: %v", err)
	}
	var summary configSummaryJSON
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if !summary.FromFile || summary.Path != target {
		t.Fatalf("summary = %+v", summary)
	}
	if len(summary.Languages) != 2 || summary.Languages[0] != "fr" || summary.Languages[1] != "de" {
		t.Fatalf("languages = %v", summary.Languages)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--overwrite"}, target); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
	out, _, err = runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("validate overwritten sample: %v", err)
	}
	requireContains(t, out, "subtitles.languages")
}

func TestConfigInitRejectsUnknownLanguage(t *testing.T) {
	target := filepath.Join(t.TempDir(), "sublime.toml")
	if _, _, err := runCLI(t, []string{"config", "init", "-l", "klingonese"}, target); err == nil {
		t.Fatal("expected unknown language to be rejected")
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("no file should be written, stat = %v", err)
	}
}

func TestConfigValidateRejectsBadLevel(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[logging]\nlevel = \"loud\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := runCLI(t, []string{"config", "validate"}, env.configPath); err == nil {
		t.Fatal("expected validation error")
	}
}
