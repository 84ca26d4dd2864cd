// Package main provides tests for the teardown CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benchtop-labs/teardown/internal/cli"
)

const testSteps = `{
  "version": 1,
  "steps": [
    {"id": "battery", "title": "Remove the battery", "depends_on": ["open"], "elements": ["cell"]},
    {"id": "open", "title": "Open the case", "elements": ["screw"]}
  ]
}`

const testParts = `{
  "version": 1,
  "parts": [
    {"id": "screw", "name": "Screw"},
    {"id": "cell", "name": "Battery cell"}
  ]
}`

func writeFixtures(t *testing.T) (stepsFile, partsFile string) {
	t.Helper()
	dir := t.TempDir()
	stepsFile = filepath.Join(dir, "steps.json")
	partsFile = filepath.Join(dir, "parts.json")
	if err := os.WriteFile(stepsFile, []byte(testSteps), 0o644); err != nil {
		t.Fatalf("failed to write steps fixture: %v", err)
	}
	if err := os.WriteFile(partsFile, []byte(testParts), 0o644); err != nil {
		t.Fatalf("failed to write parts fixture: %v", err)
	}
	return stepsFile, partsFile
}

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("version command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "teardown") {
		t.Errorf("version output should contain 'teardown', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("help command error = %v", err)
	}

	output := buf.String()
	expectedCommands := []string{"guide", "list", "steps", "dag", "doctor", "serve", "init"}
	for _, expected := range expectedCommands {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestStepsCommand(t *testing.T) {
	stepsFile, partsFile := writeFixtures(t)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"steps",
		"--steps-file", stepsFile,
		"--parts-file", partsFile,
		"--output", "markdown",
	})

	if err := cmd.Execute(); err != nil {
		t.Errorf("steps command error = %v", err)
	}

	output := buf.String()
	openIdx := strings.Index(output, "Open the case")
	batteryIdx := strings.Index(output, "Remove the battery")
	if openIdx < 0 || batteryIdx < 0 {
		t.Fatalf("steps output should contain both steps, got: %s", output)
	}
	if openIdx > batteryIdx {
		t.Errorf("steps should be listed in dependency order, got: %s", output)
	}
}

func TestListCommandJSON(t *testing.T) {
	stepsFile, partsFile := writeFixtures(t)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"list",
		"--steps-file", stepsFile,
		"--parts-file", partsFile,
		"--output", "json",
	})

	if err := cmd.Execute(); err != nil {
		t.Errorf("list --output json command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, `"id": "screw"`) {
		t.Errorf("list JSON output should contain the screw part, got: %s", output)
	}
}

func TestDoctorCommand(t *testing.T) {
	stepsFile, partsFile := writeFixtures(t)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"doctor",
		"--steps-file", stepsFile,
		"--parts-file", partsFile,
		"--output", "json",
	})

	if err := cmd.Execute(); err != nil {
		t.Errorf("doctor command error = %v", err)
	}
}

func TestDAGCommand(t *testing.T) {
	stepsFile, partsFile := writeFixtures(t)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"dag",
		"--steps-file", stepsFile,
		"--parts-file", partsFile,
		"--output", "markdown",
	})

	if err := cmd.Execute(); err != nil {
		t.Errorf("dag command error = %v", err)
	}
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"init", dir, "--output", "markdown"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("init command error = %v", err)
	}

	for _, f := range []string{"teardown.yaml", "steps.json", "parts.json"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Errorf("init should create %s: %v", f, err)
		}
	}

	// Second init without --force must refuse to overwrite.
	cmd2 := cli.NewRootCmd()
	cmd2.SetOut(new(bytes.Buffer))
	cmd2.SetErr(new(bytes.Buffer))
	cmd2.SetArgs([]string{"init", dir})
	if err := cmd2.Execute(); err == nil {
		t.Error("init over an existing project should return an error")
	}
}

func TestInitCommandPreservesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "parts.json")
	if err := os.WriteFile(existing, []byte(testParts), 0o644); err != nil {
		t.Fatalf("failed to write existing parts file: %v", err)
	}

	cmd := cli.NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"init", dir, "--output", "markdown"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("init command error = %v", err)
	}

	// The pre-existing file is skipped without --force; the rest is
	// scaffolded around it.
	content, err := os.ReadFile(existing)
	if err != nil {
		t.Fatalf("failed to read parts file: %v", err)
	}
	if string(content) != testParts {
		t.Errorf("init should not overwrite an existing data file without --force")
	}
	for _, f := range []string{"teardown.yaml", "steps.json"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Errorf("init should create %s: %v", f, err)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	shells := []string{"bash", "zsh", "fish", "powershell"}

	for _, shell := range shells {
		t.Run(shell, func(t *testing.T) {
			cmd := cli.NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{"completion", shell})

			if err := cmd.Execute(); err != nil {
				t.Errorf("completion %s command error = %v", shell, err)
			}
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"unknown-command"})

	if err := cmd.Execute(); err == nil {
		t.Error("unknown command should return an error")
	}
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
