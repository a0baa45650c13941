package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeAuthorFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "author.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRenderCommand(t *testing.T) {
	path := writeAuthorFile(t, "Name: Ada Lovelace\n")

	out, err := runCommand(t, "render", path, "json")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.Contains(out, `"Name": "Ada Lovelace"`) {
		t.Errorf("render output = %q, want Name key rendered as JSON", out)
	}
}

func TestRenderCommand_YAML(t *testing.T) {
	path := writeAuthorFile(t, "Name: Ada Lovelace\n")

	out, err := runCommand(t, "render", path, "yaml")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.Contains(out, "Name: Ada Lovelace") {
		t.Errorf("render output = %q, want YAML key/value", out)
	}
}

func TestRenderCommand_UnknownFormat(t *testing.T) {
	path := writeAuthorFile(t, "Name: Ada\n")

	_, err := runCommand(t, "render", path, "csv")
	if err == nil {
		t.Fatal("render should fail for an unregistered format")
	}
	if !strings.Contains(err.Error(), "csv") {
		t.Errorf("error = %v, want the requested format named", err)
	}
}

func TestRenderCommand_MissingFormatArg(t *testing.T) {
	path := writeAuthorFile(t, "Name: Ada\n")

	_, err := runCommand(t, "render", path)
	if err == nil {
		t.Fatal("render should require an explicit format argument")
	}
}
