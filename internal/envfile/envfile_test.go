// SPDX-License-Identifier: MPL-2.0

package envfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_BasicKeyValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected map[string]string
	}{
		{
			name:     "simple key value",
			content:  "FOO=bar",
			expected: map[string]string{"FOO": "bar"},
		},
		{
			name:     "multiple key values",
			content:  "FOO=bar\nBAZ=qux",
			expected: map[string]string{"FOO": "bar", "BAZ": "qux"},
		},
		{
			name:     "empty value",
			content:  "CONTAINER_REGISTRY_PASSWORD_LOCAL=",
			expected: map[string]string{"CONTAINER_REGISTRY_PASSWORD_LOCAL": ""},
		},
		{
			name:     "value with equals sign",
			content:  "URL=https://example.com?foo=bar",
			expected: map[string]string{"URL": "https://example.com?foo=bar"},
		},
		{
			name:     "comments and blank lines",
			content:  "# registry credentials\n\nUSER=admin\n",
			expected: map[string]string{"USER": "admin"},
		},
		{
			name:     "export prefix",
			content:  "export TOKEN=abc",
			expected: map[string]string{"TOKEN": "abc"},
		},
		{
			name:     "quoted values",
			content:  "A=\"with \\\"quotes\\\"\"\nB='literal \\n'",
			expected: map[string]string{"A": `with "quotes"`, "B": `literal \n`},
		},
		{
			name:     "windows line endings",
			content:  "FOO=bar\r\nBAZ=qux\r\n",
			expected: map[string]string{"FOO": "bar", "BAZ": "qux"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := Env{}
			if err := Parse(env, []byte(tt.content), "test.env"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for k, v := range tt.expected {
				if env[k] != v {
					t.Errorf("expected %s=%q, got %s=%q", k, v, k, env[k])
				}
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{name: "missing equals", content: "NOTANASSIGNMENT", wantMsg: "missing '='"},
		{name: "empty key", content: "=value", wantMsg: "empty variable name"},
		{name: "unterminated quote", content: "KEY=\"oops", wantMsg: "unterminated double quote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Parse(Env{}, []byte(tt.content), "test.env")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected error containing %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	env, err := Load(filepath.Join(t.TempDir(), "does-not-exist.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env) != 0 {
		t.Errorf("expected empty env, got %v", env)
	}
}

func TestAppend_CreatesAndAppends(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")

	if err := Append(path, []Pair{{Key: "A", Value: "1"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Append(path, []Pair{{Key: "B", Value: ""}, {Key: "C", Value: "3"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "A=1\nB=\nC=3\n"
	if string(content) != want {
		t.Errorf("expected %q, got %q", want, string(content))
	}
}

func TestAppend_InsertsNewlineAfterUnterminatedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("EXISTING=keep"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := Append(path, []Pair{{Key: "NEW", Value: "x"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, _ := os.ReadFile(path)
	want := "EXISTING=keep\nNEW=x\n"
	if string(content) != want {
		t.Errorf("expected %q, got %q", want, string(content))
	}
}

func TestAppend_NoPairsIsNoop(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".env")
	if err := Append(path, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected no file to be created")
	}
}
