// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorContextBuild(t *testing.T) {
	t.Parallel()

	cause := errors.New("no such file")
	err := NewErrorContext().
		WithOperation("open solution").
		WithResource("/tmp/sol").
		WithSuggestion("Run 'edgectl solution new' to create a solution").
		Wrap(cause).
		Build()

	msg := err.Error()
	if !strings.Contains(msg, "failed to open solution") {
		t.Errorf("Error() = %q, want the operation", msg)
	}
	if !strings.Contains(msg, "/tmp/sol") {
		t.Errorf("Error() = %q, want the resource", msg)
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap does not reach the cause")
	}
}

func TestFormatIncludesSuggestions(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("load deployment manifest").
		WithSuggestion("check the file is valid JSON").
		WithSuggestion("restore it from version control").
		Build()

	formatted := err.Format()
	for _, want := range []string{"check the file is valid JSON", "restore it from version control"} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() = %q, missing suggestion %q", formatted, want)
		}
	}
}

func TestAsActionable(t *testing.T) {
	t.Parallel()

	inner := NewErrorContext().WithOperation("parse env file").Build()
	wrapped := fmt.Errorf("outer: %w", inner)

	got, ok := AsActionable(wrapped)
	if !ok || got != inner {
		t.Errorf("AsActionable() = %v, %v", got, ok)
	}

	if _, ok := AsActionable(errors.New("plain")); ok {
		t.Error("AsActionable matched a plain error")
	}
}

func TestWrapWithOperation(t *testing.T) {
	t.Parallel()

	if WrapWithOperation(nil, "noop") != nil {
		t.Error("WrapWithOperation(nil) must be nil")
	}

	err := WrapWithOperation(errors.New("boom"), "save manifest")
	if !strings.Contains(err.Error(), "failed to save manifest") {
		t.Errorf("Error() = %q", err.Error())
	}
}
