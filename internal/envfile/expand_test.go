// SPDX-License-Identifier: MPL-2.0

package envfile

import "testing"

func TestExpand(t *testing.T) {
	t.Parallel()

	env := Env{
		"CONTAINER_REGISTRY_USERNAME_MYREGISTRY": "admin",
		"CONTAINER_REGISTRY_PASSWORD_MYREGISTRY": "hunter2",
		"EMPTY": "",
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no references returns input unchanged",
			in:   "plain text without variables",
			want: "plain text without variables",
		},
		{
			name: "bare dollar form",
			in:   "$CONTAINER_REGISTRY_USERNAME_MYREGISTRY",
			want: "admin",
		},
		{
			name: "braced form",
			in:   "${CONTAINER_REGISTRY_PASSWORD_MYREGISTRY}",
			want: "hunter2",
		},
		{
			name: "mixed within text",
			in:   "user=$CONTAINER_REGISTRY_USERNAME_MYREGISTRY pass=${CONTAINER_REGISTRY_PASSWORD_MYREGISTRY}",
			want: "user=admin pass=hunter2",
		},
		{
			name: "unresolved reference left as-is",
			in:   "$NOT_SET and ${ALSO_NOT_SET}",
			want: "$NOT_SET and ${ALSO_NOT_SET}",
		},
		{
			name: "empty value resolves to empty",
			in:   "[$EMPTY]",
			want: "[]",
		},
		{
			name: "lone dollar is not a reference",
			in:   "cost: $5",
			want: "cost: $5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Expand(tt.in, env)
			if got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.in, got, tt.want)
			}
			// Expansion is idempotent once all referenced names resolve.
			if again := Expand(got, env); again != got {
				t.Errorf("Expand not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestHasUnresolved(t *testing.T) {
	t.Parallel()

	env := Env{"KNOWN": "value"}

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "fully resolved", in: "$KNOWN", want: false},
		{name: "no references", in: "nothing here", want: false},
		{name: "unknown bare reference", in: "$UNKNOWN", want: true},
		{name: "unknown braced reference", in: "a ${UNKNOWN} b", want: true},
		{name: "mix of known and unknown", in: "$KNOWN ${UNKNOWN}", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := HasUnresolved(tt.in, env); got != tt.want {
				t.Errorf("HasUnresolved(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
