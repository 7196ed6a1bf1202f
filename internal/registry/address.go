// SPDX-License-Identifier: MPL-2.0

// Package registry reconciles container-registry credentials between the
// deployment manifest and the solution's env file: every distinct registry
// address gets exactly one credential entry referencing a pair of
// environment variables, never literal secrets.
package registry

import (
	"strings"
	"unicode"
)

// conventional public registry used when a repository carries no host part.
const defaultAddress = "docker.io"

// Normalize lowercases and trims a registry address. Network addresses are
// compared case-insensitively throughout this package.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// IsLocal reports whether the address is a local registry (localhost with or
// without a port, any casing), which never needs credentials.
func IsLocal(address string) bool {
	addr := Normalize(address)
	return addr == "localhost" || strings.HasPrefix(addr, "localhost:")
}

// AddressOf extracts the registry address from a repository reference. The
// first path segment is the address when it looks like a host (contains a
// dot or a port, or is localhost); otherwise the repository lives on the
// conventional public registry.
func AddressOf(repository string) string {
	repo := Normalize(repository)
	seg, _, found := strings.Cut(repo, "/")
	if !found {
		return defaultAddress
	}
	if strings.ContainsAny(seg, ".:") || seg == "localhost" {
		return seg
	}
	return defaultAddress
}

// keyFor derives a credential map key from a normalized address: its first
// DNS label, sanitized to letters, digits, and underscores.
func keyFor(address string) string {
	label := address
	if i := strings.IndexAny(label, ".:"); i != -1 {
		label = label[:i]
	}

	var b strings.Builder
	for _, r := range label {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "registry"
	}
	return b.String()
}
