// SPDX-License-Identifier: MPL-2.0

// Package descriptor resolves a module template selection into a concrete
// module descriptor: name, repository, image references, create options, and
// optional twin content. The descriptor is immutable after Build and is
// consumed by the manifest mutator and the debug configuration generator.
package descriptor

import "fmt"

// Kind identifies a module template. The first-party language kinds are a
// closed set; KindCustom is the open variant carrying a user-supplied
// scaffold command pattern.
type Kind int

const (
	// KindC scaffolds a native-binary (C) module.
	KindC Kind = iota
	// KindCSharp scaffolds a .NET module.
	KindCSharp
	// KindCSharpFunc scaffolds a .NET functions module (attached-to, not
	// launched, when debugging).
	KindCSharpFunc
	// KindNode scaffolds a Node.js module.
	KindNode
	// KindPython scaffolds a Python module.
	KindPython
	// KindJava scaffolds a JVM module.
	KindJava
	// KindRegistryImage references an already-built image picked from a
	// container registry. No files are scaffolded.
	KindRegistryImage
	// KindExistingImage references a user-typed image. No files are
	// scaffolded.
	KindExistingImage
	// KindStreamAnalytics imports a streaming-analytics job as a module.
	// No files are scaffolded and registry credentials are never touched.
	KindStreamAnalytics
	// KindCustom is a third-party template with a user-supplied command.
	KindCustom
)

var kindNames = map[Kind]string{
	KindC:               "C Module",
	KindCSharp:          "C# Module",
	KindCSharpFunc:      "C# Functions Module",
	KindNode:            "Node.js Module",
	KindPython:          "Python Module",
	KindJava:            "Java Module",
	KindRegistryImage:   "Module from Container Registry",
	KindExistingImage:   "Module from Existing Image",
	KindStreamAnalytics: "Stream Analytics Module",
	KindCustom:          "Third-party Module Template",
}

// String returns the user-facing template name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Scaffolded reports whether the kind generates module source files.
func (k Kind) Scaffolded() bool {
	switch k {
	case KindRegistryImage, KindExistingImage, KindStreamAnalytics:
		return false
	default:
		return true
	}
}

// NeedsRegistryCredentials reports whether adding this kind reconciles the
// manifest's registry credentials. Streaming-job modules are the only
// exception.
func (k Kind) NeedsRegistryCredentials() bool {
	return k != KindStreamAnalytics
}

// HasDebugTemplate reports whether a debugger launch template exists for the
// kind.
func (k Kind) HasDebugTemplate() bool {
	switch k {
	case KindC, KindCSharp, KindCSharpFunc, KindNode, KindPython, KindJava:
		return true
	default:
		return false
	}
}

// PickableKinds lists the built-in kinds in quick-pick order.
func PickableKinds() []Kind {
	return []Kind{
		KindC,
		KindCSharp,
		KindCSharpFunc,
		KindJava,
		KindNode,
		KindPython,
		KindRegistryImage,
		KindExistingImage,
		KindStreamAnalytics,
	}
}

// KindByName resolves a user-facing template name back to its Kind.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}
