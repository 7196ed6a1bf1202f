// SPDX-License-Identifier: MPL-2.0

package descriptor

// Production create options are empty for every scaffolded language; the
// debug variants open the debugger port of each runtime (or run privileged
// for native debugging). C# is debugged by attaching through the container,
// so it needs no port mapping.

func defaultCreateOptions(Kind) map[string]any {
	return map[string]any{}
}

func debugCreateOptions(k Kind) map[string]any {
	switch k {
	case KindC:
		return map[string]any{
			"HostConfig": map[string]any{"Privileged": true},
		}
	case KindNode:
		return debugPortOptions("9229", true)
	case KindJava:
		return debugPortOptions("5005", false)
	case KindPython:
		return debugPortOptions("5678", true)
	default:
		return map[string]any{}
	}
}

// debugPortOptions maps a container debug port to the same host port,
// optionally exposing it on the container as well.
func debugPortOptions(port string, expose bool) map[string]any {
	opts := map[string]any{
		"HostConfig": map[string]any{
			"PortBindings": map[string]any{
				port + "/tcp": []any{
					map[string]any{"HostPort": port},
				},
			},
		},
	}
	if expose {
		opts["ExposedPorts"] = map[string]any{port + "/tcp": map[string]any{}}
	}
	return opts
}
