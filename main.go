// SPDX-License-Identifier: MPL-2.0

package main

import cmd "edgectl/cmd/edgectl"

func main() {
	cmd.Execute()
}
