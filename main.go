// SPDX-License-Identifier: MPL-2.0

// meowda is a scoped virtual environment manager delegating environment
// provisioning to uv.
package main

import cmd "meowda-cli/cmd/meowda"

func main() {
	cmd.Execute()
}
