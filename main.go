// SPDX-License-Identifier: MPL-2.0

// Command cjsify republishes ESM-only npm packages as CommonJS.
package main

import cmd "github.com/cjsify/cjsify/cmd/cjsify"

func main() {
	cmd.Execute()
}
