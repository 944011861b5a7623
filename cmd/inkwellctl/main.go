// Command inkwellctl runs schema, seed and maintenance tasks against the
// Inkwell database.
package main

import "inkwell/cmd/inkwellctl/commands"

func main() {
	commands.Execute()
}
