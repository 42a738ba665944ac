// The main package for the occupation-risk executable.
package main

import (
	"github.com/JakeFAU/occupation-risk/cmd"
)

// main defers all execution to the Cobra CLI.
func main() {
	cmd.Execute()
}
