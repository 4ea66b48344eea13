// Command scistat evaluates normal probabilities, runs hypothesis tests and
// demonstrates gradient descent from the command line.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
