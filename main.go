// search is a unified find/grep/sed-style utility: it recursively
// enumerates files under filter predicates, finds line matches, and can
// rewrite matched content in place.
package main

import (
	"errors"
	"fmt"
	"os"

	"search/cmd"
	"search/internal/search"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	if errors.Is(err, search.ErrCancelled) {
		// Already reported interactively.
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, err)
	if search.IsConfigError(err) {
		os.Exit(2)
	}
	os.Exit(1)
}
