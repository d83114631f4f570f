// funclen flags Python functions and methods that grow past a line limit.
// Exit status is 1 when any declaration reaches the error limit.
package main

import (
	"fmt"
	"os"

	"github.com/corey/funclen/cmd/funclen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if code := cmd.ExitCode(err); code >= 0 {
			os.Exit(code)
		}
		fmt.Fprintf(os.Stderr, "funclen: %v\n", err)
		os.Exit(2)
	}
}
