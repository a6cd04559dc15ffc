package main

import (
	"context"
	"fmt"
	"os"

	"pkt.systems/psi"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	root := newRootCmd()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
