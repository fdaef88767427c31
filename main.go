package main

import (
	"fmt"
	"os"

	"blockblast/ui"
)

func main() {
	if err := ui.RunBlockBlast(); err != nil {
		fmt.Fprintf(os.Stderr, "blockblast: %v\n", err)
		os.Exit(1)
	}
}
