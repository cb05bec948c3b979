package main

import (
	"os"

	"github.com/speechai/speechai-go/internal/docscan"
)

func main() {
	os.Exit(docscan.CLI(os.Args[1:]))
}
