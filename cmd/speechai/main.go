package main

import (
	"os"

	"github.com/speechai/speechai-go/internal/demo"
)

func main() {
	os.Exit(demo.CLI(os.Args[1:]))
}
