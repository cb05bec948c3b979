package main

import (
	"os"

	"github.com/speechai/speechai-go/internal/tutor"
)

func main() {
	os.Exit(tutor.CLI(os.Args[1:]))
}
