package main

import (
	"os"

	"github.com/lvezzaro/buildsweep/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
