package main

import (
	"os"

	"github.com/llehouerou/tytimer/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
