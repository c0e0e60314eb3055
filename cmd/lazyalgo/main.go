package main

import (
	"os"

	"github.com/paccolamano/lazyalgo/app"
)

func main() {
	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}
