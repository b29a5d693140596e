package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/ak0r/zero-theme/cmd"
)

func main() {
	// Error ignored: Set only fails on an invalid GOMAXPROCS value, in which
	// case the runtime default applies.
	_, _ = maxprocs.Set(maxprocs.Logger(log.Printf))

	cmd.Execute()
}
