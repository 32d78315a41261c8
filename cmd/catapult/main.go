// Package main provides a CLI to decode, hash, sign and cosign the
// transactions of a network.
//
// The network parameters are read from a YAML profile:
//
//	network: MIJIN_TEST
//	generationHash: 57F7DA205008026C776CB6AED843393F04CD458E0AA2D9F1D5F31A402072B2D6
//	signSchema: SHA3
//
// Usage:
//
//	catapult --profile profile.yml hash --payload <hex>
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.dedis.ch/catapult"
)

var (
	printer io.Writer = os.Stderr
	stdout  io.Writer = os.Stdout
	logout  io.Writer = os.Stderr
)

func main() {
	err := run(os.Args)
	if err != nil {
		fmt.Fprintf(printer, "%+v\n", err)
	}
}

// run executes the application. The results are written to stdout and the
// logs to stderr so that the output can be piped.
func run(args []string) error {
	catapult.Logger = catapult.Logger.Output(zerolog.ConsoleWriter{
		Out:        logout,
		TimeFormat: time.RFC3339,
	})

	app := newApp(stdout)

	return app.Run(args)
}
