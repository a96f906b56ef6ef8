package main

import (
	"log"

	"github.com/stowgate/stowgate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
