// Phonebook CLI - list and add entries, apply the schema
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(postgresBackend{}).Execute(); err != nil {
		os.Exit(1)
	}
}
