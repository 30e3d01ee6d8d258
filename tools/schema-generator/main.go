// Command schema-generator writes the JSON Schema embedded by the schema
// package. Run it from the module root after changing config types:
//
//	go run ./tools/schema-generator
//	go run ./tools/schema-generator --check
package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/grovetools/samoyed/config"
)

func main() {
	output := pflag.StringP("output", "o", filepath.Join("schema", "samoyed.embedded.schema.json"), "File to write")
	check := pflag.Bool("check", false, "Fail if the file on disk differs from the generated schema")
	pflag.Parse()

	schemaBytes, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}
	schemaBytes = append(schemaBytes, '\n')

	if *check {
		current, err := os.ReadFile(*output)
		if err != nil {
			log.Fatalf("Error reading %s: %v", *output, err)
		}
		if !bytes.Equal(current, schemaBytes) {
			log.Fatalf("%s is out of date; run go run ./tools/schema-generator", *output)
		}
		return
	}

	if err := os.MkdirAll(filepath.Dir(*output), 0o755); err != nil {
		log.Fatalf("Error creating schema directory: %v", err)
	}
	// #nosec G306 -- schema is checked in and world-readable
	if err := os.WriteFile(*output, schemaBytes, 0o644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated schema at %s", *output)
}
