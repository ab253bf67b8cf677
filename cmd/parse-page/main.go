// Debugging tool: parse a saved playlist page and print the extracted
// songs and schedule date as JSON.
//
// Usage: curl -s https://host/station/playlist/ | go run ./cmd/parse-page
// Or:    go run ./cmd/parse-page < page.html
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"orbplaylist/internal/schedule"
)

func main() {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
		os.Exit(1)
	}

	res, err := schedule.Parse(string(input))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
