package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/apidef"
	"github.com/erraggy/apidef/cmd/apidef/commands"
)

var commandNames = []string{"load", "payload", "versions", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var err error
	switch command := os.Args[1]; command {
	case "version", "-v", "--version":
		fmt.Printf("apidef v%s\n\n%s\n", apidef.Version(), apidef.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "load":
		err = commands.HandleLoad(ctx, os.Args[2:], os.Stdout)
	case "payload":
		err = commands.HandlePayload(ctx, os.Args[2:], os.Stdout)
	case "versions":
		err = commands.HandleVersions(os.Args[2:], os.Stdout)
	case "mcp":
		err = commands.HandleMCP(ctx, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input, or "" when
// nothing is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`apidef - OpenAPI and AsyncAPI definition loader

Usage:
  apidef <command> [options]

Commands:
  load        Load a definition, resolve every $ref and report its version
  payload     Build the comparison request body for one or two definitions
  versions    List the supported OpenAPI and AsyncAPI versions
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  apidef load openapi.yaml
  apidef load --format json https://example.com/api/asyncapi.yml
  apidef payload -o body.json api-v2.yaml api-v1.yaml
  apidef versions

Run 'apidef <command> --help' for more information on a command.`)
}
