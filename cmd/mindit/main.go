package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"mindit-cli/internal/cli"
)

func isNodeID(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "node-") && len(s) > len("node-")
}

func directLookup(argv []string, i int) []string {
	out := make([]string, 0, len(argv)+2)
	out = append(out, argv[:i]...)
	out = append(out, "export", "--node")
	out = append(out, argv[i:]...)
	return out
}

// rewriteDirectNodeLookupArgs turns `mindit <node-id>` into `mindit export --node <node-id>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before parsing.
// Persistent flags may come first (`mindit --map trip <node-id>`), so the first positional
// token is searched for, not just argv[1].
func rewriteDirectNodeLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":      true,
		"--map":      true,
		"--format":   true,
		"--log-file": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isNodeID(argv[i+1]) {
				rest := append(append([]string(nil), argv[:i]...), argv[i+1:]...)
				return directLookup(rest, i)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}
		if isNodeID(a) {
			return directLookup(argv, i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectNodeLookupArgs(os.Args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	cmd := cli.NewRootCmd()
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
