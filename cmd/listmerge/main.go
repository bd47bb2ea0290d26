package main

import (
	"os"
	"strings"

	"listmerge/internal/cli"
)

// splitMergePair parses the "A+B" shorthand for a pair of list ids.
func splitMergePair(s string) (string, string, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		return "", "", false
	}
	a, b, ok := strings.Cut(s, "+")
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if !ok || a == "" || b == "" || strings.Contains(b, "+") {
		return "", "", false
	}
	return a, b, true
}

func rewriteMergePairArgs(argv []string) []string {
	// Convenience: `listmerge 1+2 ...` works like `listmerge merge --select 1 --select 2 ...`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (e.g. `listmerge --endpoint ... 1+2`), so we look for
	// the first positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--config":   true,
		"--endpoint": true,
		"--journal":  true,
		"--log-file": true,
		"--format":   true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
		"--debug":  true,
	}

	rewrite := func(i int) []string {
		a, b, _ := splitMergePair(argv[i])
		out := make([]string, 0, len(argv)+4)
		out = append(out, argv[:i]...)
		out = append(out, "merge", "--select", a, "--select", b)
		out = append(out, argv[i+1:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			return argv
		}

		if strings.HasPrefix(a, "-") {
			// --flag=value form
			if strings.Contains(a, "=") {
				continue
			}
			if boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++ // skip value if present
				continue
			}
			continue
		}

		// First positional token.
		if _, _, ok := splitMergePair(a); ok {
			return rewrite(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteMergePairArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
