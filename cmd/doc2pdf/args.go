package main

import "strings"

// normalizeArgs rewrites the short switches /R, -R, /O and -O (either case,
// either delimiter) to --recursive and --overwrite so pflag can parse them.
// Tokens after "--" are paths and are left alone.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, a := range args {
		if a == "--" {
			return append(out, args[i:]...)
		}
		switch strings.ToLower(a) {
		case "/r", "-r":
			out = append(out, "--recursive")
		case "/o", "-o":
			out = append(out, "--overwrite")
		default:
			out = append(out, a)
		}
	}
	return out
}
