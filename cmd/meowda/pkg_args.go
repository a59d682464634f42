// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"meowda-cli/internal/config"
	"meowda-cli/internal/scope"
)

// errScopeFlagsExclusive rejects combining --local and --global.
var errScopeFlagsExclusive = errors.New("--local and --global cannot be used together")

// passthroughArgs is the result of scanning a package command's raw
// argument list. Package commands disable Cobra flag parsing so arbitrary
// uv options pass through untouched; meowda's own flags are recognized
// only before the first forwarded argument.
type passthroughArgs struct {
	local   bool
	global  bool
	help    bool
	forward []string
}

// parsePassthroughArgs scans raw for leading meowda flags and returns the
// remainder to forward verbatim to uv. A literal "--" ends the scan.
func parsePassthroughArgs(raw []string) (passthroughArgs, error) {
	var parsed passthroughArgs

	i := 0
scan:
	for ; i < len(raw); i++ {
		switch raw[i] {
		case "--local":
			parsed.local = true
		case "--global":
			parsed.global = true
		case "-h", "--help":
			parsed.help = true
		case "-v", "--verbose":
			verbose = true
		case "--":
			i++
			break scan
		default:
			break scan
		}
	}
	parsed.forward = raw[i:]

	if parsed.local && parsed.global {
		return passthroughArgs{}, errScopeFlagsExclusive
	}
	return parsed, nil
}

// scopeFromPassthrough resolves the scope selected by a package command's
// leading flags, falling back to the configured default.
func scopeFromPassthrough(parsed passthroughArgs, cfg *config.Config) (scope.Scope, error) {
	switch {
	case parsed.local:
		return scope.Local, nil
	case parsed.global:
		return scope.Global, nil
	default:
		return scope.ParseScope(cfg.DefaultScope)
	}
}
