// file: internal/validate/name.go

// Package validate checks proposed project names against npm package naming rules.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// maxNameLength is the longest name the npm registry accepts.
const maxNameLength = 214

// Result is the outcome of a name check. Problems are ordered: hard errors
// first, then the rules that only apply to newly published packages.
type Result struct {
	Valid    bool
	Problems []string
}

var reservedNames = map[string]bool{
	"node_modules": true,
	"favicon.ico":  true,
}

var coreModules = map[string]bool{
	"assert": true, "async_hooks": true, "buffer": true, "child_process": true,
	"cluster": true, "console": true, "constants": true, "crypto": true,
	"dgram": true, "diagnostics_channel": true, "dns": true, "domain": true,
	"events": true, "fs": true, "http": true, "http2": true, "https": true,
	"inspector": true, "module": true, "net": true, "os": true, "path": true,
	"perf_hooks": true, "process": true, "punycode": true, "querystring": true,
	"readline": true, "repl": true, "stream": true, "string_decoder": true,
	"sys": true, "timers": true, "tls": true, "trace_events": true, "tty": true,
	"url": true, "util": true, "v8": true, "vm": true, "wasi": true,
	"worker_threads": true, "zlib": true,
}

var scopedName = regexp.MustCompile(`^(?:@([^/]+?)/)?([^/]+?)$`)

// Validate returns every rule the name violates. It never panics.
func Validate(name string) Result {
	var errs, warnings []string

	if len(name) == 0 {
		errs = append(errs, "name length must be greater than zero")
	}
	if strings.HasPrefix(name, ".") {
		errs = append(errs, "name cannot start with a period")
	}
	if strings.HasPrefix(name, "_") {
		errs = append(errs, "name cannot start with an underscore")
	}
	if strings.TrimSpace(name) != name {
		errs = append(errs, "name cannot contain leading or trailing spaces")
	}
	if reservedNames[strings.ToLower(name)] {
		errs = append(errs, fmt.Sprintf("%s is a blacklisted name", name))
	}

	if coreModules[strings.ToLower(name)] {
		warnings = append(warnings, fmt.Sprintf("%s is a core module name", name))
	}
	if len(name) > maxNameLength {
		warnings = append(warnings, fmt.Sprintf("name can no longer contain more than %d characters", maxNameLength))
	}
	if strings.ToLower(name) != name {
		warnings = append(warnings, "name can no longer contain capital letters")
	}
	segments := strings.Split(name, "/")
	if strings.ContainsAny(segments[len(segments)-1], "~'!()*") {
		warnings = append(warnings, `name can no longer contain special characters ("~'!()*")`)
	}

	if len(name) > 0 && !urlSafe(name) && !scopedURLSafe(name) {
		errs = append(errs, "name can only contain URL-friendly characters")
	}

	problems := append(errs, warnings...)
	return Result{Valid: len(problems) == 0, Problems: problems}
}

// scopedURLSafe accepts @scope/name where both parts are URL safe on their own.
func scopedURLSafe(name string) bool {
	m := scopedName.FindStringSubmatch(name)
	if m == nil || m[1] == "" {
		return false
	}
	return urlSafe(m[1]) && urlSafe(m[2])
}

// urlSafe reports whether s survives URI component encoding unchanged.
func urlSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.IndexByte("-_.!~*'()", c) >= 0:
		default:
			return false
		}
	}
	return true
}
