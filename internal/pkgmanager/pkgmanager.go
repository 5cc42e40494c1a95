// file: internal/pkgmanager/pkgmanager.go

// Package pkgmanager picks the JavaScript package manager a new project is bootstrapped for.
package pkgmanager

import (
	"fmt"
	"strings"
)

// PackageManager names a supported package manager.
type PackageManager string

const (
	NPM  PackageManager = "npm"
	PNPM PackageManager = "pnpm"
	Yarn PackageManager = "yarn"
	Bun  PackageManager = "bun"
)

// UserAgentEnv is set by package managers when they run a bin script.
const UserAgentEnv = "npm_config_user_agent"

// Choice holds the --use-* flags.
type Choice struct {
	UseNPM  bool
	UsePNPM bool
	UseYarn bool
	UseBun  bool
}

// Resolve applies the flags in npm, pnpm, yarn, bun order and falls back
// to the manager that launched the process.
func Resolve(c Choice, getenv func(string) string) PackageManager {
	switch {
	case c.UseNPM:
		return NPM
	case c.UsePNPM:
		return PNPM
	case c.UseYarn:
		return Yarn
	case c.UseBun:
		return Bun
	}
	return Detect(getenv(UserAgentEnv))
}

// Detect reads a user agent such as "pnpm/8.6.0 npm/? node/v18.16.0 darwin arm64".
func Detect(userAgent string) PackageManager {
	switch {
	case strings.HasPrefix(userAgent, "yarn"):
		return Yarn
	case strings.HasPrefix(userAgent, "pnpm"):
		return PNPM
	case strings.HasPrefix(userAgent, "bun"):
		return Bun
	}
	return NPM
}

// RunCommand returns the shell command that runs a package.json script.
func (pm PackageManager) RunCommand(script string) string {
	if pm == NPM {
		return fmt.Sprintf("npm run %s", script)
	}
	return fmt.Sprintf("%s %s", pm, script)
}

// InstallCommand returns the shell command that installs dependencies.
func (pm PackageManager) InstallCommand() string {
	return fmt.Sprintf("%s install", pm)
}
