// file: internal/templates/embed.go
package templates

import "embed"

// TemplateFS holds the built-in project template and its manifest.
//
//go:embed all:default
var TemplateFS embed.FS

// Root is the directory inside TemplateFS that holds the default template.
const Root = "default"
