package transform

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

// shellLanguages are the fence tags treated as shell command blocks.
var shellLanguages = map[string]bool{
	"sh":    true,
	"bash":  true,
	"shell": true,
	"zsh":   true,
}

// pmVariants synthesises equivalent commands for the other supported
// package managers when a shell fence is a known installer invocation.
// Variants are produced by textual substitution of the invocation prefix
// and attached to the pre node's annotations.
type pmVariants struct{}

// NewPackageManagerVariants creates the variant-generation pass.
func NewPackageManagerVariants() Pass { return &pmVariants{} }

// Name implements Pass.
func (p *pmVariants) Name() string { return "pm-variants" }

// Apply implements Pass.
func (p *pmVariants) Apply(ctx *Context, doc *ast.Document) error {
	return walk(doc, func(n ast.Node) error {
		pre, ok := n.(*CodePre)
		if !ok {
			return nil
		}

		ann, ok := ctx.Annotations.Get(pre)
		if !ok || !shellLanguages[ann.Language] {
			return nil
		}

		// Only single-command fences get variants; multi-line scripts
		// are left alone.
		command := strings.TrimSpace(ann.RawSource)
		if command == "" || strings.Contains(command, "\n") {
			return nil
		}

		if variants := CommandVariants(command); variants != nil {
			ann.Variants = variants
		}
		return nil
	})
}

// CommandVariants returns the per-manager equivalents of an npm
// invocation, or nil when the command matches no known installer form.
// Two forms are recognised: installing a package and scaffolding a new
// project.
func CommandVariants(command string) map[string]string {
	if rest, ok := installArgs(command); ok {
		if rest == "" {
			return map[string]string{
				"npm":  command,
				"yarn": "yarn install",
				"pnpm": "pnpm install",
				"bun":  "bun install",
			}
		}
		return map[string]string{
			"npm":  command,
			"yarn": "yarn add" + rest,
			"pnpm": "pnpm add" + rest,
			"bun":  "bun add" + rest,
		}
	}

	if rest, ok := scaffoldArgs(command); ok {
		return map[string]string{
			"npm":  command,
			"yarn": "yarn create " + rest,
			"pnpm": "pnpm create " + rest,
			"bun":  "bun create " + rest,
		}
	}

	return nil
}

// installArgs matches "npm install …" and "npm i …", returning the
// argument tail (with its leading space) when matched.
func installArgs(command string) (string, bool) {
	for _, prefix := range []string{"npm install", "npm i"} {
		if command == prefix {
			return "", true
		}
		if strings.HasPrefix(command, prefix+" ") {
			return strings.TrimPrefix(command, prefix), true
		}
	}
	return "", false
}

// scaffoldArgs matches "npx create-<tool> …" and "npm create <tool> …",
// returning the tool and its arguments when matched.
func scaffoldArgs(command string) (string, bool) {
	if strings.HasPrefix(command, "npx create-") {
		return strings.TrimPrefix(command, "npx create-"), true
	}
	if strings.HasPrefix(command, "npm create ") {
		return strings.TrimPrefix(command, "npm create "), true
	}
	return "", false
}
