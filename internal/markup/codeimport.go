package markup

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// codeImportRe matches a code-import directive on a line of its own:
//
//	@[code](./snippets/hello.go)
//	@[code](./snippets/hello.go#L3-L9)
//	@[code](./snippets/hello.go#L4)
//
// The referenced path is resolved relative to the document's directory.
var codeImportRe = regexp.MustCompile(`^@\[code\]\(([^)#]+)(?:#L(\d+)(?:-L(\d+))?)?\)\s*$`)

// ExpandImports replaces every code-import directive line in src with the
// referenced file contents. docDir is the absolute directory of the
// document being compiled. An unresolvable reference or invalid line range
// is fatal for the document.
func ExpandImports(src []byte, docDir string) ([]byte, error) {
	text := string(src)
	if !strings.Contains(text, "@[code](") {
		return src, nil
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		m := codeImportRe.FindStringSubmatch(strings.TrimRight(line, " \t"))
		if m == nil {
			out = append(out, line)
			continue
		}

		snippet, err := readSnippet(docDir, m[1], m[2], m[3])
		if err != nil {
			return nil, err
		}
		out = append(out, snippet)
	}

	return []byte(strings.Join(out, "\n")), nil
}

// readSnippet loads the referenced file, optionally narrowed to a
// one-based, inclusive line range.
func readSnippet(docDir, ref, fromStr, toStr string) (string, error) {
	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(docDir, filepath.FromSlash(ref))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("code import %q: %w", ref, err)
	}
	content := strings.TrimRight(string(raw), "\n")

	if fromStr == "" {
		return content, nil
	}

	from, _ := strconv.Atoi(fromStr)
	to := from
	if toStr != "" {
		to, _ = strconv.Atoi(toStr)
	}

	lines := strings.Split(content, "\n")
	if from < 1 || to < from || to > len(lines) {
		rng := "L" + fromStr
		if toStr != "" {
			rng += "-L" + toStr
		}
		return "", fmt.Errorf("code import %q: line range %s out of bounds (%d lines)",
			ref, rng, len(lines))
	}

	return strings.Join(lines[from-1:to], "\n"), nil
}
