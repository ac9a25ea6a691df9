// Package webext provides the browser-console helper script that extracts
// the current preset settings from the Dehancer web editor in a format the
// CLI's --settings_file flag accepts.
package webext

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed scripts/*.js
var scriptFS embed.FS

const (
	originalScript   = "scripts/get-settings-via-browser-console.js"
	obfuscatedScript = "scripts/get-settings-via-browser-console-obfuscated.js"
)

// Content returns the script ready to paste into a browser console. When an
// obfuscated build is bundled it is returned untouched; otherwise the
// original script is minified.
func Content() (string, error) {
	if data, err := scriptFS.ReadFile(obfuscatedScript); err == nil {
		return string(data), nil
	}

	data, err := scriptFS.ReadFile(originalScript)
	if err != nil {
		return "", fmt.Errorf("webext: script not bundled: %w", err)
	}

	return minify(string(data)), nil
}

// minify strips comments and leading indentation, and drops blank lines.
// String and regex literals are left alone; a full JS parser is not worth it
// for one bundled script.
func minify(src string) string {
	var out []string

	inBlockComment := false

	for _, line := range strings.Split(src, "\n") {
		if inBlockComment {
			if idx := strings.Index(line, "*/"); idx >= 0 {
				line = line[idx+2:]
				inBlockComment = false
			} else {
				continue
			}
		}

		line = stripLineComment(line)

		if idx := strings.Index(line, "/*"); idx >= 0 && !insideString(line, idx) {
			if end := strings.Index(line[idx:], "*/"); end >= 0 {
				line = line[:idx] + line[idx+end+2:]
			} else {
				line = line[:idx]
				inBlockComment = true
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

// stripLineComment removes a trailing // comment unless the slashes sit
// inside a string literal.
func stripLineComment(line string) string {
	for i := 0; i+1 < len(line); i++ {
		if line[i] == '/' && line[i+1] == '/' && !insideString(line, i) {
			return line[:i]
		}
	}
	return line
}

// insideString reports whether position idx falls inside a quoted string.
func insideString(line string, idx int) bool {
	var quote byte
	for i := 0; i < idx; i++ {
		c := line[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote == 0 && (c == '"' || c == '\'' || c == '`'):
			quote = c
		}
	}
	return quote != 0
}
