// Package template handles {{variable}} placeholders in prompt content.
package template

import (
	"regexp"
	"strings"
)

var variablePattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// ExtractVariables returns the distinct variable names referenced by the
// content, in first-occurrence order.
func ExtractVariables(content string) []string {
	matches := variablePattern.FindAllStringSubmatch(content, -1)
	seen := make(map[string]struct{}, len(matches))
	vars := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		vars = append(vars, name)
	}
	return vars
}

// ReplaceVariables substitutes recognized {{variable}} tokens with their
// values. Tokens without a value are left verbatim.
func ReplaceVariables(content string, values map[string]string) string {
	return variablePattern.ReplaceAllStringFunc(content, func(token string) string {
		name := strings.Trim(token, "{} \t")
		if v, ok := values[name]; ok {
			return v
		}
		return token
	})
}
