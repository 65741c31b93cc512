// Package template renders ${{ env.VAR }} expressions in configuration
// values against an environment snapshot.
package template

import (
	"regexp"
	"strings"

	"github.com/modoterra/sugar/pkg/core"
)

var (
	exprPattern = regexp.MustCompile(`\$\{\{(.*?)\}\}`)
	varPattern  = regexp.MustCompile(`^env\.([A-Za-z_][A-Za-z0-9_]*)$`)
)

// EscapeTags escapes literal {{ and }} sequences so compose-native template
// syntax embedded in YAML values survives the rendering pass.
func EscapeTags(s string) string {
	s = strings.ReplaceAll(s, "{{", `\{\{`)
	return strings.ReplaceAll(s, "}}", `\}\}`)
}

// UnescapeTags reverses EscapeTags.
func UnescapeTags(s string) string {
	s = strings.ReplaceAll(s, `\{\{`, "{{")
	return strings.ReplaceAll(s, `\}\}`, "}}")
}

// Render substitutes every ${{ env.VAR }} expression in s with the value of
// VAR from env. A variable missing from env renders as an empty string; an
// expression that is not an env lookup is a configuration error.
func Render(s string, env map[string]string) (string, error) {
	var exprErr error
	out := exprPattern.ReplaceAllStringFunc(s, func(match string) string {
		expr := strings.TrimSpace(exprPattern.FindStringSubmatch(match)[1])
		m := varPattern.FindStringSubmatch(expr)
		if m == nil {
			if exprErr == nil {
				exprErr = core.NewError(core.ErrInvalidConfig,
					"invalid template expression %q", expr)
			}
			return match
		}
		return env[m[1]]
	})
	if exprErr != nil {
		return "", exprErr
	}
	if idx := strings.Index(out, "${{"); idx >= 0 {
		return "", core.NewError(core.ErrInvalidConfig,
			"unclosed template expression at %q", out[idx:])
	}
	return out, nil
}
