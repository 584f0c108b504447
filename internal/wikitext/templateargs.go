package wikitext

import (
	"strconv"
	"strings"
)

// TemplateCall is a top-level template invocation with its arguments.
// Named arguments keep their names; positional arguments are keyed "1", "2",
// and so on. Values are trimmed but otherwise raw: nested markup inside an
// argument value is not expanded here.
type TemplateCall struct {
	Name string
	Args map[string]string
}

// TemplateCalls extracts every top-level template invocation from source.
// Templates nested inside another template's arguments are not reported;
// their text stays embedded in the enclosing argument value.
func TemplateCalls(source string) []TemplateCall {
	runes := []rune(source)
	var out []TemplateCall
	for i := 0; i+1 < len(runes); i++ {
		if runes[i] != '{' || runes[i+1] != '{' {
			continue
		}
		tpl, ok := matchTemplate(runes, i)
		if !ok {
			continue
		}
		out = append(out, TemplateCall{
			Name: tpl.Identifier,
			Args: splitArguments(runes[i+2 : tpl.Outer.End-2]),
		})
		i = tpl.Outer.End - 1 // skip the interior, top level only
	}
	return out
}

// TemplateArguments merges the arguments of all top-level template calls in
// source into one map. Later calls win on duplicate argument names. This is
// the shape a wiki page revision is consumed in: one flat argument map.
func TemplateArguments(source string) map[string]string {
	args := make(map[string]string)
	for _, call := range TemplateCalls(source) {
		for k, v := range call.Args {
			args[k] = v
		}
	}
	return args
}

// splitArguments splits a template interior (name|arg|arg...) into its
// argument map, honoring nesting so pipes inside nested templates or links
// do not split the enclosing argument.
func splitArguments(interior []rune) map[string]string {
	args := make(map[string]string)
	segments := splitTopLevel(interior, '|')
	if len(segments) == 0 {
		return args
	}
	position := 0
	for _, seg := range segments[1:] { // segments[0] is the template name
		name, value, found := cutTopLevel(seg, '=')
		if found {
			args[strings.TrimSpace(name)] = strings.TrimSpace(value)
			continue
		}
		position++
		args[strconv.Itoa(position)] = strings.TrimSpace(seg)
	}
	return args
}

// cutTopLevel splits seg around the first sep that is not inside a nested
// construct. An argument only counts as named when the '=' sits at top level.
func cutTopLevel(seg string, sep rune) (string, string, bool) {
	parts := splitTopLevel([]rune(seg), sep)
	if len(parts) < 2 {
		return seg, "", false
	}
	return parts[0], strings.Join(parts[1:], string(sep)), true
}

// splitTopLevel splits interior at sep occurrences that are not inside a
// nested {{template}} or [[link]].
func splitTopLevel(interior []rune, sep rune) []string {
	var parts []string
	depth := 0
	start := 0
	for j := 0; j < len(interior); j++ {
		if j+1 < len(interior) {
			pair := string(interior[j : j+2])
			if pair == "{{" || pair == "[[" {
				depth++
				j++
				continue
			}
			if pair == "}}" || pair == "]]" {
				depth--
				j++
				continue
			}
		}
		if depth == 0 && interior[j] == sep {
			parts = append(parts, string(interior[start:j]))
			start = j + 1
		}
	}
	parts = append(parts, string(interior[start:]))
	return parts
}
