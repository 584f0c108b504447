package wikitext

import (
	"strings"
	"unicode"
)

// Parse scans source and reports every recognized construct, grouped by kind.
//
// Each kind is matched independently; a construct of one kind may nest inside
// a construct of another. Malformed or unterminated markup is never an error:
// anything that does not match completely is simply not reported and its
// characters remain plain text.
func Parse(source string) ConstructSet {
	runes := []rune(source)
	return ConstructSet{
		Emphasis:  parseEmphasis(runes),
		Tags:      parseTags(runes),
		Links:     parseLinks(runes),
		Templates: parseTemplates(runes),
	}
}

// apostropheRun is a maximal run of two or more apostrophes. Runs of three or
// more act as bold delimiters, runs of exactly two as italic delimiters.
type apostropheRun struct {
	start  int
	length int
}

func (a apostropheRun) kind() EmphasisKind {
	if a.length >= 3 {
		return Bold
	}
	return Italic
}

func parseEmphasis(runes []rune) []Emphasis {
	var runs []apostropheRun
	for i := 0; i < len(runes); {
		if runes[i] != '\'' {
			i++
			continue
		}
		j := i
		for j < len(runes) && runes[j] == '\'' {
			j++
		}
		if j-i >= 2 {
			runs = append(runs, apostropheRun{start: i, length: j - i})
		}
		i = j
	}

	var out []Emphasis
	used := make([]bool, len(runs))
	for i, open := range runs {
		if used[i] {
			continue
		}
		for j := i + 1; j < len(runs); j++ {
			if used[j] || runs[j].kind() != open.kind() {
				continue
			}
			closing := runs[j]
			used[i], used[j] = true, true
			out = append(out, Emphasis{
				Kind:  open.kind(),
				Outer: Span{open.start, closing.start + closing.length},
				Inner: Span{open.start + open.length, closing.start},
			})
			break
		}
	}
	return out
}

// voidTags are HTML tags that never carry content and need no closing tag.
var voidTags = map[string]bool{"br": true, "hr": true, "wbr": true}

func parseTags(runes []rune) []Tag {
	var out []Tag
	for i := 0; i < len(runes); i++ {
		if runes[i] != '<' || i+1 >= len(runes) || !unicode.IsLetter(runes[i+1]) {
			continue
		}

		j := i + 1
		for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j])) {
			j++
		}
		name := strings.ToLower(string(runes[i+1 : j]))

		attrStart := j
		gt, selfClosed := -1, false
		var quote rune
		for ; j < len(runes); j++ {
			c := runes[j]
			if quote != 0 {
				if c == quote {
					quote = 0
				}
				continue
			}
			if c == '\'' || c == '"' {
				quote = c
				continue
			}
			if c == '<' { // malformed open tag
				break
			}
			if c == '>' {
				gt = j
				selfClosed = j > attrStart && runes[j-1] == '/'
				break
			}
		}
		if gt < 0 {
			continue
		}

		identifier := name
		if class := attrValue(string(runes[attrStart:gt]), "class"); class != "" {
			identifier = class
		}

		if selfClosed || voidTags[name] {
			out = append(out, Tag{Identifier: identifier, Outer: Span{i, gt + 1}})
			i = gt
			continue
		}

		closeStart, closeEnd := findClosingTag(runes, gt+1, name)
		if closeStart < 0 {
			continue
		}
		inner := Span{gt + 1, closeStart}
		out = append(out, Tag{Identifier: identifier, Outer: Span{i, closeEnd}, Inner: &inner})
		i = gt
	}
	return out
}

// attrValue extracts the value of the named attribute from the raw attribute
// region of an open tag. Quoted and bare values are supported.
func attrValue(attrs, name string) string {
	lower := strings.ToLower(attrs)
	idx := 0
	for {
		pos := strings.Index(lower[idx:], name)
		if pos < 0 {
			return ""
		}
		pos += idx
		idx = pos + len(name)

		// Must be a whole attribute name followed by '='.
		if pos > 0 && !unicode.IsSpace(rune(lower[pos-1])) {
			continue
		}
		rest := strings.TrimLeft(attrs[pos+len(name):], " \t\n")
		if !strings.HasPrefix(rest, "=") {
			continue
		}
		rest = strings.TrimLeft(rest[1:], " \t\n")
		if rest == "" {
			return ""
		}
		if rest[0] == '\'' || rest[0] == '"' {
			if end := strings.IndexByte(rest[1:], rest[0]); end >= 0 {
				return rest[1 : 1+end]
			}
			return ""
		}
		if end := strings.IndexAny(rest, " \t\n/>"); end >= 0 {
			return rest[:end]
		}
		return rest
	}
}

// findClosingTag locates </name> at or after from, returning the rune offsets
// of its '<' and one past its '>'. Returns (-1, -1) when no closing tag exists.
func findClosingTag(runes []rune, from int, name string) (int, int) {
	needle := []rune(name)
	for i := from; i < len(runes)-1; i++ {
		if runes[i] != '<' || runes[i+1] != '/' {
			continue
		}
		j := i + 2
		k := 0
		for k < len(needle) && j < len(runes) && unicode.ToLower(runes[j]) == needle[k] {
			j++
			k++
		}
		if k != len(needle) {
			continue
		}
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j < len(runes) && runes[j] == '>' {
			return i, j + 1
		}
	}
	return -1, -1
}

func parseLinks(runes []rune) []Link {
	var out []Link
	for i := 0; i+1 < len(runes); i++ {
		if runes[i] != '[' || runes[i+1] != '[' {
			continue
		}
		link, ok := matchLink(runes, i)
		if ok {
			out = append(out, link)
		}
		i++ // keep scanning inside the body so nested links are reported too
	}
	return out
}

func matchLink(runes []rune, start int) (Link, bool) {
	depth := 0
	nested := false
	pipe := -1
	end := -1
	for j := start; j+1 < len(runes); {
		switch {
		case runes[j] == '[' && runes[j+1] == '[':
			depth++
			if depth > 1 {
				nested = true
			}
			j += 2
		case runes[j] == ']' && runes[j+1] == ']':
			depth--
			j += 2
			if depth == 0 {
				end = j
			}
		default:
			if depth == 1 && runes[j] == '|' && pipe < 0 {
				pipe = j
			}
			j++
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return Link{}, false
	}

	link := Link{Outer: Span{start, end}, HasNestedLink: nested}
	if pipe >= 0 {
		link.Target = string(runes[start+2 : pipe])
		link.Display = &Span{pipe + 1, end - 2}
	} else {
		link.Target = string(runes[start+2 : end-2])
	}
	return link, true
}

func parseTemplates(runes []rune) []Template {
	var out []Template
	for i := 0; i+1 < len(runes); i++ {
		if runes[i] != '{' || runes[i+1] != '{' {
			continue
		}
		tpl, ok := matchTemplate(runes, i)
		if ok {
			out = append(out, tpl)
		}
		i++ // nested templates are separate constructs
	}
	return out
}

func matchTemplate(runes []rune, start int) (Template, bool) {
	depth := 0
	nested := false
	pipe := -1
	end := -1
	for j := start; j+1 < len(runes); {
		switch {
		case runes[j] == '{' && runes[j+1] == '{':
			depth++
			if depth > 1 {
				nested = true
			}
			j += 2
		case runes[j] == '}' && runes[j+1] == '}':
			depth--
			j += 2
			if depth == 0 {
				end = j
			}
		default:
			if depth == 1 && runes[j] == '|' && pipe < 0 {
				pipe = j
			}
			j++
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return Template{}, false
	}

	nameEnd := end - 2
	if pipe >= 0 {
		nameEnd = pipe
	}
	return Template{
		Identifier:        strings.TrimSpace(string(runes[start+2 : nameEnd])),
		Outer:             Span{start, end},
		HasNestedTemplate: nested,
	}, true
}
