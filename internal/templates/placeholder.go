package templates

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Placeholder tokens are written %%name%% inside template bodies. The
// delimiter does not occur in TypeScript, JSX or Angular template syntax.
const delim = "%%"

var (
	tokenRe = regexp.MustCompile(`%%([A-Za-z][A-Za-z0-9]*)%%`)
	nameRe  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)
)

// Token returns the marker text for placeholder name.
func Token(name string) string {
	return delim + name + delim
}

// ValidName reports whether name can be used as a placeholder name.
func ValidName(name string) bool {
	return nameRe.MatchString(name)
}

// Tokens returns the sorted, de-duplicated placeholder names referenced in text.
func Tokens(text string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range tokenRe.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}

// DeriveParams computes the conventional file name and selector for a
// component name, e.g. "UserList" yields fileName "user-list" and selector
// "app-user-list". A trailing "Component" is dropped first.
func DeriveParams(componentName string) map[string]string {
	base := strings.TrimSuffix(strings.TrimSpace(componentName), "Component")
	k := kebab(base)
	if k == "" {
		return map[string]string{}
	}
	return map[string]string{
		"fileName": k,
		"selector": "app-" + k,
	}
}

func kebab(s string) string {
	var b strings.Builder
	runes := []rune(s)
	dash := func() {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
			b.WriteByte('-')
		}
	}
	for i, r := range runes {
		switch {
		case r == '-' || r == '_' || unicode.IsSpace(r):
			dash()
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					dash()
				}
			}
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}
