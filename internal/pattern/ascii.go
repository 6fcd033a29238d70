package pattern

import "strings"

const asciiWord = `a-zA-Z0-9_`

// Replacements used outside a character class.
var asciiOutside = map[byte]string{
	'w': `[` + asciiWord + `]`,
	'W': `[^` + asciiWord + `]`,
	'd': `[0-9]`,
	'D': `[^0-9]`,
	's': `[ \t\n\r\f\v]`,
	'S': `[^ \t\n\r\f\v]`,
	'b': `(?:(?<=[` + asciiWord + `])(?![` + asciiWord + `])|(?<![` + asciiWord + `])(?=[` + asciiWord + `]))`,
	'B': `(?:(?<=[` + asciiWord + `])(?=[` + asciiWord + `])|(?<![` + asciiWord + `])(?![` + asciiWord + `]))`,
}

// Replacements used inside a character class. Negated shorthands and \b
// (backspace inside a class) are left alone.
var asciiInside = map[byte]string{
	'w': asciiWord,
	'd': `0-9`,
	's': ` \t\n\r\f\v`,
}

// asciiClasses rewrites shorthand classes to their ASCII definitions.
func asciiClasses(expr string) string {
	var b strings.Builder
	b.Grow(len(expr))

	inClass := false
	classLen := 0 // bytes seen since '[' or '[^', a leading ']' is literal

	for i := 0; i < len(expr); i++ {
		c := expr[i]

		if c == '\\' && i+1 < len(expr) {
			next := expr[i+1]
			table := asciiOutside
			if inClass {
				table = asciiInside
			}
			if repl, ok := table[next]; ok {
				b.WriteString(repl)
			} else {
				b.WriteByte(c)
				b.WriteByte(next)
			}
			i++
			classLen++
			continue
		}

		switch {
		case !inClass && c == '[':
			inClass = true
			classLen = 0
			b.WriteByte(c)
			if i+1 < len(expr) && expr[i+1] == '^' {
				b.WriteByte('^')
				i++
			}
			continue
		case inClass && c == ']' && classLen > 0:
			inClass = false
		}

		classLen++
		b.WriteByte(c)
	}

	return b.String()
}
