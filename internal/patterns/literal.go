package patterns

import (
	"regexp/syntax"
	"strings"
)

// LiteralPrefix returns the literal text an anchored pattern requires at the start of
// every match: "^AOTL\d+" gives "AOTL", "^W25[QNX]" gives "W25" and "^(IRF|IRL)"
// gives "IR". Unanchored, case-folded or unparsable patterns give "".
func LiteralPrefix(pattern string) string {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return ""
	}
	re = re.Simplify()

	if !anchored(re) {
		return ""
	}
	prefix, _ := literalPrefix(re)
	return prefix
}

// anchored reports whether the leftmost leaf of re is a start-of-text assertion.
func anchored(re *syntax.Regexp) bool {
	for {
		switch re.Op {
		case syntax.OpBeginText, syntax.OpBeginLine:
			return true
		case syntax.OpConcat, syntax.OpCapture:
			if len(re.Sub) == 0 {
				return false
			}
			re = re.Sub[0]
		default:
			return false
		}
	}
}

// literalPrefix walks re left to right. complete is true when the whole node was
// literal, so a surrounding concatenation may keep going.
func literalPrefix(re *syntax.Regexp) (prefix string, complete bool) {
	switch re.Op {
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase != 0 {
			return "", false
		}
		return string(re.Rune), true
	case syntax.OpBeginText, syntax.OpBeginLine, syntax.OpEmptyMatch:
		return "", true
	case syntax.OpCapture:
		return literalPrefix(re.Sub[0])
	case syntax.OpConcat:
		var b strings.Builder
		for _, sub := range re.Sub {
			p, ok := literalPrefix(sub)
			b.WriteString(p)
			if !ok {
				return b.String(), false
			}
		}
		return b.String(), true
	default:
		return "", false
	}
}
