package lexer

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule is one named pattern of the scanner.
type Rule struct {
	Kind    Kind
	Pattern string
}

// rules are tried as a single alternation. On overlap the earlier rule wins.
var rules = []Rule{
	{NUMBER, `\b\d+\b`},
	{IDENT, `\b[a-zA-Z_][a-zA-Z0-9_]*\b`},
	{OP, `[\+\-\*/=]`},
	{LPAREN, `\(`},
	{RPAREN, `\)`},
	{LBRACE, `\{`},
	{RBRACE, `\}`},
	{SEMICOLON, `;`},
	{WHITESPACE, `\s+`},
}

var (
	scanner   = compileRules(rules)
	groupKind = mapGroups(scanner)
)

func compileRules(rs []Rule) *regexp.Regexp {
	alts := make([]string, 0, len(rs))
	for _, r := range rs {
		alts = append(alts, fmt.Sprintf("(?P<%s>%s)", r.Kind, r.Pattern))
	}

	return regexp.MustCompile(strings.Join(alts, "|"))
}

func mapGroups(re *regexp.Regexp) map[int]Kind {
	byName := make(map[string]Kind, len(rules))
	for _, r := range rules {
		byName[r.Kind.String()] = r.Kind
	}

	m := make(map[int]Kind)
	for i, name := range re.SubexpNames() {
		if k, ok := byName[name]; ok {
			m[i] = k
		}
	}

	return m
}

// Rules returns a copy of the scanner rules in priority order.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

// Tokenize scans source left to right and returns every non-whitespace token
// in the order found. Text that no rule matches is skipped without error.
func Tokenize(source string) []Token {
	var tokens []Token

	for _, loc := range scanner.FindAllStringSubmatchIndex(source, -1) {
		kind, start, end := matchedGroup(loc)
		if kind == WHITESPACE {
			continue
		}

		tokens = append(tokens, Token{
			Kind: kind,
			Text: source[start:end],
			Pos:  start,
		})
	}

	return tokens
}

// matchedGroup returns the kind and span of the first group that
// participated in the match.
func matchedGroup(loc []int) (Kind, int, int) {
	for g := 1; g*2+1 < len(loc); g++ {
		if loc[g*2] < 0 {
			continue
		}

		return groupKind[g], loc[g*2], loc[g*2+1]
	}

	// The alternation has no empty branch, so some group always matched.
	panic("lexer: match without a named group")
}
