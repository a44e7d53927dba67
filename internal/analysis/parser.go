package analysis

import (
	"errors"
	"strings"
)

var (
	errUnbalanced = errors.New("unbalanced parentheses")
	errNested     = errors.New("nested parentheses")
)

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenParens
	tokenBrackets
)

type token struct {
	Kind tokenKind
	Text string
}

type tokenList []token

// parseName splits release name to the plain text and (...) / [...] groups
func parseName(name string) (tokenList, error) {
	tokens := tokenList{}
	cur := strings.Builder{}
	kind := tokenText

	flush := func() {
		text := cur.String()
		if kind == tokenText {
			text = strings.TrimSpace(text)
		}
		if text != "" || kind != tokenText {
			tokens = append(tokens, token{Kind: kind, Text: text})
		}
		cur.Reset()
	}

	for _, ch := range name {
		switch ch {
		case '(', '[':
			if kind != tokenText {
				return nil, errNested
			}
			flush()
			kind = tokenParens
			if ch == '[' {
				kind = tokenBrackets
			}

		case ')', ']':
			if (ch == ')' && kind != tokenParens) || (ch == ']' && kind != tokenBrackets) {
				return nil, errUnbalanced
			}
			flush()
			kind = tokenText

		default:
			cur.WriteRune(ch)
		}
	}

	if kind != tokenText {
		return nil, errUnbalanced
	}
	flush()

	return tokens, nil
}

func (l tokenList) Groups() []string {
	var result []string
	for _, t := range l {
		if t.Kind == tokenParens {
			result = append(result, t.Text)
		}
	}
	return result
}

func (l tokenList) Base() string {
	parts := make([]string, 0, len(l))
	for _, t := range l {
		if t.Kind != tokenText {
			break
		}
		parts = append(parts, t.Text)
	}
	return strings.Join(parts, " ")
}
