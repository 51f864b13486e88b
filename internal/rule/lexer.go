package rule

import (
	"strconv"
	"strings"
	"unicode"
)

type scanner struct {
	expr  string // original expression, for error reporting
	input string
	pos   int
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.input) && unicode.IsSpace(rune(s.input[s.pos])) {
		s.pos++
	}
}

func (s *scanner) lexIdentifier() (string, error) {
	if s.pos >= len(s.input) {
		return "", parseError(s.expr, "expression is empty")
	}
	if !isIdentifierStart(rune(s.input[s.pos])) {
		return "", parseError(s.expr, "expected field name at position %d", s.pos)
	}

	start := s.pos
	s.pos++
	for s.pos < len(s.input) && isIdentifierPart(rune(s.input[s.pos])) {
		s.pos++
	}
	return s.input[start:s.pos], nil
}

// lexOperator matches the longest operator token first so "<=" is
// never tokenized as "<" followed by garbage.
func (s *scanner) lexOperator() (Operator, error) {
	rest := s.input[s.pos:]
	for _, op := range []Operator{OpEqual, OpNotEqual, OpLessOrEqual, OpGreaterOrEqual, OpLess, OpGreater} {
		if strings.HasPrefix(rest, string(op)) {
			s.pos += len(op)
			return op, nil
		}
	}
	if rest == "" {
		return "", parseError(s.expr, "missing comparison operator")
	}
	return "", parseError(s.expr, "unrecognized operator at position %d", s.pos)
}

func (s *scanner) lexOperand() (Operand, error) {
	s.skipSpace()
	literal := strings.TrimRightFunc(s.input[s.pos:], unicode.IsSpace)
	if literal == "" {
		return Operand{}, parseError(s.expr, "missing literal operand")
	}

	if literal[0] == '\'' || literal[0] == '"' {
		text, err := s.lexQuoted(literal)
		if err != nil {
			return Operand{}, err
		}
		return Operand{Kind: KindString, Text: text, raw: literal}, nil
	}

	if parsed, err := strconv.ParseFloat(literal, 64); err == nil {
		return Operand{Kind: KindNumber, Number: parsed, raw: literal}, nil
	}

	switch literal {
	case "true":
		return Operand{Kind: KindBool, Bool: true, raw: literal}, nil
	case "false":
		return Operand{Kind: KindBool, Bool: false, raw: literal}, nil
	}

	return Operand{Kind: KindString, Text: literal, raw: literal}, nil
}

// lexQuoted decodes a single- or double-quoted literal that must span
// the whole remaining input.
func (s *scanner) lexQuoted(literal string) (string, error) {
	quote := literal[0]
	var b strings.Builder

	for pos := 1; pos < len(literal); pos++ {
		ch := literal[pos]
		if ch == quote {
			if pos != len(literal)-1 {
				return "", parseError(s.expr, "unexpected text after closing quote")
			}
			return b.String(), nil
		}

		if ch == '\\' {
			pos++
			if pos >= len(literal) {
				return "", parseError(s.expr, "unterminated escape sequence")
			}
			switch escaped := literal[pos]; escaped {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(escaped)
			}
			continue
		}

		b.WriteByte(ch)
	}

	return "", parseError(s.expr, "unterminated string literal")
}

func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentifierPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
