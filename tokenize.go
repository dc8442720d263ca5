package tablit

import (
	"fmt"
	"strconv"
	"unicode"
)

// TokenizeOptions configures literal-source lexing.
type TokenizeOptions struct {
	// Resolve, when non-nil, is consulted for every bare symbol. A resolved
	// symbol becomes a scalar token carrying the returned value (this is how
	// coercion function references enter a table); an unresolved symbol stays
	// opaque. The core pipeline itself never resolves anything.
	Resolve func(name string) (any, bool)
}

// Tokenize lexes literal-table source into an ordered token sequence. The
// syntax is deliberately small: "|" separates cells, double-quoted strings,
// numbers, true/false/nil, ":keyword" output keys, and bare symbols
// (including divider runs of dashes, which stay plain symbols here and are
// recognized structurally by [Tabularize]).
func Tokenize(opts TokenizeOptions, src string) ([]Token, error) {
	var tokens []Token
	rs := []rune(src)
	i := 0
	for i < len(rs) {
		r := rs[i]
		switch {
		case r == '|':
			tokens = append(tokens, Token{Kind: TokenSeparator, Name: "|"})
			i++
		case unicode.IsSpace(r):
			i++
		case r == '"':
			s, n, err := lexString(rs[i:])
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, Token{Kind: TokenString, Value: s})
			i += n
		case r == ':':
			start := i + 1
			i = start
			for i < len(rs) && isWordRune(rs[i]) {
				i++
			}
			if i == start {
				return nil, fmt.Errorf("%w: empty keyword at offset %d", ErrStructural, start-1)
			}
			tokens = append(tokens, Token{Kind: TokenKeyword, Name: string(rs[start:i])})
		default:
			start := i
			for i < len(rs) && isWordRune(rs[i]) {
				i++
			}
			tokens = append(tokens, classifyWord(opts, string(rs[start:i])))
		}
	}
	return tokens, nil
}

// lexString consumes a double-quoted string starting at rs[0] and returns its
// value and the number of runes consumed. Decoding goes through
// strconv.Unquote so the full Go escape set round-trips: \r, \xNN, \uNNNN and
// friends, which [Serialize] may emit for control characters, lex back to the
// original value.
func lexString(rs []rune) (string, int, error) {
	for i := 1; i < len(rs); i++ {
		switch rs[i] {
		case '\\':
			i++
		case '"':
			lit := string(rs[:i+1])
			s, err := strconv.Unquote(lit)
			if err != nil {
				return "", 0, fmt.Errorf("%w: bad string literal %s", ErrStructural, lit)
			}
			return s, i + 1, nil
		}
	}
	return "", 0, fmt.Errorf("%w: unterminated string literal", ErrStructural)
}

func isWordRune(r rune) bool {
	if unicode.IsSpace(r) || r == '|' || r == '"' {
		return false
	}
	return true
}

// classifyWord turns a bare word into the most specific token it can be:
// bool, nil, number, resolved scalar, or opaque symbol.
func classifyWord(opts TokenizeOptions, word string) Token {
	switch word {
	case "true":
		return Token{Kind: TokenBool, Value: true, Name: word}
	case "false":
		return Token{Kind: TokenBool, Value: false, Name: word}
	case "nil":
		return Token{Kind: TokenNil, Name: word}
	}
	if n, err := strconv.ParseInt(word, 10, 64); err == nil {
		return Token{Kind: TokenNumber, Value: n, Name: word}
	}
	if f, err := strconv.ParseFloat(word, 64); err == nil {
		return Token{Kind: TokenNumber, Value: f, Name: word}
	}
	if opts.Resolve != nil {
		if v, ok := opts.Resolve(word); ok {
			return Token{Kind: kindOf(v), Value: v, Name: word}
		}
	}
	return Token{Kind: TokenSymbol, Name: word}
}

func kindOf(v any) TokenKind {
	switch v.(type) {
	case string:
		return TokenString
	case bool:
		return TokenBool
	case nil:
		return TokenNil
	case int, int64, float64:
		return TokenNumber
	default:
		// Resolved non-scalar values (coercion funcs and the like) ride
		// along as strings would: the kind only matters for cell conversion,
		// which passes Value through untouched.
		return TokenString
	}
}
