// Package ifjlex turns IFJ23 source text into classified tokens. The raw
// scanning is done by a participle stateful lexer; Stream layers keyword and
// punctuation classification, comment skipping, string literal processing and
// one token of pushback on top of it.
package ifjlex

import (
	"io"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"github.com/vyPal/ifjc/lib/diag"
)

// Definition is the raw lexer for IFJ23 source. Block comments nest, so they
// are lexed in their own state.
var Definition = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "CommentStart", Pattern: `/\*`, Action: lexer.Push("Comment")},
		{Name: "MultiString", Pattern: `"""[ \t]*\n(?s:.*?)"""`},
		{Name: "String", Pattern: `"(\\.|[^"\\\n])*"`},
		{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Punct", Pattern: `->|==|!=|<=|>=|\?\?|[-+*/=<>!?:,(){}]`},
	},
	"Comment": {
		{Name: "CommentStart", Pattern: `/\*`, Action: lexer.Push("Comment")},
		{Name: "CommentEnd", Pattern: `\*/`, Action: lexer.Pop()},
		{Name: "CommentText", Pattern: `[^*/]+|[*/]`},
	},
})

var symbolNames = func() map[lexer.TokenType]string {
	names := make(map[lexer.TokenType]string)
	for name, tt := range Definition.Symbols() {
		names[tt] = name
	}
	return names
}()

// Stream is a pull-based token source with at most one token of pushback.
type Stream struct {
	lex     lexer.Lexer
	pending *Token
}

// NewStream reads all of r and prepares it for tokenizing.
func NewStream(filename string, r io.Reader) (*Stream, error) {
	l, err := Definition.Lex(filename, r)
	if err != nil {
		return nil, &diag.Error{Kind: diag.KindInternal, Msg: errors.Wrap(err, "reading source").Error()}
	}
	return &Stream{lex: l}, nil
}

// NewStringStream tokenizes src.
func NewStringStream(filename, src string) (*Stream, error) {
	return NewStream(filename, strings.NewReader(src))
}

// Unget pushes tok back so the next call to Next returns it. Only one token
// may be pending at a time.
func (s *Stream) Unget(tok Token) {
	if s.pending != nil {
		panic("ifjlex: Unget called with a token already pending")
	}
	s.pending = &tok
}

// Next returns the next significant token. Lexical failures are returned as
// *diag.Error with KindLexical.
func (s *Stream) Next() (Token, error) {
	if s.pending != nil {
		tok := *s.pending
		s.pending = nil
		return tok, nil
	}

	depth := 0
	var commentPos lexer.Position
	for {
		raw, err := s.lex.Next()
		if err != nil {
			return Token{}, lexFailure(err)
		}
		if raw.EOF() {
			if depth > 0 {
				return Token{}, diag.PosErrorf(diag.KindLexical, commentPos, "unterminated block comment")
			}
			return Token{Type: EOF, Pos: raw.Pos}, nil
		}

		switch symbolNames[raw.Type] {
		case "Whitespace", "LineComment", "CommentText":
			continue
		case "CommentStart":
			if depth == 0 {
				commentPos = raw.Pos
			}
			depth++
			continue
		case "CommentEnd":
			depth--
			continue
		}
		return classify(raw)
	}
}

// All drains the stream, returning every token up to and including EOF.
func (s *Stream) All() ([]Token, error) {
	var toks []Token
	for {
		tok, err := s.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks, nil
		}
	}
}

func classify(raw lexer.Token) (Token, error) {
	tok := Token{Text: raw.Value, Pos: raw.Pos}
	switch symbolNames[raw.Type] {
	case "Ident":
		if kw, ok := keywords[raw.Value]; ok {
			tok.Type = kw
		} else {
			tok.Type = Identifier
		}
	case "Number":
		if strings.ContainsAny(raw.Value, ".eE") {
			tok.Type = DecimalLiteral
		} else {
			tok.Type = IntLiteral
		}
	case "String":
		text, err := unescape(raw.Value[1 : len(raw.Value)-1])
		if err != nil {
			return Token{}, diag.PosErrorf(diag.KindLexical, raw.Pos, "%s", err)
		}
		tok.Type, tok.Text = StringLiteral, text
	case "MultiString":
		text, err := multilineContent(raw.Value)
		if err != nil {
			return Token{}, diag.PosErrorf(diag.KindLexical, raw.Pos, "%s", err)
		}
		tok.Type, tok.Text = StringLiteral, text
	case "Punct":
		tt, ok := punctuation[raw.Value]
		if !ok {
			return Token{}, diag.PosErrorf(diag.KindLexical, raw.Pos, "unknown operator %q", raw.Value)
		}
		tok.Type = tt
	default:
		return Token{}, diag.PosErrorf(diag.KindInternal, raw.Pos, "unexpected raw token %q", raw.Value)
	}
	return tok, nil
}

func lexFailure(err error) error {
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		return diag.PosErrorf(diag.KindLexical, lerr.Pos, "%s", lerr.Msg)
	}
	return &diag.Error{Kind: diag.KindLexical, Msg: err.Error()}
}
