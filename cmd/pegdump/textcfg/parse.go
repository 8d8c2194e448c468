package textcfg

import (
	"fmt"

	"github.com/pegrewrite/peg/cfg"
)

// Parse reads src and builds a cfg.Func, resolving forward references to
// blocks declared later in the file.
func Parse(src string) (*cfg.Func, error) {
	p := &parser{lex: NewLexer(trimEmptyLines(src) + "\n")}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.parseFunc()
}

type decl struct {
	name  string
	succs []string
	line  int
}

type parser struct {
	lex   *Lexer
	tok   Token
	entry string
}

func (p *parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) expect(k TokenKind) (Token, error) {
	if p.tok.Kind != k {
		return Token{}, fmt.Errorf("textcfg: line %d: unexpected token %q", p.tok.Line, p.tok.Text)
	}
	tok := p.tok
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

func (p *parser) skipBlankLines() error {
	for p.tok.Kind == Newline {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseFunc() (*cfg.Func, error) {
	var decls []decl
	if err := p.skipBlankLines(); err != nil {
		return nil, err
	}
	for p.tok.Kind != EOF {
		name, err := p.expect(Ident)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(Colon); err != nil {
			return nil, err
		}

		if name.Text == "entry" {
			target, err := p.expect(Ident)
			if err != nil {
				return nil, err
			}
			p.entry = target.Text
		} else {
			var succs []string
			if p.tok.Kind == Ident {
				s, err := p.expect(Ident)
				if err != nil {
					return nil, err
				}
				succs = append(succs, s.Text)
				for p.tok.Kind == Comma {
					if err := p.advance(); err != nil {
						return nil, err
					}
					s, err := p.expect(Ident)
					if err != nil {
						return nil, err
					}
					succs = append(succs, s.Text)
				}
			}
			if len(succs) > 2 {
				return nil, fmt.Errorf("textcfg: line %d: block %q has unsupported switch-shaped terminator with %d successors", name.Line, name.Text, len(succs))
			}
			decls = append(decls, decl{name: name.Text, succs: succs, line: name.Line})
		}

		if err := p.skipBlankLines(); err != nil {
			return nil, err
		}
	}

	if p.entry == "" {
		return nil, fmt.Errorf("textcfg: missing entry declaration")
	}
	return build(p.entry, decls)
}

func build(entryName string, decls []decl) (*cfg.Func, error) {
	b := cfg.NewBuilder("pegdump")
	blocks := make(map[string]*cfg.Block)
	for _, d := range decls {
		blocks[d.name] = b.CreateBlock(d.name)
	}
	entry, ok := blocks[entryName]
	if !ok {
		return nil, fmt.Errorf("textcfg: entry block %q is not declared", entryName)
	}

	for _, d := range decls {
		block := blocks[d.name]
		switch len(d.succs) {
		case 0:
			b.SetTerminator(block, &cfg.JmpTerm{Target: nil})
		case 1:
			succ, ok := blocks[d.succs[0]]
			if !ok {
				return nil, fmt.Errorf("textcfg: line %d: block %q references undeclared block %q", d.line, d.name, d.succs[0])
			}
			b.SetTerminator(block, &cfg.JmpTerm{Target: succ})
		case 2:
			t, ok1 := blocks[d.succs[0]]
			f, ok2 := blocks[d.succs[1]]
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("textcfg: line %d: block %q references an undeclared block", d.line, d.name)
			}
			b.SetTerminator(block, &cfg.CondTerm{True: t, False: f})
		}
	}

	return b.Finish(entry)
}
