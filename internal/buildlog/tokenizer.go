package buildlog

import "strings"

// redirectToken marks the next positional token as an explicit output path.
const redirectToken = ">"

// ParseItem tokenizes the arguments following a recognized tool and binds
// them against the kind's option schema. A conflicting re-definition stops
// the parse and yields an item with a Failed status. anon may be nil.
func ParseItem(kind ItemKind, line int, args string, anon *Anonymizer) Item {
	p := newItemParser(kind, line)
	if err := bindTokens(p, strings.Fields(args)); err != nil {
		p.base().fail(err)
		return p
	}

	if anon != nil {
		p.rewritePaths(anon.Apply)
	}
	p.finish()

	b := p.base()
	for _, tok := range b.unrecognized {
		b.warn("unrecognized option '%s'", tok)
	}
	if len(b.sources) == 0 {
		b.warn("no source file")
	}
	if b.target == "" {
		b.warn("no target file")
	}
	return p
}

func bindTokens(p itemParser, tokens []string) error {
	b := p.base()
	s := p.schema()

	var pending *OptionSpec
	redirect := false

	for _, tok := range tokens {
		if tok == redirectToken {
			redirect = true
			continue
		}

		if s.isSwitch(tok) && !s.isOperandPath(tok) {
			spec, remainder, ok := s.Match(tok[1:])
			if !ok {
				b.unrecognized = append(b.unrecognized, tok)
				continue
			}
			if pending != nil {
				if err := flushPending(b, *pending); err != nil {
					return err
				}
				pending = nil
			}

			handled, err := p.onSwitch(spec, remainder)
			if err != nil {
				return err
			}
			if handled {
				continue
			}

			if spec.SeparateValue && remainder == "" && spec.Shape != ShapeFlag {
				pending = &spec
				continue
			}
			if err := b.options.bind(spec, remainder); err != nil {
				return err
			}
			continue
		}

		switch {
		case redirect:
			redirect = false
			used, err := p.redirect(tok)
			if err != nil {
				return err
			}
			if !used {
				b.unrecognized = append(b.unrecognized, redirectToken, tok)
			}
		case pending != nil:
			spec := *pending
			pending = nil
			if err := b.options.bind(spec, tok); err != nil {
				return err
			}
		default:
			p.collect(tok)
		}
	}

	if redirect {
		b.unrecognized = append(b.unrecognized, redirectToken)
	}
	if pending != nil {
		return flushPending(b, *pending)
	}
	return nil
}

// flushPending binds a separate-value option that never received its value.
// Text options are bound empty; lists gain nothing.
func flushPending(b *itemBase, spec OptionSpec) error {
	if spec.Shape != ShapeText {
		return nil
	}
	return b.options.bind(spec, "")
}
