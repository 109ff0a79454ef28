package css

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser reads declaration blocks of style definitions and generated
// stylesheets back into the model.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// ParseDeclarations parses inline declarations ("color: red; margin: 0")
// into a property set. Custom properties (--name) are kept verbatim.
func (p *Parser) ParseDeclarations(text string) (PropertySet, error) {
	var props PropertySet

	parser := css.NewParser(parse.NewInputString(text), true)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return PropertySet{}, fmt.Errorf("unable to parse declarations %q: %w", text, err)
			}
			return props, nil

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			name := strings.ToLower(string(data))
			if gt == css.CustomPropertyGrammar {
				name = string(data)
			}
			value := joinTokens(parser.Values())
			if value == "" {
				p.log.Debug("Skipping empty declaration", zap.String("property", name))
				continue
			}
			props.Add(Property{Name: name, Value: value})

		case css.CommentGrammar:
			continue

		default:
			return PropertySet{}, fmt.Errorf("unexpected content in declarations %q at offset %d", text, parser.Offset())
		}
	}
}

// ParseStylesheet parses rulesets, @media and @keyframes blocks. Other
// at-rules are skipped. It is primarily used to check generated output.
func (p *Parser) ParseStylesheet(data []byte) (*Stylesheet, error) {
	sheet := &Stylesheet{}

	parser := css.NewParser(parse.NewInputBytes(data), false)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("unable to parse stylesheet: %w", err)
			}
			return sheet, nil

		case css.BeginAtRuleGrammar:
			switch atRule := strings.ToLower(string(data)); atRule {
			case "@media":
				query := joinTokens(parser.Values())
				rules, err := p.parseNestedRules(parser)
				if err != nil {
					return nil, err
				}
				p.log.Debug("Parsed @media block", zap.String("query", query), zap.Int("rules", len(rules)))
				sheet.Items = append(sheet.Items, StylesheetItem{
					MediaBlock: &MediaBlock{Features: []MediaFeature{RawCondition(query)}, Rules: rules},
				})
			case "@keyframes":
				kf, err := p.parseKeyframes(parser, joinTokens(parser.Values()))
				if err != nil {
					return nil, err
				}
				sheet.Items = append(sheet.Items, StylesheetItem{Keyframes: kf})
			default:
				p.skipAtRuleBlock(parser)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.BeginRulesetGrammar:
			rule, err := p.parseRuleset(parser, data)
			if err != nil {
				return nil, err
			}
			sheet.Items = append(sheet.Items, StylesheetItem{Rule: &rule})
		}
	}
}

func (p *Parser) parseRuleset(parser *css.Parser, data []byte) (Ruleset, error) {
	sel := selectorText(data, parser.Values())
	props, err := p.parseBlockDeclarations(parser)
	if err != nil {
		return Ruleset{}, fmt.Errorf("unable to parse rule %q: %w", sel, err)
	}
	return Ruleset{Selector: Raw(sel), Properties: props}, nil
}

// parseBlockDeclarations reads declarations until EndRulesetGrammar.
func (p *Parser) parseBlockDeclarations(parser *css.Parser) (PropertySet, error) {
	var props PropertySet
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return props, err
			}
			return props, errors.New("unexpected end of input inside block")
		case css.EndRulesetGrammar:
			return props, nil
		case css.DeclarationGrammar:
			if value := joinTokens(parser.Values()); value != "" {
				props.Add(Property{Name: strings.ToLower(string(data)), Value: value})
			}
		case css.CustomPropertyGrammar:
			if value := joinTokens(parser.Values()); value != "" {
				props.Add(Property{Name: string(data), Value: value})
			}
		}
	}
}

// parseNestedRules parses rulesets inside an @media block.
func (p *Parser) parseNestedRules(parser *css.Parser) ([]Ruleset, error) {
	var rules []Ruleset
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			return nil, errors.New("unexpected end of input inside @media block")
		case css.EndAtRuleGrammar:
			return rules, nil
		case css.BeginRulesetGrammar:
			rule, err := p.parseRuleset(parser, data)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		}
	}
}

// parseKeyframes parses "N% { ... }" steps, "from" and "to" are accepted.
func (p *Parser) parseKeyframes(parser *css.Parser, name string) (*Keyframes, error) {
	kf := &Keyframes{Name: name}
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			return nil, fmt.Errorf("unexpected end of input inside @keyframes %s", name)
		case css.EndAtRuleGrammar:
			return kf, nil
		case css.BeginRulesetGrammar:
			sel := selectorText(data, parser.Values())
			props, err := p.parseBlockDeclarations(parser)
			if err != nil {
				return nil, err
			}
			for part := range strings.SplitSeq(sel, ",") {
				pos, err := parseKeyframeSelector(strings.TrimSpace(part))
				if err != nil {
					return nil, fmt.Errorf("@keyframes %s: %w", name, err)
				}
				kf.Steps = append(kf.Steps, KeyframeStep{Position: pos, Properties: props.Clone()})
			}
		}
	}
}

func parseKeyframeSelector(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "from":
		return 0, nil
	case "to":
		return 100, nil
	}
	pos, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil || !strings.HasSuffix(s, "%") {
		return 0, fmt.Errorf("bad keyframe selector %q", s)
	}
	return pos, nil
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// selectorText builds selector string from grammar data and values. The
// tokenizer drops whitespace around combinators, it is restored here.
func selectorText(data []byte, values []css.Token) string {
	var sb strings.Builder
	sb.Write(data)
	for _, t := range values {
		switch {
		case t.TokenType == css.WhitespaceToken:
			sb.WriteByte(' ')
		case t.TokenType == css.CommaToken:
			sb.WriteString(", ")
		case t.TokenType == css.DelimToken && len(t.Data) == 1 && strings.ContainsRune(">+~", rune(t.Data[0])):
			sb.WriteString(" " + string(t.Data) + " ")
		default:
			sb.Write(t.Data)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// joinTokens rebuilds value or media query text in the canonical spacing the
// writer uses: single spaces between tokens, ", " between list items, ": "
// in media features and " !" before important. Token data, quoted strings
// included, is written as is.
func joinTokens(tokens []css.Token) string {
	var (
		sb      strings.Builder
		pending bool
	)
	write := func(data []byte) {
		if pending && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		pending = false
		sb.Write(data)
	}
	for _, t := range tokens {
		switch {
		case t.TokenType == css.WhitespaceToken:
			pending = true
		case t.TokenType == css.CommaToken, t.TokenType == css.ColonToken:
			write(t.Data)
			pending = true
		case t.TokenType == css.DelimToken && len(t.Data) == 1 && t.Data[0] == '!':
			pending = true
			write(t.Data)
		default:
			write(t.Data)
		}
	}
	return sb.String()
}
