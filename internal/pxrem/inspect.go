package pxrem

import (
	"errors"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.trai.ch/zerr"
)

// StylesheetStats summarizes a parsed stylesheet
type StylesheetStats struct {
	Rulesets     int            // Rulesets at any nesting level
	MediaBlocks  int            // @media blocks
	MediaRules   int            // Rulesets nested inside an @media block
	Declarations int            // Declarations across all rulesets
	Selectors    []string       // Selectors in document order
	MediaQueries map[string]int // Media prelude → number of blocks using it
}

// inspectState keeps track of at-rule nesting while walking the grammar
type inspectState struct {
	stats      StylesheetStats
	blockStack []bool // true when the open block is an @media block
}

// InspectStylesheet parses CSS content and counts the rules it defines.
func InspectStylesheet(content string) (StylesheetStats, error) {
	state := &inspectState{
		stats: StylesheetStats{MediaQueries: make(map[string]int)},
	}

	p := css.NewParser(parse.NewInputString(content), false)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				return state.stats, zerr.Wrap(err, ErrStylesheetParse.Error())
			}
			return state.stats, nil

		case css.BeginAtRuleGrammar:
			isMedia := strings.EqualFold(string(data), "@media")
			if isMedia {
				state.stats.MediaBlocks++
				state.stats.MediaQueries["@media "+joinTokens(p.Values())]++
			}
			state.blockStack = append(state.blockStack, isMedia)

		case css.EndAtRuleGrammar:
			if n := len(state.blockStack); n > 0 {
				state.blockStack = state.blockStack[:n-1]
			}

		case css.QualifiedRuleGrammar:
			// one selector of a comma-separated list, the ruleset begins with the last one
			state.stats.Selectors = append(state.stats.Selectors, joinTokens(p.Values()))

		case css.BeginRulesetGrammar:
			state.stats.Rulesets++
			if state.inMedia() {
				state.stats.MediaRules++
			}
			state.stats.Selectors = append(state.stats.Selectors, joinTokens(p.Values()))

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			state.stats.Declarations++
		}
	}
}

func (s *inspectState) inMedia() bool {
	for _, isMedia := range s.blockStack {
		if isMedia {
			return true
		}
	}
	return false
}

// joinTokens rebuilds the source text of a token run with whitespace collapsed
func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			b.WriteByte(' ')
			continue
		}
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}
