package assistant

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent classifies a customer utterance.
type Intent int

const (
	// IntentNone matches nothing actionable; the assistant answers with a
	// generic prompt.
	IntentNone Intent = iota
	// IntentSearch is a product search request.
	IntentSearch
	// IntentOrder is a purchase request.
	IntentOrder
	// IntentContinuation supplies missing fields for a pending draft. Only
	// produced while a draft exists and the utterance matches neither
	// search nor order vocabulary.
	IntentContinuation
)

// ParseResult carries the classified intent and every slot value the rules
// could extract from the utterance. Zero values mean "not present";
// Quantity defaults to 1 when unparseable.
type ParseResult struct {
	Intent   Intent
	Keyword  string
	Ordinal  int
	Quantity int
	Email    string
	Name     string
}

// Parser classifies a raw utterance. draftPending tells the parser whether
// a continuation reading is available; a fresh search or order intent
// always wins over continuation.
type Parser interface {
	Parse(utterance string, draftPending bool) ParseResult
}

// The matching rules are intentionally narrow: explicit command vocabulary,
// "N번"-style ordinals, digit+counter quantities, an email shape, and a
// small set of naming patterns.
var (
	orderVocab  = regexp.MustCompile(`주문|구매|결제`)
	searchVocab = regexp.MustCompile(`검색|찾아|보여|상품|제품|테스트`)

	ordinalFirst  = regexp.MustCompile(`첫\s*번째`)
	ordinalSecond = regexp.MustCompile(`두\s*번째`)
	ordinalDigit  = regexp.MustCompile(`(\d+)\s*번`)

	quantityDigit = regexp.MustCompile(`(\d+)\s*개`)
	quantityThree = regexp.MustCompile(`세\s*개`)
	quantityTwo   = regexp.MustCompile(`두\s*개`)
	quantityOne   = regexp.MustCompile(`한\s*개`)

	emailPattern = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)

	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`이름(?:은|는)?\s*([가-힣a-zA-Z]{2,20})`),
		regexp.MustCompile(`저는\s*([가-힣a-zA-Z]{2,20})`),
	}
	bareName = regexp.MustCompile(`^[가-힣a-zA-Z]{2,20}$`)

	keywordNoise = regexp.MustCompile(`(?i)상품|제품|검색|찾아줘|보여줘|추천|테스트`)
)

// RuleParser is the rule-based Parser implementation.
type RuleParser struct{}

// NewRuleParser creates the default rule-based parser.
func NewRuleParser() *RuleParser {
	return &RuleParser{}
}

// Parse classifies the utterance and extracts slot values.
func (p *RuleParser) Parse(utterance string, draftPending bool) ParseResult {
	normalized := strings.Join(strings.Fields(utterance), "")
	lower := strings.ToLower(utterance)

	res := ParseResult{
		Ordinal:  parseOrdinal(normalized),
		Quantity: parseQuantity(normalized),
		Email:    emailPattern.FindString(utterance),
		Name:     parseName(utterance),
	}

	isOrder := orderVocab.MatchString(normalized)
	isSearch := searchVocab.MatchString(lower)

	switch {
	case isOrder:
		res.Intent = IntentOrder
	case isSearch:
		res.Intent = IntentSearch
		res.Keyword = strings.TrimSpace(keywordNoise.ReplaceAllString(utterance, ""))
	case draftPending:
		res.Intent = IntentContinuation
	default:
		res.Intent = IntentNone
	}

	return res
}

// parseOrdinal extracts a 1-based ordinal reference, 0 when absent.
func parseOrdinal(normalized string) int {
	if ordinalFirst.MatchString(normalized) {
		return 1
	}
	if ordinalSecond.MatchString(normalized) {
		return 2
	}
	match := ordinalDigit.FindStringSubmatch(normalized)
	if match == nil {
		return 0
	}
	parsed, err := strconv.Atoi(match[1])
	if err != nil || parsed < 1 {
		return 0
	}
	return parsed
}

// parseQuantity extracts an order quantity, defaulting to 1.
func parseQuantity(normalized string) int {
	if match := quantityDigit.FindStringSubmatch(normalized); match != nil {
		if parsed, err := strconv.Atoi(match[1]); err == nil && parsed > 0 {
			return parsed
		}
	}
	if quantityThree.MatchString(normalized) {
		return 3
	}
	if quantityTwo.MatchString(normalized) {
		return 2
	}
	if quantityOne.MatchString(normalized) {
		return 1
	}
	return 1
}

// parseName extracts a customer name from naming patterns, or treats the
// whole trimmed utterance as a name when it is a bare 2-20 rune token.
func parseName(utterance string) string {
	for _, pattern := range namePatterns {
		if match := pattern.FindStringSubmatch(utterance); match != nil {
			return match[1]
		}
	}
	trimmed := strings.TrimSpace(utterance)
	if bareName.MatchString(trimmed) {
		return trimmed
	}
	return ""
}
