// Package salvageparse extracts salvage dollar values from free-form email
// text. Several extraction strategies run in order of reliability and each
// carries a fixed confidence score; when none clears the confidence
// threshold the candidates are aggregated at reduced confidence.
package salvageparse

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	pkgLog "crashify360/pkg/log"
	"crashify360/pkg/money"
)

const (
	// Plausible salvage range; candidates outside it are discarded.
	minPlausibleValue = 500
	maxPlausibleValue = 100000

	defaultConfidenceThreshold = 0.6
)

// Extraction method names reported in ParseResult.
const (
	MethodEmptyInput       = "empty_input"
	MethodStructured       = "structured_format"
	MethodCurrencyPattern  = "currency_pattern"
	MethodContextual       = "contextual"
	MethodKeywordProximity = "keyword_proximity"
	MethodAggregated       = "aggregated"
)

var (
	structuredPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)salvage\s+(?:value|offer|price)[\s:]+\$?\s*([0-9,]+(?:\.[0-9]{2})?)`),
		regexp.MustCompile(`(?i)(?:our|final)\s+offer\s+is\s+\$?\s*([0-9,]+(?:\.[0-9]{2})?)`),
		regexp.MustCompile(`(?i)(?:price|amount)[\s:]+AUD\s+\$?\s*([0-9,]+(?:\.[0-9]{2})?)`),
		regexp.MustCompile(`(?i)total\s+salvage[\s:]+\$?\s*([0-9,]+(?:\.[0-9]{2})?)`),
	}
	currencyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\$\s*([0-9,]+(?:\.[0-9]{2})?)`),
		regexp.MustCompile(`(?i)([0-9,]+(?:\.[0-9]{2})?)\s*(?:dollars|AUD)`),
	}
	numberPattern     = regexp.MustCompile(`([0-9,]+(?:\.[0-9]{2})?)`)
	sentenceSplitter  = regexp.MustCompile(`[.!?\n]+`)
	sectionSplitter   = regexp.MustCompile(`\n\s*\n|---+|===+`)
	contextualKeyword = []string{"salvage", "offer", "bid", "quote", "valuation", "tender", "price", "value", "worth"}
	proximityKeyword  = map[string]bool{
		"salvage": true, "offer": true, "bid": true, "quote": true,
		"value": true, "price": true, "tender": true,
	}
)

// ParseResult is the outcome of one extraction pass.
type ParseResult struct {
	Values     []float64 `json:"values_found"`
	BestValue  float64   `json:"best_value"`
	Confidence float64   `json:"confidence"`
	Method     string    `json:"method"`
}

// Success reports whether any value was extracted.
func (r ParseResult) Success() bool {
	return len(r.Values) > 0
}

// Offer is one extracted offer from a multi-offer email.
type Offer struct {
	Section    int     `json:"section"`
	Value      float64 `json:"value"`
	Confidence float64 `json:"confidence"`
	Method     string  `json:"method"`
	Snippet    string  `json:"text_snippet"`
}

// Parser extracts salvage values from email text. Safe for concurrent use.
type Parser struct {
	confidenceThreshold float64
	l                   pkgLog.Logger
}

// New creates a Parser with the default confidence threshold.
func New(l pkgLog.Logger) *Parser {
	return &Parser{
		confidenceThreshold: defaultConfidenceThreshold,
		l:                   l,
	}
}

// Parse extracts salvage values from email text. The highest-confidence
// strategy wins when it clears the threshold; otherwise all candidates are
// aggregated at confidence 0.5.
func (p *Parser) Parse(ctx context.Context, text string) ParseResult {
	if strings.TrimSpace(text) == "" {
		return ParseResult{Method: MethodEmptyInput}
	}

	strategies := []func(string) ParseResult{
		p.extractStructured,
		p.extractCurrency,
		p.extractContextual,
		p.extractNearKeywords,
	}

	var (
		allValues []float64
		best      ParseResult
	)
	for _, strategy := range strategies {
		result := strategy(text)
		if result.Confidence > best.Confidence {
			best = result
		}
		allValues = append(allValues, result.Values...)
	}

	final := best
	if best.Confidence < p.confidenceThreshold {
		final = newResult(dedup(allValues), 0.5, MethodAggregated)
		if len(final.Values) == 0 {
			final.Confidence = 0
		}
	}

	p.l.Infof(ctx, "Parse: best_value=%s confidence=%.2f method=%s values=%d",
		money.Format(final.BestValue), final.Confidence, final.Method, len(final.Values))
	return final
}

// ParseOffers extracts one offer per email section, for emails comparing
// offers from several salvage yards. Sections are delimited by blank lines or
// ---/=== rules; sections under 20 characters are skipped.
func (p *Parser) ParseOffers(ctx context.Context, text string) []Offer {
	sections := sectionSplitter.Split(text, -1)

	var offers []Offer
	for i, section := range sections {
		if len(strings.TrimSpace(section)) < 20 {
			continue
		}

		result := p.Parse(ctx, section)
		if !result.Success() {
			continue
		}

		snippet := section
		if len(snippet) > 100 {
			snippet = snippet[:100] + "..."
		}
		offers = append(offers, Offer{
			Section:    i + 1,
			Value:      result.BestValue,
			Confidence: result.Confidence,
			Method:     result.Method,
			Snippet:    snippet,
		})
	}
	return offers
}

// ValidateValue checks an extracted salvage value against the policy value.
// A hard violation returns ok=false; a value outside the typical 5-60% band
// returns ok=true with an advisory message.
func (p *Parser) ValidateValue(salvageValue, policyValue float64) (bool, string) {
	if salvageValue < 0 {
		return false, "Salvage value cannot be negative"
	}
	if salvageValue > policyValue {
		return false, "Salvage value (" + money.Format(salvageValue) + ") exceeds policy value (" + money.Format(policyValue) + ")"
	}

	if policyValue > 0 {
		ratio := salvageValue / policyValue * 100
		if salvageValue < policyValue*0.05 {
			return true, "Warning: Salvage value seems low (" + strconv.FormatFloat(ratio, 'f', 1, 64) + "% of policy value)"
		}
		if salvageValue > policyValue*0.60 {
			return true, "Warning: Salvage value seems high (" + strconv.FormatFloat(ratio, 'f', 1, 64) + "% of policy value)"
		}
	}
	return true, ""
}

func (p *Parser) extractStructured(text string) ParseResult {
	return matchPatterns(text, structuredPatterns, 0.9, MethodStructured)
}

func (p *Parser) extractCurrency(text string) ParseResult {
	return matchPatterns(text, currencyPatterns, 0.7, MethodCurrencyPattern)
}

func (p *Parser) extractContextual(text string) ParseResult {
	var values []float64
	for _, sentence := range sentenceSplitter.Split(text, -1) {
		lower := strings.ToLower(sentence)
		hit := false
		for _, kw := range contextualKeyword {
			if strings.Contains(lower, kw) {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		for _, m := range numberPattern.FindAllStringSubmatch(sentence, -1) {
			if v, ok := parseAmount(m[1]); ok {
				values = append(values, v)
			}
		}
	}
	return scored(values, 0.6, MethodContextual)
}

// extractNearKeywords scans a 5-word window around each salvage keyword.
func (p *Parser) extractNearKeywords(text string) ParseResult {
	const window = 5

	var values []float64
	words := strings.Fields(text)
	for i, word := range words {
		if !proximityKeyword[strings.ToLower(strings.Trim(word, ".,:;!?"))] {
			continue
		}
		start := i - window
		if start < 0 {
			start = 0
		}
		end := i + window + 1
		if end > len(words) {
			end = len(words)
		}
		context := strings.Join(words[start:end], " ")
		for _, m := range numberPattern.FindAllStringSubmatch(context, -1) {
			if v, ok := parseAmount(m[1]); ok {
				values = append(values, v)
			}
		}
	}
	return scored(values, 0.5, MethodKeywordProximity)
}

func matchPatterns(text string, patterns []*regexp.Regexp, confidence float64, method string) ParseResult {
	var values []float64
	for _, pattern := range patterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			if v, ok := parseAmount(m[1]); ok {
				values = append(values, v)
			}
		}
	}
	return scored(values, confidence, method)
}

func scored(values []float64, confidence float64, method string) ParseResult {
	if len(values) == 0 {
		confidence = 0
	}
	return newResult(values, confidence, method)
}

func newResult(values []float64, confidence float64, method string) ParseResult {
	best := 0.0
	for _, v := range values {
		if v > best {
			best = v
		}
	}
	return ParseResult{
		Values:     values,
		BestValue:  best,
		Confidence: confidence,
		Method:     method,
	}
}

func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	if v < minPlausibleValue || v > maxPlausibleValue {
		return 0, false
	}
	return v, true
}

func dedup(values []float64) []float64 {
	seen := make(map[float64]bool, len(values))
	var unique []float64
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	sort.Float64s(unique)
	return unique
}
