package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strategy tags reported as extraction_method.
const (
	MethodFullText = "regex_full_text"
	MethodElement  = "regex_element"
	MethodClassID  = "class_id_search"
	MethodNone     = "none"
)

// UnitMegabytes is the only unit the portal has been observed to print.
const UnitMegabytes = "Mo"

// Spacing in both patterns also admits Unicode space separators: French
// typography puts U+00A0 or U+202F before ":" and between number and unit.
var (
	// anchoredPattern matches "Volume internet disponible : 1234,5 Mo".
	anchoredPattern = regexp.MustCompile(`(?i)Volume[\s\p{Zs}]+internet[\s\p{Zs}]+disponible[\s\p{Zs}]*:?[\s\p{Zs}]*([0-9]+[,.]?[0-9]*)[\s\p{Zs}]*Mo`)

	// barePattern matches a number followed by the unit, with no anchor phrase.
	barePattern = regexp.MustCompile(`(?i)([0-9]+[,.]?[0-9]*)[\s\p{Zs}]*Mo`)
)

const (
	textElements = "div, p, span, td, li"
	dataElements = `[class*="data"], [class*="balance"], [id*="data"], [id*="balance"]`
)

// Match is one strategy's reading of the balance.
type Match struct {
	// Amount is the matched number with a dot decimal separator.
	Amount string
	Value  float64
	Unit   string
	Method string
}

// SoldeData renders the match as the portal prints it, e.g. "1234.5Mo".
func (m Match) SoldeData() string {
	return m.Amount + m.Unit
}

// Strategy is a named, pure lookup over a Snapshot.
type Strategy struct {
	Name string
	Find func(s *Snapshot) (Match, bool)
}

// Strategies is the fixed evaluation order; the first hit wins.
var Strategies = []Strategy{
	{Name: MethodFullText, Find: findInFullText},
	{Name: MethodElement, Find: findInElements},
	{Name: MethodClassID, Find: findInDataElements},
}

func findInFullText(s *Snapshot) (Match, bool) {
	return matchPattern(anchoredPattern, s.Text, MethodFullText)
}

// findInElements recovers phrases that the rendered text splits, e.g. when
// the anchor and the value live in hidden or differently laid out nodes.
func findInElements(s *Snapshot) (Match, bool) {
	return scan(s, textElements, anchoredPattern, MethodElement)
}

func findInDataElements(s *Snapshot) (Match, bool) {
	return scan(s, dataElements, barePattern, MethodClassID)
}

func scan(s *Snapshot, selector string, re *regexp.Regexp, method string) (Match, bool) {
	if s.doc == nil {
		return Match{}, false
	}
	var (
		m     Match
		found bool
	)
	s.doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		m, found = matchPattern(re, sel.Text(), method)
		return !found
	})
	return m, found
}

// matchPattern applies re to text and parses its first group. A number that
// does not parse is a miss, not an error.
func matchPattern(re *regexp.Regexp, text, method string) (Match, bool) {
	groups := re.FindStringSubmatch(text)
	if len(groups) < 2 || groups[1] == "" {
		return Match{}, false
	}
	amount, value, ok := ParseAmount(groups[1])
	if !ok {
		return Match{}, false
	}
	return Match{Amount: amount, Value: value, Unit: UnitMegabytes, Method: method}, true
}

// ParseAmount normalizes a comma decimal separator to a dot and parses the
// result. "1234,5" yields ("1234.5", 1234.5, true).
func ParseAmount(raw string) (string, float64, bool) {
	amount := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)
	amount = strings.TrimSuffix(amount, ".")
	if amount == "" {
		return "", 0, false
	}
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil || value < 0 {
		return "", 0, false
	}
	return amount, value, true
}
