// Package parser turns free-form bet strings like
// "Bet365 - Football - Team A to win 10 / 9.4" into structured bet input.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"kellybook/models"
)

// ErrUnparseable is wrapped by every parse failure
var ErrUnparseable = errors.New("unparseable bet string")

// CommonSports are sport names recognised without an alias entry
var CommonSports = []string{
	"Football", "Basketball", "NFL", "NBA", "Horse Racing", "Tennis", "Darts",
	"Golf", "Cricket", "Boxing", "MMA", "F1", "NHL", "Politics", "Rugby",
	"Snooker", "Super-Sub", "Mixed Sports",
}

// CommonBookmakers are bookmaker names recognised without an alias entry
var CommonBookmakers = []string{
	"Bet365", "Betfair", "Betfred", "BetVictor", "Coral", "Ladbrokes",
	"Paddy Power", "Pinnacle", "Sky Bet", "Smarkets", "Unibet", "William Hill",
}

// oddsPattern matches "10 / 9.4" or "10-9.4" at the very end of the string,
// tolerating a trailing word such as a currency note
var oddsPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[-/]\s*(\d+(?:\.\d+)?)(?:\s+[a-zA-Z]*)?$`)

var hyphenSpacing = regexp.MustCompile(`\s*-\s*`)

// Parser resolves bookmaker and sport names through alias maps. Alias keys
// are matched exactly and in upper case; common names match case-insensitively
// and resolve to their canonical spelling.
type Parser struct {
	BookmakerAliases map[string]string
	SportAliases     map[string]string
	CommonBookmakers []string
	CommonSports     []string
}

// New creates a parser with the default common name lists
func New(bookmakerAliases, sportAliases map[string]string) *Parser {
	return &Parser{
		BookmakerAliases: bookmakerAliases,
		SportAliases:     sportAliases,
		CommonBookmakers: CommonBookmakers,
		CommonSports:     CommonSports,
	}
}

// Parse extracts bookmaker, sport, bet name and both odds from a bet string.
// The expected shape is "Bookmaker - Sport - Name BackOdds / FairOdds"; an
// optional leading segment before the bookmaker is tolerated.
func (p *Parser) Parse(betString string) (models.BetInput, error) {
	var input models.BetInput

	trimmed := strings.TrimSpace(betString)
	if trimmed == "" {
		return input, fmt.Errorf("%w: empty input", ErrUnparseable)
	}

	loc := oddsPattern.FindStringSubmatchIndex(trimmed)
	if loc == nil {
		return input, fmt.Errorf("%w: no odds pattern (e.g. '10 / 9.4') at the end", ErrUnparseable)
	}

	backOdds, err1 := strconv.ParseFloat(trimmed[loc[2]:loc[3]], 64)
	fairOdds, err2 := strconv.ParseFloat(trimmed[loc[4]:loc[5]], 64)
	if err1 != nil || err2 != nil || backOdds <= 1 || fairOdds <= 1 {
		return input, fmt.Errorf("%w: odds must both be greater than 1, got back=%s fair=%s",
			ErrUnparseable, trimmed[loc[2]:loc[3]], trimmed[loc[4]:loc[5]])
	}

	if loc[0] == 0 {
		return input, fmt.Errorf("%w: odds pattern matched at start of string", ErrUnparseable)
	}

	segment := strings.TrimSpace(trimmed[:loc[0]])
	segment = strings.ReplaceAll(segment, " ", " ")
	segment = hyphenSpacing.ReplaceAllString(segment, " - ")

	parts := strings.Split(segment, " - ")
	if len(parts) < 3 {
		return input, fmt.Errorf("%w: need 'Bookmaker - Sport - Name' before the odds, found %d parts in %q",
			ErrUnparseable, len(parts), segment)
	}

	var bookmakerPart, sportPart string
	var nameParts []string

	switch {
	case p.known(parts[0], p.BookmakerAliases, p.CommonBookmakers) &&
		p.known(parts[1], p.SportAliases, p.CommonSports):
		bookmakerPart, sportPart = parts[0], parts[1]
		nameParts = parts[2:]
	case len(parts) >= 4 &&
		p.known(parts[1], p.BookmakerAliases, p.CommonBookmakers) &&
		p.known(parts[2], p.SportAliases, p.CommonSports):
		// Tolerate one leading segment before the bookmaker
		bookmakerPart, sportPart = parts[1], parts[2]
		nameParts = parts[3:]
	default:
		return input, fmt.Errorf("%w: could not identify 'Bookmaker - Sport - Name' structure in %q",
			ErrUnparseable, segment)
	}

	betName := strings.TrimSpace(strings.Join(nameParts, " - "))
	if betName == "" {
		return input, fmt.Errorf("%w: missing bet name in %q", ErrUnparseable, segment)
	}

	input.Bookmaker = p.resolve(bookmakerPart, p.BookmakerAliases, p.CommonBookmakers)
	input.Sport = p.resolve(sportPart, p.SportAliases, p.CommonSports)
	input.BetName = betName
	input.BackOdds = backOdds
	input.FairOdds = fairOdds
	return input, nil
}

func (p *Parser) known(key string, aliases map[string]string, common []string) bool {
	if key == "" {
		return false
	}
	if _, ok := aliases[strings.ToUpper(key)]; ok {
		return true
	}
	if _, ok := aliases[key]; ok {
		return true
	}
	for _, name := range common {
		if strings.EqualFold(name, key) {
			return true
		}
	}
	return false
}

func (p *Parser) resolve(key string, aliases map[string]string, common []string) string {
	if resolved, ok := aliases[strings.ToUpper(key)]; ok {
		return resolved
	}
	if resolved, ok := aliases[key]; ok {
		return resolved
	}
	for _, name := range common {
		if strings.EqualFold(name, key) {
			return name
		}
	}
	return key
}
