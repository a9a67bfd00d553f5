package accumulator

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoSelections reports that no valid player lines were found in the input
var ErrNoSelections = errors.New("no valid selections found")

// playerPattern matches "name 4.5 - 4.09" and "name 4.5/4.09" lines
var playerPattern = regexp.MustCompile(`^(.*?)\s+(\d+(?:\.\d+)?)\s*[-/]\s*(\d+(?:\.\d+)?)$`)

// ParseBlocks reads team blocks from free-form text. Each block starts with
// a team name line followed by player lines of the form
// "name <bookOdds> - <fairOdds>"; blocks are separated by blank lines.
// Player lines that do not parse are skipped, matching the forgiving
// conversational input this was built for.
func ParseBlocks(text string) ([]Selection, error) {
	var selections []Selection

	for _, block := range strings.Split(text, "\n\n") {
		lines := make([]string, 0, 8)
		for _, line := range strings.Split(block, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) < 2 {
			continue
		}

		team := lines[0]
		for _, line := range lines[1:] {
			if sel, ok := parsePlayerLine(team, line); ok {
				selections = append(selections, sel)
			}
		}
	}

	if len(selections) == 0 {
		return nil, ErrNoSelections
	}
	return selections, nil
}

func parsePlayerLine(team, line string) (Selection, bool) {
	match := playerPattern.FindStringSubmatch(line)
	if match == nil {
		return Selection{}, false
	}

	name := strings.TrimSpace(match[1])
	bookOdds, err1 := strconv.ParseFloat(match[2], 64)
	fairOdds, err2 := strconv.ParseFloat(match[3], 64)
	if name == "" || err1 != nil || err2 != nil {
		return Selection{}, false
	}

	return Selection{Team: team, Name: name, BookOdds: bookOdds, FairOdds: fairOdds}, true
}
