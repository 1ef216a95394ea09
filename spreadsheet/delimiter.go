package spreadsheet

import (
	"bufio"
	"io"
	"strings"

	"hermannm.dev/wrap"
)

var DefaultDelimitersToCheck = []rune{',', ';', '\t', '|'}

// Picks the delimiter whose count is most consistent across the first lines of the file,
// preferring higher counts. Falls back to a comma when no candidate occurs at all, as in a
// single-column file.
func DeduceFieldDelimiter(
	csvFile io.ReadSeeker,
	maxRowsToCheck int,
	delimitersToCheck []rune,
) (delimiter rune, err error) {
	// Resets reader position in file before returning, so its data can be read subsequently
	defer func() {
		if _, seekErr := csvFile.Seek(0, io.SeekStart); seekErr != nil {
			err = wrap.Error(seekErr, "failed to reset CSV reader after deducing field delimiter")
		}
	}()

	if len(delimitersToCheck) == 0 {
		delimitersToCheck = DefaultDelimitersToCheck
	}

	candidates := make([]delimiterStats, len(delimitersToCheck))
	for i, delimiter := range delimitersToCheck {
		candidates[i] = delimiterStats{delimiter: delimiter}
	}

	scanner := bufio.NewScanner(csvFile)
	for lines := 0; lines < maxRowsToCheck && scanner.Scan(); lines++ {
		line := scanner.Text()
		for i := range candidates {
			candidates[i].observe(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, wrap.Error(err, "failed to scan CSV lines")
	}

	best, found := pickDelimiter(candidates)
	if !found {
		return ',', nil
	}
	return best, nil
}

// Occurrences of one delimiter per scanned line.
type delimiterStats struct {
	delimiter rune
	lines     int
	min       int
	max       int
}

func (stats *delimiterStats) observe(line string) {
	count := strings.Count(line, string(stats.delimiter))
	if stats.lines == 0 || count < stats.min {
		stats.min = count
	}
	if count > stats.max {
		stats.max = count
	}
	stats.lines++
}

func (stats delimiterStats) consistent() bool {
	return stats.min == stats.max
}

// A candidate with the same count on every line beats one without. Between two candidates
// that are equally consistent, the higher count wins, unless that would replace a candidate
// present on every line with one that is missing from some.
func pickDelimiter(candidates []delimiterStats) (delimiter rune, found bool) {
	var best delimiterStats

	for _, candidate := range candidates {
		if candidate.max == 0 {
			continue
		}
		if !found {
			best, found = candidate, true
			continue
		}

		switch {
		case candidate.consistent() && !best.consistent():
			best = candidate
		case candidate.consistent() != best.consistent():
			continue
		case candidate.max <= best.max:
			continue
		case candidate.consistent() || candidate.min > 0 || best.min == 0:
			best = candidate
		}
	}

	return best.delimiter, found
}
