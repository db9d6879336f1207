package roster

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxImportBytes caps the size of an accepted roster upload.
const MaxImportBytes = 1 << 20

const minColumns = 5

// Parse reads a roster export. The first line is a header and is skipped
// without inspection. Values are split on bare commas; quoting is not
// supported, so a comma inside a value shifts the columns. Rows with fewer
// than five fields are dropped.
func Parse(raw string) ([]Participant, error) {
	if len(raw) > MaxImportBytes {
		return nil, fmt.Errorf("%w: import exceeds %d bytes", ErrMalformed, MaxImportBytes)
	}
	if !utf8.ValidString(raw) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", ErrMalformed)
	}

	lines := strings.Split(raw, "\n")
	participants := make([]Participant, 0, len(lines))
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cols := strings.Split(line, ",")
		if len(cols) < minColumns {
			continue
		}
		participants = append(participants, Participant{
			Name:        strings.TrimSpace(cols[0]),
			Email:       strings.TrimSpace(cols[1]),
			Department:  strings.TrimSpace(cols[2]),
			SessionDate: strings.TrimSpace(cols[3]),
			Time:        strings.TrimSpace(cols[4]),
		})
	}
	return participants, nil
}
