// Package jobnumber assigns date-scoped sequential job numbers of the form
// YYYYMMDD-NNN.
//
// Uniqueness is only guaranteed for a single writer that sees every existing
// number; this is not a distributed sequence.
package jobnumber

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	DateLayout  = "20060102"
	MaxSequence = 999
)

// ErrSequenceExhausted is returned once a day's 999 numbers are used up.
var ErrSequenceExhausted = errors.New("jobnumber: daily sequence exhausted")

var pattern = regexp.MustCompile(`^\d{8}-(\d{3})$`)

// Next returns the number following the highest sequence already issued on
// the calendar day of at. Entries from other days and entries that do not
// match the format are ignored.
func Next(existing []string, at time.Time) (string, error) {
	day := at.Format(DateLayout)

	maxSeq := 0
	for _, n := range existing {
		issued, seq, ok := parse(n)
		if !ok || issued != day {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}

	if maxSeq >= MaxSequence {
		return "", fmt.Errorf("%w: %s", ErrSequenceExhausted, day)
	}
	return fmt.Sprintf("%s-%03d", day, maxSeq+1), nil
}

// parse splits a job number into its day stamp and sequence. Numbers with an
// impossible calendar date are rejected.
func parse(n string) (day string, seq int, ok bool) {
	match := pattern.FindStringSubmatch(n)
	if match == nil {
		return "", 0, false
	}
	if _, err := time.Parse(DateLayout, n[:8]); err != nil {
		return "", 0, false
	}
	seq, err := strconv.Atoi(match[1])
	if err != nil {
		return "", 0, false
	}
	return n[:8], seq, true
}
