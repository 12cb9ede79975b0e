// Package playlist parses the plain-text slideshow list: one listing
// reference or message card per line.
//
//	# comment lines are skipped
//	12345                        sale listing (all digits)
//	ABC12 # seaside villa        rental listing, trailing comment kept
//	Open day Saturday;bgcolor:yellow;secs:6
package playlist

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Kind string

const (
	KindSale    Kind = "SALE"
	KindRent    Kind = "RENT"
	KindMessage Kind = "MSG"
)

// DefaultMessageDuration applies when a message has no valid secs parameter.
const DefaultMessageDuration = 4 * time.Second

type Entry struct {
	Kind            Kind
	Ref             string
	Message         string
	BackgroundColor string
	Duration        time.Duration
	Comment         string
	Line            int
}

func (e Entry) IsListing() bool {
	return e.Kind == KindSale || e.Kind == KindRent
}

// Parse never fails; lines that are empty after removing comments are skipped.
func Parse(text string) []Entry {
	var entries []Entry
	for i, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		content, comment, _ := strings.Cut(line, "#")
		content = strings.TrimSpace(content)
		comment = strings.TrimSpace(comment)
		if content == "" {
			continue
		}

		if strings.Contains(content, ";bgcolor:") || strings.Contains(content, ";secs:") {
			entries = append(entries, parseMessage(content, comment, i+1))
			continue
		}

		kind := KindRent
		if isDigits(content) {
			kind = KindSale
		}
		entries = append(entries, Entry{Kind: kind, Ref: content, Comment: comment, Line: i + 1})
	}
	return entries
}

func parseMessage(content, comment string, line int) Entry {
	parts := strings.Split(content, ";")
	e := Entry{
		Kind:     KindMessage,
		Message:  strings.TrimSpace(parts[0]),
		Duration: DefaultMessageDuration,
		Comment:  comment,
		Line:     line,
	}
	for _, param := range parts[1:] {
		param = strings.TrimSpace(param)
		switch {
		case strings.HasPrefix(param, "bgcolor:"):
			e.BackgroundColor = strings.TrimSpace(strings.TrimPrefix(param, "bgcolor:"))
		case strings.HasPrefix(param, "secs:"):
			secs, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(param, "secs:")))
			if err != nil || secs <= 0 {
				e.Duration = DefaultMessageDuration
				continue
			}
			e.Duration = time.Duration(secs) * time.Second
		}
	}
	return e
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Load reads and parses a playlist file.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read playlist: %v", err)
	}
	return Parse(string(data)), nil
}
