// Package regiondb provides curated syndromic genomic intervals and
// inclusive containment queries against them.
package regiondb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CopyNumber is the expected copy-number direction of a syndrome region.
type CopyNumber int8

const (
	CopyNumberAny CopyNumber = iota
	CopyNumberGain
	CopyNumberLoss
)

func (c CopyNumber) String() string {
	switch c {
	case CopyNumberGain:
		return "gain"
	case CopyNumberLoss:
		return "loss"
	default:
		return "any"
	}
}

// SyndromeRegion is one curated interval associated with a known
// chromosomal disorder. Start and End are 1-based and inclusive.
type SyndromeRegion struct {
	Chrom      string
	Start      int64
	End        int64
	Name       string
	CopyNumber CopyNumber
}

// Contains tests inclusive containment: a position at exactly Start
// or exactly End matches.
func (r *SyndromeRegion) Contains(pos int64) bool {
	return pos >= r.Start && pos <= r.End
}

// ParseError represents an error during region file parsing.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("region parse error at line %d: %s", e.Line, e.Message)
}

// LoadFile reads a tab-separated region file into an index. Columns:
// chrom, start, end, syndrome name, copy-number direction (gain/loss,
// optional). Malformed input is fatal.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open region file: %w", err)
	}
	defer f.Close()

	idx, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return idx, nil
}

// Load reads tab-separated regions from r and builds the index.
func Load(r io.Reader) (*Index, error) {
	scanner := bufio.NewScanner(r)
	var regions []SyndromeRegion
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 4 {
			return nil, &ParseError{
				Line:    lineNumber,
				Message: fmt.Sprintf("expected at least 4 columns, found %d", len(fields)),
			}
		}

		start, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, &ParseError{Line: lineNumber, Message: fmt.Sprintf("invalid start: %s", fields[1])}
		}
		end, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, &ParseError{Line: lineNumber, Message: fmt.Sprintf("invalid end: %s", fields[2])}
		}
		if start > end {
			return nil, &ParseError{Line: lineNumber, Message: fmt.Sprintf("start %d after end %d", start, end)}
		}

		region := SyndromeRegion{
			Chrom: strings.TrimPrefix(fields[0], "chr"),
			Start: start,
			End:   end,
			Name:  fields[3],
		}

		if len(fields) > 4 {
			switch strings.ToLower(fields[4]) {
			case "gain", "dup", "duplication":
				region.CopyNumber = CopyNumberGain
			case "loss", "del", "deletion":
				region.CopyNumber = CopyNumberLoss
			case "", "any", ".":
				region.CopyNumber = CopyNumberAny
			default:
				return nil, &ParseError{Line: lineNumber, Message: fmt.Sprintf("invalid copy-number direction %q", fields[4])}
			}
		}

		regions = append(regions, region)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read region file: %w", err)
	}

	return NewIndex(regions), nil
}
