// Package genedb provides the curated known-gene inheritance
// database, loaded once per run and shared read-only across families.
package genedb

import (
	"fmt"
	"strings"
)

// Mode is a canonical inheritance mode.
type Mode int8

const (
	ModeUnknown Mode = iota
	ModeDominant
	ModeRecessive
	ModeXDominant
	ModeXRecessive
	ModeMosaic
)

func (m Mode) String() string {
	switch m {
	case ModeDominant:
		return "autosomal dominant"
	case ModeRecessive:
		return "autosomal recessive"
	case ModeXDominant:
		return "X-linked dominant"
	case ModeXRecessive:
		return "X-linked recessive"
	case ModeMosaic:
		return "mosaic"
	default:
		return "unknown"
	}
}

// IsDominant returns true for modes where a single alternate allele
// can be causal.
func (m Mode) IsDominant() bool {
	return m == ModeDominant || m == ModeXDominant || m == ModeMosaic
}

// IsRecessive returns true for modes requiring biallelic alternate
// alleles.
func (m Mode) IsRecessive() bool {
	return m == ModeRecessive || m == ModeXRecessive
}

// IsXLinked returns true for sex-chromosome modes.
func (m Mode) IsXLinked() bool {
	return m == ModeXDominant || m == ModeXRecessive
}

// ParseModes converts a curation inheritance string into canonical
// modes. The curation vocabulary uses "Monoallelic", "Biallelic",
// "Both", "Hemizygous", "X-linked dominant" and "Mosaic"; the plain
// mode names are accepted too. Multiple modes may be comma-separated.
func ParseModes(s string) ([]Mode, error) {
	var modes []Mode
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch strings.ToLower(part) {
		case "monoallelic", "autosomal dominant", "dominant":
			modes = append(modes, ModeDominant)
		case "biallelic", "autosomal recessive", "recessive":
			modes = append(modes, ModeRecessive)
		case "both":
			modes = append(modes, ModeDominant, ModeRecessive)
		case "hemizygous", "x-linked recessive":
			modes = append(modes, ModeXRecessive)
		case "x-linked dominant", "x-linked over-dominance":
			modes = append(modes, ModeXDominant)
		case "mosaic":
			modes = append(modes, ModeMosaic)
		default:
			return nil, fmt.Errorf("unknown inheritance mode %q", part)
		}
	}
	if len(modes) == 0 {
		return nil, fmt.Errorf("no inheritance mode in %q", s)
	}
	return modes, nil
}

// Entry is one curated row for a gene. A gene may carry several
// entries (overlapping curations) and each entry several modes; the
// inheritance checker tests a variant against every mode of every
// entry.
type Entry struct {
	Symbol    string
	Modes     []Mode
	Status    string // curation confidence tag, e.g. "Confirmed DD Gene"
	Mechanism string // e.g. "Loss of function"
}

// HasMode returns true if the entry lists the given mode.
func (e *Entry) HasMode(m Mode) bool {
	for _, mode := range e.Modes {
		if mode == m {
			return true
		}
	}
	return false
}
