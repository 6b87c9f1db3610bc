// Package filter discards variants unlikely to be pathogenic based on
// population frequency and predicted functional consequence. It runs
// before any inheritance logic to bound the pairing work there.
package filter

import (
	"strings"

	"github.com/inodb/vibe-trio/internal/vcf"
)

// Consequence classes retained by default: loss-of-function,
// missense-like and splice-region terms (Sequence Ontology).
var defaultConsequences = []string{
	"transcript_ablation",
	"splice_donor_variant",
	"splice_acceptor_variant",
	"splice_region_variant",
	"stop_gained",
	"frameshift_variant",
	"coding_sequence_variant",
	"stop_lost",
	"start_lost",
	"initiator_codon_variant",
	"inframe_insertion",
	"inframe_deletion",
	"missense_variant",
	"transcript_amplification",
}

// Config holds the filter thresholds.
type Config struct {
	MaxAlleleFreq float64         // maximum population allele frequency
	Consequences  map[string]bool // acceptable consequence classes
}

// DefaultConfig returns the standard triage configuration: variants
// above 1% population frequency or without a disruptive consequence
// are excluded.
func DefaultConfig() Config {
	cfg := Config{
		MaxAlleleFreq: 0.01,
		Consequences:  make(map[string]bool, len(defaultConsequences)),
	}
	for _, cq := range defaultConsequences {
		cfg.Consequences[cq] = true
	}
	return cfg
}

// Failure reasons reported in verdicts.
const (
	ReasonFrequency   = "allele frequency above threshold"
	ReasonConsequence = "consequence class not accepted"
)

// Verdict is the outcome of the rarity and functional filter.
type Verdict struct {
	Pass          bool
	Reason        string // set when Pass is false
	LowConfidence bool   // missing frequency data: passed, but flagged
}

// Check applies the filter to a single call. A missing allele
// frequency is treated as rare, never as a failure, but the verdict
// carries a low-confidence flag. Consequence annotations may list
// several comma- or ampersand-separated terms; one accepted term is
// enough.
func (c Config) Check(call *vcf.VariantCall) Verdict {
	if !hasAcceptedConsequence(call.Consequence, c.Consequences) {
		return Verdict{Pass: false, Reason: ReasonConsequence}
	}

	if !call.HasAlleleFreq {
		return Verdict{Pass: true, LowConfidence: true}
	}
	if call.AlleleFreq > c.MaxAlleleFreq {
		return Verdict{Pass: false, Reason: ReasonFrequency}
	}

	return Verdict{Pass: true}
}

func hasAcceptedConsequence(consequence string, accepted map[string]bool) bool {
	if consequence == "" {
		return false
	}
	for _, term := range strings.FieldsFunc(consequence, func(r rune) bool {
		return r == ',' || r == '&'
	}) {
		if accepted[strings.TrimSpace(term)] {
			return true
		}
	}
	return false
}
