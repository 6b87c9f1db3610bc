// Package triage runs the per-family variant triage pipeline: merge,
// filter, database lookups, inheritance checks and aggregation into a
// final candidate list.
package triage

import (
	"github.com/samber/lo"

	"github.com/inodb/vibe-trio/internal/filter"
	"github.com/inodb/vibe-trio/internal/genedb"
	"github.com/inodb/vibe-trio/internal/inherit"
	"github.com/inodb/vibe-trio/internal/regiondb"
	"github.com/inodb/vibe-trio/internal/trio"
)

// Confidence is the ordinal ranking of a candidate. Higher is
// stronger.
type Confidence int8

const (
	// ConfidenceUnconstrained: no known-gene constraint and no
	// syndrome overlap; retained for visibility only.
	ConfidenceUnconstrained Confidence = iota

	// ConfidenceReduced: classifications relying on an untested
	// parent, penetrance-contradicting carriers, or data-quality
	// flags.
	ConfidenceReduced

	// ConfidenceSyndromic: supported by syndromic region overlap.
	ConfidenceSyndromic

	// ConfidenceConfirmedInherited: dominant or recessive
	// transmission fully confirmed by parental genotypes.
	ConfidenceConfirmedInherited

	// ConfidenceConfirmedDeNovo: de novo or compound heterozygous,
	// fully confirmed by parental genotypes.
	ConfidenceConfirmedDeNovo
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceConfirmedDeNovo:
		return "confirmed_de_novo"
	case ConfidenceConfirmedInherited:
		return "confirmed_inherited"
	case ConfidenceSyndromic:
		return "syndromic"
	case ConfidenceReduced:
		return "reduced"
	default:
		return "unconstrained"
	}
}

// Candidate is the aggregated verdict for one variant (or one half of
// a compound-heterozygous pair).
type Candidate struct {
	Record          *trio.Record
	Verdict         filter.Verdict
	GeneEntries     []genedb.Entry
	Classifications []inherit.Classification
	Syndromes       []regiondb.SyndromeRegion
	Confidence      Confidence
	Partner         *Candidate // compound-het partner, nil otherwise
}

// classificationConfidence maps one classification to its ordinal tier.
func classificationConfidence(cls inherit.Classification) Confidence {
	switch cls.Result {
	case inherit.DeNovo, inherit.CompoundHet:
		return ConfidenceConfirmedDeNovo
	case inherit.InheritedDominant, inherit.BiallelicHomozygous, inherit.XLinkedRecessive:
		return ConfidenceConfirmedInherited
	case inherit.PossibleDeNovo, inherit.PossibleBiallelic, inherit.PossibleCompoundHet,
		inherit.PossibleXLinked, inherit.NonPenetrantCarrier, inherit.NonMendelian:
		return ConfidenceReduced
	default:
		return ConfidenceUnconstrained
	}
}

// rank recomputes the candidate's confidence from its classifications
// and syndrome evidence. A syndromic match raises an otherwise weak
// candidate to the syndromic tier; missing frequency data demotes a
// confirmed candidate by one tier.
func (c *Candidate) rank() {
	best := ConfidenceUnconstrained
	for _, cls := range c.Classifications {
		if conf := classificationConfidence(cls); conf > best {
			best = conf
		}
	}
	if len(c.Syndromes) > 0 && best < ConfidenceSyndromic {
		best = ConfidenceSyndromic
	}
	if c.Verdict.LowConfidence && best > ConfidenceReduced {
		best--
	}
	c.Confidence = best
}

// Best returns the classification the aggregator selected for
// display: the first one in the strongest tier. The full set stays
// available for auditing.
func (c *Candidate) Best() inherit.Classification {
	if len(c.Classifications) == 0 {
		return inherit.Classification{Result: inherit.NoConstraint}
	}
	return lo.MaxBy(c.Classifications, func(a, b inherit.Classification) bool {
		return classificationConfidence(a) > classificationConfidence(b)
	})
}

// Unconstrained returns true when the candidate has neither a
// known-gene constraint nor syndromic support.
func (c *Candidate) Unconstrained() bool {
	return len(c.GeneEntries) == 0 && len(c.Syndromes) == 0
}
