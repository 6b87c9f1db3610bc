// Package inherit classifies trio variant records against the
// inheritance modes of their matched known-gene entries.
package inherit

import "github.com/inodb/vibe-trio/internal/genedb"

// Result is the outcome kind of one inheritance check.
type Result int8

const (
	// NoConstraint marks a variant with no applicable inheritance
	// expectation; it is retained, not discarded.
	NoConstraint Result = iota

	// DeNovo: child carries the variant, both parents genotyped
	// homozygous reference.
	DeNovo

	// PossibleDeNovo: de novo pattern, but at least one parent was
	// not genotyped at the locus.
	PossibleDeNovo

	// InheritedDominant: an affected parent carries the child's
	// variant under a dominant mode.
	InheritedDominant

	// NonPenetrantCarrier: an unaffected parent carries the variant.
	// Contradicts full-penetrance dominant inheritance but is kept
	// with a reduced-penetrance tag rather than discarded.
	NonPenetrantCarrier

	// BiallelicHomozygous: child homozygous alternate, every present
	// parent heterozygous.
	BiallelicHomozygous

	// PossibleBiallelic: homozygous child with at least one parent
	// untested.
	PossibleBiallelic

	// CompoundHet: two heterozygous variants in the same gene, one
	// traceable to each unaffected carrier parent.
	CompoundHet

	// PossibleCompoundHet: compound heterozygous pairing with
	// parental origin unconfirmed (a parent untested).
	PossibleCompoundHet

	// XLinkedRecessive: male child hemizygous for a variant inherited
	// from a heterozygous mother, or biallelic female X inheritance.
	XLinkedRecessive

	// PossibleXLinked: hemizygous male child with the mother
	// untested.
	PossibleXLinked

	// NonMendelian: genotypes inconsistent with Mendelian
	// transmission while both parents are genotyped. A possible de
	// novo event or a data-quality issue; surfaced, never dropped.
	NonMendelian
)

// String returns the reporting form of the result.
func (r Result) String() string {
	switch r {
	case DeNovo:
		return "de_novo"
	case PossibleDeNovo:
		return "possible_de_novo"
	case InheritedDominant:
		return "inherited_dominant"
	case NonPenetrantCarrier:
		return "non_penetrant_carrier"
	case BiallelicHomozygous:
		return "biallelic_homozygous"
	case PossibleBiallelic:
		return "possible_biallelic"
	case CompoundHet:
		return "compound_het"
	case PossibleCompoundHet:
		return "possible_compound_het"
	case XLinkedRecessive:
		return "x_linked_recessive"
	case PossibleXLinked:
		return "possible_x_linked"
	case NonMendelian:
		return "non_mendelian"
	default:
		return "no_constraint"
	}
}

// Confirmed returns true when the classification does not depend on
// an untested parent.
func (r Result) Confirmed() bool {
	switch r {
	case DeNovo, InheritedDominant, BiallelicHomozygous, CompoundHet, XLinkedRecessive:
		return true
	}
	return false
}

// Classification is one applicable inheritance description for a
// variant or variant pair. A variant may satisfy several; all are
// retained for auditing.
type Classification struct {
	Result Result
	Mode   genedb.Mode // mode under which this applies; ModeUnknown for mode-agnostic checks
	Note   string      // short explanation, e.g. "one parent untested"
}
