package inherit

import (
	"github.com/samber/lo"

	"github.com/inodb/vibe-trio/internal/genedb"
	"github.com/inodb/vibe-trio/internal/trio"
	"github.com/inodb/vibe-trio/internal/vcf"
)

// Pair is a compound-heterozygous candidate: two distinct variants in
// the same gene, together producing a biallelic genotype.
type Pair struct {
	A, B           *trio.Record
	Classification Classification
}

// PairCompoundHets searches all same-gene pairings of heterozygous
// child variants under a recessive mode. The records must belong to
// one gene and have individually passed the rarity and functional
// filter. Pairing is exhaustive over all pairs, not just adjacent
// ones in position order.
func (c *Checker) PairCompoundHets(records []*trio.Record, mode genedb.Mode) []Pair {
	hets := lo.Filter(records, func(rec *trio.Record, _ int) bool {
		if rec.Child.Genotype != vcf.GenotypeHet {
			return false
		}
		// A hemizygous male has a single X allele; two X variants
		// cannot be in trans.
		if rec.IsAllosomal() && c.childIsMale() {
			return false
		}
		return rec.IsAllosomal() == mode.IsXLinked()
	})

	var pairs []Pair
	for i := 0; i < len(hets); i++ {
		for j := i + 1; j < len(hets); j++ {
			if cls, ok := c.classifyPair(hets[i], hets[j], mode); ok {
				pairs = append(pairs, Pair{A: hets[i], B: hets[j], Classification: cls})
			}
		}
	}
	return pairs
}

// classifyPair applies the pairing rule: one variant traceable to the
// heterozygous genotype of each parent, both parents unaffected
// carriers, never the same parental origin for both variants.
func (c *Checker) classifyPair(a, b *trio.Record, mode genedb.Mode) (Classification, bool) {
	// An affected carrier parent points at dominant transmission,
	// which the single-variant checks report instead.
	if c.family.MotherAffected() && (a.Mother.Carrier() || b.Mother.Carrier()) {
		return Classification{}, false
	}
	if c.family.FatherAffected() && (a.Father.Carrier() || b.Father.Carrier()) {
		return Classification{}, false
	}

	// A genotyped parent carrying both variants puts them on the same
	// parental haplotype: not biallelic.
	if a.Mother.Carrier() && b.Mother.Carrier() {
		return Classification{}, false
	}
	if a.Father.Carrier() && b.Father.Carrier() {
		return Classification{}, false
	}

	fullyTested := a.Mother.Known() && a.Father.Known() &&
		b.Mother.Known() && b.Father.Known()

	if fullyTested {
		// Parental origin is inferred from which parent carries each
		// specific allele, not from phasing.
		maternalA := a.Mother == vcf.GenotypeHet && !a.Father.Carrier()
		paternalA := a.Father == vcf.GenotypeHet && !a.Mother.Carrier()
		maternalB := b.Mother == vcf.GenotypeHet && !b.Father.Carrier()
		paternalB := b.Father == vcf.GenotypeHet && !b.Mother.Carrier()

		if (maternalA && paternalB) || (paternalA && maternalB) {
			return Classification{Result: CompoundHet, Mode: mode}, true
		}
		return Classification{}, false
	}

	return Classification{
		Result: PossibleCompoundHet,
		Mode:   mode,
		Note:   "parental origin unconfirmed",
	}, true
}
