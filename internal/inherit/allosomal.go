package inherit

import (
	"github.com/inodb/vibe-trio/internal/genedb"
	"github.com/inodb/vibe-trio/internal/trio"
	"github.com/inodb/vibe-trio/internal/vcf"
)

// checkAllosomal classifies a record on the X chromosome against one
// X-linked mode. The child's sex decides which rules apply; a child
// of unknown sex is handled with the female (diploid) rules, the
// more conservative of the two.
func (c *Checker) checkAllosomal(rec *trio.Record, mode genedb.Mode) []Classification {
	if c.childIsMale() {
		return c.checkAllosomalMale(rec, mode)
	}
	return c.checkAllosomalFemale(rec, mode)
}

// checkAllosomalMale handles hemizygous male X loci. A male child
// carries a single X allele, inherited from the mother; the father
// contributes the Y and never transmits the variant.
func (c *Checker) checkAllosomalMale(rec *trio.Record, mode genedb.Mode) []Classification {
	if !motherTested(rec) {
		if mode == genedb.ModeXRecessive {
			return []Classification{{Result: PossibleXLinked, Mode: mode, Note: "mother untested"}}
		}
		return []Classification{{Result: PossibleDeNovo, Mode: mode, Note: "mother untested"}}
	}

	switch rec.Mother {
	case vcf.GenotypeHomRef:
		return []Classification{{Result: DeNovo, Mode: mode, Note: "male X de novo"}}
	case vcf.GenotypeHet:
		if mode == genedb.ModeXRecessive {
			cls := Classification{Result: XLinkedRecessive, Mode: mode, Note: "inherited from heterozygous mother"}
			return []Classification{cls}
		}
		return []Classification{c.dominantCarrierParent(mode, true)}
	case vcf.GenotypeHomAlt:
		if c.family.MotherAffected() {
			if mode == genedb.ModeXRecessive {
				return []Classification{{Result: XLinkedRecessive, Mode: mode, Note: "inherited from homozygous affected mother"}}
			}
			return []Classification{c.dominantCarrierParent(mode, true)}
		}
		return []Classification{{
			Result: NonPenetrantCarrier,
			Mode:   mode,
			Note:   "unaffected homozygous mother",
		}}
	}
	return nil
}

// checkAllosomalFemale handles diploid X loci in female children.
func (c *Checker) checkAllosomalFemale(rec *trio.Record, mode genedb.Mode) []Classification {
	switch mode {
	case genedb.ModeXDominant:
		return c.checkFemaleXDominant(rec, mode)
	case genedb.ModeXRecessive:
		return c.checkFemaleXRecessive(rec, mode)
	default:
		return nil
	}
}

// checkFemaleXDominant mirrors the autosomal dominant rules; a
// hemizygous father counts as a carrier.
func (c *Checker) checkFemaleXDominant(rec *trio.Record, mode genedb.Mode) []Classification {
	momTested := motherTested(rec)
	dadTested := fatherTested(rec)

	if momTested && dadTested && !rec.Mother.Carrier() && !rec.Father.Carrier() {
		return []Classification{{Result: DeNovo, Mode: mode, Note: "female X de novo"}}
	}

	var out []Classification
	if rec.Mother.Carrier() {
		out = append(out, c.dominantCarrierParent(mode, true))
	}
	if rec.Father.Carrier() {
		out = append(out, c.dominantCarrierParent(mode, false))
	}
	if len(out) > 0 {
		return out
	}

	return []Classification{{
		Result: PossibleDeNovo,
		Mode:   mode,
		Note:   untestedNote(momTested, dadTested),
	}}
}

// checkFemaleXRecessive requires both X alleles affected: the mother
// contributes one and the hemizygous father the other. Heterozygous
// females are carrier-only here and are left to compound-het pairing.
func (c *Checker) checkFemaleXRecessive(rec *trio.Record, mode genedb.Mode) []Classification {
	if rec.Child.Genotype != vcf.GenotypeHomAlt {
		return nil
	}

	momTested := motherTested(rec)
	dadTested := fatherTested(rec)

	// A genotyped non-carrier parent cannot have contributed; the
	// Mendelian plausibility check covers the impossible case.
	if (momTested && !rec.Mother.Carrier()) || (dadTested && !rec.Father.Carrier()) {
		return nil
	}

	if momTested && dadTested {
		// Father is hemizygous for the variant; under a recessive
		// X-linked disorder he would usually be affected himself.
		if c.family.FatherAffected() || c.family.MotherAffected() {
			return []Classification{{Result: XLinkedRecessive, Mode: mode, Note: "biallelic, inherited from both parents"}}
		}
		return []Classification{{
			Result: NonPenetrantCarrier,
			Mode:   mode,
			Note:   "unaffected hemizygous father",
		}}
	}

	return []Classification{{
		Result: PossibleBiallelic,
		Mode:   mode,
		Note:   untestedNote(momTested, dadTested),
	}}
}
