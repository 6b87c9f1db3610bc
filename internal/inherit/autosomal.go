package inherit

import (
	"github.com/inodb/vibe-trio/internal/genedb"
	"github.com/inodb/vibe-trio/internal/trio"
	"github.com/inodb/vibe-trio/internal/vcf"
)

// checkAutosomal classifies a record on an autosome against one mode.
func (c *Checker) checkAutosomal(rec *trio.Record, mode genedb.Mode) []Classification {
	switch {
	case mode.IsDominant():
		return c.checkAutosomalDominant(rec, mode)
	case mode.IsRecessive():
		return c.checkAutosomalRecessive(rec, mode)
	default:
		return nil
	}
}

// checkAutosomalDominant handles Monoallelic and Mosaic modes: a
// single alternate allele in the child can be causal.
func (c *Checker) checkAutosomalDominant(rec *trio.Record, mode genedb.Mode) []Classification {
	momTested := motherTested(rec)
	dadTested := fatherTested(rec)

	// Fully genotyped trio, neither parent carries: de novo.
	if momTested && dadTested && !rec.Mother.Carrier() && !rec.Father.Carrier() {
		return []Classification{{Result: DeNovo, Mode: mode}}
	}

	// Any carrier parent: dominant transmission, penetrance decides
	// the tag. Penetrance is never enforced as a hard filter.
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

	// No known carrier and at least one parent untested.
	return []Classification{{
		Result: PossibleDeNovo,
		Mode:   mode,
		Note:   untestedNote(momTested, dadTested),
	}}
}

func (c *Checker) dominantCarrierParent(mode genedb.Mode, mother bool) Classification {
	affected := c.family.FatherAffected()
	parent := "father"
	if mother {
		affected = c.family.MotherAffected()
		parent = "mother"
	}
	if affected {
		return Classification{
			Result: InheritedDominant,
			Mode:   mode,
			Note:   "transmitted from affected " + parent,
		}
	}
	return Classification{
		Result: NonPenetrantCarrier,
		Mode:   mode,
		Note:   "reduced penetrance or non-penetrant carrier " + parent,
	}
}

// checkAutosomalRecessive handles the Biallelic homozygous pattern.
// Compound heterozygosity is handled by pairing, not here.
func (c *Checker) checkAutosomalRecessive(rec *trio.Record, mode genedb.Mode) []Classification {
	if rec.Child.Genotype != vcf.GenotypeHomAlt {
		return nil
	}

	momTested := motherTested(rec)
	dadTested := fatherTested(rec)

	// A genotyped parent that is not heterozygous breaks the
	// expected biallelic pattern; the Mendelian plausibility check
	// covers the impossible cases.
	if momTested && rec.Mother != vcf.GenotypeHet {
		return nil
	}
	if dadTested && rec.Father != vcf.GenotypeHet {
		return nil
	}

	if momTested && dadTested {
		cls := Classification{Result: BiallelicHomozygous, Mode: mode}
		if c.family.MotherAffected() || c.family.FatherAffected() {
			cls.Note = "affected parent also carries the variant"
		}
		return []Classification{cls}
	}

	return []Classification{{
		Result: PossibleBiallelic,
		Mode:   mode,
		Note:   untestedNote(momTested, dadTested),
	}}
}

// untestedNote names which parents lack genotype data at the locus.
func untestedNote(momTested, dadTested bool) string {
	switch {
	case !momTested && !dadTested:
		return "no parental data"
	case !momTested:
		return "mother untested"
	default:
		return "father untested"
	}
}
