package inherit

import (
	"go.uber.org/zap"

	"github.com/inodb/vibe-trio/internal/genedb"
	"github.com/inodb/vibe-trio/internal/ped"
	"github.com/inodb/vibe-trio/internal/trio"
	"github.com/inodb/vibe-trio/internal/vcf"
)

// Checker evaluates trio records against gene inheritance modes for
// one family. The family's affection statuses and parental presence
// drive every rule; a missing parent degrades the classification,
// never fails it.
type Checker struct {
	family *ped.Family
	logger *zap.Logger
}

// NewChecker creates a checker for the given family.
func NewChecker(family *ped.Family) *Checker {
	return &Checker{
		family: family,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for warning and debug messages.
func (c *Checker) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Check classifies one record against every mode of the matched
// entries. With no entries it runs only the mode-agnostic
// plausibility check. Compound-heterozygous pairing is handled
// separately by PairCompoundHets, over same-gene record groups.
func (c *Checker) Check(rec *trio.Record, entries []genedb.Entry) []Classification {
	if !rec.Child.Genotype.Carrier() {
		return nil
	}

	var out []Classification
	seen := make(map[Classification]bool)
	add := func(cls Classification) {
		if !seen[cls] {
			seen[cls] = true
			out = append(out, cls)
		}
	}

	// Mendelian plausibility is checked regardless of gene
	// constraint; an impossible transmission is informative.
	if cls, ok := c.checkMendelian(rec); ok {
		add(cls)
	}

	allosomal := rec.IsAllosomal()
	for _, entry := range entries {
		for _, mode := range entry.Modes {
			// Autosomal logic never applies to sex-chromosome loci,
			// and X-linked modes never apply to autosomes.
			if mode.IsXLinked() != allosomal {
				continue
			}
			for _, cls := range c.checkMode(rec, mode) {
				add(cls)
			}
		}
	}

	if len(out) == 0 {
		out = append(out, Classification{Result: NoConstraint})
	}
	return out
}

// checkMendelian flags genotype patterns impossible under Mendelian
// transmission when both parents are genotyped: the child homozygous
// alternate while neither parent carries the alternate allele.
func (c *Checker) checkMendelian(rec *trio.Record) (Classification, bool) {
	if rec.Child.Genotype != vcf.GenotypeHomAlt {
		return Classification{}, false
	}
	if rec.IsAllosomal() && c.childIsMale() {
		// Hemizygous male X: only the mother contributes.
		if rec.Mother.Known() && !rec.Mother.Carrier() {
			return Classification{
				Result: NonMendelian,
				Note:   "hemizygous child, mother homozygous reference: possible de novo or genotyping artifact",
			}, true
		}
		return Classification{}, false
	}
	if rec.Mother.Known() && !rec.Mother.Carrier() &&
		rec.Father.Known() && !rec.Father.Carrier() {
		return Classification{
			Result: NonMendelian,
			Note:   "homozygous child, neither parent carries the allele: possible de novo or genotyping artifact",
		}, true
	}
	return Classification{}, false
}

// checkMode dispatches one mode against the record.
func (c *Checker) checkMode(rec *trio.Record, mode genedb.Mode) []Classification {
	if rec.IsAllosomal() {
		return c.checkAllosomal(rec, mode)
	}
	return c.checkAutosomal(rec, mode)
}

func (c *Checker) childIsMale() bool {
	return c.family.Child.IsMale()
}

// motherTested reports whether the mother's genotype is known at the
// record's locus. An absent mother and a present mother without a
// call at the locus both count as untested.
func motherTested(rec *trio.Record) bool {
	return rec.Mother.Known()
}

func fatherTested(rec *trio.Record) bool {
	return rec.Father.Known()
}
