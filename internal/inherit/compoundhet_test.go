package inherit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-trio/internal/genedb"
	"github.com/inodb/vibe-trio/internal/ped"
	"github.com/inodb/vibe-trio/internal/trio"
	"github.com/inodb/vibe-trio/internal/vcf"
)

func hetRecord(pos int64, mom, dad vcf.Genotype) *trio.Record {
	return &trio.Record{
		Child:  &vcf.VariantCall{Chrom: "1", Pos: pos, Ref: "A", Alt: "T", Genotype: vcf.GenotypeHet},
		Mother: mom,
		Father: dad,
	}
}

func TestPairCompoundHets_Confirmed(t *testing.T) {
	c := NewChecker(testFamily(ped.SexFemale, ped.Unaffected, ped.Unaffected))

	a := hetRecord(100, vcf.GenotypeHet, vcf.GenotypeHomRef)
	b := hetRecord(200, vcf.GenotypeHomRef, vcf.GenotypeHet)

	pairs := c.PairCompoundHets([]*trio.Record{a, b}, genedb.ModeRecessive)
	require.Len(t, pairs, 1)
	assert.Equal(t, CompoundHet, pairs[0].Classification.Result)
	assert.Same(t, a, pairs[0].A)
	assert.Same(t, b, pairs[0].B)
}

func TestPairCompoundHets_SameParentalOriginRejected(t *testing.T) {
	// Both variants on the maternal haplotype: not biallelic.
	c := NewChecker(testFamily(ped.SexFemale, ped.Unaffected, ped.Unaffected))

	a := hetRecord(100, vcf.GenotypeHet, vcf.GenotypeHomRef)
	b := hetRecord(200, vcf.GenotypeHet, vcf.GenotypeHomRef)

	assert.Empty(t, c.PairCompoundHets([]*trio.Record{a, b}, genedb.ModeRecessive))
}

func TestPairCompoundHets_BothFromNeitherParentRejected(t *testing.T) {
	// Fully genotyped, neither parent carries either variant. Two
	// independent de novo events in one gene are not a pairing call.
	c := NewChecker(testFamily(ped.SexFemale, ped.Unaffected, ped.Unaffected))

	a := hetRecord(100, vcf.GenotypeHomRef, vcf.GenotypeHomRef)
	b := hetRecord(200, vcf.GenotypeHomRef, vcf.GenotypeHomRef)

	assert.Empty(t, c.PairCompoundHets([]*trio.Record{a, b}, genedb.ModeRecessive))
}

func TestPairCompoundHets_UntestedParentIsPossible(t *testing.T) {
	c := NewChecker(testFamily(ped.SexFemale, ped.Unaffected, ped.Unaffected))

	a := hetRecord(100, vcf.GenotypeHet, vcf.GenotypeUnknown)
	b := hetRecord(200, vcf.GenotypeHomRef, vcf.GenotypeHet)

	pairs := c.PairCompoundHets([]*trio.Record{a, b}, genedb.ModeRecessive)
	require.Len(t, pairs, 1)
	assert.Equal(t, PossibleCompoundHet, pairs[0].Classification.Result)
	assert.Equal(t, "parental origin unconfirmed", pairs[0].Classification.Note)
}

func TestPairCompoundHets_AffectedCarrierParentRejected(t *testing.T) {
	c := NewChecker(testFamily(ped.SexFemale, ped.Affected, ped.Unaffected))

	a := hetRecord(100, vcf.GenotypeHet, vcf.GenotypeHomRef)
	b := hetRecord(200, vcf.GenotypeHomRef, vcf.GenotypeHet)

	assert.Empty(t, c.PairCompoundHets([]*trio.Record{a, b}, genedb.ModeRecessive))
}

func TestPairCompoundHets_HomozygousChildExcluded(t *testing.T) {
	c := NewChecker(testFamily(ped.SexFemale, ped.Unaffected, ped.Unaffected))

	hom := &trio.Record{
		Child:  &vcf.VariantCall{Chrom: "1", Pos: 100, Ref: "A", Alt: "T", Genotype: vcf.GenotypeHomAlt},
		Mother: vcf.GenotypeHet,
		Father: vcf.GenotypeHomRef,
	}
	b := hetRecord(200, vcf.GenotypeHomRef, vcf.GenotypeHet)

	assert.Empty(t, c.PairCompoundHets([]*trio.Record{hom, b}, genedb.ModeRecessive))
}

func TestPairCompoundHets_MaleXExcluded(t *testing.T) {
	// A hemizygous male has one X; two X variants cannot be in trans.
	c := NewChecker(testFamily(ped.SexMale, ped.Unaffected, ped.Unaffected))

	a := &trio.Record{
		Child:  &vcf.VariantCall{Chrom: "X", Pos: 100, Ref: "A", Alt: "T", Genotype: vcf.GenotypeHet},
		Mother: vcf.GenotypeHet,
		Father: vcf.GenotypeHomRef,
	}
	b := &trio.Record{
		Child:  &vcf.VariantCall{Chrom: "X", Pos: 200, Ref: "G", Alt: "C", Genotype: vcf.GenotypeHet},
		Mother: vcf.GenotypeHomRef,
		Father: vcf.GenotypeHet,
	}

	assert.Empty(t, c.PairCompoundHets([]*trio.Record{a, b}, genedb.ModeXRecessive))
}

func TestPairCompoundHets_ModeLocusMismatchExcluded(t *testing.T) {
	c := NewChecker(testFamily(ped.SexFemale, ped.Unaffected, ped.Unaffected))

	a := hetRecord(100, vcf.GenotypeHet, vcf.GenotypeHomRef)
	b := hetRecord(200, vcf.GenotypeHomRef, vcf.GenotypeHet)

	// Autosomal records under an X-linked mode never pair.
	assert.Empty(t, c.PairCompoundHets([]*trio.Record{a, b}, genedb.ModeXRecessive))
}

func TestPairCompoundHets_ThreeVariants(t *testing.T) {
	// Pairing is exhaustive over all pairs, not only adjacent ones.
	c := NewChecker(testFamily(ped.SexFemale, ped.Unaffected, ped.Unaffected))

	a := hetRecord(100, vcf.GenotypeHet, vcf.GenotypeHomRef)
	mid := hetRecord(150, vcf.GenotypeHet, vcf.GenotypeHomRef)
	b := hetRecord(200, vcf.GenotypeHomRef, vcf.GenotypeHet)

	pairs := c.PairCompoundHets([]*trio.Record{a, mid, b}, genedb.ModeRecessive)
	require.Len(t, pairs, 2)
	for _, p := range pairs {
		assert.Equal(t, CompoundHet, p.Classification.Result)
		assert.Same(t, b, p.B)
	}
}
