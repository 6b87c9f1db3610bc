package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-trio/internal/filter"
	"github.com/inodb/vibe-trio/internal/genedb"
	"github.com/inodb/vibe-trio/internal/inherit"
	"github.com/inodb/vibe-trio/internal/ped"
	"github.com/inodb/vibe-trio/internal/regiondb"
	"github.com/inodb/vibe-trio/internal/vcf"
)

func testFamily() *ped.Family {
	fam := ped.NewFamily("fam1", &ped.Individual{ID: "child1", Sex: ped.SexFemale, Affected: ped.Affected})
	fam.SetMother(&ped.Individual{ID: "mom1", Sex: ped.SexFemale, Affected: ped.Unaffected})
	fam.SetFather(&ped.Individual{ID: "dad1", Sex: ped.SexMale, Affected: ped.Unaffected})
	return fam
}

func testGenes() *genedb.Store {
	return genedb.NewFromEntries([]genedb.Entry{
		{Symbol: "ARID1B", Modes: []genedb.Mode{genedb.ModeDominant}, Status: "Confirmed DD Gene"},
		{Symbol: "CNTNAP2", Modes: []genedb.Mode{genedb.ModeRecessive}, Status: "Confirmed DD Gene"},
	}, "2026-01-15")
}

func rareCall(chrom string, pos int64, gene string, gt vcf.Genotype) *vcf.VariantCall {
	return &vcf.VariantCall{
		Chrom: chrom, Pos: pos, Ref: "A", Alt: "T",
		Gene: gene, Consequence: "stop_gained",
		AlleleFreq: 0.0001, HasAlleleFreq: true,
		Genotype: gt,
	}
}

func withGT(c *vcf.VariantCall, gt vcf.Genotype) *vcf.VariantCall {
	cp := *c
	cp.Genotype = gt
	return &cp
}

func TestRunFamily_ConfirmedDeNovo(t *testing.T) {
	p := NewPipeline(testGenes(), nil, filter.DefaultConfig())
	child := []*vcf.VariantCall{rareCall("6", 157100000, "ARID1B", vcf.GenotypeHet)}
	mother := []*vcf.VariantCall{withGT(child[0], vcf.GenotypeHomRef)}
	father := []*vcf.VariantCall{withGT(child[0], vcf.GenotypeHomRef)}

	cands := p.RunFamily(testFamily(), child, mother, father)
	require.Len(t, cands, 1)

	cand := cands[0]
	assert.Equal(t, inherit.DeNovo, cand.Best().Result)
	assert.Equal(t, ConfidenceConfirmedDeNovo, cand.Confidence)
	require.Len(t, cand.GeneEntries, 1)
	assert.Equal(t, "Confirmed DD Gene", cand.GeneEntries[0].Status)
}

func TestRunFamily_CommonVariantFiltered(t *testing.T) {
	p := NewPipeline(testGenes(), nil, filter.DefaultConfig())
	common := rareCall("6", 157100000, "ARID1B", vcf.GenotypeHet)
	common.AlleleFreq = 0.05

	cands := p.RunFamily(testFamily(), []*vcf.VariantCall{common}, nil, nil)
	assert.Empty(t, cands, "common variants never reach inheritance checks")
}

func TestRunFamily_UnknownGeneUnconstrained(t *testing.T) {
	p := NewPipeline(testGenes(), nil, filter.DefaultConfig())
	child := []*vcf.VariantCall{rareCall("3", 1000, "NOVELGENE", vcf.GenotypeHet)}

	cands := p.RunFamily(testFamily(), child, nil, nil)
	require.Len(t, cands, 1)
	assert.True(t, cands[0].Unconstrained())
	assert.Equal(t, ConfidenceUnconstrained, cands[0].Confidence)
	assert.Equal(t, inherit.NoConstraint, cands[0].Best().Result)
}

func TestRunFamily_CompoundHetPartners(t *testing.T) {
	p := NewPipeline(testGenes(), nil, filter.DefaultConfig())

	a := rareCall("7", 146100000, "CNTNAP2", vcf.GenotypeHet)
	b := rareCall("7", 146200000, "CNTNAP2", vcf.GenotypeHet)
	b.Ref, b.Alt = "G", "C"

	child := []*vcf.VariantCall{a, b}
	mother := []*vcf.VariantCall{withGT(a, vcf.GenotypeHet), withGT(b, vcf.GenotypeHomRef)}
	father := []*vcf.VariantCall{withGT(a, vcf.GenotypeHomRef), withGT(b, vcf.GenotypeHet)}

	cands := p.RunFamily(testFamily(), child, mother, father)
	require.Len(t, cands, 2)

	for _, cand := range cands {
		assert.Equal(t, inherit.CompoundHet, cand.Best().Result)
		assert.Equal(t, ConfidenceConfirmedDeNovo, cand.Confidence)
		require.NotNil(t, cand.Partner)
	}
	assert.Same(t, cands[1], cands[0].Partner)
	assert.Same(t, cands[0], cands[1].Partner)
}

func TestRunFamily_SyndromicRegionRaisesConfidence(t *testing.T) {
	regions := regiondb.NewIndex([]regiondb.SyndromeRegion{
		{Chrom: "7", Start: 72744455, End: 74142672, Name: "Williams-Beuren syndrome", CopyNumber: regiondb.CopyNumberLoss},
	})
	p := NewPipeline(testGenes(), regions, filter.DefaultConfig())

	child := []*vcf.VariantCall{rareCall("7", 73000000, "NOVELGENE", vcf.GenotypeHet)}

	cands := p.RunFamily(testFamily(), child, nil, nil)
	require.Len(t, cands, 1)
	require.Len(t, cands[0].Syndromes, 1)
	assert.Equal(t, ConfidenceSyndromic, cands[0].Confidence)
	assert.False(t, cands[0].Unconstrained())
}

func TestRunFamily_MissingFrequencyDemotesOneTier(t *testing.T) {
	p := NewPipeline(testGenes(), nil, filter.DefaultConfig())

	noAF := rareCall("6", 157100000, "ARID1B", vcf.GenotypeHet)
	noAF.HasAlleleFreq = false
	noAF.AlleleFreq = 0

	child := []*vcf.VariantCall{noAF}
	mother := []*vcf.VariantCall{withGT(noAF, vcf.GenotypeHomRef)}
	father := []*vcf.VariantCall{withGT(noAF, vcf.GenotypeHomRef)}

	cands := p.RunFamily(testFamily(), child, mother, father)
	require.Len(t, cands, 1)
	assert.Equal(t, inherit.DeNovo, cands[0].Best().Result)
	assert.True(t, cands[0].Verdict.LowConfidence)
	assert.Equal(t, ConfidenceConfirmedInherited, cands[0].Confidence)
}

func TestRunFamily_PreservesChildOrder(t *testing.T) {
	p := NewPipeline(testGenes(), nil, filter.DefaultConfig())

	child := []*vcf.VariantCall{
		rareCall("9", 5000, "NOVELGENE", vcf.GenotypeHet),
		rareCall("2", 1000, "NOVELGENE", vcf.GenotypeHet),
	}

	cands := p.RunFamily(testFamily(), child, nil, nil)
	require.Len(t, cands, 2)
	assert.Equal(t, "9", cands[0].Record.Chrom())
	assert.Equal(t, "2", cands[1].Record.Chrom())
}

func TestRunFamily_Deterministic(t *testing.T) {
	p := NewPipeline(testGenes(), nil, filter.DefaultConfig())

	build := func() ([]*vcf.VariantCall, []*vcf.VariantCall, []*vcf.VariantCall) {
		a := rareCall("7", 146100000, "CNTNAP2", vcf.GenotypeHet)
		b := rareCall("7", 146200000, "CNTNAP2", vcf.GenotypeHet)
		c := rareCall("6", 157100000, "ARID1B", vcf.GenotypeHet)
		child := []*vcf.VariantCall{a, b, c}
		mother := []*vcf.VariantCall{withGT(a, vcf.GenotypeHet), withGT(b, vcf.GenotypeHomRef), withGT(c, vcf.GenotypeHomRef)}
		father := []*vcf.VariantCall{withGT(a, vcf.GenotypeHomRef), withGT(b, vcf.GenotypeHet), withGT(c, vcf.GenotypeHomRef)}
		return child, mother, father
	}

	c1, m1, f1 := build()
	c2, m2, f2 := build()
	first := p.RunFamily(testFamily(), c1, m1, f1)
	second := p.RunFamily(testFamily(), c2, m2, f2)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Best(), second[i].Best())
		assert.Equal(t, first[i].Confidence, second[i].Confidence)
		assert.Equal(t, first[i].Record.Key(), second[i].Record.Key())
	}
}

func TestRunFamily_NilDatabases(t *testing.T) {
	p := NewPipeline(nil, nil, filter.DefaultConfig())

	child := []*vcf.VariantCall{rareCall("6", 157100000, "ARID1B", vcf.GenotypeHet)}
	cands := p.RunFamily(testFamily(), child, nil, nil)
	require.Len(t, cands, 1)
	assert.True(t, cands[0].Unconstrained())
}

func TestPipeline_AltID(t *testing.T) {
	p := NewPipeline(nil, nil, filter.DefaultConfig())
	p.SetAltIDs(map[string]string{"child1": "DDDP100001"})

	assert.Equal(t, "DDDP100001", p.AltID("child1"))
	assert.Equal(t, "mom1", p.AltID("mom1"), "unmapped IDs pass through")
}
