package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inodb/vibe-trio/internal/vcf"
)

func TestCheck(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name    string
		call    *vcf.VariantCall
		pass    bool
		reason  string
		lowConf bool
	}{
		{
			name: "rare lof passes",
			call: &vcf.VariantCall{Consequence: "stop_gained", AlleleFreq: 0.0001, HasAlleleFreq: true},
			pass: true,
		},
		{
			name: "rare missense passes",
			call: &vcf.VariantCall{Consequence: "missense_variant", AlleleFreq: 0.005, HasAlleleFreq: true},
			pass: true,
		},
		{
			name: "threshold is exclusive above",
			call: &vcf.VariantCall{Consequence: "missense_variant", AlleleFreq: 0.01, HasAlleleFreq: true},
			pass: true,
		},
		{
			name:   "common variant fails",
			call:   &vcf.VariantCall{Consequence: "missense_variant", AlleleFreq: 0.05, HasAlleleFreq: true},
			pass:   false,
			reason: ReasonFrequency,
		},
		{
			name:   "synonymous fails",
			call:   &vcf.VariantCall{Consequence: "synonymous_variant", AlleleFreq: 0.0001, HasAlleleFreq: true},
			pass:   false,
			reason: ReasonConsequence,
		},
		{
			name:   "intergenic fails",
			call:   &vcf.VariantCall{Consequence: "intergenic_variant", AlleleFreq: 0.0001, HasAlleleFreq: true},
			pass:   false,
			reason: ReasonConsequence,
		},
		{
			name:   "empty consequence fails",
			call:   &vcf.VariantCall{Consequence: "", AlleleFreq: 0.0001, HasAlleleFreq: true},
			pass:   false,
			reason: ReasonConsequence,
		},
		{
			name:    "missing frequency passes low confidence",
			call:    &vcf.VariantCall{Consequence: "frameshift_variant"},
			pass:    true,
			lowConf: true,
		},
		{
			name: "one accepted term among several",
			call: &vcf.VariantCall{Consequence: "intron_variant&splice_region_variant", AlleleFreq: 0.001, HasAlleleFreq: true},
			pass: true,
		},
		{
			name: "comma separated terms",
			call: &vcf.VariantCall{Consequence: "upstream_gene_variant,stop_gained", AlleleFreq: 0.001, HasAlleleFreq: true},
			pass: true,
		},
		{
			name:   "consequence checked before frequency",
			call:   &vcf.VariantCall{Consequence: "synonymous_variant", AlleleFreq: 0.9, HasAlleleFreq: true},
			pass:   false,
			reason: ReasonConsequence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := cfg.Check(tt.call)
			assert.Equal(t, tt.pass, v.Pass)
			assert.Equal(t, tt.reason, v.Reason)
			assert.Equal(t, tt.lowConf, v.LowConfidence)
		})
	}
}

func TestCheck_CustomThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAlleleFreq = 0.001

	v := cfg.Check(&vcf.VariantCall{Consequence: "missense_variant", AlleleFreq: 0.005, HasAlleleFreq: true})
	assert.False(t, v.Pass)
	assert.Equal(t, ReasonFrequency, v.Reason)
}

func TestCheck_CustomConsequences(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Consequences["synonymous_variant"] = true

	v := cfg.Check(&vcf.VariantCall{Consequence: "synonymous_variant", AlleleFreq: 0.0001, HasAlleleFreq: true})
	assert.True(t, v.Pass)
}
