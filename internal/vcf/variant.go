// Package vcf provides VCF file parsing for per-individual variant calls.
package vcf

// VariantCall represents a single genomic variant call for one individual.
type VariantCall struct {
	Chrom         string                 // Chromosome name (e.g., "12", "chr12")
	Pos           int64                  // 1-based genomic position
	ID            string                 // Variant identifier (e.g., rs ID)
	Ref           string                 // Reference allele
	Alt           string                 // Alternate allele (single allele after splitting)
	Filter        string                 // Filter status (PASS or filter name)
	Genotype      Genotype               // Genotype of this individual
	AlleleFreq    float64                // Maximum population allele frequency
	HasAlleleFreq bool                   // Whether an allele frequency was annotated
	Consequence   string                 // Predicted consequence (SO term)
	Gene          string                 // Annotated gene symbol, empty if absent
	Info          map[string]interface{} // INFO field key-value pairs
}

// Key identifies a variant call by locus and alleles. Calls from
// different individuals merge when their keys are equal.
type Key struct {
	Chrom string
	Pos   int64
	Ref   string
	Alt   string
}

// Key returns the identity key of the call.
func (v *VariantCall) Key() Key {
	return Key{Chrom: v.NormalizeChrom(), Pos: v.Pos, Ref: v.Ref, Alt: v.Alt}
}

// IsSNV returns true if the variant is a single nucleotide variant.
func (v *VariantCall) IsSNV() bool {
	return len(v.Ref) == 1 && len(v.Alt) == 1
}

// IsIndel returns true if the variant is an insertion or deletion.
func (v *VariantCall) IsIndel() bool {
	return len(v.Ref) != len(v.Alt)
}

// NormalizeChrom returns the chromosome name without "chr" prefix.
func (v *VariantCall) NormalizeChrom() string {
	if len(v.Chrom) > 3 && v.Chrom[:3] == "chr" {
		return v.Chrom[3:]
	}
	return v.Chrom
}

// IsAllosomal returns true for loci on the X chromosome, where
// autosomal zygosity logic does not apply.
func (v *VariantCall) IsAllosomal() bool {
	return v.NormalizeChrom() == "X"
}
