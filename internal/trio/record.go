// Package trio aligns per-individual variant call streams into
// trio-level records keyed by genomic locus.
package trio

import (
	"github.com/inodb/vibe-trio/internal/vcf"
)

// Record is one variant call merged across the family at a single
// locus. The child's call carries the shared annotations (alleles,
// frequency, consequence, gene); the parental genotypes are looked up
// by identity key. A parent with no call at the locus, or no call
// data at all, holds GenotypeUnknown, never homozygous reference.
type Record struct {
	Child  *vcf.VariantCall
	Mother vcf.Genotype
	Father vcf.Genotype
}

// Chrom returns the normalized chromosome of the locus.
func (r *Record) Chrom() string {
	return r.Child.NormalizeChrom()
}

// Pos returns the 1-based position of the locus.
func (r *Record) Pos() int64 {
	return r.Child.Pos
}

// Gene returns the annotated gene symbol, empty if absent.
func (r *Record) Gene() string {
	return r.Child.Gene
}

// Key returns the identity key of the underlying variant.
func (r *Record) Key() vcf.Key {
	return r.Child.Key()
}

// IsAllosomal returns true for X-chromosome loci.
func (r *Record) IsAllosomal() bool {
	return r.Child.IsAllosomal()
}

// ParentGenotype returns the genotype of the named parent.
func (r *Record) ParentGenotype(mother bool) vcf.Genotype {
	if mother {
		return r.Mother
	}
	return r.Father
}
