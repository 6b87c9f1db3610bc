package vcf

// Genotype is the zygosity state of one individual at one locus.
// GenotypeUnknown is the zero value so that a missing individual can
// never be mistaken for homozygous reference.
type Genotype int8

const (
	GenotypeUnknown Genotype = iota
	GenotypeHomRef
	GenotypeHet
	GenotypeHomAlt
)

// String returns the reporting form of the genotype.
func (g Genotype) String() string {
	switch g {
	case GenotypeHomRef:
		return "hom_ref"
	case GenotypeHet:
		return "het"
	case GenotypeHomAlt:
		return "hom_alt"
	default:
		return "unknown"
	}
}

// GT renders the genotype in VCF GT notation.
func (g Genotype) GT() string {
	switch g {
	case GenotypeHomRef:
		return "0/0"
	case GenotypeHet:
		return "0/1"
	case GenotypeHomAlt:
		return "1/1"
	default:
		return "./."
	}
}

// Known returns true if the genotype was actually observed.
func (g Genotype) Known() bool {
	return g != GenotypeUnknown
}

// Carrier returns true if the individual carries at least one
// alternate allele. Unknown genotypes are not carriers.
func (g Genotype) Carrier() bool {
	return g == GenotypeHet || g == GenotypeHomAlt
}

// AltCount returns the number of alternate alleles (0, 1 or 2), or
// -1 for unknown genotypes.
func (g Genotype) AltCount() int {
	switch g {
	case GenotypeHomRef:
		return 0
	case GenotypeHet:
		return 1
	case GenotypeHomAlt:
		return 2
	default:
		return -1
	}
}
