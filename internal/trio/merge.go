package trio

import (
	"github.com/inodb/vibe-trio/internal/vcf"
)

// Merge aligns the child's call stream with the parental streams into
// trio records, one per child locus, preserving the child's position
// order. Parental streams may be nil (parent without call data).
// Loci present only in a parent are dropped: triage is
// proband-centric, a variant the child does not carry cannot be
// causal for the child.
func Merge(child, mother, father []*vcf.VariantCall) []*Record {
	momByKey := indexByKey(mother)
	dadByKey := indexByKey(father)

	records := make([]*Record, 0, len(child))
	for _, call := range child {
		rec := &Record{
			Child:  call,
			Mother: genotypeAt(momByKey, call.Key()),
			Father: genotypeAt(dadByKey, call.Key()),
		}
		records = append(records, rec)
	}
	return records
}

func indexByKey(calls []*vcf.VariantCall) map[vcf.Key]*vcf.VariantCall {
	if calls == nil {
		return nil
	}
	m := make(map[vcf.Key]*vcf.VariantCall, len(calls))
	for _, c := range calls {
		m[c.Key()] = c
	}
	return m
}

func genotypeAt(m map[vcf.Key]*vcf.VariantCall, key vcf.Key) vcf.Genotype {
	if m == nil {
		return vcf.GenotypeUnknown
	}
	call, ok := m[key]
	if !ok {
		return vcf.GenotypeUnknown
	}
	return call.Genotype
}
