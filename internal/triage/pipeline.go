package triage

import (
	"go.uber.org/zap"

	"github.com/inodb/vibe-trio/internal/filter"
	"github.com/inodb/vibe-trio/internal/genedb"
	"github.com/inodb/vibe-trio/internal/inherit"
	"github.com/inodb/vibe-trio/internal/ped"
	"github.com/inodb/vibe-trio/internal/regiondb"
	"github.com/inodb/vibe-trio/internal/trio"
	"github.com/inodb/vibe-trio/internal/vcf"
)

// Pipeline holds the reference databases and configuration shared by
// every family in a run. All fields are read-only after construction,
// so one pipeline serves concurrently processed families without
// locking.
type Pipeline struct {
	genes   *genedb.Store   // nil when no known-gene table was supplied
	regions *regiondb.Index // nil when no syndrome regions were supplied
	filter  filter.Config
	altIDs  map[string]string // pass-through alternate identifiers
	logger  *zap.Logger
}

// NewPipeline creates a pipeline around the shared reference data.
// Either database may be nil; filtering then proceeds without the
// corresponding evidence.
func NewPipeline(genes *genedb.Store, regions *regiondb.Index, cfg filter.Config) *Pipeline {
	return &Pipeline{
		genes:   genes,
		regions: regions,
		filter:  cfg,
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger for warning and progress messages.
func (p *Pipeline) SetLogger(l *zap.Logger) {
	p.logger = l
}

// SetAltIDs attaches an alternate-identifier map. It is pass-through
// metadata for reporting and never affects filtering logic.
func (p *Pipeline) SetAltIDs(ids map[string]string) {
	p.altIDs = ids
}

// AltID returns the alternate identifier for an individual, or the
// given ID unchanged.
func (p *Pipeline) AltID(id string) string {
	if alt, ok := p.altIDs[id]; ok {
		return alt
	}
	return id
}

// RunFamily processes one family synchronously: merge the call
// streams, filter, look up gene and syndrome evidence, classify
// inheritance, and aggregate. Candidates come back in the child's
// genomic position order. Identical inputs produce identical output.
func (p *Pipeline) RunFamily(fam *ped.Family, child, mother, father []*vcf.VariantCall) []*Candidate {
	records := trio.Merge(child, mother, father)
	checker := inherit.NewChecker(fam)
	checker.SetLogger(p.logger)

	var candidates []*Candidate
	for _, rec := range records {
		verdict := p.filter.Check(rec.Child)
		if !verdict.Pass {
			p.logger.Debug("variant filtered",
				zap.String("chrom", rec.Chrom()),
				zap.Int64("pos", rec.Pos()),
				zap.String("reason", verdict.Reason))
			continue
		}

		cand := &Candidate{
			Record:  rec,
			Verdict: verdict,
		}
		if p.genes != nil {
			cand.GeneEntries = p.genes.Lookup(rec.Gene())
		}
		if p.regions != nil {
			cand.Syndromes = p.regions.FindOverlaps(rec.Chrom(), rec.Pos())
		}
		cand.Classifications = checker.Check(rec, cand.GeneEntries)

		candidates = append(candidates, cand)
	}

	p.pairCompoundHets(checker, candidates)

	for _, cand := range candidates {
		cand.rank()
	}
	return candidates
}

// pairCompoundHets runs the same-gene pairing search over candidates
// whose gene carries a recessive mode, and attaches the pair
// classification plus partner back-references to both halves.
func (p *Pipeline) pairCompoundHets(checker *inherit.Checker, candidates []*Candidate) {
	byGene := make(map[string][]*Candidate)
	for _, cand := range candidates {
		if gene := cand.Record.Gene(); gene != "" {
			byGene[gene] = append(byGene[gene], cand)
		}
	}

	for _, group := range byGene {
		if len(group) < 2 {
			continue
		}
		for _, mode := range recessiveModes(group[0].GeneEntries) {
			records := make([]*trio.Record, len(group))
			for i, cand := range group {
				records[i] = cand.Record
			}
			for _, pair := range checker.PairCompoundHets(records, mode) {
				a := candidateFor(group, pair.A)
				b := candidateFor(group, pair.B)
				a.Classifications = append(a.Classifications, pair.Classification)
				b.Classifications = append(b.Classifications, pair.Classification)
				if a.Partner == nil {
					a.Partner = b
				}
				if b.Partner == nil {
					b.Partner = a
				}
			}
		}
	}
}

// recessiveModes returns the distinct recessive modes listed across a
// gene's entries. Pairing only makes sense under those.
func recessiveModes(entries []genedb.Entry) []genedb.Mode {
	var modes []genedb.Mode
	seen := make(map[genedb.Mode]bool)
	for _, entry := range entries {
		for _, mode := range entry.Modes {
			if mode.IsRecessive() && !seen[mode] {
				seen[mode] = true
				modes = append(modes, mode)
			}
		}
	}
	return modes
}

func candidateFor(group []*Candidate, rec *trio.Record) *Candidate {
	for _, cand := range group {
		if cand.Record == rec {
			return cand
		}
	}
	return nil
}
