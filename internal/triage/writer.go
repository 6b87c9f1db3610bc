package triage

import "github.com/inodb/vibe-trio/internal/ped"

// ResultWriter renders the candidate list of a family. Implementations
// live in internal/output (tab report, filtered VCF).
type ResultWriter interface {
	WriteHeader() error
	Write(fam *ped.Family, cand *Candidate) error
	Flush() error
}
