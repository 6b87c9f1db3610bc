package triage

import (
	"runtime"
	"sync"

	"github.com/inodb/vibe-trio/internal/ped"
	"github.com/inodb/vibe-trio/internal/vcf"
)

// WorkItem holds one family's materialized call streams, ready for
// the pipeline.
type WorkItem struct {
	Seq    int
	Family *ped.Family
	Child  []*vcf.VariantCall
	Mother []*vcf.VariantCall
	Father []*vcf.VariantCall
	Header []string // child VCF header, carried through for exporters
}

// WorkResult holds the candidate list for one family.
type WorkResult struct {
	Seq        int
	Family     *ped.Family
	Candidates []*Candidate
	Header     []string
}

// RunFamilies processes work items using a pool of workers. Families
// are independent; the only shared state is the pipeline's read-only
// reference data. Results are sent to the returned channel in arrival
// order (not sequence order). Use OrderedCollect to consume results
// in sequence-number order. If workers is 0, runtime.NumCPU() is used.
func (p *Pipeline) RunFamilies(items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				results <- WorkResult{
					Seq:        item.Seq,
					Family:     item.Family,
					Candidates: p.RunFamily(item.Family, item.Child, item.Mother, item.Father),
					Header:     item.Header,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order.
// It buffers out-of-order results in a pending map and emits them
// as soon as the next expected sequence number is available.
// Blocks until the results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
