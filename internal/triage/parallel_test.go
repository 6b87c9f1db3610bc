package triage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-trio/internal/filter"
	"github.com/inodb/vibe-trio/internal/ped"
	"github.com/inodb/vibe-trio/internal/vcf"
)

func makeItems(n int) <-chan WorkItem {
	ch := make(chan WorkItem, n)
	for i := range n {
		fam := ped.NewFamily(fmt.Sprintf("fam%d", i), &ped.Individual{
			ID: fmt.Sprintf("child%d", i), Sex: ped.SexFemale, Affected: ped.Affected,
		})
		ch <- WorkItem{
			Seq:    i,
			Family: fam,
			Child: []*vcf.VariantCall{{
				Chrom: "1", Pos: int64(100 + i), Ref: "A", Alt: "T",
				Consequence: "stop_gained", Genotype: vcf.GenotypeHet,
				AlleleFreq: 0.0001, HasAlleleFreq: true,
			}},
		}
	}
	close(ch)
	return ch
}

func TestRunFamilies_OrderPreservation(t *testing.T) {
	p := NewPipeline(nil, nil, filter.DefaultConfig())

	results := p.RunFamilies(makeItems(200), 8)

	var collected []int
	err := OrderedCollect(results, func(r WorkResult) error {
		collected = append(collected, r.Seq)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, collected, 200)
	for i, seq := range collected {
		assert.Equal(t, i, seq, "result %d out of order", i)
	}
}

func TestRunFamilies_SingleWorker(t *testing.T) {
	p := NewPipeline(nil, nil, filter.DefaultConfig())

	results := p.RunFamilies(makeItems(50), 1)

	count := 0
	err := OrderedCollect(results, func(r WorkResult) error {
		require.Len(t, r.Candidates, 1)
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 50, count)
}

func TestRunFamilies_DefaultWorkerCount(t *testing.T) {
	p := NewPipeline(nil, nil, filter.DefaultConfig())

	results := p.RunFamilies(makeItems(10), 0)

	count := 0
	err := OrderedCollect(results, func(r WorkResult) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}

func TestRunFamilies_EmptyInput(t *testing.T) {
	p := NewPipeline(nil, nil, filter.DefaultConfig())

	ch := make(chan WorkItem)
	close(ch)
	results := p.RunFamilies(ch, 4)

	count := 0
	err := OrderedCollect(results, func(r WorkResult) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestOrderedCollect_StopsOnError(t *testing.T) {
	p := NewPipeline(nil, nil, filter.DefaultConfig())

	results := p.RunFamilies(makeItems(100), 4)

	wantErr := errors.New("sink failed")
	calls := 0
	err := OrderedCollect(results, func(r WorkResult) error {
		calls++
		if r.Seq == 3 {
			return wantErr
		}
		return nil
	})
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 4, calls, "collection stops at the failing result")
}
