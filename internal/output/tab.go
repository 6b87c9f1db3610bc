// Package output provides candidate result formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/inodb/vibe-trio/internal/genedb"
	"github.com/inodb/vibe-trio/internal/ped"
	"github.com/inodb/vibe-trio/internal/triage"
)

// TabWriter writes candidate results in tab-delimited format, one row
// per candidate.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Family",
			"Proband",
			"Location",
			"Ref",
			"Alt",
			"Gene",
			"Consequence",
			"Allele_freq",
			"Child_genotype",
			"Mother_genotype",
			"Father_genotype",
			"Classification",
			"Mode",
			"Note",
			"All_classifications",
			"Confidence",
			"Gene_status",
			"Syndromes",
			"Partner",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single candidate row.
func (tw *TabWriter) Write(fam *ped.Family, cand *triage.Candidate) error {
	rec := cand.Record
	best := cand.Best()

	location := fmt.Sprintf("%s:%d", rec.Chrom(), rec.Pos())

	gene := rec.Gene()
	if gene == "" {
		gene = "-"
	}

	af := "-"
	if rec.Child.HasAlleleFreq {
		af = fmt.Sprintf("%g", rec.Child.AlleleFreq)
	}

	mode := "-"
	if best.Mode != genedb.ModeUnknown {
		mode = best.Mode.String()
	}

	note := best.Note
	if note == "" {
		if cand.Unconstrained() {
			note = "no known constraint, passed rarity/functional filter"
		} else {
			note = "-"
		}
	}

	all := make([]string, 0, len(cand.Classifications))
	for _, cls := range cand.Classifications {
		all = append(all, cls.Result.String())
	}

	status := "-"
	if len(cand.GeneEntries) > 0 {
		status = cand.GeneEntries[0].Status
	}

	syndromes := "-"
	if len(cand.Syndromes) > 0 {
		names := make([]string, len(cand.Syndromes))
		for i, s := range cand.Syndromes {
			names[i] = s.Name + "(" + s.CopyNumber.String() + ")"
		}
		syndromes = strings.Join(names, ",")
	}

	partner := "-"
	if cand.Partner != nil {
		p := cand.Partner.Record
		partner = fmt.Sprintf("%s:%d %s/%s", p.Chrom(), p.Pos(), p.Child.Ref, p.Child.Alt)
	}

	values := []string{
		fam.ID,
		fam.Child.ID,
		location,
		rec.Child.Ref,
		rec.Child.Alt,
		gene,
		rec.Child.Consequence,
		af,
		rec.Child.Genotype.String(),
		rec.Mother.String(),
		rec.Father.String(),
		best.Result.String(),
		mode,
		note,
		strings.Join(all, ","),
		cand.Confidence.String(),
		status,
		syndromes,
		partner,
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
