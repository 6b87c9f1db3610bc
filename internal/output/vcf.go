package output

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/inodb/vibe-trio/internal/ped"
	"github.com/inodb/vibe-trio/internal/triage"
)

// triageInfoLine documents the INFO field the exporter appends.
const triageInfoLine = `##INFO=<ID=TRIAGE,Number=.,Type=String,Description="Trio triage result. Format: Classification|Mode|Confidence|Partner">`

// VCFWriter exports retained candidates as a filtered single-sample
// VCF of the child's calls, with a TRIAGE INFO field carrying the
// classification.
type VCFWriter struct {
	w           *bufio.Writer
	headerLines []string // child VCF header lines (## and #CHROM)
}

// NewVCFWriter creates a new filtered-VCF writer. headerLines should
// be the child VCF's header so the output stays parseable by the
// tools that produced the input.
func NewVCFWriter(w io.Writer, headerLines []string) *VCFWriter {
	return &VCFWriter{
		w:           bufio.NewWriter(w),
		headerLines: headerLines,
	}
}

// WriteHeader writes the original header lines with the TRIAGE INFO
// line inserted before #CHROM.
func (vw *VCFWriter) WriteHeader() error {
	wroteInfo := false
	for _, line := range vw.headerLines {
		if strings.HasPrefix(line, "#CHROM") && !wroteInfo {
			if _, err := vw.w.WriteString(triageInfoLine + "\n"); err != nil {
				return err
			}
			wroteInfo = true
		}
		if _, err := vw.w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	if !wroteInfo {
		if _, err := vw.w.WriteString(triageInfoLine + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Write writes one candidate as a VCF data line.
func (vw *VCFWriter) Write(_ *ped.Family, cand *triage.Candidate) error {
	rec := cand.Record
	call := rec.Child
	best := cand.Best()

	partner := "."
	if cand.Partner != nil {
		p := cand.Partner.Record
		partner = fmt.Sprintf("%s:%d_%s/%s", p.Chrom(), p.Pos(), p.Child.Ref, p.Child.Alt)
	}

	triageValue := strings.Join([]string{
		best.Result.String(),
		best.Mode.String(),
		cand.Confidence.String(),
		partner,
	}, "|")

	info := formatInfo(call.Info) + ";TRIAGE=" + triageValue

	fields := []string{
		call.Chrom,
		fmt.Sprintf("%d", call.Pos),
		call.ID,
		call.Ref,
		call.Alt,
		".",
		call.Filter,
		info,
		"GT",
		call.Genotype.GT(),
	}

	_, err := vw.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// formatInfo rebuilds an INFO string from the parsed map with sorted
// keys, so identical inputs produce identical output.
func formatInfo(info map[string]interface{}) string {
	if len(info) == 0 {
		return "."
	}
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch v := info[k].(type) {
		case bool:
			parts = append(parts, k)
		case string:
			parts = append(parts, k+"="+v)
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}
	return strings.Join(parts, ";")
}

// Flush flushes any buffered data to the underlying writer.
func (vw *VCFWriter) Flush() error {
	return vw.w.Flush()
}
