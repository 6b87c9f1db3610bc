// Package vcf provides VCF file parsing for per-individual variant calls.
package vcf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parser reads variant calls from a single-sample VCF file.
type Parser struct {
	reader      *bufio.Reader
	file        *os.File
	gzipReader  *gzip.Reader
	lineNumber  int
	header      []string
	sampleNames []string // sample names from #CHROM header line
}

// NewParser creates a new VCF parser for the given file.
// Supports both plain VCF and gzipped VCF (.vcf.gz) files.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("read vcf header: %w", err)
	}

	// Seek back to beginning
	_, err = file.Seek(0, 0)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("seek vcf file: %w", err)
	}

	// Check for gzip magic number (0x1f, 0x8b)
	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	// Parse header
	if err := p.parseHeader(); err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
func NewParserFromReader(r io.Reader) (*Parser, error) {
	p := &Parser{
		reader: bufio.NewReader(r),
	}

	if err := p.parseHeader(); err != nil {
		return nil, err
	}

	return p, nil
}

// parseHeader reads and stores VCF header lines.
func (p *Parser) parseHeader() error {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read header: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(line, "##") {
			p.header = append(p.header, line)
			continue
		}

		if strings.HasPrefix(line, "#CHROM") {
			p.header = append(p.header, line)
			// Extract sample names from columns after FORMAT (index 9+)
			fields := strings.Split(line, "\t")
			if len(fields) > 9 {
				p.sampleNames = fields[9:]
			}
			return nil
		}

		// Non-header line encountered without #CHROM
		return &ParseError{
			Line:    p.lineNumber,
			Message: "expected #CHROM header line",
		}
	}

	return &ParseError{
		Line:    p.lineNumber,
		Message: "no #CHROM header line found",
	}
}

// Next reads the next variant call from the VCF file.
// Returns nil, nil when there are no more variants. A *ParseError
// marks a single malformed line; the parser stays usable, so callers
// may log the line and continue with the next call.
func (p *Parser) Next() (*VariantCall, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read variant line: %w", err)
	}
	p.lineNumber++

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return p.Next() // Skip empty lines
	}

	return p.parseLine(line)
}

// validChroms covers the chromosomes triage understands. Anything
// else (decoy contigs, patches) is treated as a malformed call.
var validChroms = buildChromSet()

func buildChromSet() map[string]bool {
	set := map[string]bool{"X": true, "Y": true, "MT": true, "M": true}
	for i := 1; i <= 22; i++ {
		set[strconv.Itoa(i)] = true
	}
	return set
}

// parseLine parses a single VCF data line into a VariantCall.
func (p *Parser) parseLine(line string) (*VariantCall, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 8 {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected at least 8 columns, found %d", len(fields)),
		}
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid position: %s", fields[1]),
		}
	}

	v := &VariantCall{
		Chrom:  fields[0],
		Pos:    pos,
		ID:     fields[2],
		Ref:    fields[3],
		Alt:    fields[4],
		Filter: fields[6],
		Info:   parseInfo(fields[7]),
	}

	if !validChroms[v.NormalizeChrom()] {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("unrecognized chromosome: %s", fields[0]),
		}
	}

	p.setAnnotations(v)

	// Genotype comes from the GT entry of the first sample column.
	if len(fields) >= 10 {
		gt, err := ParseGenotype(fields[8], fields[9])
		if err != nil {
			return nil, &ParseError{
				Line:    p.lineNumber,
				Message: err.Error(),
			}
		}
		v.Genotype = gt
	}

	return v, nil
}

// setAnnotations extracts allele frequency, gene symbol and
// consequence class from the INFO map.
func (p *Parser) setAnnotations(v *VariantCall) {
	// Maximum population allele frequency across reference cohorts.
	for _, key := range []string{"MAX_AF", "AF"} {
		raw, ok := v.Info[key].(string)
		if !ok {
			continue
		}
		// Multi-allelic records carry comma-separated values; the
		// first applies after splitting.
		if i := strings.IndexByte(raw, ','); i >= 0 {
			raw = raw[:i]
		}
		if af, err := strconv.ParseFloat(raw, 64); err == nil {
			v.AlleleFreq = af
			v.HasAlleleFreq = true
			break
		}
	}

	for _, key := range []string{"HGNC", "SYMBOL"} {
		if gene, ok := v.Info[key].(string); ok && gene != "." {
			v.Gene = gene
			break
		}
	}

	for _, key := range []string{"CQ", "Consequence"} {
		if cq, ok := v.Info[key].(string); ok && cq != "." {
			v.Consequence = cq
			break
		}
	}
}

// ParseGenotype converts the GT entry of a sample column into a
// genotype. Both phased (|) and unphased (/) separators are accepted.
// Two differing alleles count as heterozygous even when neither is
// the reference; those calls are almost always poorly called indels.
func ParseGenotype(format, sample string) (Genotype, error) {
	gtIndex := -1
	for i, key := range strings.Split(format, ":") {
		if key == "GT" {
			gtIndex = i
			break
		}
	}
	if gtIndex < 0 {
		return GenotypeUnknown, fmt.Errorf("no GT entry in FORMAT %q", format)
	}

	values := strings.Split(sample, ":")
	if gtIndex >= len(values) {
		return GenotypeUnknown, fmt.Errorf("sample column %q too short for FORMAT %q", sample, format)
	}
	gt := values[gtIndex]

	if gt == "." || gt == "./." || gt == ".|." {
		return GenotypeUnknown, nil
	}

	sep := "/"
	if !strings.Contains(gt, "/") {
		sep = "|"
	}
	alleles := strings.Split(gt, sep)
	if len(alleles) == 1 {
		// Hemizygous call (male X or Y): a single alternate allele
		// reads as homozygous alternate, matching diploid coding.
		switch alleles[0] {
		case "0":
			return GenotypeHomRef, nil
		case ".":
			return GenotypeUnknown, nil
		default:
			if _, err := strconv.Atoi(alleles[0]); err != nil {
				return GenotypeUnknown, fmt.Errorf("unparseable genotype %q", gt)
			}
			return GenotypeHomAlt, nil
		}
	}
	if len(alleles) != 2 {
		return GenotypeUnknown, fmt.Errorf("unparseable genotype %q", gt)
	}

	for _, a := range alleles {
		if a == "." {
			return GenotypeUnknown, nil
		}
		if _, err := strconv.Atoi(a); err != nil {
			return GenotypeUnknown, fmt.Errorf("unparseable genotype %q", gt)
		}
	}

	switch {
	case alleles[0] != alleles[1]:
		return GenotypeHet, nil
	case alleles[0] == "0":
		return GenotypeHomRef, nil
	default:
		return GenotypeHomAlt, nil
	}
}

// parseInfo parses the INFO field into a map.
func parseInfo(info string) map[string]interface{} {
	result := make(map[string]interface{})
	if info == "." {
		return result
	}

	for _, kv := range strings.Split(info, ";") {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			result[parts[0]] = parts[1]
		} else {
			// Flag-type INFO field
			result[parts[0]] = true
		}
	}

	return result
}

// SplitMultiAllelic splits a multi-allelic variant into separate calls.
func SplitMultiAllelic(v *VariantCall) []*VariantCall {
	alts := strings.Split(v.Alt, ",")
	if len(alts) == 1 {
		return []*VariantCall{v}
	}

	variants := make([]*VariantCall, len(alts))
	for i, alt := range alts {
		split := *v
		split.Alt = alt
		variants[i] = &split
	}

	return variants
}

// Header returns the VCF header lines.
func (p *Parser) Header() []string {
	return p.header
}

// SampleNames returns sample names from the #CHROM header line.
// Returns nil if no sample columns are present.
func (p *Parser) SampleNames() []string {
	return p.sampleNames
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError represents an error during VCF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}
