package ped

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// PED column layout: family, individual, father, mother, sex,
// affection, and an optional path to the individual's VCF.
const minPEDColumns = 6

// ParseError represents an error during PED parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ped parse error at line %d: %s", e.Line, e.Message)
}

// ParseFile reads a PED file and assembles families. A malformed PED
// file is fatal: pedigree data is authoritative and cannot be
// partially loaded.
func ParseFile(path string) ([]*Family, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ped file: %w", err)
	}
	defer f.Close()

	families, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return families, nil
}

// pedRow is one parsed PED line before family assembly.
type pedRow struct {
	familyID string
	id       string
	fatherID string
	motherID string
	sex      Sex
	affected Affection
	vcfPath  string
}

// Parse reads PED lines from r and assembles one Family per child
// with both parental links resolved within the same family ID.
// Families are returned in first-seen order.
func Parse(r io.Reader) ([]*Family, error) {
	scanner := bufio.NewScanner(r)

	var rows []pedRow
	byID := make(map[string]pedRow)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < minPEDColumns {
			return nil, &ParseError{
				Line:    lineNumber,
				Message: fmt.Sprintf("expected at least %d columns, found %d", minPEDColumns, len(fields)),
			}
		}

		row := pedRow{
			familyID: fields[0],
			id:       fields[1],
			fatherID: fields[2],
			motherID: fields[3],
		}

		switch fields[4] {
		case "1":
			row.sex = SexMale
		case "2":
			row.sex = SexFemale
		case "0":
			row.sex = SexUnknown
		default:
			return nil, &ParseError{
				Line:    lineNumber,
				Message: fmt.Sprintf("invalid sex code %q", fields[4]),
			}
		}

		switch fields[5] {
		case "1":
			row.affected = Unaffected
		case "2":
			row.affected = Affected
		case "0", "-9":
			row.affected = AffectionUnknown
		default:
			return nil, &ParseError{
				Line:    lineNumber,
				Message: fmt.Sprintf("invalid affection code %q", fields[5]),
			}
		}

		if len(fields) > 6 {
			row.vcfPath = fields[6]
		}

		rows = append(rows, row)
		byID[row.familyID+"\x00"+row.id] = row
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ped file: %w", err)
	}

	// A child is any row with at least one named parent. Rows without
	// parent links are parents (or founders) and never get their own
	// family.
	var families []*Family
	for _, row := range rows {
		if row.fatherID == "0" && row.motherID == "0" {
			continue
		}

		child := &Individual{
			ID:       row.id,
			Sex:      row.sex,
			Affected: row.affected,
			VCFPath:  row.vcfPath,
		}
		fam := NewFamily(row.familyID, child)

		if row.motherID != "0" {
			if mom, ok := byID[row.familyID+"\x00"+row.motherID]; ok {
				ind := &Individual{ID: mom.id, Sex: mom.sex, Affected: mom.affected, VCFPath: mom.vcfPath}
				if err := fam.SetMother(ind); err != nil {
					return nil, err
				}
			}
		}
		if row.fatherID != "0" {
			if dad, ok := byID[row.familyID+"\x00"+row.fatherID]; ok {
				ind := &Individual{ID: dad.id, Sex: dad.sex, Affected: dad.affected, VCFPath: dad.vcfPath}
				if err := fam.SetFather(ind); err != nil {
					return nil, err
				}
			}
		}

		families = append(families, fam)
	}

	if len(families) == 0 {
		return nil, fmt.Errorf("no children found in ped file")
	}

	return families, nil
}
