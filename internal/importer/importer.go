// Package importer reads customer lists exported from spreadsheets and
// address books.
package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	enc "github.com/MrJamesThe3rd/fieldwork/internal/encoding"
	"github.com/MrJamesThe3rd/fieldwork/internal/customer"
)

var ErrUnknownFormat = errors.New("no matching customer list format found: expected name, phone, email and address columns")

// Row is one parsed line with its 1-based position in the file.
type Row struct {
	Line   int
	Params customer.CreateParams
}

// Parser auto-detects the delimiter and column layout of a CSV file.
// Row contents are not validated here.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrUnknownFormat
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1), nil
}

// sniffDelimiter picks the separator that occurs most often on the first line.
func sniffDelimiter(br *bufio.Reader) rune {
	buf, _ := br.Peek(4096)
	if i := bytes.IndexByte(buf, '\n'); i >= 0 {
		buf = buf[:i]
	}

	best, bestCount := ',', bytes.Count(buf, []byte{','})

	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(buf, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}

	return best
}

type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) []Row {
	out := make([]Row, 0, len(rows))

	for i, row := range rows {
		if blank(row) {
			continue
		}

		out = append(out, Row{
			Line: headerRowNum + i + 1,
			Params: customer.CreateParams{
				Name:    cellValue(row, cols[p.NameCol]),
				Phone:   cellValue(row, cols[p.PhoneCol]),
				Email:   cellValue(row, cols[p.EmailCol]),
				Address: cellValue(row, cols[p.AddressCol]),
			},
		})
	}

	return out
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// Params strips line numbers for callers that only need the values.
func Params(rows []Row) []customer.CreateParams {
	params := make([]customer.CreateParams, len(rows))
	for i, r := range rows {
		params[i] = r.Params
	}

	return params
}
