package cgd

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/fleetledger/internal/encoding"
	"github.com/MrJamesThe3rd/fleetledger/internal/statement"
)

// Parser reads CGD bank CSV exports into statement lines. The export
// layout (conta, extrato, cartão) is detected from the column headers.
type Parser struct {
	decoder *enc.Decoder
}

func NewParser(decoder *enc.Decoder) *Parser {
	if decoder == nil {
		decoder = enc.NewDecoder()
	}

	return &Parser{decoder: decoder}
}

func (p *Parser) Parse(r io.Reader) ([]statement.Line, error) {
	utf8r, err := p.decoder.Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching CGD format found: expected columns for conta, extrato, or cartão")
	}

	return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
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

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows turns data rows into statement lines. headerRowNum is the
// 0-based index of the header in the file.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]statement.Line, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	var lines []statement.Line

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based

		date, ok := parseDate(row, dateIdx)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		desc = withNotes(desc, p, cols, row)

		amount, dir, ok := parseAmount(p, cols, row)
		if !ok {
			continue
		}

		lines = append(lines, statement.Line{
			Row:         rowNum,
			Date:        date,
			Description: desc,
			Amount:      amount,
			Direction:   dir,
		})
	}

	return lines, nil
}

// parseDate tries to parse a date from the given cell index.
// Returns false for empty cells or unparseable values (footer rows, etc).
func parseDate(row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	return parseDateValue(s)
}

// withNotes appends the profile's optional note columns that are present
// and not blank.
func withNotes(desc string, p *Profile, cols colIndex, row []string) string {
	parts := []string{desc}

	for _, name := range p.NoteCols {
		idx, ok := cols[name]
		if !ok {
			continue
		}

		if note := cellValue(row, idx); note != "" {
			parts = append(parts, note)
		}
	}

	return strings.Join(parts, " ")
}

// parseAmount extracts the amount and its direction according to the profile.
func parseAmount(p *Profile, cols colIndex, row []string) (decimal.Decimal, statement.Direction, bool) {
	switch p.Layout {
	case signedAmount:
		return parseSingleAmount(row, cols[p.AmountCol])
	case splitAmount:
		return parseSplitAmount(row, cols[p.DebitCol], cols[p.CreditCol])
	}

	return decimal.Zero, "", false
}

// parseSingleAmount handles a single signed amount column.
func parseSingleAmount(row []string, idx int) (decimal.Decimal, statement.Direction, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return decimal.Zero, "", false
	}

	amount, err := parseEuropeanAmount(s)
	if err != nil || amount.IsZero() {
		return decimal.Zero, "", false
	}

	if amount.IsNegative() {
		return amount.Neg(), statement.Debit, true
	}

	return amount, statement.Credit, true
}

// parseSplitAmount handles separate debit and credit columns.
func parseSplitAmount(row []string, debitIdx, creditIdx int) (decimal.Decimal, statement.Direction, bool) {
	if s := cellValue(row, debitIdx); s != "" {
		amount, err := parseEuropeanAmount(s)
		if err == nil && !amount.IsZero() {
			return amount.Abs(), statement.Debit, true
		}
	}

	if s := cellValue(row, creditIdx); s != "" {
		amount, err := parseEuropeanAmount(s)
		if err == nil && !amount.IsZero() {
			return amount.Abs(), statement.Credit, true
		}
	}

	return decimal.Zero, "", false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
