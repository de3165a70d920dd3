package cgd

import "time"

// amountLayout determines how amounts are extracted from a row.
type amountLayout int

const (
	// signedAmount is one signed column, e.g. "Montante" with "-10,00".
	signedAmount amountLayout = iota
	// splitAmount is a pair of unsigned "Débito"/"Crédito" columns.
	splitAmount
)

// dateLayouts are tried in order on every date cell.
var dateLayouts = []string{"02-01-2006", "02/01/2006", "2006-01-02"}

// Profile describes the column layout of a CGD CSV export format.
type Profile struct {
	Name      string
	DateCol   string
	DescCol   string
	Layout    amountLayout
	AmountCol string // signedAmount only
	DebitCol  string // splitAmount only
	CreditCol string // splitAmount only
	// NoteCols are optional. When present their text is appended to the
	// description, since transfer references usually carry the invoice
	// number there.
	NoteCols []string
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.Layout {
	case signedAmount:
		cols = append(cols, p.AmountCol)
	case splitAmount:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

func parseDateValue(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// profiles is tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:      "cartão",
		DateCol:   "Data",
		DescCol:   "Descrição",
		Layout:    splitAmount,
		DebitCol:  "Débito",
		CreditCol: "Crédito",
	},
	{
		Name:      "extrato",
		DateCol:   "Data mov.",
		DescCol:   "Descrição",
		Layout:    signedAmount,
		AmountCol: "Movimento",
		NoteCols:  []string{"Referência", "Observações"},
	},
	{
		Name:      "conta",
		DateCol:   "Data mov.",
		DescCol:   "Descrição",
		Layout:    signedAmount,
		AmountCol: "Montante",
		NoteCols:  []string{"Referência", "Observações"},
	},
}
