// Package importer turns bank statement exports into statement lines.
package importer

import (
	"io"

	"github.com/MrJamesThe3rd/fleetledger/internal/statement"
)

type Bank string

const (
	BankCGD Bank = "cgd"
)

type Parser interface {
	Parse(r io.Reader) ([]statement.Line, error)
}
