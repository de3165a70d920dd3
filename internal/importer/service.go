package importer

import (
	"io"

	"github.com/MrJamesThe3rd/fleetledger/internal/apperr"
	"github.com/MrJamesThe3rd/fleetledger/internal/encoding"
	"github.com/MrJamesThe3rd/fleetledger/internal/importer/cgd"
	"github.com/MrJamesThe3rd/fleetledger/internal/statement"
)

type Service struct {
	parsers map[Bank]Parser
}

func NewService(decoder *encoding.Decoder) *Service {
	return &Service{
		parsers: map[Bank]Parser{
			BankCGD: cgd.NewParser(decoder),
		},
	}
}

// Import parses a statement export from the given bank. Malformed files
// are reported as validation errors.
func (s *Service) Import(bank Bank, r io.Reader) ([]statement.Line, error) {
	parser, ok := s.parsers[bank]
	if !ok {
		return nil, apperr.Validation("unknown bank: %s", bank)
	}

	lines, err := parser.Parse(r)
	if err != nil {
		return nil, apperr.Validation("parsing %s statement: %v", bank, err)
	}

	return lines, nil
}
