package vcf

import (
	"errors"

	"go.uber.org/zap"
)

// ReadAll materializes every call from a parser, in file order.
// Malformed lines (unparseable genotype, unrecognized chromosome) are
// logged and skipped; they never abort the rest of the stream.
// Multi-allelic records are split into one call per alternate allele.
func ReadAll(p *Parser, logger *zap.Logger) ([]*VariantCall, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var calls []*VariantCall
	for {
		call, err := p.Next()
		if err != nil {
			var parseErr *ParseError
			if errors.As(err, &parseErr) {
				logger.Warn("skipping malformed variant line",
					zap.Int("line", parseErr.Line),
					zap.String("reason", parseErr.Message))
				continue
			}
			return nil, err
		}
		if call == nil {
			return calls, nil
		}
		calls = append(calls, SplitMultiAllelic(call)...)
	}
}
