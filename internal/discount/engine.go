// Package discount turns customer eligibility facts into a rental discount.
//
// The rule table is applied by an external LLM (the oracle). The engine's
// job is to treat the oracle as an untrusted text source: it sends the
// fixed rule-set prompt, then accepts the reply only if it is a bare whole
// number between 0 and 100. Anything else fails closed.
package discount

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/deppfellow/shoe-rental/internal/errs"
	"github.com/deppfellow/shoe-rental/internal/logger"
)

// MaxDiscount is the largest discount percentage the engine accepts.
const MaxDiscount = 100

// Outcomes reported to the Recorder.
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeOracleError     = "oracle_error"
)

// Oracle is the external text-generating collaborator.
type Oracle interface {
	Complete(ctx context.Context, systemInstruction, userText string) (string, error)
}

// Recorder receives one observation per oracle round-trip.
type Recorder interface {
	ObserveDiscount(outcome string, took time.Duration, discount int)
}

// Engine queries the oracle and validates its reply.
//
// Engine holds no per-request state and is safe for concurrent use.
type Engine struct {
	oracle   Oracle
	logger   *zerolog.Logger
	recorder Recorder
}

// NewEngine wires an Engine. recorder may be nil.
func NewEngine(oracle Oracle, logger *zerolog.Logger, recorder Recorder) *Engine {
	return &Engine{
		oracle:   oracle,
		logger:   logger,
		recorder: recorder,
	}
}

// Calculate returns the discount percentage for the given facts.
//
// Errors wrap errs.ErrDiscountOracle when the oracle could not answer and
// errs.ErrDiscountValidation when it answered with something unusable.
// There is no retry and no fallback value.
func (e *Engine) Calculate(ctx context.Context, eligibility Eligibility) (int, error) {
	log := logger.FromContext(ctx, e.logger).With().
		Str("component", "discount_engine").
		Logger()

	summary := Summary(eligibility)
	log.Info().Str("summary", summary).Msg("requesting discount from oracle")

	start := time.Now()
	reply, err := e.complete(ctx, summary)
	took := time.Since(start)

	if err != nil {
		if !errors.Is(err, errs.ErrDiscountOracle) {
			err = fmt.Errorf("%w: %w", errs.ErrDiscountOracle, err)
		}
		e.observe(OutcomeOracleError, took, 0)
		log.Error().Err(err).Dur("oracle_duration", took).Msg("discount oracle request failed")
		return 0, err
	}

	discount, err := ParseReply(reply)
	if err != nil {
		e.observe(OutcomeValidationError, took, 0)
		log.Error().Err(err).Str("reply", reply).Dur("oracle_duration", took).Msg("discount oracle reply rejected")
		return 0, err
	}

	e.observe(OutcomeSuccess, took, discount)
	log.Info().Int("discount", discount).Dur("oracle_duration", took).Msg("discount accepted")

	return discount, nil
}

func (e *Engine) complete(ctx context.Context, summary string) (string, error) {
	if txn := newrelic.FromContext(ctx); txn != nil {
		defer txn.StartSegment("discount/oracle").End()
	}
	return e.oracle.Complete(ctx, SystemInstruction(), summary)
}

func (e *Engine) observe(outcome string, took time.Duration, discount int) {
	if e.recorder != nil {
		e.recorder.ObserveDiscount(outcome, took, discount)
	}
}

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// ParseReply validates a raw oracle reply.
//
// After trimming surrounding whitespace the reply must consist of ASCII
// digits only and denote a value in [0, MaxDiscount]. Signs, percent
// signs, decimals, words and empty replies are all rejected.
func ParseReply(reply string) (int, error) {
	trimmed := strings.TrimSpace(reply)

	if !digitsOnly.MatchString(trimmed) {
		return 0, fmt.Errorf("%w: reply %q is not a whole number", errs.ErrDiscountValidation, reply)
	}

	value, err := strconv.Atoi(trimmed)
	if err != nil || value > MaxDiscount {
		return 0, fmt.Errorf("%w: reply %q is outside 0-%d", errs.ErrDiscountValidation, reply, MaxDiscount)
	}

	return value, nil
}
