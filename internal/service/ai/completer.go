package ai

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/zazencodes/zazenbot5k-go/internal/constants"
	"github.com/zazencodes/zazenbot5k-go/internal/util"
)

// CompletionService serves the pipeline's secondary model calls (timestamp
// disambiguation). Gemini is the primary backend; an optional OpenAI fallback
// takes over when the primary errors. A circuit breaker guards both so a dead
// upstream fails fast instead of stalling every request.
type CompletionService struct {
	primary        TextProvider
	fallback       TextProvider
	logger         *zap.Logger
	circuitBreaker *util.CircuitBreaker
}

func NewCompletionService(primary, fallback TextProvider, logger *zap.Logger) *CompletionService {
	cs := &CompletionService{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}

	cs.circuitBreaker = util.NewCircuitBreaker(
		constants.CircuitBreakerConfig.FailureThreshold,
		constants.CircuitBreakerConfig.ResetTimeout,
		constants.CircuitBreakerConfig.HealthCheckInterval,
		cs.healthCheckPing,
		logger,
	)

	if fallback != nil {
		logger.Info("Completion fallback enabled", zap.String("provider", fallback.Name()))
	} else {
		logger.Info("Completion fallback disabled")
	}

	return cs
}

// Complete sends a prompt to the primary provider, then the fallback. Callers
// own the failure policy; the extractor absorbs any error returned here.
func (cs *CompletionService) Complete(ctx context.Context, prompt string) (string, error) {
	if !cs.circuitBreaker.CanExecute() {
		status := cs.circuitBreaker.GetStatus()
		cs.logger.Error("Completion service unavailable (circuit OPEN)",
			zap.String("state", status.State.String()),
			zap.Int("failure_count", status.FailureCount),
		)
		return "", fmt.Errorf("completion service unavailable: circuit open")
	}

	text, primaryErr := cs.primary.Generate(ctx, prompt)
	if primaryErr == nil {
		cs.circuitBreaker.RecordSuccess()
		return text, nil
	}

	if cs.fallback != nil {
		text, fallbackErr := cs.fallback.Generate(ctx, prompt)
		if fallbackErr == nil {
			cs.circuitBreaker.RecordSuccess()
			cs.logger.Info("Completion served by fallback provider",
				zap.String("provider", cs.fallback.Name()),
			)
			return text, nil
		}
		cs.recordFailure(primaryErr)
		cs.recordFailure(fallbackErr)
		return "", fmt.Errorf("all completion providers failed: %w", fallbackErr)
	}

	cs.recordFailure(primaryErr)
	return "", primaryErr
}

func (cs *CompletionService) recordFailure(err error) {
	if err == nil || !isServiceFailure(err) {
		return
	}

	timeout := constants.CircuitBreakerConfig.ResetTimeout
	if isRateLimitError(err) {
		timeout = constants.CircuitBreakerConfig.RateLimitTimeout
	}

	cs.circuitBreaker.RecordFailure(timeout)
}

func (cs *CompletionService) healthCheckPing() bool {
	ctx, cancel := context.WithTimeout(context.Background(), constants.CircuitBreakerConfig.HealthCheckTimeout)
	defer cancel()

	primaryOK := cs.primary != nil && cs.primary.Ping(ctx)
	fallbackOK := cs.fallback != nil && cs.fallback.Ping(ctx)
	isHealthy := primaryOK || fallbackOK

	cs.logger.Info("Health Check: Completion providers",
		zap.Bool("primary", primaryOK),
		zap.Bool("fallback", fallbackOK),
		zap.Bool("healthy", isHealthy),
	)

	return isHealthy
}

// CircuitStatus exposes the breaker state for health reporting.
func (cs *CompletionService) CircuitStatus() util.CircuitBreakerStatus {
	return cs.circuitBreaker.GetStatus()
}

var (
	statusCodeRegex  = regexp.MustCompile(`\b(5\d{2})\b`)
	geminiCodeRegex  = regexp.MustCompile(`"code":(\d{3})`)
	leadingCodeRegex = regexp.MustCompile(`^(\d{3})\s`)
)

// isServiceFailure reports whether an error looks like an upstream outage
// rather than a bad request. Only outages trip the circuit.
func isServiceFailure(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	if strings.Contains(msg, "timeout") || strings.Contains(msg, "ETIMEDOUT") {
		return true
	}

	if isRateLimitError(err) {
		return true
	}

	if statusCodeRegex.MatchString(msg) {
		return true
	}

	if code, ok := embeddedStatusCode(msg); ok {
		return code >= 500 && code < 600
	}

	return false
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	if strings.Contains(msg, "429") || strings.Contains(msg, "Rate limit") || strings.Contains(msg, "quota") {
		return true
	}

	if code, ok := embeddedStatusCode(msg); ok {
		return code == 429
	}

	return false
}

// embeddedStatusCode digs an HTTP status out of provider error strings, which
// wrap codes either as JSON (`"code":503`) or a leading token (`503 ...`).
func embeddedStatusCode(msg string) (int, bool) {
	if matches := geminiCodeRegex.FindStringSubmatch(msg); len(matches) > 1 {
		if code, err := strconv.Atoi(matches[1]); err == nil {
			return code, true
		}
	}
	if matches := leadingCodeRegex.FindStringSubmatch(msg); len(matches) > 1 {
		if code, err := strconv.Atoi(matches[1]); err == nil {
			return code, true
		}
	}
	return 0, false
}
