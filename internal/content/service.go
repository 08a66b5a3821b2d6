package content

import (
	"context"
	"log/slog"
	"time"

	"github.com/ajitpratap0/legacyloop/internal/metrics"
	"github.com/ajitpratap0/legacyloop/internal/models"
)

// DefaultTimeout bounds a single generation call when none is configured.
const DefaultTimeout = 30 * time.Second

// Service builds prompts, calls the generator, and substitutes fallback
// text on anything other than success. Its methods never fail.
type Service struct {
	gen     Generator
	timeout time.Duration
	logger  *slog.Logger
}

// NewService creates a Service. A nil gen puts the service in simulation
// mode: every call returns the fallback text immediately.
func NewService(gen Generator, timeout time.Duration, logger *slog.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{gen: gen, timeout: timeout, logger: logger}
}

// SimulationMode reports whether no generator is configured.
func (s *Service) SimulationMode() bool { return s.gen == nil }

// generate runs one call and resolves it to text, reporting how the call ended.
func (s *Service) generate(ctx context.Context, kind, prompt, fallback string) (string, Status) {
	res := Call(ctx, s.gen, prompt, s.timeout)
	switch res.Status {
	case StatusOK:
		return res.Text, StatusOK
	case StatusFailed:
		s.logger.Warn("content: generation failed, using fallback", "kind", kind, "error", res.Err)
	default:
		s.logger.Debug("content: simulation mode, using fallback", "kind", kind)
	}
	metrics.Inc(metrics.ContentFallbacks)
	return res.Or(fallback), res.Status
}

// MissionStatement drafts a family mission statement from the primary
// client's values and goals.
func (s *Service) MissionStatement(ctx context.Context, values, goals string) string {
	text, _ := s.generate(ctx, "mission_statement", missionPrompt(values, goals), FallbackMission)
	return text
}

// HeirExplanation explains asset in terms suited to heir. The status tells
// callers whether the text is fallback left by a failed call.
func (s *Service) HeirExplanation(ctx context.Context, asset models.Asset, heir models.UserProfile) (string, Status) {
	return s.generate(ctx, "heir_content", heirPrompt(asset, heir), FallbackHeirExplanation)
}

// AdvisorEmail drafts a casual outreach email from the advisor to the heir
// about assetName.
func (s *Service) AdvisorEmail(ctx context.Context, assetName string, heir, client, advisor models.UserProfile) string {
	prompt := advisorEmailPrompt(assetName, heir.Name, client.Name, advisor.Name)
	text, _ := s.generate(ctx, "advisor_email", prompt, FallbackAdvisorEmail(heir.Name))
	return text
}
