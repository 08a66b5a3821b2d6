// Package session holds the per-visitor state of the application. Each
// Session owns its own portfolio store, engagement log, content cache and
// role; nothing mutable is shared between sessions.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ajitpratap0/legacyloop/internal/catalog"
	"github.com/ajitpratap0/legacyloop/internal/content"
	"github.com/ajitpratap0/legacyloop/internal/contentcache"
	"github.com/ajitpratap0/legacyloop/internal/engagement"
	"github.com/ajitpratap0/legacyloop/internal/metrics"
	"github.com/ajitpratap0/legacyloop/internal/models"
	"github.com/ajitpratap0/legacyloop/internal/store"
)

// HeirFeedSize is the number of assets shown in the heir's learning feed.
const HeirFeedSize = 5

// ErrUnknownRole is returned by SetRole for labels outside the role set.
var ErrUnknownRole = errors.New("unknown role")

// ErrMissionInputs is returned when values or goals are blank.
var ErrMissionInputs = fmt.Errorf("%w: both family values and goals are required", store.ErrValidation)

// UIState is the transient form state of the primary client's view.
type UIState struct {
	EditingAssetID *int `json:"editing_asset_id"`
	ShowAddAsset   bool `json:"show_add_asset"`
}

// Mission is the family mission statement and the inputs it was drafted from.
type Mission struct {
	Values    string `json:"values"`
	Goals     string `json:"goals"`
	Statement string `json:"statement"`
}

// Explanation pairs an asset with the heir-facing text describing it.
type Explanation struct {
	Asset models.Asset `json:"asset"`
	Text  string       `json:"text"`
}

// Snapshot is the exportable state of a session as flat record lists.
type Snapshot struct {
	Assets     []models.Asset           `json:"assets" yaml:"assets"`
	Engagement []models.EngagementEntry `json:"engagement" yaml:"engagement"`
}

// Session is one isolated instance of all mutable application state.
// All methods are safe for concurrent use; they serialize on one lock per
// session. Content generation runs outside the lock.
type Session struct {
	id      string
	created time.Time

	mu        sync.Mutex
	lastSeen  time.Time
	role      models.Role
	portfolio *store.MemoryStore
	log       *engagement.Log
	cache     *contentcache.Cache
	mission   Mission
	ui        UIState
	now       func() time.Time
}

// Option configures a Session.
type Option func(*config)

type config struct {
	now  func() time.Time
	seed []models.Asset
}

// WithClock replaces time.Now for timestamps and idle tracking.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithPortfolio seeds the session with assets instead of the default portfolio.
func WithPortfolio(assets []models.Asset) Option {
	return func(c *config) { c.seed = assets }
}

// New creates a session in its initial state: primary-client role, default
// portfolio, empty engagement log, empty cache, no mission statement.
func New(id string, opts ...Option) *Session {
	cfg := config{now: time.Now}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.seed == nil {
		cfg.seed = catalog.DefaultPortfolio()
	}

	cache := contentcache.New()
	now := cfg.now()
	return &Session{
		id:        id,
		created:   now,
		lastSeen:  now,
		role:      models.RolePrimary,
		portfolio: store.NewMemoryStore(cache, cfg.seed...),
		log:       engagement.NewLog(engagement.WithClock(cfg.now)),
		cache:     cache,
		now:       cfg.now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time { return s.created }

// lock takes the session lock and records activity.
func (s *Session) lock() {
	s.mu.Lock()
	s.lastSeen = s.now()
}

// touch records activity without holding the lock afterwards.
func (s *Session) touch() {
	s.lock()
	s.mu.Unlock()
}

// LastSeen returns the time of the most recent operation on the session.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// --- role ---

// Role returns the active role.
func (s *Session) Role() models.Role {
	s.lock()
	defer s.mu.Unlock()
	return s.role
}

// SetRole switches the active role. Any valid role may follow any other.
func (s *Session) SetRole(r models.Role) error {
	if !r.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownRole, r)
	}
	s.lock()
	defer s.mu.Unlock()
	s.role = r
	return nil
}

// --- portfolio ---

// AddAsset adds a holding and closes the add-asset form.
func (s *Session) AddAsset(name string, value decimal.Decimal, assetType models.AssetType, symbol, description string) (models.Asset, error) {
	s.lock()
	defer s.mu.Unlock()
	a, err := s.portfolio.Add(name, value, assetType, symbol, description)
	if err != nil {
		return models.Asset{}, err
	}
	s.ui.ShowAddAsset = false
	metrics.Inc(metrics.AssetMutations)
	return a, nil
}

// UpdateAsset applies patch and ends editing of that asset.
func (s *Session) UpdateAsset(id int, patch models.AssetPatch) (models.Asset, error) {
	s.lock()
	defer s.mu.Unlock()
	a, err := s.portfolio.Update(id, patch)
	if err != nil {
		return models.Asset{}, err
	}
	s.clearEditing(id)
	metrics.Inc(metrics.AssetMutations)
	return a, nil
}

// DeleteAsset removes a holding.
func (s *Session) DeleteAsset(id int) (models.Asset, error) {
	s.lock()
	defer s.mu.Unlock()
	a, err := s.portfolio.Delete(id)
	if err != nil {
		return models.Asset{}, err
	}
	s.clearEditing(id)
	metrics.Inc(metrics.AssetMutations)
	return a, nil
}

func (s *Session) clearEditing(id int) {
	if s.ui.EditingAssetID != nil && *s.ui.EditingAssetID == id {
		s.ui.EditingAssetID = nil
	}
}

// Assets returns the holdings in insertion order.
func (s *Session) Assets() []models.Asset {
	s.lock()
	defer s.mu.Unlock()
	return s.portfolio.List()
}

// Asset returns the holding with id.
func (s *Session) Asset(id int) (models.Asset, error) {
	s.lock()
	defer s.mu.Unlock()
	return s.portfolio.Get(id)
}

// AssetByName returns the first holding named name.
func (s *Session) AssetByName(name string) (models.Asset, error) {
	s.lock()
	defer s.mu.Unlock()
	return s.portfolio.GetByName(name)
}

// Summary returns total value, asset class count and holding count.
func (s *Session) Summary() models.PortfolioSummary {
	s.lock()
	defer s.mu.Unlock()
	return s.portfolio.Summary()
}

// --- UI state ---

// UI returns a copy of the form state.
func (s *Session) UI() UIState {
	s.lock()
	defer s.mu.Unlock()
	ui := s.ui
	if ui.EditingAssetID != nil {
		id := *ui.EditingAssetID
		ui.EditingAssetID = &id
	}
	return ui
}

// OpenAddForm shows the add-asset form and cancels any edit in progress.
func (s *Session) OpenAddForm() {
	s.lock()
	defer s.mu.Unlock()
	s.ui.ShowAddAsset = true
	s.ui.EditingAssetID = nil
}

// CloseAddForm hides the add-asset form.
func (s *Session) CloseAddForm() {
	s.lock()
	defer s.mu.Unlock()
	s.ui.ShowAddAsset = false
}

// BeginEdit marks asset id as being edited and hides the add form.
func (s *Session) BeginEdit(id int) error {
	s.lock()
	defer s.mu.Unlock()
	if _, err := s.portfolio.Get(id); err != nil {
		return err
	}
	s.ui.EditingAssetID = &id
	s.ui.ShowAddAsset = false
	return nil
}

// EndEdit cancels any edit in progress.
func (s *Session) EndEdit() {
	s.lock()
	defer s.mu.Unlock()
	s.ui.EditingAssetID = nil
}

// --- engagement ---

// AskAdvisor records that the heir asked the advisor about asset id. The
// entry copies the asset's current name and type.
func (s *Session) AskAdvisor(id int) (models.EngagementEntry, error) {
	s.lock()
	defer s.mu.Unlock()
	a, err := s.portfolio.Get(id)
	if err != nil {
		return models.EngagementEntry{}, err
	}
	return s.log.Append(catalog.Heir().Name, models.ActionAskedAdvisor, a.Name, a.Type)
}

// Engagement returns the log oldest first, or newest first when recentFirst is set.
func (s *Session) Engagement(recentFirst bool) []models.EngagementEntry {
	s.lock()
	defer s.mu.Unlock()
	if recentFirst {
		return s.log.MostRecentFirst()
	}
	return s.log.All()
}

// Metrics returns the advisor dashboard figures.
func (s *Session) Metrics() models.EngagementMetrics {
	s.lock()
	defer s.mu.Unlock()
	return s.log.Metrics(catalog.PrimaryClient().FirstName())
}

// --- generated content ---

// Explain returns the heir-facing explanation of asset id together with the
// asset as it was when explained, generating and caching the text on a miss.
// Text generated while the portfolio changed is returned but not cached, and
// so is fallback text left by a failed call.
func (s *Session) Explain(ctx context.Context, gen *content.Service, id int) (Explanation, error) {
	s.lock()
	a, err := s.portfolio.Get(id)
	if err != nil {
		s.mu.Unlock()
		return Explanation{}, err
	}
	if text, ok := s.cache.Get(a.Name); ok {
		s.mu.Unlock()
		return Explanation{Asset: a, Text: text}, nil
	}
	rev := s.portfolio.Revision()
	s.mu.Unlock()

	text, status := gen.HeirExplanation(ctx, a, catalog.Heir())

	s.lock()
	defer s.mu.Unlock()
	if status != content.StatusFailed && s.portfolio.Revision() == rev {
		s.cache.Put(a.Name, text)
	}
	return Explanation{Asset: a, Text: text}, nil
}

// HeirFeed explains the first HeirFeedSize holdings.
func (s *Session) HeirFeed(ctx context.Context, gen *content.Service) ([]Explanation, error) {
	assets := s.Assets()
	if len(assets) > HeirFeedSize {
		assets = assets[:HeirFeedSize]
	}
	out := make([]Explanation, 0, len(assets))
	for _, a := range assets {
		e, err := s.Explain(ctx, gen, a.ID)
		if errors.Is(err, store.ErrNotFound) {
			// Deleted while the feed was being built.
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// DraftMission stores values and goals and drafts a new mission statement from them.
func (s *Session) DraftMission(ctx context.Context, gen *content.Service, values, goals string) (Mission, error) {
	if strings.TrimSpace(values) == "" || strings.TrimSpace(goals) == "" {
		return Mission{}, ErrMissionInputs
	}
	s.lock()
	s.mission.Values = values
	s.mission.Goals = goals
	s.mu.Unlock()

	statement := gen.MissionStatement(ctx, values, goals)

	s.lock()
	defer s.mu.Unlock()
	// A concurrent draft with different inputs wins; keep statement and inputs consistent.
	if s.mission.Values == values && s.mission.Goals == goals {
		s.mission.Statement = statement
	}
	return Mission{Values: values, Goals: goals, Statement: statement}, nil
}

// RegenerateMission drafts a new statement from the stored values and goals.
func (s *Session) RegenerateMission(ctx context.Context, gen *content.Service) (Mission, error) {
	m := s.Mission()
	return s.DraftMission(ctx, gen, m.Values, m.Goals)
}

// Mission returns the stored mission statement and its inputs.
func (s *Session) Mission() Mission {
	s.lock()
	defer s.mu.Unlock()
	return s.mission
}

// AdvisorEmail drafts an outreach email from the advisor to the heir about assetName.
func (s *Session) AdvisorEmail(ctx context.Context, gen *content.Service, assetName string) (string, error) {
	if strings.TrimSpace(assetName) == "" {
		return "", engagement.ErrEmptyAsset
	}
	s.touch()
	return gen.AdvisorEmail(ctx, assetName, catalog.Heir(), catalog.PrimaryClient(), catalog.Advisor()), nil
}

// Snapshot returns copies of the asset list and engagement log.
func (s *Session) Snapshot() Snapshot {
	s.lock()
	defer s.mu.Unlock()
	return Snapshot{
		Assets:     s.portfolio.List(),
		Engagement: s.log.All(),
	}
}
