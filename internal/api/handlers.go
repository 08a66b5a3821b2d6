package api

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ajitpratap0/legacyloop/internal/catalog"
	"github.com/ajitpratap0/legacyloop/internal/models"
	"github.com/ajitpratap0/legacyloop/internal/render"
	"github.com/ajitpratap0/legacyloop/internal/session"
)

// assetView is an asset as returned by the API.
type assetView struct {
	models.Asset
	ValueFormatted string `json:"value_formatted"`
	Icon           string `json:"icon"`
}

func viewAsset(a models.Asset) assetView {
	return assetView{Asset: a, ValueFormatted: render.Currency(a.Value), Icon: a.Type.Icon()}
}

func viewAssets(as []models.Asset) []assetView {
	out := make([]assetView, len(as))
	for i := range as {
		out[i] = viewAsset(as[i])
	}
	return out
}

// pathID parses the {id} path segment.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- catalog ---

type assetTypeView struct {
	Type models.AssetType `json:"type"`
	Icon string           `json:"icon"`
}

func (s *Server) handleAssetTypes(w http.ResponseWriter, _ *http.Request) {
	out := make([]assetTypeView, len(models.ValidAssetTypes))
	for i, t := range models.ValidAssetTypes {
		out[i] = assetTypeView{Type: t, Icon: t.Icon()}
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleProfiles(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, catalog.Profiles())
}

// --- sessions ---

// sessionView is returned by POST /v1/sessions and GET /v1/session.
type sessionView struct {
	ID             string             `json:"id"`
	Role           models.Role        `json:"role"`
	Profile        models.UserProfile `json:"profile"`
	UI             session.UIState    `json:"ui"`
	SimulationMode bool               `json:"simulation_mode"`
}

func (s *Server) viewSession(sess *session.Session) sessionView {
	role := sess.Role()
	profile, _ := catalog.Profile(role)
	return sessionView{
		ID:             sess.ID(),
		Role:           role,
		Profile:        profile,
		UI:             sess.UI(),
		SimulationMode: s.content.SimulationMode(),
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID(),
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	s.writeJSON(w, http.StatusCreated, s.viewSession(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.PathValue("id")); err != nil {
		s.writeError(w, http.StatusNotFound, "session not found")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleGetSession(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	s.writeJSON(w, http.StatusOK, s.viewSession(sess))
}

type roleRequest struct {
	Role string `json:"role"`
}

func (s *Server) handleSetRole(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req roleRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := sess.SetRole(role); err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.viewSession(sess))
}

// uiRequest drives the primary client's form state.
type uiRequest struct {
	// Action is one of open_add, close_add, edit, end_edit.
	Action  string `json:"action"`
	AssetID int    `json:"asset_id"`
}

func (s *Server) handleSetUI(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req uiRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	switch req.Action {
	case "open_add":
		sess.OpenAddForm()
	case "close_add":
		sess.CloseAddForm()
	case "edit":
		if err := sess.BeginEdit(req.AssetID); err != nil {
			s.writeDomainError(w, err)
			return
		}
	case "end_edit":
		sess.EndEdit()
	default:
		s.writeError(w, http.StatusBadRequest, "action must be one of open_add, close_add, edit, end_edit")
		return
	}
	s.writeJSON(w, http.StatusOK, sess.UI())
}

// --- portfolio ---

func (s *Server) handleListAssets(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	s.writeJSON(w, http.StatusOK, viewAssets(sess.Assets()))
}

// addAssetRequest is the body accepted by POST /v1/assets. value may be a
// JSON number or a decimal string.
type addAssetRequest struct {
	Name        string          `json:"name"`
	Value       decimal.Decimal `json:"value"`
	Type        string          `json:"type"`
	Symbol      string          `json:"symbol"`
	Description string          `json:"description"`
}

func (s *Server) handleAddAsset(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req addAssetRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	at, err := models.ParseAssetType(req.Type)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := sess.AddAsset(req.Name, req.Value, at, req.Symbol, req.Description)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, viewAsset(a))
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	a, err := sess.Asset(id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, viewAsset(a))
}

// updateAssetRequest is the body accepted by PATCH /v1/assets/{id}.
// Omitted fields are left unchanged.
type updateAssetRequest struct {
	Name        *string          `json:"name"`
	Value       *decimal.Decimal `json:"value"`
	Type        *string          `json:"type"`
	Symbol      *string          `json:"symbol"`
	Description *string          `json:"description"`
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var req updateAssetRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	patch := models.AssetPatch{
		Name:        req.Name,
		Value:       req.Value,
		Symbol:      req.Symbol,
		Description: req.Description,
	}
	if req.Type != nil {
		at, err := models.ParseAssetType(*req.Type)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		patch.Type = &at
	}
	if patch.IsEmpty() {
		s.writeError(w, http.StatusBadRequest, "no fields to update")
		return
	}
	a, err := sess.UpdateAsset(id, patch)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, viewAsset(a))
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if _, err := sess.DeleteAsset(id); err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

type summaryView struct {
	models.PortfolioSummary
	TotalValueFormatted string `json:"total_value_formatted"`
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	sum := sess.Summary()
	s.writeJSON(w, http.StatusOK, summaryView{
		PortfolioSummary:    sum,
		TotalValueFormatted: render.Currency(sum.TotalValue),
	})
}

// --- heir ---

type explanationView struct {
	Asset assetView `json:"asset"`
	Text  string    `json:"text"`
}

func (s *Server) handleExplainAsset(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	e, err := sess.Explain(r.Context(), s.content, id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, explanationView{Asset: viewAsset(e.Asset), Text: e.Text})
}

func (s *Server) handleHeirFeed(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	feed, err := sess.HeirFeed(r.Context(), s.content)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	out := make([]explanationView, len(feed))
	for i, e := range feed {
		out[i] = explanationView{Asset: viewAsset(e.Asset), Text: e.Text}
	}
	s.writeJSON(w, http.StatusOK, out)
}

// --- engagement ---

type askAdvisorRequest struct {
	AssetID int `json:"asset_id"`
}

func (s *Server) handleAskAdvisor(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req askAdvisorRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e, err := sess.AskAdvisor(req.AssetID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleListEngagement(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var recent bool
	switch r.URL.Query().Get("order") {
	case "", "oldest":
	case "recent":
		recent = true
	default:
		s.writeError(w, http.StatusBadRequest, "order must be oldest or recent")
		return
	}
	s.writeJSON(w, http.StatusOK, sess.Engagement(recent))
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	s.writeJSON(w, http.StatusOK, sess.Metrics())
}

// --- mission ---

type missionView struct {
	session.Mission
	HTML string `json:"html"`
}

func (s *Server) writeMission(w http.ResponseWriter, status int, m session.Mission) {
	html, err := render.HTML(m.Statement)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, status, missionView{Mission: m, HTML: html})
}

func (s *Server) handleGetMission(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	s.writeMission(w, http.StatusOK, sess.Mission())
}

type missionRequest struct {
	Values string `json:"values"`
	Goals  string `json:"goals"`
}

func (s *Server) handleDraftMission(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req missionRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m, err := sess.DraftMission(r.Context(), s.content, req.Values, req.Goals)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeMission(w, http.StatusOK, m)
}

func (s *Server) handleRegenerateMission(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	m, err := sess.RegenerateMission(r.Context(), s.content)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeMission(w, http.StatusOK, m)
}

// --- advisor ---

type advisorEmailRequest struct {
	Asset string `json:"asset"`
}

func (s *Server) handleAdvisorEmail(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req advisorEmailRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	email, err := sess.AdvisorEmail(r.Context(), s.content, req.Asset)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"asset": req.Asset, "email": email})
}
