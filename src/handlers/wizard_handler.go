package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/username/smarttax/backend/src/config"
	"github.com/username/smarttax/backend/src/logger"
	"github.com/username/smarttax/backend/src/security"
	"github.com/username/smarttax/backend/src/services"
	"github.com/username/smarttax/backend/src/utils"
)

type WizardHandler struct {
	wizardService services.WizardService
	authService   *security.AuthService
}

func NewWizardHandler(wizardService services.WizardService, authService *security.AuthService) *WizardHandler {
	return &WizardHandler{
		wizardService: wizardService,
		authService:   authService,
	}
}

func sendJSONError(w http.ResponseWriter, message string, statusCode int) {
	utils.SendJSONError(w, message, statusCode)
}

// sendServiceError maps service sentinel errors onto HTTP status codes.
func sendServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		sendJSONError(w, "wizard session not found", http.StatusNotFound)
	case errors.Is(err, services.ErrUnknownSection), errors.Is(err, services.ErrUnknownStep):
		sendJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrStepIncomplete), errors.Is(err, services.ErrMissingSection):
		sendJSONError(w, err.Error(), http.StatusConflict)
	default:
		logger.L.Error("wizard handler error", "error", err)
		sendJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.L.Error("Error generating JSON response", "error", err)
	}
}

// HandleCreateSession starts a wizard session and returns its state plus
// the bearer token for subsequent calls.
func (h *WizardHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.wizardService.CreateSession()
	if err != nil {
		sendServiceError(w, err)
		return
	}

	token, err := h.authService.GenerateToken(state.SessionID)
	if err != nil {
		logger.L.Error("failed to generate session token", "sessionID", state.SessionID, "error", err)
		sendJSONError(w, "failed to generate session token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"state": state,
	})
}

func (h *WizardHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	state, err := h.wizardService.GetState(sessionID)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// HandleUpdateSection writes one transaction section. The section name
// comes from the path, the partial section object from the body.
func (h *WizardHandler) HandleUpdateSection(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	section := r.PathValue("section")
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, config.Cfg.MaxRequestBodyBytes))
	if err != nil {
		sendJSONError(w, "request body too large or unreadable", http.StatusRequestEntityTooLarge)
		return
	}

	state, err := h.wizardService.UpdateSection(sessionID, section, payload)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *WizardHandler) HandleNextStep(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, h.wizardService.NextStep)
}

func (h *WizardHandler) HandlePrevStep(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, h.wizardService.PrevStep)
}

func (h *WizardHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, h.wizardService.Reset)
}

func (h *WizardHandler) navigate(w http.ResponseWriter, r *http.Request, op func(string) (*services.WizardState, error)) {
	sessionID, ok := GetSessionIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	state, err := op(sessionID)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *WizardHandler) HandleGoToStep(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var body struct {
		Step string `json:"step"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, config.Cfg.MaxRequestBodyBytes)).Decode(&body); err != nil {
		sendJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	state, err := h.wizardService.GoToStep(sessionID, body.Step)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// HandleGetScenario reports the matched scenarios for the session's
// current transaction without running the calculation.
func (h *WizardHandler) HandleGetScenario(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	state, err := h.wizardService.GetState(sessionID)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scenario":      state.Scenario,
		"requiredSteps": state.RequiredSteps,
	})
}

func (h *WizardHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := GetSessionIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	result, err := h.wizardService.Calculate(sessionID)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	if etag, err := utils.GenerateETag(result); err == nil {
		w.Header().Set("ETag", etag)
	}
	writeJSON(w, http.StatusOK, result)
}
