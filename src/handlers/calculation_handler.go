package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/username/smarttax/backend/src/config"
	"github.com/username/smarttax/backend/src/logger"
	"github.com/username/smarttax/backend/src/models"
	"github.com/username/smarttax/backend/src/processors"
	"github.com/username/smarttax/backend/src/scenarios"
	"github.com/username/smarttax/backend/src/utils"
)

// CalculationHandler serves the stateless computation endpoints: a full
// transaction in, a result or scenario match out, no session involved.
type CalculationHandler struct {
	taxProcessor *processors.TaxProcessor
}

func NewCalculationHandler(taxProcessor *processors.TaxProcessor) *CalculationHandler {
	return &CalculationHandler{
		taxProcessor: taxProcessor,
	}
}

func (h *CalculationHandler) decodeTransaction(w http.ResponseWriter, r *http.Request) (*models.Transaction, bool) {
	var tx models.Transaction
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, config.Cfg.MaxRequestBodyBytes)).Decode(&tx); err != nil {
		logger.L.Debug("invalid transaction payload", "error", err)
		sendJSONError(w, "invalid transaction payload", http.StatusBadRequest)
		return nil, false
	}
	return &tx, true
}

// HandleCalculate computes a result for a transaction supplied in full by
// the caller.
func (h *CalculationHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	tx, ok := h.decodeTransaction(w, r)
	if !ok {
		return
	}

	result, err := h.taxProcessor.CalculateTax(tx)
	if err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if etag, err := utils.GenerateETag(result); err == nil {
		w.Header().Set("ETag", etag)
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleScenarioMatch reports which scenario rules a transaction matches
// and which required fields the primary match still lacks.
func (h *CalculationHandler) HandleScenarioMatch(w http.ResponseWriter, r *http.Request) {
	tx, ok := h.decodeTransaction(w, r)
	if !ok {
		return
	}

	matched := scenarios.MatchAllScenarios(tx)

	response := map[string]any{
		"scenarios":   matched,
		"description": scenarios.GetScenarioDescription(tx),
	}

	if primary := scenarios.MatchScenario(tx); primary != nil {
		valid, missing := scenarios.ValidateRequiredFields(tx, primary)
		response["primary"] = primary.ID
		response["valid"] = valid
		response["missingFields"] = missing
	}

	writeJSON(w, http.StatusOK, response)
}
