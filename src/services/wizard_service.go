package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/smarttax/backend/src/logger"
	"github.com/username/smarttax/backend/src/model"
	"github.com/username/smarttax/backend/src/models"
	"github.com/username/smarttax/backend/src/processors"
	"github.com/username/smarttax/backend/src/scenarios"
	"github.com/username/smarttax/backend/src/security/validation"
)

const (
	ckWizardResult = "res_wizard_result_%s"
)

var (
	ErrSessionNotFound = model.ErrSessionNotFound
	ErrUnknownSection  = errors.New("unknown transaction section")
	ErrUnknownStep     = errors.New("unknown wizard step")
	ErrStepIncomplete  = errors.New("current step is incomplete")
	ErrMissingSection  = errors.New("required transaction section missing")
)

// Sections a client may write through the wizard API. The keys are the wire
// names inside the transaction object.
var validSections = map[string]bool{
	"returnMeta": true,
	"taxpayer":   true,
	"transferee": true,
	"asset":      true,
	"deal":       true,
	"amounts":    true,
	"residence":  true,
	"relief":     true,
}

// Sections that must have been entered before a session calculation runs.
var requiredSections = []string{"returnMeta", "taxpayer", "asset", "deal", "amounts", "relief"}

type wizardServiceImpl struct {
	db           *sql.DB
	taxProcessor *processors.TaxProcessor
	resultCache  *cache.Cache
}

func NewWizardService(db *sql.DB, taxProcessor *processors.TaxProcessor, resultCache *cache.Cache) WizardService {
	return &wizardServiceImpl{
		db:           db,
		taxProcessor: taxProcessor,
		resultCache:  resultCache,
	}
}

func (s *wizardServiceImpl) CreateSession() (*WizardState, error) {
	session := &model.WizardSession{
		ID:              uuid.New().String(),
		TransactionJSON: "{}",
		CurrentStep:     scenarios.StepStart,
		CompletedSteps:  "[]",
	}
	if err := session.Create(s.db); err != nil {
		return nil, fmt.Errorf("error creating wizard session: %w", err)
	}
	logger.L.Info("Wizard session created", "sessionID", session.ID)
	return s.stateFor(session), nil
}

func (s *wizardServiceImpl) GetState(sessionID string) (*WizardState, error) {
	session, err := model.GetWizardSessionByID(s.db, sessionID)
	if err != nil {
		return nil, err
	}
	return s.stateFor(session), nil
}

func (s *wizardServiceImpl) UpdateSection(sessionID, section string, payload json.RawMessage) (*WizardState, error) {
	if !validSections[section] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}

	session, err := model.GetWizardSessionByID(s.db, sessionID)
	if err != nil {
		return nil, err
	}

	merged, err := mergeSection(session.TransactionJSON, section, payload)
	if err != nil {
		return nil, err
	}
	session.TransactionJSON = sanitizeTaxpayerFields(merged, section)

	// Any input change invalidates a previously computed result.
	session.ResultJSON = ""
	s.resultCache.Delete(fmt.Sprintf(ckWizardResult, sessionID))

	if err := session.Save(s.db); err != nil {
		return nil, err
	}
	return s.stateFor(session), nil
}

func (s *wizardServiceImpl) NextStep(sessionID string) (*WizardState, error) {
	session, err := model.GetWizardSessionByID(s.db, sessionID)
	if err != nil {
		return nil, err
	}

	tx := parseTransaction(session.TransactionJSON)
	if !scenarios.IsStepComplete(session.CurrentStep, tx) {
		return nil, fmt.Errorf("%w: %s", ErrStepIncomplete, session.CurrentStep)
	}

	next := scenarios.GetNextStep(session.CurrentStep, tx)
	session.CompletedSteps = appendCompleted(session.CompletedSteps, session.CurrentStep)
	session.CurrentStep = next

	// Reaching the result step triggers the calculation; a failure there is
	// reported in the state as an absent result, not as a navigation error.
	if next == scenarios.StepResult {
		if err := s.calculateInto(session); err != nil {
			logger.L.Warn("calculation at result step failed", "sessionID", sessionID, "error", err)
		}
	}

	if err := session.Save(s.db); err != nil {
		return nil, err
	}
	return s.stateFor(session), nil
}

func (s *wizardServiceImpl) PrevStep(sessionID string) (*WizardState, error) {
	session, err := model.GetWizardSessionByID(s.db, sessionID)
	if err != nil {
		return nil, err
	}

	tx := parseTransaction(session.TransactionJSON)
	session.CurrentStep = scenarios.GetPrevStep(session.CurrentStep, tx)

	if err := session.Save(s.db); err != nil {
		return nil, err
	}
	return s.stateFor(session), nil
}

func (s *wizardServiceImpl) GoToStep(sessionID, step string) (*WizardState, error) {
	session, err := model.GetWizardSessionByID(s.db, sessionID)
	if err != nil {
		return nil, err
	}

	tx := parseTransaction(session.TransactionJSON)
	if !isKnownStep(step, tx) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStep, step)
	}

	session.CompletedSteps = appendCompleted(session.CompletedSteps, session.CurrentStep)
	session.CurrentStep = step

	if err := session.Save(s.db); err != nil {
		return nil, err
	}
	return s.stateFor(session), nil
}

func (s *wizardServiceImpl) Reset(sessionID string) (*WizardState, error) {
	session, err := model.GetWizardSessionByID(s.db, sessionID)
	if err != nil {
		return nil, err
	}

	session.TransactionJSON = "{}"
	session.CurrentStep = scenarios.StepStart
	session.CompletedSteps = "[]"
	session.ResultJSON = ""
	s.resultCache.Delete(fmt.Sprintf(ckWizardResult, sessionID))

	if err := session.Save(s.db); err != nil {
		return nil, err
	}
	return s.stateFor(session), nil
}

func (s *wizardServiceImpl) Calculate(sessionID string) (*models.Result, error) {
	cacheKey := fmt.Sprintf(ckWizardResult, sessionID)
	if cached, found := s.resultCache.Get(cacheKey); found {
		if result, ok := cached.(*models.Result); ok {
			logger.L.Debug("Returning cached wizard result", "sessionID", sessionID)
			return result, nil
		}
	}

	session, err := model.GetWizardSessionByID(s.db, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.calculateInto(session); err != nil {
		return nil, err
	}
	if err := session.Save(s.db); err != nil {
		return nil, err
	}

	var result models.Result
	if err := json.Unmarshal([]byte(session.ResultJSON), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// calculateInto runs the hard-stop checks and the tax computation, storing
// the result on the session and in the cache.
func (s *wizardServiceImpl) calculateInto(session *model.WizardSession) error {
	if missing := missingSections(session.TransactionJSON); len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrMissingSection, missing)
	}

	tx := parseTransaction(session.TransactionJSON)
	result, err := s.taxProcessor.CalculateTax(tx)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	session.ResultJSON = string(raw)
	s.resultCache.Set(fmt.Sprintf(ckWizardResult, session.ID), result, cache.DefaultExpiration)
	return nil
}

func (s *wizardServiceImpl) stateFor(session *model.WizardSession) *WizardState {
	tx := parseTransaction(session.TransactionJSON)

	var completed []string
	if err := json.Unmarshal([]byte(session.CompletedSteps), &completed); err != nil {
		completed = nil
	}

	state := &WizardState{
		SessionID:      session.ID,
		Transaction:    json.RawMessage(session.TransactionJSON),
		CurrentStep:    session.CurrentStep,
		CompletedSteps: completed,
		RequiredSteps:  scenarios.GetRequiredSteps(tx.Asset.Type, tx.Deal.TransferCause),
		Scenario:       scenarios.GetScenarioDescription(tx),
	}

	if session.ResultJSON != "" {
		var result models.Result
		if err := json.Unmarshal([]byte(session.ResultJSON), &result); err == nil {
			state.Result = &result
		}
	}
	return state
}

// parseTransaction decodes the stored transaction JSON, degrading to an
// empty transaction on malformed data.
func parseTransaction(raw string) *models.Transaction {
	var tx models.Transaction
	if err := json.Unmarshal([]byte(raw), &tx); err != nil {
		logger.L.Warn("malformed session transaction, treating as empty", "error", err)
		return &models.Transaction{}
	}
	return &tx
}

// mergeSection shallow-merges the payload's keys over the stored section
// object, leaving the other sections untouched.
func mergeSection(storedTx, section string, payload json.RawMessage) (string, error) {
	var txMap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(storedTx), &txMap); err != nil {
		txMap = map[string]json.RawMessage{}
	}

	existing := map[string]json.RawMessage{}
	if prev, ok := txMap[section]; ok {
		if err := json.Unmarshal(prev, &existing); err != nil {
			existing = map[string]json.RawMessage{}
		}
	}

	incoming := map[string]json.RawMessage{}
	if err := json.Unmarshal(payload, &incoming); err != nil {
		return "", fmt.Errorf("invalid section payload: %w", err)
	}
	for k, v := range incoming {
		existing[k] = v
	}

	mergedSection, err := json.Marshal(existing)
	if err != nil {
		return "", err
	}
	txMap[section] = mergedSection

	merged, err := json.Marshal(txMap)
	if err != nil {
		return "", err
	}
	return string(merged), nil
}

// sanitizeTaxpayerFields cleans the free-text identity fields after a write
// to the taxpayer or transferee section.
func sanitizeTaxpayerFields(rawTx, section string) string {
	if section != "taxpayer" && section != "transferee" {
		return rawTx
	}

	var tx models.Transaction
	if err := json.Unmarshal([]byte(rawTx), &tx); err != nil {
		return rawTx
	}

	var txMap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(rawTx), &txMap); err != nil {
		return rawTx
	}

	switch section {
	case "taxpayer":
		tx.Taxpayer.Name = validation.SanitizeFreeText(tx.Taxpayer.Name)
		tx.Taxpayer.Address = validation.SanitizeFreeText(tx.Taxpayer.Address)
		clean, err := json.Marshal(tx.Taxpayer)
		if err != nil {
			return rawTx
		}
		txMap["taxpayer"] = clean
	case "transferee":
		if tx.Transferee == nil {
			return rawTx
		}
		tx.Transferee.Name = validation.SanitizeFreeText(tx.Transferee.Name)
		clean, err := json.Marshal(tx.Transferee)
		if err != nil {
			return rawTx
		}
		txMap["transferee"] = clean
	}

	merged, err := json.Marshal(txMap)
	if err != nil {
		return rawTx
	}
	return string(merged)
}

// missingSections reports which required sections are absent from the
// stored transaction object.
func missingSections(rawTx string) []string {
	var txMap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(rawTx), &txMap); err != nil {
		return requiredSections
	}

	var missing []string
	for _, section := range requiredSections {
		if _, ok := txMap[section]; !ok {
			missing = append(missing, section)
		}
	}
	return missing
}

func appendCompleted(completedJSON, step string) string {
	var completed []string
	if err := json.Unmarshal([]byte(completedJSON), &completed); err != nil {
		completed = nil
	}
	for _, s := range completed {
		if s == step {
			return completedJSON
		}
	}
	completed = append(completed, step)
	raw, err := json.Marshal(completed)
	if err != nil {
		return completedJSON
	}
	return string(raw)
}

func isKnownStep(step string, tx *models.Transaction) bool {
	for _, s := range scenarios.GetRequiredSteps(tx.Asset.Type, tx.Deal.TransferCause) {
		if s == step {
			return true
		}
	}
	return false
}
