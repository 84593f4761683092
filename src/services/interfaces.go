package services

import (
	"encoding/json"

	"github.com/username/smarttax/backend/src/models"
)

// WizardState is the full session snapshot returned to the client after
// every wizard operation.
type WizardState struct {
	SessionID      string          `json:"sessionId"`
	Transaction    json.RawMessage `json:"transaction"`
	CurrentStep    string          `json:"currentStep"`
	CompletedSteps []string        `json:"completedSteps"`
	RequiredSteps  []string        `json:"requiredSteps"`
	Scenario       string          `json:"scenario"`
	Result         *models.Result  `json:"result,omitempty"`
}

// WizardService drives persisted wizard sessions: section updates, gated
// step navigation, and the orchestrated tax calculation.
type WizardService interface {
	CreateSession() (*WizardState, error)
	GetState(sessionID string) (*WizardState, error)
	UpdateSection(sessionID, section string, payload json.RawMessage) (*WizardState, error)
	NextStep(sessionID string) (*WizardState, error)
	PrevStep(sessionID string) (*WizardState, error)
	GoToStep(sessionID, step string) (*WizardState, error)
	Reset(sessionID string) (*WizardState, error)
	Calculate(sessionID string) (*models.Result, error)
}
