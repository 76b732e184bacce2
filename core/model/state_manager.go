// Package model provides state management and estimator interfaces for
// predictors trained on multi-valued contexts.
package model

import (
	"sync"

	"github.com/mikulatomas/FCApy/pkg/errors"
)

// EstimatorState はモデルの学習状態を表す
type EstimatorState int

const (
	// NotFitted はモデルが未学習の状態
	NotFitted EstimatorState = iota
	// Fitted はモデルが学習済みの状態
	Fitted
)

func (s EstimatorState) String() string {
	if s == Fitted {
		return "fitted"
	}
	return "not_fitted"
}

// StateManager manages the fitted state of a model in a thread-safe manner.
// The transition NotFitted → Fitted is one-way: a fitted model is never
// reset, a new one has to be constructed to learn again.
type StateManager struct {
	mu    sync.RWMutex
	state EstimatorState

	// 学習時のコンテキストの大きさ
	nObjects    int
	nAttributes int
}

// NewStateManager creates a new StateManager in the NotFitted state.
func NewStateManager() *StateManager {
	return &StateManager{state: NotFitted}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == Fitted
}

// State returns the current state.
func (s *StateManager) State() EstimatorState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// MarkFitted records the training context shape and moves to Fitted. It
// fails with ErrAlreadyFitted when the model is fitted already.
func (s *StateManager) MarkFitted(nObjects, nAttributes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Fitted {
		return errors.WithStack(errors.ErrAlreadyFitted)
	}
	s.state = Fitted
	s.nObjects = nObjects
	s.nAttributes = nAttributes
	return nil
}

// GetDimensions returns the number of objects and attributes seen during fitting.
func (s *StateManager) GetDimensions() (nObjects, nAttributes int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nObjects, s.nAttributes
}

// RequireFitted returns a NotFittedError naming modelName and method if the
// model has not been fitted.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}

// RequireNotFitted returns ErrAlreadyFitted wrapped with modelName and
// method if the model has been fitted.
func (s *StateManager) RequireNotFitted(modelName, method string) error {
	if s.IsFitted() {
		return errors.Wrapf(errors.ErrAlreadyFitted, "%s.%s", modelName, method)
	}
	return nil
}

// ModelState represents the observable state of a model, for debugging and
// reporting.
type ModelState struct {
	Fitted      bool                   `json:"fitted"`
	NObjects    int                    `json:"n_objects,omitempty"`
	NAttributes int                    `json:"n_attributes,omitempty"`
	Params      map[string]interface{} `json:"params,omitempty"`
}

// GetState returns the current state as a ModelState struct.
func (s *StateManager) GetState() ModelState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ModelState{
		Fitted:      s.state == Fitted,
		NObjects:    s.nObjects,
		NAttributes: s.nAttributes,
	}
}
