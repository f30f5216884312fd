// Package errors provides a typed application error used across every
// layer of the meal-plan engine instead of bare fmt.Errorf strings.
package errors

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind classifies an error the way §7 of the specification enumerates
// failure kinds. The orchestrator switches on Kind to decide the
// response's HTTP-class and whether a peer ingredient task may proceed.
type Kind string

const (
	KindConfig              Kind = "config"
	KindInput               Kind = "input"
	KindUpstreamTransient   Kind = "upstream_transient"
	KindUpstreamPermanent   Kind = "upstream_permanent"
	KindFingerprintMismatch Kind = "fingerprint_mismatch"
	KindSolverInfeasible    Kind = "solver_infeasible"
	KindLedgerMismatch      Kind = "ledger_mismatch"
	KindInternal            Kind = "internal"
)

// Code is a short machine-readable identifier, e.g. BLUEPRINT_INVALID,
// CARBS_TOO_LOW, FINAL_MACRO_MISMATCH.
type Code string

const (
	CodeBlueprintInvalid   Code = "BLUEPRINT_INVALID"
	CodeMacroInfeasible    Code = "MACRO_INFEASIBLE"
	CodeFinalMacroMismatch Code = "FINAL_MACRO_MISMATCH"
	CodeUncaught           Code = "UNCAUGHT"
	CodeCarbsTooLow        Code = "CARBS_TOO_LOW"
	CodeProteinTooHigh     Code = "PROTEIN_TOO_HIGH"
	CodeFatTooHigh         Code = "FAT_TOO_HIGH"
	CodeRateLimited        Code = "RATE_LIMITED"
	CodeNotFound           Code = "NOT_FOUND"
)

// AppError is the engine's single error currency.
type AppError struct {
	Kind      Kind                   `json:"kind"`
	Code      Code                   `json:"code,omitempty"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Err       error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s/%s] %s: %v", e.Kind, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s/%s] %s", e.Kind, e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// Is compares by Kind+Code so callers can use errors.Is(err, &AppError{Code: ...}).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if t.Code != "" && t.Code != e.Code {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	return true
}

func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func (e *AppError) ToJSON() ([]byte, error) { return json.Marshal(e) }

// New creates a fresh AppError of the given kind.
func New(kind Kind, code Code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, Timestamp: time.Now()}
}

// Wrap attaches context to an existing error without losing its cause.
func Wrap(err error, kind Kind, code Code, message string) *AppError {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*AppError); ok {
		return &AppError{
			Kind:      kind,
			Code:      code,
			Message:   fmt.Sprintf("%s: %s", message, ae.Message),
			Context:   ae.Context,
			Timestamp: time.Now(),
			Err:       ae,
		}
	}
	return &AppError{Kind: kind, Code: code, Message: message, Timestamp: time.Now(), Err: err}
}

// IsRetryable reports whether the error's Kind signals a transient
// upstream condition worth retrying per §4.6/§7.
func IsRetryable(err error) bool {
	ae, ok := err.(*AppError)
	if !ok {
		return false
	}
	return ae.Kind == KindUpstreamTransient
}
