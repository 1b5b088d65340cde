// Copyright (c) 2025 The Aurum developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the typed rejection errors of builtin contract
// entry points. Every error here means the whole operation was rolled back.
package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation was rejected.
type Kind int

const (
	// KindPrecondition invalid input or unauthorized caller; correct the input and retry.
	KindPrecondition Kind = iota + 1
	// KindResourceExhaustion insufficient unlocked principal, treasury or rewards;
	// wait or adjust the request.
	KindResourceExhaustion
	// KindStateConflict the operation conflicts with current state, e.g. announcing
	// over a live campaign or setting a one-time field twice.
	KindStateConflict
	// KindExternalTransfer the underlying asset transfer failed or moved an
	// unexpected amount.
	KindExternalTransfer
)

func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition violation"
	case KindResourceExhaustion:
		return "resource exhaustion"
	case KindStateConflict:
		return "state conflict"
	case KindExternalTransfer:
		return "external transfer failure"
	default:
		return "unknown"
	}
}

// RevertError rejects an operation with a specific reason.
type RevertError struct {
	kind    Kind
	message string
}

func (e *RevertError) Error() string {
	return e.message
}

// Kind returns the error classification.
func (e *RevertError) Kind() Kind {
	return e.kind
}

// New creates a revert error of the given kind.
func New(kind Kind, format string, args ...any) *RevertError {
	return &RevertError{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Precondition rejects invalid input or an unauthorized caller.
func Precondition(format string, args ...any) *RevertError {
	return New(KindPrecondition, format, args...)
}

// Exhausted rejects a request exceeding an available balance or allowance.
func Exhausted(format string, args ...any) *RevertError {
	return New(KindResourceExhaustion, format, args...)
}

// Conflict rejects an operation incompatible with current state.
func Conflict(format string, args ...any) *RevertError {
	return New(KindStateConflict, format, args...)
}

// TransferFailed rejects an operation whose external asset transfer misbehaved.
func TransferFailed(format string, args ...any) *RevertError {
	return New(KindExternalTransfer, format, args...)
}

// IsRevert reports whether err is a revert error of any kind.
func IsRevert(err error) bool {
	var re *RevertError
	return errors.As(err, &re)
}

// IsKind reports whether err is a revert error of the given kind.
func IsKind(err error, kind Kind) bool {
	var re *RevertError
	if errors.As(err, &re) {
		return re.kind == kind
	}
	return false
}

// IsPrecondition reports whether err is a precondition violation.
func IsPrecondition(err error) bool { return IsKind(err, KindPrecondition) }

// IsExhausted reports whether err is a resource exhaustion.
func IsExhausted(err error) bool { return IsKind(err, KindResourceExhaustion) }

// IsConflict reports whether err is a state conflict.
func IsConflict(err error) bool { return IsKind(err, KindStateConflict) }

// IsTransferFailure reports whether err is an external transfer failure.
func IsTransferFailure(err error) bool { return IsKind(err, KindExternalTransfer) }
