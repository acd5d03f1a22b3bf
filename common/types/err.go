// Copyright 2018 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import "fmt"

// ErrorKind classifies why an evaluation step failed.
type ErrorKind int

const (
	// Generic covers error conditions with no more specific kind.
	Generic ErrorKind = iota
	UndeclaredVariable
	NoSuchField
	NoSuchKey
	TypeMismatch
	InvalidArgument
	Overflow
	DivideByZero
	UnknownOverload
)

func (k ErrorKind) String() string {
	switch k {
	case UndeclaredVariable:
		return "UndeclaredVariable"
	case NoSuchField:
		return "NoSuchField"
	case NoSuchKey:
		return "NoSuchKey"
	case TypeMismatch:
		return "TypeMismatch"
	case InvalidArgument:
		return "InvalidArgument"
	case Overflow:
		return "Overflow"
	case DivideByZero:
		return "DivideByZero"
	case UnknownOverload:
		return "UnknownOverload"
	default:
		return "Generic"
	}
}

// Error is the absorbing error value. It carries the originating expression id
// so that the first error encountered during evaluation can be traced back to
// its source.
type Error struct {
	Message string
	ErrKind ErrorKind
	ID      int64
}

// NewErr builds a Generic kind Error at the given expression id.
func NewErr(id int64, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), ErrKind: Generic, ID: id}
}

// NewErrKind builds an Error of the given kind at the given expression id.
func NewErrKind(id int64, kind ErrorKind, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), ErrKind: kind, ID: id}
}

// WithID returns a copy of the error stamped with id if it does not already
// carry one. Used to preserve "first occurrence" provenance as an error is
// passed up through nodes that did not themselves originate it.
func (e *Error) WithID(id int64) *Error {
	if e.ID != 0 {
		return e
	}
	return &Error{Message: e.Message, ErrKind: e.ErrKind, ID: id}
}

func (e *Error) Kind() Kind { return KindError }

func (e *Error) Equal(other Value) Value {
	return e
}

func (e *Error) String() string {
	return fmt.Sprintf("%s: %s", e.ErrKind, e.Message)
}

func (e *Error) Error() string {
	return e.String()
}

// NoSuchFieldErr is a convenience constructor for the common "missing struct
// field" error.
func NoSuchFieldErr(id int64, field string) *Error {
	return NewErrKind(id, NoSuchField, "no such field: %s", field)
}

// NoSuchKeyErr is a convenience constructor for the common "missing map key"
// error.
func NoSuchKeyErr(id int64, key Value) *Error {
	return NewErrKind(id, NoSuchKey, "no such key: %v", key)
}
