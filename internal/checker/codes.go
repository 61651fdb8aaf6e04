package checker

import solerr "github.com/cryptuon/solscript/internal/errors"

// Local aliases onto the shared diagnostic-code taxonomy so checker call
// sites read without the solerr. qualifier on every line.
const (
	TypeMismatch          = solerr.TypeMismatch
	TypeUndefinedVar      = solerr.TypeUndefinedVar
	TypeUndefinedMethod   = solerr.TypeUndefinedMethod
	TypeWrongArgCount     = solerr.TypeWrongArgCount
	TypeUndefinedEvent    = solerr.TypeUndefinedEvent
	TypeUndefinedModifier = solerr.TypeUndefinedModifier
	TypeUndefinedError    = solerr.TypeUndefinedError
	TypeDuplicate         = solerr.TypeDuplicate
	TypeNotCallable       = solerr.TypeNotCallable
	TypeNotIndexable      = solerr.TypeNotIndexable
	TypeInvalidUnaryOp    = solerr.TypeInvalidUnaryOp
	TypeInvalidBinaryOp   = solerr.TypeInvalidBinaryOp
	TypeUndefinedType     = solerr.TypeUndefinedType
	TypeUndefinedField    = solerr.TypeUndefinedField
)
