package ringcrypto

import "fmt"

// Kind classifies the failure modes a caller may need to branch on,
// per the error handling design: invalid inputs fail fast with a typed
// error, verification failures are booleans except for structural
// corruption of the proof object itself.
type Kind int

const (
	KindInvalidArgument Kind = iota
	KindInvalidSignature
	KindInvalidProof
	KindWrongPassword
	KindChecksumFailure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindInvalidSignature:
		return "invalid signature"
	case KindInvalidProof:
		return "invalid proof"
	case KindWrongPassword:
		return "wrong password"
	case KindChecksumFailure:
		return "checksum failure"
	default:
		return "unknown"
	}
}

// Error wraps a Kind with a message and optional cause. It is the
// concrete type behind the package's sentinel errors; errors.Is matches
// on Kind, not on message text.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ringcrypto: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("ringcrypto: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newErr(kind Kind, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...)}
}

func wrapErr(kind Kind, err error, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...), Err: err}
}

// Sentinels usable with errors.Is(err, ringcrypto.ErrInvalidArgument).
var (
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument, Msg: "invalid argument"}
	ErrInvalidSignature = &Error{Kind: KindInvalidSignature, Msg: "invalid signature"}
	ErrInvalidProof     = &Error{Kind: KindInvalidProof, Msg: "invalid proof"}
	ErrWrongPassword    = &Error{Kind: KindWrongPassword, Msg: "wrong password"}
	ErrChecksumFailure  = &Error{Kind: KindChecksumFailure, Msg: "checksum failure"}
)
