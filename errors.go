package moqt

import "github.com/yobol/go-moqt/internal/wire"

// errIO wraps a transport read/write failure.
type errIO struct{ cause error }

func (e errIO) Error() string { return "io: " + e.cause.Error() }
func (e errIO) Unwrap() error { return e.cause }

// IsIOErr reports whether err is a transport IO failure.
func IsIOErr(err error) bool {
	_, ok := err.(errIO)
	return ok
}

// errDecode wraps a short read, framing mismatch, or primitive-type
// invariant violation surfaced while decoding a control message. The
// control stream's send also wraps a failure to encode an outgoing message
// in it.
type errDecode struct{ cause error }

func (e errDecode) Error() string { return "decode: " + e.cause.Error() }
func (e errDecode) Unwrap() error { return e.cause }

// IsDecodeErr reports whether err is a decode failure.
func IsDecodeErr(err error) bool {
	_, ok := err.(errDecode)
	return ok
}

// errProtocolViolation is an unexpected message, a second setup, a second
// bidirectional stream, or an outer/inner length mismatch. It always closes
// the session with the given termination code.
type errProtocolViolation struct {
	term   wire.Termination
	reason string
}

func (e errProtocolViolation) Error() string { return "protocol violation: " + e.reason }

// IsProtocolViolationErr reports whether err is a protocol violation.
func IsProtocolViolationErr(err error) bool {
	_, ok := err.(errProtocolViolation)
	return ok
}

// Termination reports the connection-close code this error carries.
func (e errProtocolViolation) Termination() wire.Termination { return e.term }

// errNoSupportedVersion is raised when the server's selected version is
// not among the client's offered versions, or no intersection exists at
// all during the server's own negotiation.
type errNoSupportedVersion struct{}

func (e errNoSupportedVersion) Error() string { return "version negotiation: no supported version" }

// IsNoSupportedVersionErr reports whether err is errNoSupportedVersion.
func IsNoSupportedVersionErr(err error) bool {
	_, ok := err.(errNoSupportedVersion)
	return ok
}

// errMismatchedVersion is raised in single-version mode when the server's
// selected version differs from the client's own draft version.
type errMismatchedVersion struct {
	want, got uint64
}

func (e errMismatchedVersion) Error() string {
	return "version negotiation: mismatched version"
}

// IsMismatchedVersionErr reports whether err is errMismatchedVersion.
func IsMismatchedVersionErr(err error) bool {
	_, ok := err.(errMismatchedVersion)
	return ok
}

// errResourceExhausted is raised when a request-ID counter would advance
// past MaxRequestId or Number's maximum value.
type errResourceExhausted struct{ reason string }

func (e errResourceExhausted) Error() string { return "resource exhausted: " + e.reason }

// IsResourceExhaustedErr reports whether err is errResourceExhausted.
func IsResourceExhaustedErr(err error) bool {
	_, ok := err.(errResourceExhausted)
	return ok
}

// errAuthorization is a per-request authorization failure (malformed,
// expired, or unknown-alias token). It never terminates the connection.
type errAuthorization struct{ reason string }

func (e errAuthorization) Error() string { return "authorization: " + e.reason }

// IsAuthorizationErr reports whether err is errAuthorization.
func IsAuthorizationErr(err error) bool {
	_, ok := err.(errAuthorization)
	return ok
}

// errConfiguration is a malformed TLS/URL/bind-address configuration
// supplied to an Endpoint or Session option.
type errConfiguration struct{ reason string }

func (e errConfiguration) Error() string { return "configuration: " + e.reason }

// IsConfigurationErr reports whether err is errConfiguration.
func IsConfigurationErr(err error) bool {
	_, ok := err.(errConfiguration)
	return ok
}
