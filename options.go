package moqt

import (
	"crypto/tls"
	"net/url"
	"strings"
	"time"

	"github.com/yobol/go-moqt/internal/transport"
)

const (
	// DefaultMailboxCapacity is the bounded channel size for both halves of
	// a session's orchestrator handle (§5 backpressure).
	DefaultMailboxCapacity = 10

	// DefaultMaxRequestID is the starting ceiling of a session's local
	// request-ID counter before any explicit raise. It is not sent to the
	// peer; the handshake carries no MaxRequestId parameter.
	DefaultMaxRequestID = 1000

	// DefaultDeliveryTimeout is a default delivery timeout value. No code
	// in this module reads it: it is neither sent as a DeliveryTimeout
	// parameter nor substituted when the peer sends none.
	DefaultDeliveryTimeout = 30 * time.Second
)

// NewEndpointOption builds the option set for an Endpoint bound to addr
// using proto. addr is either a bind socket address (":4433") for Quic or
// an HTTPS relay URL for WebTransport.
func NewEndpointOption(addr string, proto transport.Proto) (*EndpointOption, error) {
	if len(addr) > 0 && addr[0] == ':' {
		addr = "0.0.0.0" + addr
	}
	if !strings.Contains(addr, "://") {
		addr = "https://" + addr
	}
	u, err := url.Parse(addr)
	if err != nil {
		return nil, errConfiguration{"malformed endpoint address: " + err.Error()}
	}
	return &EndpointOption{
		addr:              u,
		proto:             proto,
		supportedVersions: []uint64{DraftVersion},
		maxRequestID:      DefaultMaxRequestID,
		mailboxCapacity:   DefaultMailboxCapacity,
		onSessionHandler:  func(*Session) {},
	}, nil
}

// EndpointOption configures an Endpoint before it starts accepting
// connections.
type EndpointOption struct {
	addr  *url.URL
	proto transport.Proto

	tlsConfig         *tls.Config
	supportedVersions []uint64
	maxRequestID      uint64
	mailboxCapacity   int
	singleVersionMode bool

	onSessionHandler    OnSessionHandler
	onDisconnectHandler OnDisconnectHandler
}

// SetTLS attaches the TLS configuration used to accept or dial secure
// connections.
func (o *EndpointOption) SetTLS(tc *tls.Config) *EndpointOption {
	o.tlsConfig = tc
	return o
}

// SetSupportedVersions overrides the draft versions this endpoint offers
// or accepts during the handshake (§4.5).
func (o *EndpointOption) SetSupportedVersions(versions ...uint64) *EndpointOption {
	if len(versions) > 0 {
		o.supportedVersions = versions
	}
	return o
}

// SetSingleVersionMode requires the peer's selected version to exactly
// match this endpoint's (first) supported version, rather than accepting
// any intersection member.
func (o *EndpointOption) SetSingleVersionMode(on bool) *EndpointOption {
	o.singleVersionMode = on
	return o
}

// SetMaxRequestID overrides the initial per-session request-ID ceiling.
func (o *EndpointOption) SetMaxRequestID(max uint64) *EndpointOption {
	if max > 0 {
		o.maxRequestID = max
	}
	return o
}

// SetMailboxCapacity overrides the bounded channel capacity used for each
// session's orchestrator handle. Values below the spec's minimum of 10 are
// ignored.
func (o *EndpointOption) SetMailboxCapacity(n int) *EndpointOption {
	if n >= DefaultMailboxCapacity {
		o.mailboxCapacity = n
	}
	return o
}

// OnSessionHandler is invoked once a session's handshake completes
// successfully, before its supervisor loop starts.
type OnSessionHandler func(s *Session)

// SetOnSessionHandler installs the handler run after a successful
// handshake.
func (o *EndpointOption) SetOnSessionHandler(h OnSessionHandler) *EndpointOption {
	if h != nil {
		o.onSessionHandler = h
	}
	return o
}

// OnDisconnectHandler is invoked once a session's supervisor loop exits.
type OnDisconnectHandler func(s *Session)

// SetOnDisconnectHandler installs the handler run when a session ends.
func (o *EndpointOption) SetOnDisconnectHandler(h OnDisconnectHandler) *EndpointOption {
	if h != nil {
		o.onDisconnectHandler = h
	}
	return o
}
