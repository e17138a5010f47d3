package wire

import "github.com/yobol/go-moqt/internal/varint"

// Tag is the Number-encoded discriminator at the front of every
// ControlMessage frame.
type Tag uint64

// number renders the tag as the Number it is encoded as on the wire.
func (t Tag) number() varint.Number {
	return varint.Number(t)
}

const (
	TagSubscribeUpdate          Tag = 0x02
	TagSubscribe                Tag = 0x03
	TagSubscribeOk              Tag = 0x04
	TagSubscribeError           Tag = 0x05
	TagPublishNamespace         Tag = 0x06
	TagPublishNamespaceOk       Tag = 0x07
	TagPublishNamespaceError    Tag = 0x08
	TagPublishNamespaceDone     Tag = 0x09
	TagUnsubscribe              Tag = 0x0A
	TagPublishDone              Tag = 0x0B
	TagPublishNamespaceCancel   Tag = 0x0C
	TagTrackStatus              Tag = 0x0D
	TagTrackStatusOk            Tag = 0x0E
	TagTrackStatusError         Tag = 0x0F
	TagGoAway                   Tag = 0x10
	TagSubscribeNamespace       Tag = 0x11
	TagSubscribeNamespaceOk     Tag = 0x12
	TagSubscribeNamespaceError  Tag = 0x13
	TagUnsubscribeNamespace     Tag = 0x14
	TagMaxRequestId             Tag = 0x15
	TagFetch                    Tag = 0x16
	TagFetchCancel              Tag = 0x17
	TagFetchOk                  Tag = 0x18
	TagFetchError               Tag = 0x19
	TagRequestsBlocked          Tag = 0x1A
	TagPublish                  Tag = 0x1D
	TagPublishOk                Tag = 0x1E
	TagPublishError             Tag = 0x1F
	TagClientSetup              Tag = 0x20
	TagServerSetup              Tag = 0x21
)

// Termination is a connection-close error code (spec §6.2).
type Termination uint64

const (
	TerminationNoError                  Termination = 0x0
	TerminationInternalError            Termination = 0x1
	TerminationUnauthorized              Termination = 0x2
	TerminationProtocolViolation        Termination = 0x3
	TerminationInvalidRequestID         Termination = 0x4
	TerminationDuplicateTrackAlias      Termination = 0x5
	TerminationKeyValueFormattingError  Termination = 0x6
	TerminationTooManyRequests          Termination = 0x7
	TerminationInvalidPath              Termination = 0x8
	TerminationMalformedPath            Termination = 0x9
	TerminationGoAwayTimeout            Termination = 0x10
	TerminationControlMessageTimeout    Termination = 0x11
	TerminationDataStreamTimeout        Termination = 0x12
	TerminationAuthTokenCacheOverflow   Termination = 0x13
	TerminationDuplicateAuthTokenAlias  Termination = 0x14
	TerminationVersionNegotiationFailed Termination = 0x15
	TerminationMalformedAuthToken       Termination = 0x16
	TerminationUnknownAuthTokenAlias    Termination = 0x17
	TerminationExpiredAuthToken         Termination = 0x18
	TerminationInvalidAuthority         Termination = 0x19
	TerminationMalformedAuthority       Termination = 0x1A
)

// SubscribeErrorCode is the error taxonomy carried by SubscribeError (and,
// since TrackStatus aliases Subscribe, by TrackStatusError /
// SubscribeNamespaceError, which share the same family).
type SubscribeErrorCode uint64

const (
	SubscribeErrorInternalError     SubscribeErrorCode = 0
	SubscribeErrorUnauthorized      SubscribeErrorCode = 1
	SubscribeErrorTimeout           SubscribeErrorCode = 2
	SubscribeErrorNotSupported      SubscribeErrorCode = 3
	SubscribeErrorTrackDoesNotExist SubscribeErrorCode = 4
	SubscribeErrorInvalidRange      SubscribeErrorCode = 5
	SubscribeErrorRetryTrackAlias   SubscribeErrorCode = 6
)

// FetchErrorCode is the error taxonomy carried by FetchError.
type FetchErrorCode uint64

const (
	FetchErrorInternal      FetchErrorCode = 0
	FetchErrorUnauthorized  FetchErrorCode = 1
	FetchErrorTimeout       FetchErrorCode = 2
	FetchErrorNotSupported  FetchErrorCode = 3
	FetchErrorTrackDoesNotExist FetchErrorCode = 4
	FetchErrorInvalidRange  FetchErrorCode = 5
	FetchErrorNoTracks      FetchErrorCode = 6
)

// PublishErrorCode is the error taxonomy carried by PublishError.
type PublishErrorCode uint64

const (
	PublishErrorInternalError PublishErrorCode = 0
	PublishErrorUnauthorized  PublishErrorCode = 1
	PublishErrorTimeout       PublishErrorCode = 2
	PublishErrorNotSupported  PublishErrorCode = 3
	PublishErrorUninterested  PublishErrorCode = 4
)

// PublishNamespaceErrorCode is the error taxonomy carried by
// PublishNamespaceError.
type PublishNamespaceErrorCode uint64

const (
	PublishNamespaceErrorInternalError PublishNamespaceErrorCode = 0
	PublishNamespaceErrorUnauthorized  PublishNamespaceErrorCode = 1
	PublishNamespaceErrorTimeout       PublishNamespaceErrorCode = 2
	PublishNamespaceErrorNotSupported  PublishNamespaceErrorCode = 3
)

// PublishNamespaceCancelCode is the error taxonomy carried by
// PublishNamespaceCancel — this family is not draft-referenced in the
// reference implementation, only one member (MalformedAuthToken) is
// confirmed by its test vector; the only other member is the generic
// InternalError code (see DESIGN.md).
type PublishNamespaceCancelCode uint64

const (
	PublishNamespaceCancelInternalError     PublishNamespaceCancelCode = 0x0
	PublishNamespaceCancelMalformedAuthToken PublishNamespaceCancelCode = 0x10
)

// PublishDoneCode is the status code carried by PublishDone.
type PublishDoneCode uint64

const (
	PublishDoneInternalError    PublishDoneCode = 0
	PublishDoneUnauthorized     PublishDoneCode = 1
	PublishDoneTrackEnded       PublishDoneCode = 2
	PublishDoneSubscriptionEnded PublishDoneCode = 3
	PublishDoneGoingAway        PublishDoneCode = 4
	PublishDoneExpired          PublishDoneCode = 5
)
