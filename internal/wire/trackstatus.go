package wire

// TrackStatus is a type alias of Subscribe: the reference implementation
// defines `pub type TrackStatus = Subscribe;` — same field layout and
// codec, distinguished only by its own tag (0x0D) at the ControlMessage
// dispatch layer.
type TrackStatus = Subscribe

// TrackStatusOk mirrors SubscribeOk's shape, consistent with TrackStatus
// aliasing Subscribe.
type TrackStatusOk = SubscribeOk

// TrackStatusError mirrors SubscribeError's shape and error-code family.
type TrackStatusError = SubscribeError
