package wire

import (
	"fmt"
	"time"

	"github.com/yobol/go-moqt/internal/bitio"
	"github.com/yobol/go-moqt/internal/varint"
)

// rawKV is the untyped wire shape of one parameter entry: a Number key
// whose parity selects whether the value is itself a Number or a
// length-prefixed byte string.
type rawKV struct {
	Key     varint.Number
	IsBytes bool
	Num     varint.Number
	Bytes   []byte
}

func decodeRawKV(r *bitio.Reader) (rawKV, int, error) {
	key, keyBits, err := decodeNumber(r)
	if err != nil {
		return rawKV{}, 0, err
	}
	if uint64(key)%2 == 0 {
		n, nBits, err := decodeNumber(r)
		if err != nil {
			return rawKV{}, 0, err
		}
		return rawKV{Key: key, Num: n}, keyBits + nBits, nil
	}
	bd, bdBits, err := varint.DecodeBinaryData(r)
	if err != nil {
		return rawKV{}, 0, err
	}
	return rawKV{Key: key, IsBytes: true, Bytes: bd}, keyBits + bdBits, nil
}

func (kv rawKV) encode(w *bitio.Writer) (int, error) {
	wantBytes := uint64(kv.Key)%2 == 1
	if wantBytes != kv.IsBytes {
		return 0, fmt.Errorf("%w: parameter key %d parity mismatch", ErrProtocolViolation, kv.Key)
	}
	bits, err := kv.Key.Encode(w)
	if err != nil {
		return 0, err
	}
	if kv.IsBytes {
		b, err := varint.BinaryData(kv.Bytes).Encode(w)
		if err != nil {
			return 0, err
		}
		return bits + b, nil
	}
	n, err := kv.Num.Encode(w)
	if err != nil {
		return 0, err
	}
	return bits + n, nil
}

func (kv rawKV) lenBits() int {
	if kv.IsBytes {
		return kv.Key.LenBits() + varint.BinaryData(kv.Bytes).LenBits()
	}
	return kv.Key.LenBits() + kv.Num.LenBits()
}

// entry is one ordered (key, value) pair of a parameter map.
type entry[T any] struct {
	Key   varint.Number
	Value T
}

// paramMap is an insertion-ordered parameter map generic over its typed
// variant set (Parameter, ClientSetupParameter, ServerSetupParameter).
type paramMap[T any] []entry[T]

func decodeParamMap[T any](r *bitio.Reader, fromRaw func(rawKV) (T, error)) (paramMap[T], int, error) {
	count, bits, err := decodeNumber(r)
	if err != nil {
		return nil, 0, err
	}
	out := make(paramMap[T], 0, count)
	for i := uint64(0); i < uint64(count); i++ {
		kv, kvBits, err := decodeRawKV(r)
		if err != nil {
			return nil, 0, err
		}
		v, err := fromRaw(kv)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, entry[T]{Key: kv.Key, Value: v})
		bits += kvBits
	}
	return out, bits, nil
}

func encodeParamMap[T any](w *bitio.Writer, m paramMap[T], toRaw func(T) (rawKV, error)) (int, error) {
	bits, err := encodeNumber(w, uint64(len(m)))
	if err != nil {
		return 0, err
	}
	for _, e := range m {
		kv, err := toRaw(e.Value)
		if err != nil {
			return 0, err
		}
		kv.Key = e.Key
		b, err := kv.encode(w)
		if err != nil {
			return 0, err
		}
		bits += b
	}
	return bits, nil
}

func lenBitsParamMap[T any](m paramMap[T], toRaw func(T) (rawKV, error)) int {
	bits := varint.Number(len(m)).LenBits()
	for _, e := range m {
		kv, err := toRaw(e.Value)
		if err != nil {
			continue
		}
		kv.Key = e.Key
		bits += kv.lenBits()
	}
	return bits
}

// --- general (version-specific) Parameter -------------------------------

const (
	keyDeliveryTimeout    = 0x02
	keyAuthorizationToken = 0x03
	keyMaxCacheDuration   = 0x04
)

// ParamKind discriminates Parameter's active field.
type ParamKind uint8

const (
	ParamNumber ParamKind = iota
	ParamBytes
	ParamDeliveryTimeout
	ParamAuthorizationToken
	ParamMaxCacheDuration
)

// Parameter is the general/version-specific parameter enum: known keys
// DeliveryTimeout, AuthorizationToken and MaxCacheDuration plus generic
// Number/Bytes fallbacks for anything else.
type Parameter struct {
	Kind     ParamKind
	Number   varint.Number
	Bytes    []byte
	Duration time.Duration
	Token    Token
}

func parameterFromRaw(kv rawKV) (Parameter, error) {
	switch uint64(kv.Key) {
	case keyDeliveryTimeout:
		if kv.IsBytes {
			return Parameter{}, fmt.Errorf("%w: DeliveryTimeout must be Number-keyed", ErrProtocolViolation)
		}
		return Parameter{Kind: ParamDeliveryTimeout, Duration: time.Duration(kv.Num) * time.Millisecond}, nil
	case keyMaxCacheDuration:
		if kv.IsBytes {
			return Parameter{}, fmt.Errorf("%w: MaxCacheDuration must be Number-keyed", ErrProtocolViolation)
		}
		return Parameter{Kind: ParamMaxCacheDuration, Duration: time.Duration(kv.Num) * time.Millisecond}, nil
	case keyAuthorizationToken:
		if !kv.IsBytes {
			return Parameter{}, fmt.Errorf("%w: AuthorizationToken must be Bytes-keyed", ErrProtocolViolation)
		}
		tok, _, err := decodeToken(bitio.NewReader(kv.Bytes), len(kv.Bytes)*8)
		if err != nil {
			return Parameter{}, err
		}
		return Parameter{Kind: ParamAuthorizationToken, Token: tok}, nil
	}
	if kv.IsBytes {
		return Parameter{Kind: ParamBytes, Bytes: kv.Bytes}, nil
	}
	return Parameter{Kind: ParamNumber, Number: kv.Num}, nil
}

func parameterToRaw(p Parameter) (rawKV, error) {
	switch p.Kind {
	case ParamNumber:
		return rawKV{Num: p.Number}, nil
	case ParamBytes:
		return rawKV{IsBytes: true, Bytes: p.Bytes}, nil
	case ParamDeliveryTimeout, ParamMaxCacheDuration:
		return rawKV{Num: varint.Number(p.Duration / time.Millisecond)}, nil
	case ParamAuthorizationToken:
		w := bitio.NewWriter()
		if _, err := p.Token.encode(w); err != nil {
			return rawKV{}, err
		}
		buf, err := w.Finish()
		if err != nil {
			return rawKV{}, err
		}
		return rawKV{IsBytes: true, Bytes: buf}, nil
	}
	return rawKV{}, fmt.Errorf("%w: unknown parameter kind %d", ErrProtocolViolation, p.Kind)
}

// Parameters is an insertion-ordered map of general parameters.
type Parameters paramMap[Parameter]

func decodeParameters(r *bitio.Reader) (Parameters, int, error) {
	m, bits, err := decodeParamMap(r, parameterFromRaw)
	return Parameters(m), bits, err
}

func (p Parameters) encode(w *bitio.Writer) (int, error) {
	return encodeParamMap(w, paramMap[Parameter](p), parameterToRaw)
}

func (p Parameters) lenBits() int {
	return lenBitsParamMap(paramMap[Parameter](p), parameterToRaw)
}

// --- ClientSetupParameter -------------------------------------------------

const (
	keyPath                = 0x01
	keyMaxRequestID        = 0x02
	keyAuthority           = 0x05
	keyMoqtImplementation  = 0x07
)

// ClientSetupKind discriminates ClientSetupParameter's active field.
type ClientSetupKind uint8

const (
	ClientSetupNumber ClientSetupKind = iota
	ClientSetupBytes
	ClientSetupPath
	ClientSetupMaxRequestID
	ClientSetupAuthorizationToken
	ClientSetupAuthority
	ClientSetupMoqtImplementation
)

// ClientSetupParameter is the ClientSetup parameter enum.
type ClientSetupParameter struct {
	Kind       ClientSetupKind
	Number     varint.Number
	Bytes      []byte
	Text       string
	MaxRequest varint.Number
	Token      Token
}

func clientSetupFromRaw(kv rawKV) (ClientSetupParameter, error) {
	switch uint64(kv.Key) {
	case keyPath:
		if !kv.IsBytes {
			return ClientSetupParameter{}, fmt.Errorf("%w: Path must be Bytes-keyed", ErrProtocolViolation)
		}
		return ClientSetupParameter{Kind: ClientSetupPath, Text: string(kv.Bytes)}, nil
	case keyMaxRequestID:
		if kv.IsBytes {
			return ClientSetupParameter{}, fmt.Errorf("%w: MaxRequestId must be Number-keyed", ErrProtocolViolation)
		}
		return ClientSetupParameter{Kind: ClientSetupMaxRequestID, MaxRequest: kv.Num}, nil
	case keyAuthorizationToken:
		if !kv.IsBytes {
			return ClientSetupParameter{}, fmt.Errorf("%w: AuthorizationToken must be Bytes-keyed", ErrProtocolViolation)
		}
		tok, _, err := decodeToken(bitio.NewReader(kv.Bytes), len(kv.Bytes)*8)
		if err != nil {
			return ClientSetupParameter{}, err
		}
		return ClientSetupParameter{Kind: ClientSetupAuthorizationToken, Token: tok}, nil
	case keyAuthority:
		if !kv.IsBytes {
			return ClientSetupParameter{}, fmt.Errorf("%w: Authority must be Bytes-keyed", ErrProtocolViolation)
		}
		return ClientSetupParameter{Kind: ClientSetupAuthority, Text: string(kv.Bytes)}, nil
	case keyMoqtImplementation:
		if !kv.IsBytes {
			return ClientSetupParameter{}, fmt.Errorf("%w: MoqtImplementation must be Bytes-keyed", ErrProtocolViolation)
		}
		return ClientSetupParameter{Kind: ClientSetupMoqtImplementation, Text: string(kv.Bytes)}, nil
	}
	if kv.IsBytes {
		return ClientSetupParameter{Kind: ClientSetupBytes, Bytes: kv.Bytes}, nil
	}
	return ClientSetupParameter{Kind: ClientSetupNumber, Number: kv.Num}, nil
}

func clientSetupToRaw(p ClientSetupParameter) (rawKV, error) {
	switch p.Kind {
	case ClientSetupNumber:
		return rawKV{Num: p.Number}, nil
	case ClientSetupBytes:
		return rawKV{IsBytes: true, Bytes: p.Bytes}, nil
	case ClientSetupPath, ClientSetupAuthority, ClientSetupMoqtImplementation:
		return rawKV{IsBytes: true, Bytes: []byte(p.Text)}, nil
	case ClientSetupMaxRequestID:
		return rawKV{Num: p.MaxRequest}, nil
	case ClientSetupAuthorizationToken:
		w := bitio.NewWriter()
		if _, err := p.Token.encode(w); err != nil {
			return rawKV{}, err
		}
		buf, err := w.Finish()
		if err != nil {
			return rawKV{}, err
		}
		return rawKV{IsBytes: true, Bytes: buf}, nil
	}
	return rawKV{}, fmt.Errorf("%w: unknown client setup parameter kind %d", ErrProtocolViolation, p.Kind)
}

// ClientSetupParameters is an insertion-ordered map of ClientSetup parameters.
type ClientSetupParameters paramMap[ClientSetupParameter]

func decodeClientSetupParameters(r *bitio.Reader) (ClientSetupParameters, int, error) {
	m, bits, err := decodeParamMap(r, clientSetupFromRaw)
	return ClientSetupParameters(m), bits, err
}

func (p ClientSetupParameters) encode(w *bitio.Writer) (int, error) {
	return encodeParamMap(w, paramMap[ClientSetupParameter](p), clientSetupToRaw)
}

func (p ClientSetupParameters) lenBits() int {
	return lenBitsParamMap(paramMap[ClientSetupParameter](p), clientSetupToRaw)
}

// --- ServerSetupParameter -------------------------------------------------

const keyMaxAuthTokenCacheSize = 0x04

// ServerSetupKind discriminates ServerSetupParameter's active field.
type ServerSetupKind uint8

const (
	ServerSetupNumber ServerSetupKind = iota
	ServerSetupBytes
	ServerSetupMaxRequestID
	ServerSetupAuthorizationToken
	ServerSetupMaxAuthTokenCacheSize
	ServerSetupMoqtImplementation
)

// ServerSetupParameter is the ServerSetup parameter enum.
type ServerSetupParameter struct {
	Kind       ServerSetupKind
	Number     varint.Number
	Bytes      []byte
	Text       string
	MaxRequest varint.Number
	CacheSize  varint.Number
	Token      Token
}

func serverSetupFromRaw(kv rawKV) (ServerSetupParameter, error) {
	switch uint64(kv.Key) {
	case keyMaxRequestID:
		if kv.IsBytes {
			return ServerSetupParameter{}, fmt.Errorf("%w: MaxRequestId must be Number-keyed", ErrProtocolViolation)
		}
		return ServerSetupParameter{Kind: ServerSetupMaxRequestID, MaxRequest: kv.Num}, nil
	case keyAuthorizationToken:
		if !kv.IsBytes {
			return ServerSetupParameter{}, fmt.Errorf("%w: AuthorizationToken must be Bytes-keyed", ErrProtocolViolation)
		}
		tok, _, err := decodeToken(bitio.NewReader(kv.Bytes), len(kv.Bytes)*8)
		if err != nil {
			return ServerSetupParameter{}, err
		}
		return ServerSetupParameter{Kind: ServerSetupAuthorizationToken, Token: tok}, nil
	case keyMaxAuthTokenCacheSize:
		if kv.IsBytes {
			return ServerSetupParameter{}, fmt.Errorf("%w: MaxAuthorizationTokenCacheSize must be Number-keyed", ErrProtocolViolation)
		}
		return ServerSetupParameter{Kind: ServerSetupMaxAuthTokenCacheSize, CacheSize: kv.Num}, nil
	case keyMoqtImplementation:
		if !kv.IsBytes {
			return ServerSetupParameter{}, fmt.Errorf("%w: MoqtImplementation must be Bytes-keyed", ErrProtocolViolation)
		}
		return ServerSetupParameter{Kind: ServerSetupMoqtImplementation, Text: string(kv.Bytes)}, nil
	}
	if kv.IsBytes {
		return ServerSetupParameter{Kind: ServerSetupBytes, Bytes: kv.Bytes}, nil
	}
	return ServerSetupParameter{Kind: ServerSetupNumber, Number: kv.Num}, nil
}

func serverSetupToRaw(p ServerSetupParameter) (rawKV, error) {
	switch p.Kind {
	case ServerSetupNumber:
		return rawKV{Num: p.Number}, nil
	case ServerSetupBytes:
		return rawKV{IsBytes: true, Bytes: p.Bytes}, nil
	case ServerSetupMaxRequestID:
		return rawKV{Num: p.MaxRequest}, nil
	case ServerSetupMaxAuthTokenCacheSize:
		return rawKV{Num: p.CacheSize}, nil
	case ServerSetupMoqtImplementation:
		return rawKV{IsBytes: true, Bytes: []byte(p.Text)}, nil
	case ServerSetupAuthorizationToken:
		w := bitio.NewWriter()
		if _, err := p.Token.encode(w); err != nil {
			return rawKV{}, err
		}
		buf, err := w.Finish()
		if err != nil {
			return rawKV{}, err
		}
		return rawKV{IsBytes: true, Bytes: buf}, nil
	}
	return rawKV{}, fmt.Errorf("%w: unknown server setup parameter kind %d", ErrProtocolViolation, p.Kind)
}

// ServerSetupParameters is an insertion-ordered map of ServerSetup parameters.
type ServerSetupParameters paramMap[ServerSetupParameter]

func decodeServerSetupParameters(r *bitio.Reader) (ServerSetupParameters, int, error) {
	m, bits, err := decodeParamMap(r, serverSetupFromRaw)
	return ServerSetupParameters(m), bits, err
}

func (p ServerSetupParameters) encode(w *bitio.Writer) (int, error) {
	return encodeParamMap(w, paramMap[ServerSetupParameter](p), serverSetupToRaw)
}

func (p ServerSetupParameters) lenBits() int {
	return lenBitsParamMap(paramMap[ServerSetupParameter](p), serverSetupToRaw)
}
