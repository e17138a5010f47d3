package wire

import (
	"fmt"

	"github.com/yobol/go-moqt/internal/bitio"
	"github.com/yobol/go-moqt/internal/varint"
)

// Token is the AuthorizationToken parameter payload: an AliasType byte
// followed by a variable subset of {Alias, Typ, Value} determined by that
// byte. It is always decoded with an outer bit-length hint (supplied by
// the AuthorizationToken parameter's own length prefix), since its trailing
// Value field is a BitRange running to the end of the record.
type Token struct {
	AliasTyp AliasType

	HasAlias bool
	Alias    varint.Number

	HasTyp bool
	Typ    varint.Number

	HasValue bool
	Value    []byte
}

// TokenDelete builds a Delete-typed Token (alias present, type/value absent).
func TokenDelete(alias uint64) Token {
	return Token{AliasTyp: AliasTypeDelete, HasAlias: true, Alias: varint.Number(alias)}
}

// TokenRegister builds a Register-typed Token (alias, type and value present).
func TokenRegister(alias, typ uint64, value []byte) Token {
	return Token{
		AliasTyp: AliasTypeRegister,
		HasAlias: true, Alias: varint.Number(alias),
		HasTyp: true, Typ: varint.Number(typ),
		HasValue: true, Value: value,
	}
}

// TokenUseAlias builds a UseAlias-typed Token (alias present only).
func TokenUseAlias(alias uint64) Token {
	return Token{AliasTyp: AliasTypeUseAlias, HasAlias: true, Alias: varint.Number(alias)}
}

// TokenUseValue builds a UseValue-typed Token (type and value present, no alias).
func TokenUseValue(typ uint64, value []byte) Token {
	return Token{
		AliasTyp: AliasTypeUseValue,
		HasTyp:   true, Typ: varint.Number(typ),
		HasValue: true, Value: value,
	}
}

func aliasPresent(t AliasType) bool {
	return t == AliasTypeDelete || t == AliasTypeRegister || t == AliasTypeUseAlias
}

func typValuePresent(t AliasType) bool {
	return t == AliasTypeRegister || t == AliasTypeUseValue
}

// decodeToken reads a Token, consuming exactly outerBits bits.
func decodeToken(r *bitio.Reader, outerBits int) (Token, int, error) {
	var tok Token
	bits := 0

	at, err := decodeAliasType(r)
	if err != nil {
		return Token{}, 0, err
	}
	tok.AliasTyp = at
	bits += 8

	if aliasPresent(at) {
		alias, aBits, err := decodeNumber(r)
		if err != nil {
			return Token{}, 0, err
		}
		tok.HasAlias, tok.Alias = true, alias
		bits += aBits
	}

	if typValuePresent(at) {
		typ, tBits, err := decodeNumber(r)
		if err != nil {
			return Token{}, 0, err
		}
		tok.HasTyp, tok.Typ = true, typ
		bits += tBits

		remaining := outerBits - bits
		if remaining < 0 {
			return Token{}, 0, fmt.Errorf("%w: token length underflow", ErrProtocolViolation)
		}
		value, err := varint.DecodeBitRange(r, remaining)
		if err != nil {
			return Token{}, 0, err
		}
		tok.HasValue, tok.Value = true, value.Bytes()
		bits += remaining
	}

	if bits != outerBits {
		return Token{}, 0, fmt.Errorf("%w: token length mismatch, consumed %d want %d", ErrProtocolViolation, bits, outerBits)
	}
	return tok, bits, nil
}

// LenBits reports the token's encoded bit length.
func (t Token) LenBits() int {
	bits := 8
	if aliasPresent(t.AliasTyp) {
		bits += t.Alias.LenBits()
	}
	if typValuePresent(t.AliasTyp) {
		bits += t.Typ.LenBits()
		bits += len(t.Value) * 8
	}
	return bits
}

func (t Token) encode(w *bitio.Writer) (int, error) {
	bits := 0
	if err := t.AliasTyp.encode(w); err != nil {
		return 0, err
	}
	bits += 8

	if aliasPresent(t.AliasTyp) {
		n, err := t.Alias.Encode(w)
		if err != nil {
			return 0, err
		}
		bits += n
	}
	if typValuePresent(t.AliasTyp) {
		n, err := t.Typ.Encode(w)
		if err != nil {
			return 0, err
		}
		bits += n
		if err := w.WriteBits(len(t.Value)*8, t.Value); err != nil {
			return 0, err
		}
		bits += len(t.Value) * 8
	}
	return bits, nil
}
