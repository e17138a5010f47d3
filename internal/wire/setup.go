package wire

import (
	"github.com/yobol/go-moqt/internal/bitio"
	"github.com/yobol/go-moqt/internal/varint"
)

// ClientSetup is the first message a client sends on the control stream:
// its offered protocol versions and client-setup parameters.
type ClientSetup struct {
	SupportedVersions []varint.Number
	Parameters        ClientSetupParameters
}

func decodeClientSetup(r *bitio.Reader, outerBits int) (ClientSetup, int, error) {
	count, bits, err := decodeNumber(r)
	if err != nil {
		return ClientSetup{}, 0, err
	}
	versions := make([]varint.Number, 0, count)
	for i := uint64(0); i < uint64(count); i++ {
		v, vb, err := decodeNumber(r)
		if err != nil {
			return ClientSetup{}, 0, err
		}
		versions = append(versions, v)
		bits += vb
	}
	params, pb, err := decodeClientSetupParameters(r)
	if err != nil {
		return ClientSetup{}, 0, err
	}
	bits += pb
	if outerBits >= 0 && bits != outerBits {
		return ClientSetup{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return ClientSetup{SupportedVersions: versions, Parameters: params}, bits, nil
}

func (c ClientSetup) encode(w *bitio.Writer) (int, error) {
	bits, err := encodeNumber(w, uint64(len(c.SupportedVersions)))
	if err != nil {
		return 0, err
	}
	for _, v := range c.SupportedVersions {
		b, err := v.Encode(w)
		if err != nil {
			return 0, err
		}
		bits += b
	}
	pb, err := c.Parameters.encode(w)
	if err != nil {
		return 0, err
	}
	return bits + pb, nil
}

// ServerSetup is the server's handshake reply: its selected version and
// server-setup parameters.
type ServerSetup struct {
	SelectedVersion varint.Number
	Parameters      ServerSetupParameters
}

func decodeServerSetup(r *bitio.Reader, outerBits int) (ServerSetup, int, error) {
	v, vb, err := decodeNumber(r)
	if err != nil {
		return ServerSetup{}, 0, err
	}
	params, pb, err := decodeServerSetupParameters(r)
	if err != nil {
		return ServerSetup{}, 0, err
	}
	bits := vb + pb
	if outerBits >= 0 && bits != outerBits {
		return ServerSetup{}, 0, frameLengthMismatch(bits, outerBits)
	}
	return ServerSetup{SelectedVersion: v, Parameters: params}, bits, nil
}

func (s ServerSetup) encode(w *bitio.Writer) (int, error) {
	vb, err := s.SelectedVersion.Encode(w)
	if err != nil {
		return 0, err
	}
	pb, err := s.Parameters.encode(w)
	if err != nil {
		return 0, err
	}
	return vb + pb, nil
}
