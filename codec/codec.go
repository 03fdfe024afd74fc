// Package codec converts cached values to and from bytes.
//
// Codecs shipped here carry a one-byte id that ProviderStore writes next to
// each payload; an entry written with a different codec is dropped on read
// instead of being misdecoded.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Identified is implemented by codecs that tag their payloads.
type Identified interface {
	ID() byte
}

const (
	idUnknown byte = iota
	idJSON
	idCBOR
	idMsgpack
	idProtobuf
	idBytes
	idString
)

// IDOf returns c's id, or 0 when c does not tag payloads.
func IDOf(c any) byte {
	if id, ok := c.(Identified); ok {
		return id.ID()
	}
	return idUnknown
}
