package codec

// Bytes is an identity codec for []byte values.
type Bytes struct{}

func (Bytes) ID() byte                       { return idBytes }
func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return append([]byte(nil), b...), nil }

// String stores Go strings as their UTF-8 bytes without validation.
type String struct{}

func (String) ID() byte                       { return idString }
func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }
