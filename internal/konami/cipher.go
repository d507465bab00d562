package konami

import "strings"

// offsetStream cycles over a decoded key indefinitely.
type offsetStream struct {
	offsets  []byte
	position int
}

func newOffsetStream(offsets []byte) *offsetStream {
	return &offsetStream{offsets: offsets}
}

func (o *offsetStream) next() byte {
	b := o.offsets[o.position]
	o.position = (o.position + 1) % len(o.offsets)
	return b
}

// DecodeKey decodes a key string into the offsets used by the cipher. A key
// has to contain at least one complete token group.
func DecodeKey(key string) ([]byte, error) {
	return Decode(key)
}

// Encrypt shifts every byte of message by the next key offset and returns
// the result as a token string.
func Encrypt(message []byte, key string) (string, error) {
	offsets, err := DecodeKey(key)
	if err != nil {
		return "", err
	}
	return EncryptWithOffsets(message, offsets)
}

// EncryptWithOffsets is Encrypt with an already decoded key.
func EncryptWithOffsets(message []byte, offsets []byte) (string, error) {
	if len(offsets) == 0 {
		return "", ErrEmptyInput
	}
	stream := newOffsetStream(offsets)

	var sb strings.Builder
	sb.Grow(len(message) * maxGroupLen)
	for _, b := range message {
		// byte arithmetic wraps modulo 256
		sb.WriteString(Encode(b + stream.next()))
	}
	return sb.String(), nil
}

// Decrypt reverses Encrypt. The key is decoded before the ciphertext, so a
// malformed key is reported even when the ciphertext is also malformed.
func Decrypt(ciphertext string, key string) ([]byte, error) {
	offsets, err := DecodeKey(key)
	if err != nil {
		return nil, err
	}
	return DecryptWithOffsets(ciphertext, offsets)
}

// DecryptWithOffsets is Decrypt with an already decoded key.
func DecryptWithOffsets(ciphertext string, offsets []byte) ([]byte, error) {
	if len(offsets) == 0 {
		return nil, ErrEmptyInput
	}
	encrypted, err := Decode(ciphertext)
	if err != nil {
		return nil, err
	}

	stream := newOffsetStream(offsets)
	decrypted := make([]byte, len(encrypted))
	for i, c := range encrypted {
		decrypted[i] = c - stream.next()
	}
	return decrypted, nil
}
