package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec turns payloads and envelopes into frame bytes.
type Codec interface {
	Name() string
	Binary() bool
	Marshal(v any) ([]byte, error)
	Unmarshal(b []byte, v any) error
}

var (
	JSON    Codec = jsonCodec{}
	Msgpack Codec = msgpackCodec{}
)

// CodecFor maps a negotiated websocket subprotocol to its codec.
func CodecFor(subprotocol string) Codec {
	if subprotocol == SubprotocolMsgpack {
		return Msgpack
	}
	return JSON
}

// CodecNamed looks a codec up by its Name.
func CodecNamed(name string) (Codec, bool) {
	switch name {
	case JSON.Name():
		return JSON, true
	case Msgpack.Name():
		return Msgpack, true
	}
	return nil, false
}

type jsonCodec struct{}

func (jsonCodec) Name() string                    { return "json" }
func (jsonCodec) Binary() bool                    { return false }
func (jsonCodec) Marshal(v any) ([]byte, error)   { return json.Marshal(v) }
func (jsonCodec) Unmarshal(b []byte, v any) error { return json.Unmarshal(b, v) }

// msgpackCodec reuses the json struct tags so both codecs share field names.
type msgpackCodec struct{}

func (msgpackCodec) Name() string { return "msgpack" }
func (msgpackCodec) Binary() bool { return true }

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (msgpackCodec) Unmarshal(b []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}

func Encode(t string, payload any) ([]byte, error) {
	return EncodeWith(JSON, t, payload)
}

func EncodeWith(c Codec, t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("trying to encode envelope type nil")
	}
	if payload == nil {
		return nil, fmt.Errorf("trying to encode nil payload")
	}
	pb, err := c.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", t, err)
	}

	var e = Envelope{t, pb}

	return c.Marshal(e)
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	return DecodeEnvelopeWith(JSON, b)
}

func DecodeEnvelopeWith(c Codec, b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decode envelope: empty frame")
	}
	var e Envelope
	if err := c.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode %s envelope: %w", c.Name(), err)
	}
	if e.T == "" {
		return Envelope{}, fmt.Errorf("envelope missing type")
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	return DecodePayloadWith[T](JSON, env)
}

func DecodePayloadWith[T any](c Codec, env Envelope) (T, error) {
	// Creates zero value of whatever type T is. say T is Move then out is Move{}
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.T)
	}
	err := c.Unmarshal(env.P, &out)
	return out, err
}
