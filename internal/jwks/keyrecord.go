package jwks

import (
	"context"
	"encoding/json"
)

type keySetDocument struct {
	Keys []map[string]json.RawMessage `json:"keys"`
}

// Load lee el documento name del store y lo parsea con Parse.
func Load(ctx context.Context, store DocumentStore, name string) (KeyRecord, error) {
	data, err := store.Read(ctx, name)
	if err != nil {
		return KeyRecord{}, &ParseError{Kind: ErrReadDocument, Err: err}
	}
	return Parse(data)
}

// Parse extrae n/e/kid de keys[0]. No se elige por alg, use ni kid: gana el primero.
func Parse(data []byte) (KeyRecord, error) {
	var doc keySetDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return KeyRecord{}, &ParseError{Kind: ErrInvalidJSON, Err: err}
	}
	if len(doc.Keys) == 0 || doc.Keys[0] == nil {
		return KeyRecord{}, &ParseError{Kind: ErrNoKeys}
	}
	key := doc.Keys[0]

	n, ok := stringField(key, "n")
	if !ok {
		return KeyRecord{}, &ParseError{Kind: ErrMissingModulus}
	}
	e, ok := stringField(key, "e")
	if !ok {
		return KeyRecord{}, &ParseError{Kind: ErrMissingExponent}
	}
	kid, ok := stringField(key, "kid")
	if !ok {
		return KeyRecord{}, &ParseError{Kind: ErrMissingKeyID}
	}
	return KeyRecord{Modulus: n, Exponent: e, KeyID: kid}, nil
}

// stringField exige que el campo exista, sea string JSON y no esté vacío.
func stringField(m map[string]json.RawMessage, name string) (string, bool) {
	raw, ok := m[name]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}
