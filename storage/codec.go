package storage

import (
	"encoding/json"
	"fmt"

	"sternhalma/eval"
	"sternhalma/model"
)

// Payloads are versioned JSON blobs so a schema change can be detected
// instead of silently misread.
const codecVersion = 1

type envelope struct {
	Version int             `json:"version"`
	Payload json.RawMessage `json:"payload"`
}

func encodeSession(s model.Session) ([]byte, error) {
	return encode(s)
}

func decodeSession(data []byte) (model.Session, error) {
	var s model.Session
	err := decode(data, &s)
	return s, err
}

func encodeGenome(g eval.Genome) ([]byte, error) {
	return encode(g)
}

func decodeGenome(data []byte) (eval.Genome, error) {
	var g eval.Genome
	err := decode(data, &g)
	return g, err
}

func encode(v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Version: codecVersion, Payload: payload})
}

func decode(data []byte, v any) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if env.Version != codecVersion {
		return fmt.Errorf("unsupported payload version %d", env.Version)
	}
	return json.Unmarshal(env.Payload, v)
}
