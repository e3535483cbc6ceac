// Package cakeys holds the static table of Certification Authority public
// keys a terminal trusts, indexed by (RID, index). The table is a
// build-time data artifact: it is embedded from keys.yaml and decoded once
// at package initialisation, never read from disk at runtime, while still
// using this module's ordinary YAML configuration tooling.
package cakeys

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	_ "embed"

	"gopkg.in/yaml.v3"
)

// Key is one CA public key descriptor: immutable for the life of the
// process.
type Key struct {
	RID      [5]byte
	Index    byte
	Expiry   time.Time
	Exponent *big.Int
	Modulus  *big.Int
}

// UnknownCAKeyError reports a (RID, index) pair absent from the table.
type UnknownCAKeyError struct {
	RID   [5]byte
	Index byte
}

func (e *UnknownCAKeyError) Error() string {
	return fmt.Sprintf("unknown CA key: RID %s index 0x%02X", hex.EncodeToString(e.RID[:]), e.Index)
}

//go:embed keys.yaml
var keysYAML []byte

type rawTable struct {
	Keys []rawEntry `yaml:"keys"`
}

type rawEntry struct {
	RID      string `yaml:"rid"`
	Index    string `yaml:"index"`
	Expiry   string `yaml:"expiry"`
	Exponent int64  `yaml:"exponent"`
	Modulus  string `yaml:"modulus"`
}

type tableKey [6]byte

var table = build()

func build() map[tableKey]Key {
	var raw rawTable
	dec := yaml.NewDecoder(bytes.NewReader(keysYAML))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		panic(fmt.Sprintf("cakeys: embedded key table is invalid: %v", err))
	}
	out := make(map[tableKey]Key, len(raw.Keys))
	for _, e := range raw.Keys {
		k, err := parseEntry(e)
		if err != nil {
			panic(fmt.Sprintf("cakeys: entry rid=%s index=%s: %v", e.RID, e.Index, err))
		}
		out[keyOf(k.RID, k.Index)] = k
	}
	return out
}

func parseEntry(e rawEntry) (Key, error) {
	ridBytes, err := hex.DecodeString(e.RID)
	if err != nil || len(ridBytes) != 5 {
		return Key{}, fmt.Errorf("rid must be 5 hex bytes: %w", err)
	}
	indexByte, err := hex.DecodeString(e.Index)
	if err != nil || len(indexByte) != 1 {
		return Key{}, fmt.Errorf("index must be 1 hex byte: %w", err)
	}
	modulusHex := strings.Join(strings.Fields(e.Modulus), "")
	modulusBytes, err := hex.DecodeString(modulusHex)
	if err != nil {
		return Key{}, fmt.Errorf("modulus must be hex: %w", err)
	}
	expiry, err := time.Parse("2006-01-02", e.Expiry)
	if err != nil {
		return Key{}, fmt.Errorf("expiry must be YYYY-MM-DD: %w", err)
	}
	var rid [5]byte
	copy(rid[:], ridBytes)
	return Key{
		RID:      rid,
		Index:    indexByte[0],
		Expiry:   expiry,
		Exponent: big.NewInt(e.Exponent),
		Modulus:  new(big.Int).SetBytes(modulusBytes),
	}, nil
}

func keyOf(rid [5]byte, index byte) tableKey {
	var k tableKey
	copy(k[:5], rid[:])
	k[5] = index
	return k
}

// Lookup returns the CA key registered for (rid, index), or
// *UnknownCAKeyError if the process does not trust that RID/index pair.
func Lookup(rid [5]byte, index byte) (Key, error) {
	k, ok := table[keyOf(rid, index)]
	if !ok {
		return Key{}, &UnknownCAKeyError{RID: rid, Index: index}
	}
	return k, nil
}
