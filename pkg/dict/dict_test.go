package dict

import (
	"testing"

	"github.com/barnettlynn/emvsign/pkg/tlv"
)

func TestLookupKnownTags(t *testing.T) {
	cases := []struct {
		tag  tlv.Tag
		kind tlv.Kind
	}{
		{0x5A, tlv.KindDigitString},
		{0x82, tlv.KindBinary},
		{0x9F38, tlv.KindDOL},
		{0x70, tlv.KindTemplate},
	}
	for _, c := range cases {
		name, kind, ok := Default.Lookup(c.tag)
		if !ok {
			t.Fatalf("tag %s: expected to be found", c.tag)
		}
		if kind != c.kind {
			t.Fatalf("tag %s: kind = %v, want %v", c.tag, kind, c.kind)
		}
		if name == "" {
			t.Fatalf("tag %s: empty name", c.tag)
		}
	}
}

func TestLookupMissingTagDefaultsBinary(t *testing.T) {
	_, kind, ok := Default.Lookup(0xFFEE)
	if ok {
		t.Fatal("expected unknown tag to report ok=false")
	}
	if kind != tlv.KindBinary {
		t.Fatalf("kind = %v, want KindBinary default", kind)
	}
}
