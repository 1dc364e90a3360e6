package keys

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerate_KeyLengthsAndUniqueness(t *testing.T) {
	pair1, err := Generate()
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	pair2, err := Generate()
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if len(pair1.PrivateKey) != 64 {
		t.Fatalf("private key hex length = %d, want 64", len(pair1.PrivateKey))
	}
	if len(pair1.PublicKey) != 66 {
		t.Fatalf("public key hex length = %d, want 66", len(pair1.PublicKey))
	}
	if pair1.PrivateKey == pair2.PrivateKey {
		t.Fatal("expected distinct private keys")
	}
}

func TestGenerate_PublicKeyMatchesPrivate(t *testing.T) {
	pair, err := Generate()
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	derived, err := PublicKeyFor(pair.PrivateKey)
	if err != nil {
		t.Fatalf("PublicKeyFor error: %v", err)
	}
	if derived != pair.PublicKey {
		t.Fatalf("derived public key %s does not match generated %s", derived, pair.PublicKey)
	}
}

func TestMnemonic_RoundTrip(t *testing.T) {
	pair, err := Generate()
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	mnemonic, err := Mnemonic(pair.PrivateKey)
	if err != nil {
		t.Fatalf("Mnemonic error: %v", err)
	}

	if words := len(strings.Fields(mnemonic)); words != 24 {
		t.Fatalf("mnemonic has %d words, want 24", words)
	}

	recovered, err := FromMnemonic(mnemonic)
	if err != nil {
		t.Fatalf("FromMnemonic error: %v", err)
	}
	if recovered.PrivateKey != pair.PrivateKey {
		t.Fatal("recovered private key does not match original")
	}
	if recovered.PublicKey != pair.PublicKey {
		t.Fatal("recovered public key does not match original")
	}
}

func TestMnemonic_RejectsBadPrivateKey(t *testing.T) {
	for _, input := range []string{"", "zz", "abcd", strings.Repeat("ab", 31)} {
		if _, err := Mnemonic(input); !errors.Is(err, ErrInvalidPrivateKey) {
			t.Fatalf("Mnemonic(%q): err = %v, want ErrInvalidPrivateKey", input, err)
		}
	}
}

func TestFromMnemonic_RejectsUnknownWords(t *testing.T) {
	if _, err := FromMnemonic("definitely not a valid recovery phrase"); err == nil {
		t.Fatal("expected error for invalid mnemonic")
	}
}

func TestParsePublicKey(t *testing.T) {
	pair, err := Generate()
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if _, err := ParsePublicKey(pair.PublicKey); err != nil {
		t.Fatalf("ParsePublicKey of valid key: %v", err)
	}

	if _, err := ParsePublicKey("not-hex"); err == nil {
		t.Fatal("expected error for non-hex input")
	}
	if _, err := ParsePublicKey("02ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"); err == nil {
		t.Fatal("expected error for point not on the curve")
	}
}

func TestPublicKeyFor_RejectsBadInput(t *testing.T) {
	if _, err := PublicKeyFor("abcd"); !errors.Is(err, ErrInvalidPrivateKey) {
		t.Fatalf("err = %v, want ErrInvalidPrivateKey", err)
	}
}
