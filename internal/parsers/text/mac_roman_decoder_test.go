package text

import "testing"

func TestDecodeMacRomanDecomposed(t *testing.T) {
	// "\x04Caf\x8E" — Pascal length byte already stripped, payload is
	// "Caf" followed by MacRoman 0x8E ('é').
	data := []byte{'C', 'a', 'f', 0x8E}
	got, err := DecodeMacRomanDecomposed(data)
	if err != nil {
		t.Fatalf("DecodeMacRomanDecomposed: %v", err)
	}
	want := "Café" // "Cafe" + combining acute accent (U+0301)
	if got != want {
		t.Fatalf("got %q (%U), want %q (%U)", got, []rune(got), want, []rune(want))
	}
}

func TestDecodeMacRomanPlainASCII(t *testing.T) {
	got, err := DecodeMacRoman([]byte("README"))
	if err != nil {
		t.Fatalf("DecodeMacRoman: %v", err)
	}
	if got != "README" {
		t.Fatalf("got %q, want README", got)
	}
}

func TestDecompose(t *testing.T) {
	if got := Decompose("Ö"); got != "Ö" {
		t.Fatalf("Decompose(Ö) = %q, want O + combining diaeresis", got)
	}
	if got := Decompose("plain"); got != "plain" {
		t.Fatalf("Decompose(plain) = %q, want unchanged", got)
	}
}

func TestUTF16RoundTrip(t *testing.T) {
	units := EncodeHFSUniStr255("héllo")
	got := DecodeHFSUniStr255(units)
	if got != "héllo" {
		t.Fatalf("round trip = %q, want héllo", got)
	}
}
