package hasher

import (
	"bytes"
	"testing"
)

func TestContentHash_Length(t *testing.T) {
	data := []byte("placeholder")
	if got := ContentHash(data, 8); len(got) != 8 {
		t.Errorf("len = %d", len(got))
	}
	if got := ContentHash(data, 0); len(got) != 16 {
		t.Errorf("full len = %d", len(got))
	}
	if got := ContentHash(data, 99); len(got) != 16 {
		t.Errorf("oversized len = %d", len(got))
	}
}

func TestContentHash_Empty(t *testing.T) {
	// xxHash64 of the empty input with seed 0.
	if got := ContentHash(nil, 0); got != "ef46db3751d8e999" {
		t.Errorf("got %s", got)
	}
}

func TestContentHashReader_MatchesBytes(t *testing.T) {
	data := bytes.Repeat([]byte("abc"), 10000)
	got, err := ContentHashReader(bytes.NewReader(data), 16)
	if err != nil {
		t.Fatal(err)
	}
	if want := ContentHash(data, 16); got != want {
		t.Errorf("reader %s != bytes %s", got, want)
	}
}

func TestFingerprint_Sensitivity(t *testing.T) {
	data := []byte("image bytes")
	base := Params{ComponentsX: 4, ComponentsY: 3, SampleSize: 64, Punch: 1, PreviewW: 32, Formats: []string{"png"}}
	ref := Fingerprint(data, base)

	if Fingerprint(data, base) != ref {
		t.Fatal("fingerprint not deterministic")
	}

	variants := []Params{base, base, base, base, base}
	variants[0].ComponentsX = 5
	variants[1].SampleSize = 32
	variants[2].Punch = 1.5
	variants[3].Formats = []string{"jpeg"}
	variants[4].PreviewW = 0
	for i, p := range variants {
		if Fingerprint(data, p) == ref {
			t.Errorf("variant %d: fingerprint unchanged", i)
		}
	}
	if Fingerprint([]byte("other bytes"), base) == ref {
		t.Error("different data, same fingerprint")
	}
}
