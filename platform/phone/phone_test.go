package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	n := NewNormalizer("")
	if n.Region() != DefaultRegion {
		t.Fatalf("unexpected default region %q", n.Region())
	}

	tests := map[string]string{
		"06 12345678":     "+31612345678",
		"+44 7911 123456": "+447911123456",
		"  not a number":  "not a number",
		"":                "",
	}

	for input, want := range tests {
		if got := n.NormalizeE164(input); got != want {
			t.Fatalf("NormalizeE164(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeE164UsesConfiguredRegion(t *testing.T) {
	n := NewNormalizer(" br ")
	if got := n.NormalizeE164("(11) 91234-5678"); got != "+5511912345678" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		digits string
		region string
		code   int
	}{
		{digits: "5511912345678", region: "BR", code: 55},
		{digits: "447911123456", region: "GB", code: 44},
		{digits: "31612345678", region: "NL", code: 31},
	}

	for _, tt := range tests {
		info := Lookup(tt.digits)
		if info.Region != tt.region || info.CountryCode != tt.code {
			t.Fatalf("Lookup(%q) = %+v", tt.digits, info)
		}
		if info.E164 != "+"+tt.digits {
			t.Fatalf("Lookup(%q).E164 = %q", tt.digits, info.E164)
		}
	}

	if info := Lookup(""); info != (Info{}) {
		t.Fatalf("expected empty info, got %+v", info)
	}
}
