package lexer

import "testing"

func kinds(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestTokenize_Number(t *testing.T) {
	toks, err := Tokenize("42.5")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if len(toks) != 2 || toks[0].Kind != Number || toks[0].Value != 42.5 {
		t.Fatalf("Tokenize(42.5) = %+v", toks)
	}
}

func TestTokenize_ThousandsSeparators(t *testing.T) {
	tests := []struct {
		src  string
		want float64
	}{
		{"1,000", 1000},
		{"1_000_000", 1000000},
		{"1,000.50", 1000.5},
	}
	for _, tt := range tests {
		toks, err := Tokenize(tt.src)
		if err != nil {
			t.Fatalf("Tokenize(%q) failed: %v", tt.src, err)
		}
		if toks[0].Value != tt.want {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.src, toks[0].Value, tt.want)
		}
	}
}

func TestTokenize_CommaAsArgumentSeparator(t *testing.T) {
	toks, err := Tokenize("sum(1,2)")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	// ident "sum", (, number 1, comma, number 2, ), EOF
	want := []Kind{Ident, LParen, Number, Comma, Number, RParen, EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("Tokenize(\"sum(1,2)\") kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d kind = %v, want %v", i, got[i], want[i])
		}
	}
	if toks[2].Value != 1 || toks[4].Value != 2 {
		t.Errorf("Tokenize(\"sum(1,2)\") values = %v, %v, want 1, 2", toks[2].Value, toks[4].Value)
	}
}

func TestTokenize_ScientificNotation(t *testing.T) {
	toks, err := Tokenize("1.5e3")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if toks[0].Value != 1500 {
		t.Errorf("Tokenize(1.5e3) = %v, want 1500", toks[0].Value)
	}
}

func TestTokenize_CurrencySymbol(t *testing.T) {
	toks, err := Tokenize("$100")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if toks[0].Kind != Ident || toks[0].Text != "$" {
		t.Fatalf("Tokenize(\"$100\")[0] = %+v, want Ident \"$\"", toks[0])
	}
	if toks[1].Kind != Number || toks[1].Value != 100 {
		t.Fatalf("Tokenize(\"$100\")[1] = %+v, want Number 100", toks[1])
	}
}

func TestTokenize_Percent(t *testing.T) {
	toks, err := Tokenize("20%")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if toks[1].Kind != Percent {
		t.Errorf("Tokenize(\"20%%\")[1].Kind = %v, want Percent", toks[1].Kind)
	}
}

func TestTokenize_Comment(t *testing.T) {
	toks, err := Tokenize("5 + 5 # running total")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	last := toks[len(toks)-2]
	if last.Kind != Comment {
		t.Fatalf("trailing token kind = %v, want Comment", last.Kind)
	}
}

func TestTokenize_UnicodeIdentifier(t *testing.T) {
	toks, err := Tokenize("café = 5")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if toks[0].Kind != Ident || toks[0].Text != "café" {
		t.Fatalf("Tokenize(\"café = 5\")[0] = %+v", toks[0])
	}
}

func TestTokenize_UnexpectedCharacter(t *testing.T) {
	_, err := Tokenize("5 @ 3")
	if err == nil {
		t.Fatal("Tokenize(\"5 @ 3\") succeeded, want error")
	}
}
