package passwords

import (
	"strings"
	"testing"
)

func TestGenerate_LengthAndClasses(t *testing.T) {
	pw, err := Generate(GeneratorOptions{Length: 20, Upper: true, Lower: true, Digits: true, Symbols: true})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(pw) != 20 {
		t.Fatalf("want length 20, got %d", len(pw))
	}
	for name, class := range map[string]string{
		"upper": charsUpper, "lower": charsLower, "digit": charsDigits, "symbol": charsSymbol,
	} {
		if !strings.ContainsAny(pw, class) {
			t.Fatalf("password %q contains no %s character", pw, name)
		}
	}
}

func TestGenerate_RespectsDisabledClasses(t *testing.T) {
	pw, err := Generate(GeneratorOptions{Length: 16, Lower: true, Digits: true})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if strings.ContainsAny(pw, charsUpper) || strings.ContainsAny(pw, charsSymbol) {
		t.Fatalf("password %q contains characters from disabled classes", pw)
	}
}

func TestGenerate_NoClassesSelected(t *testing.T) {
	if _, err := Generate(GeneratorOptions{Length: 16}); err == nil {
		t.Fatal("expected an error with no character classes")
	}
}

func TestGenerate_LengthBounds(t *testing.T) {
	if _, err := Generate(GeneratorOptions{Length: 2, Lower: true}); err == nil {
		t.Fatal("expected an error for too-short length")
	}
	if _, err := Generate(GeneratorOptions{Length: 500, Lower: true}); err == nil {
		t.Fatal("expected an error for too-long length")
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	a, err := Generate(GeneratorOptions{Length: 24, Upper: true, Lower: true, Digits: true})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	b, err := Generate(GeneratorOptions{Length: 24, Upper: true, Lower: true, Digits: true})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if a == b {
		t.Fatal("two generated passwords were identical")
	}
}
