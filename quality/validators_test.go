package quality

import (
	"strings"
	"testing"
)

func TestValidateLocationCode(t *testing.T) {
	cases := []struct {
		code string
		want bool
	}{
		{"USA", true},
		{"FRA", true},
		{"TCD", true},
		{"AFR", false}, // региональный агрегат
		{"EUR", false},
		{"GLOBAL", false},
		{"US", false},
		{"usa", false},
		{"U1A", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidateLocationCode(tc.code); got != tc.want {
			t.Errorf("ValidateLocationCode(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestValidateNumericValue(t *testing.T) {
	cases := []struct {
		raw    string
		value  float64
		ok     bool
		reason string
	}{
		{"82.5", 82.5, true, ""},
		{" 7 ", 7, true, ""},
		{"-0.3", -0.3, true, ""},
		{"", 0, false, "empty value"},
		{"   ", 0, false, "empty value"},
		{"NO DATA", 0, false, "no-data marker"},
		{"NaN", 0, false, "no-data marker"},
		{"abc", 0, false, "not a finite number"},
		{"1,5", 0, false, "not a finite number"},
	}
	for _, tc := range cases {
		value, ok, reason := ValidateNumericValue(tc.raw)
		if value != tc.value || ok != tc.ok || reason != tc.reason {
			t.Errorf("ValidateNumericValue(%q) = (%v, %v, %q), want (%v, %v, %q)",
				tc.raw, value, ok, reason, tc.value, tc.ok, tc.reason)
		}
	}
}

func TestValidateGeneratedBlock_Valid(t *testing.T) {
	block := strings.Join([]string{
		"    'CIV': {",
		"      name: 'Cote d\\'Ivoire',",
		"      indicators: {",
		"        'Life expectancy at birth (years)': 62.2,",
		"      }",
		"    },",
	}, "\n")

	if issues := ValidateGeneratedBlock(block); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestValidateGeneratedBlock_UnescapedApostrophe(t *testing.T) {
	block := "      name: 'Cote d'Ivoire',"

	issues := ValidateGeneratedBlock(block)
	if len(issues) == 0 {
		t.Fatal("expected an issue for unescaped apostrophe")
	}
	if issues[0].Line != 1 {
		t.Errorf("issue line = %d, want 1", issues[0].Line)
	}
	if !strings.Contains(issues[0].Message, "unterminated string literal") {
		t.Errorf("unexpected message: %s", issues[0].Message)
	}
}

func TestValidateGeneratedBlock_UnbalancedBraces(t *testing.T) {
	opened := "    'FRA': {\n      indicators: {\n      }"
	issues := ValidateGeneratedBlock(opened)
	if len(issues) != 1 || !strings.Contains(issues[0].Message, "unbalanced braces at end") {
		t.Fatalf("expected a single end-of-block issue, got %v", issues)
	}

	closedTooMany := "    }\n"
	issues = ValidateGeneratedBlock(closedTooMany)
	if len(issues) != 1 || !strings.Contains(issues[0].Message, "unbalanced closing brace") {
		t.Fatalf("expected a closing-brace issue, got %v", issues)
	}
	if issues[0].Line != 1 {
		t.Errorf("issue line = %d, want 1", issues[0].Line)
	}
}

func TestValidateGeneratedBlock_BracesInsideStrings(t *testing.T) {
	block := "      'Indicator {with braces}': 10.5,"
	if issues := ValidateGeneratedBlock(block); len(issues) != 0 {
		t.Fatalf("braces inside string literals must be ignored, got %v", issues)
	}
}
