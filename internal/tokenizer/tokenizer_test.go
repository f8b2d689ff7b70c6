package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{"empty", "", nil},
		{"single word", "hello", []Token{{"hello", 0}}},
		{
			"the fox can't catch the chicken",
			"The Fox CAN'T CATCH the Chicken.",
			[]Token{
				{"the", 0}, {"fox", 4}, {"can", 8}, {"t", 12},
				{"catch", 14}, {"the", 20}, {"chicken", 24},
			},
		},
		{"leading and trailing punctuation", "...hi...", []Token{{"hi", 3}}},
		{"digits are boundaries, not letters", "item123 test", []Token{
			{"item", 0}, {"test", 8},
		}},
		{"run to end of input", "catdog", []Token{{"catdog", 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize([]byte(tt.input))
			if err != nil {
				t.Fatalf("Tokenize(%q) returned error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeRejectsNonASCII(t *testing.T) {
	for _, input := range [][]byte{
		{0x00, 'a'},
		{'a', 0x80},
		{'a', 0xFF, 'b'},
	} {
		if _, err := Tokenize(input); err == nil {
			t.Errorf("Tokenize(%v) expected an error, got none", input)
		}
	}
}

func TestPositionsGroupsByWord(t *testing.T) {
	tokens, err := Tokenize([]byte("dog cat dog"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := Positions(tokens)
	want := map[string][]uint32{
		"dog": {0, 8},
		"cat": {4},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Positions() = %v, want %v", got, want)
	}
}
