package tokenizer

import (
	"reflect"
	"testing"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"simple lowercase", "hello world", []string{"hello", "world"}},
		{"with punctuation", "hello, world!", []string{"hello", "world"}},
		{"with numbers", "item123 test", []string{"item123", "test"}},
		{"leading/trailing spaces", "  hello world  ", []string{"hello", "world"}},
		{"multiple spaces between words", "hello   world", []string{"hello", "world"}},
		{"accented portuguese text", "Não é possível", []string{"não", "é", "possível"}},
		{"hyphenated words", "estado-da-arte", []string{"estado", "da", "arte"}},
		{"underscore kept as one token", "my_variable_name", []string{"my_variable_name"}},
		{"all caps folded to lower", "HELLO MUNDO", []string{"hello", "mundo"}},
		{"only symbols", "!@#$%^", []string{}},
		{"only numbers", "12345 67890", []string{"12345", "67890"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Words(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Words(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsWordToken(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"casa", true},
		{"não", true},
		{"", false},
		{"item123", false},
		{"my_variable_name", false},
		{"123", false},
		{"a1", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := IsWordToken(tt.token); got != tt.want {
				t.Errorf("IsWordToken(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}
