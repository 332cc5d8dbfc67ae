package errors

import "testing"

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Alice", false},
		{"unicode", "Zoë ☕", false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"control", "Al\x00ice", true},
		{"newline", "Al\nice", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLink(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"https", "https://github.com/alice", false},
		{"http", "http://ko-fi.com/bob", false},
		{"javascript", "javascript:alert(1)", true},
		{"relative", "/alice", true},
		{"no host", "https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLink(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLink(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidLink) {
				t.Errorf("ValidateLink(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidLink)
			}
		})
	}
}

func TestValidateAvatarRef(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Code
	}{
		{"url", "https://github.com/alice.png?size=64", ""},
		{"local path", "img/avatars/bob.png", ""},
		{"empty", "", ErrCodeMissingAvatar},
		{"bad scheme url", "https:///nohost.png", ErrCodeInvalidLink},
		{"control chars", "img/\x00.png", ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAvatarRef(tt.input)
			if got := GetCode(err); got != tt.want {
				t.Errorf("ValidateAvatarRef(%q) code = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
