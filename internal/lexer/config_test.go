package lexer

import (
	"errors"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{"default", func(c *Config) {}, ""},
		{"semicolon and single quote", func(c *Config) { c.Sep, c.Quote = ';', '\'' }, ""},
		{"zero buffer", func(c *Config) { c.BufferSize = 0 }, "BufferSize"},
		{"negative buffer", func(c *Config) { c.BufferSize = -1 }, "BufferSize"},
		{"negative limit", func(c *Config) { c.MaxBufferSize = -1 }, "MaxBufferSize"},
		{"limit below buffer", func(c *Config) { c.MaxBufferSize = 10 }, "MaxBufferSize"},
		{"limit equal to buffer", func(c *Config) { c.BufferSize, c.MaxBufferSize = 8, 8 }, ""},
		{"quote equals sep", func(c *Config) { c.Quote = ',' }, "FieldSep"},
		{"lf sep", func(c *Config) { c.Sep = '\n' }, "FieldSep"},
		{"cr quote", func(c *Config) { c.Quote = '\r' }, "QuoteChar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if ce.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ce.Field, tt.wantField)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("ConfigError does not match ErrInvalidConfig")
			}
		})
	}
}

func TestParseError_Error(t *testing.T) {
	err := parseError(3, ErrIllegalQuoting)
	if got, want := err.Error(), "parse error on line 3: illegal quoting"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrIllegalQuoting) {
		t.Error("ParseError does not unwrap to its cause")
	}
}

func TestField(t *testing.T) {
	if !NilField().IsNil() {
		t.Error("NilField() is not nil")
	}
	if v, ok := TextField("").Value(); !ok || v != "" {
		t.Errorf("TextField(\"\").Value() = %q, %v", v, ok)
	}
	if got := (Row{TextField("a"), NilField(), TextField("")}).Strings(); len(got) != 3 || got[0] != "a" || got[1] != "" {
		t.Errorf("Strings() = %q", got)
	}
	if got := NilField().GoString(); got != "nil" {
		t.Errorf("GoString() = %q, want nil", got)
	}
}
