package config

import (
	"strings"
	"testing"
	"time"
)

type envNested struct {
	On bool `env:"SAMPLE_ON"`
}

type envSample struct {
	Name     string        `env:"SAMPLE_NAME"`
	Workers  uint8         `env:"SAMPLE_WORKERS"`
	Ratio    float64       `env:"SAMPLE_RATIO"`
	Wait     time.Duration `env:"SAMPLE_WAIT"`
	Nested   envNested
	Untagged string
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SAMPLE_NAME", " spaced ")
	t.Setenv("SAMPLE_WORKERS", "8")
	t.Setenv("SAMPLE_RATIO", "0.25")
	t.Setenv("SAMPLE_WAIT", "1500ms")
	t.Setenv("SAMPLE_ON", "true")

	s := envSample{Untagged: "kept"}
	if err := applyEnv(&s); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}

	if s.Name != " spaced " {
		t.Errorf("expected strings to be taken verbatim, got %q", s.Name)
	}
	if s.Workers != 8 || s.Ratio != 0.25 || s.Wait != 1500*time.Millisecond {
		t.Errorf("unexpected numeric fields %+v", s)
	}
	if !s.Nested.On {
		t.Errorf("expected nested bool to be set")
	}
	if s.Untagged != "kept" {
		t.Errorf("untagged field changed to %q", s.Untagged)
	}
}

func TestApplyEnv_Errors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "Overflowing uint8", key: "SAMPLE_WORKERS", value: "300", wantErr: "SAMPLE_WORKERS"},
		{name: "Bad duration", key: "SAMPLE_WAIT", value: "later", wantErr: "invalid duration"},
		{name: "Bad bool", key: "SAMPLE_ON", value: "maybe", wantErr: "invalid boolean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			var s envSample
			err := applyEnv(&s)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}
