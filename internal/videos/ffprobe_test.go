package videos

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFFProbeProberParsesDuration(t *testing.T) {
	var gotBinary string
	var gotArgs []string

	prober := NewFFProbeProber("ffprobe", time.Second)
	prober.Run = func(ctx context.Context, binary string, args ...string) ([]byte, error) {
		gotBinary = binary
		gotArgs = args
		return []byte(`{"format": {"duration": "123.456"}}`), nil
	}

	duration, err := prober.Probe(context.Background(), "/tmp/clip.mp4")
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if duration != 123.456 {
		t.Fatalf("unexpected duration %v", duration)
	}
	if gotBinary != "ffprobe" {
		t.Fatalf("unexpected binary %q", gotBinary)
	}
	if len(gotArgs) == 0 || gotArgs[len(gotArgs)-1] != "/tmp/clip.mp4" {
		t.Fatalf("expected path as final argument, got %v", gotArgs)
	}
}

func TestFFProbeProberErrors(t *testing.T) {
	cases := []struct {
		name   string
		output []byte
		err    error
	}{
		{"commandFailure", nil, errors.New("exit status 1")},
		{"malformedJSON", []byte("{"), nil},
		{"missingDuration", []byte(`{"format": {}}`), nil},
		{"unparsableDuration", []byte(`{"format": {"duration": "n/a"}}`), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prober := NewFFProbeProber("ffprobe", time.Second)
			prober.Run = func(context.Context, string, ...string) ([]byte, error) {
				return tc.output, tc.err
			}

			if _, err := prober.Probe(context.Background(), "/tmp/clip.mp4"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestFFProbeProberNilReceiver(t *testing.T) {
	var prober *FFProbeProber
	if _, err := prober.Probe(context.Background(), "/tmp/clip.mp4"); !errors.Is(err, ErrProberUnavailable) {
		t.Fatalf("expected ErrProberUnavailable, got %v", err)
	}
}

func TestNewFFProbeProberDefaults(t *testing.T) {
	prober := NewFFProbeProber("", 0)
	if prober.Binary != "ffprobe" {
		t.Fatalf("expected default binary, got %q", prober.Binary)
	}
	if prober.Timeout <= 0 {
		t.Fatalf("expected positive default timeout, got %v", prober.Timeout)
	}
}
