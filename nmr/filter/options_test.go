package filter

import (
	"errors"
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestNewZone(t *testing.T) {
	t.Parallel()

	z, err := NewZone(5, 2)
	if err != nil {
		t.Fatalf("NewZone: %v", err)
	}

	if z.From != 2 || z.To != 5 || z.ID == "" {
		t.Fatalf("zone = %+v, want ordered bounds and an id", z)
	}

	other, _ := NewZone(0, 1)
	if other.ID == z.ID {
		t.Fatal("zone ids must be unique")
	}

	for _, bad := range [][2]float64{{1, 1}, {math.NaN(), 1}, {0, math.Inf(1)}} {
		if _, err := NewZone(bad[0], bad[1]); !errors.Is(err, ErrInvalidZoneRange) {
			t.Errorf("NewZone(%v, %v) err = %v, want ErrInvalidZoneRange", bad[0], bad[1], err)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"zero filling ok", ZeroFillingOptions{NbPoints: 8}, nil},
		{"zero filling empty", ZeroFillingOptions{}, ErrInvalidOptions},
		{"apodization ok", ApodizationOptions{LineBroadening: 1}, nil},
		{"apodization negative gauss", ApodizationOptions{GaussBroadening: -1}, ErrInvalidOptions},
		{"apodization center", ApodizationOptions{LineBroadeningCenter: 2}, ErrInvalidOptions},
		{"phase nan", PhaseCorrectionOptions{Ph0: math.NaN()}, ErrInvalidOptions},
		{"phase exclusive modes", PhaseCorrectionOptions{Absolute: true, Auto: true}, ErrInvalidOptions},
		{"baseline degree", BaselineCorrectionOptions{Degree: 9}, ErrInvalidOptions},
		{"baseline algorithm", BaselineCorrectionOptions{Algorithm: "airpls"}, ErrInvalidOptions},
		{"baseline zone", BaselineCorrectionOptions{Degree: 2, Zones: []Zone{{From: 3, To: 3}}}, ErrInvalidZoneRange},
		{"shift inf", ShiftXOptions{Shift: math.Inf(-1)}, ErrInvalidOptions},
		{"exclusion inverted", ExclusionZonesOptions{Zones: []Zone{{From: 4, To: 1}}}, ErrInvalidZoneRange},
		{"signal scaling", SignalProcessingOptions{Scaling: "log"}, ErrInvalidOptions},
		{"signal one point", SignalProcessingOptions{NbPoints: 1}, ErrInvalidOptions},
		{"signal ok", SignalProcessingOptions{From: 0, To: 10, NbPoints: 64, Scaling: ScalingPareto}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}

				return
			}

			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeOptionsFromYAML(t *testing.T) {
	t.Parallel()

	src := []byte("lineBroadening: 0.5\ngaussBroadening: 2\nlineBroadeningCenter: 0.25\n")

	opts, err := DecodeOptions(Apodization, func(v any) error { return yaml.Unmarshal(src, v) })
	if err != nil {
		t.Fatalf("DecodeOptions: %v", err)
	}

	got, ok := opts.(ApodizationOptions)
	if !ok {
		t.Fatalf("DecodeOptions returned %T", opts)
	}

	want := ApodizationOptions{LineBroadening: 0.5, GaussBroadening: 2, LineBroadeningCenter: 0.25}
	if got != want {
		t.Fatalf("decoded %+v, want %+v", got, want)
	}

	if opts, err := DecodeOptions(FFT, nil); err != nil || opts.FilterName() != FFT {
		t.Fatalf("DecodeOptions(fft, nil) = %v, %v", opts, err)
	}

	if _, err := DecodeOptions("wavelet", nil); !errors.Is(err, ErrUnknownFilter) {
		t.Fatalf("err = %v, want ErrUnknownFilter", err)
	}
}

func TestEveryNameHasOptions(t *testing.T) {
	t.Parallel()

	for _, name := range DefaultRegistry().Names() {
		opts, err := DecodeOptions(name, nil)
		if err != nil {
			t.Fatalf("DecodeOptions(%s): %v", name, err)
		}

		if opts.FilterName() != name {
			t.Fatalf("DecodeOptions(%s) returned options for %s", name, opts.FilterName())
		}
	}
}
