package utils

import (
	"errors"
	"testing"
)

func TestParseID(t *testing.T) {
	cases := []struct {
		s       string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"-1", -1, false},
		{"0012", 12, false},
		{"9223372036854775807", 9223372036854775807, false},
		{"", 0, true},
		{"abc", 0, true},
		{" 42", 0, true},
		{"4.2", 0, true},
		{"9223372036854775808", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseID(tc.s)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidID) {
				t.Fatalf("ParseID(%q) err = %v; want ErrInvalidID", tc.s, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseID(%q) = %d, %v; want %d", tc.s, got, err, tc.want)
		}
	}
}
