package utils

import (
	"reflect"
	"testing"
)

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  BA 2   KHA  9133 "); got != "BA 2 KHA 9133" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestSplitSeatList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"5A", []string{"5A"}},
		{"5a, 5b;6c", []string{"5A", "5B", "6C"}},
		{" 1A ,, ; \n 2B ", []string{"1A", "2B"}},
		{"", []string{}},
		{" , ; ", []string{}},
	}
	for _, tc := range cases {
		if got := SplitSeatList(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("SplitSeatList(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
