package observability

import (
	"reflect"
	"testing"
)

func TestParseHeaders(t *testing.T) {
	got := parseHeaders(" api-key = abc , broken, =x, team=meals ")
	want := map[string]string{"api-key": "abc", "team": "meals"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseHeaders: want=%v got=%v", want, got)
	}
	if got := parseHeaders(""); got != nil {
		t.Fatalf("parseHeaders empty: want=nil got=%v", got)
	}
}

func TestClampRatio(t *testing.T) {
	for in, want := range map[float64]float64{-1: 0, 0.25: 0.25, 3: 1} {
		if got := clampRatio(in); got != want {
			t.Fatalf("clampRatio(%v): want=%v got=%v", in, want, got)
		}
	}
}
