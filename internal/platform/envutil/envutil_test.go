package envutil

import (
	"reflect"
	"testing"
	"time"
)

func TestReaders(t *testing.T) {
	t.Setenv("EU_STR", "  value ")
	t.Setenv("EU_INT", "42")
	t.Setenv("EU_BAD_INT", "4x")
	t.Setenv("EU_FLOAT", "0.75")
	t.Setenv("EU_BOOL", "off")
	t.Setenv("EU_SECS", "90")
	t.Setenv("EU_NEG_SECS", "-1")
	t.Setenv("EU_LIST", " a, ,b ,")

	if got := String("EU_STR", "d"); got != "value" {
		t.Fatalf("String: %q", got)
	}
	if got := String("EU_MISSING", "d"); got != "d" {
		t.Fatalf("String default: %q", got)
	}
	if got := Int("EU_INT", 1); got != 42 {
		t.Fatalf("Int: %d", got)
	}
	if got := Int("EU_BAD_INT", 1); got != 1 {
		t.Fatalf("Int fallback: %d", got)
	}
	if got := Float("EU_FLOAT", 0); got != 0.75 {
		t.Fatalf("Float: %v", got)
	}
	if got := Bool("EU_BOOL", true); got {
		t.Fatal("Bool: want false")
	}
	if got := Bool("EU_MISSING", true); !got {
		t.Fatal("Bool default: want true")
	}
	if got := Seconds("EU_SECS", time.Second); got != 90*time.Second {
		t.Fatalf("Seconds: %v", got)
	}
	if got := Seconds("EU_NEG_SECS", time.Second); got != time.Second {
		t.Fatalf("Seconds fallback: %v", got)
	}
	if got := List("EU_LIST", nil); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("List: %v", got)
	}
	if got := List("EU_MISSING", []string{"x"}); !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("List default: %v", got)
	}
}
