package destination

import (
	"encoding/json"
	"testing"
)

func TestMethod_String(t *testing.T) {
	if MethodPush.String() != "push" || MethodSheet.String() != "sheet" || MethodCover.String() != "cover" {
		t.Error("method string representations are wrong")
	}
	if Method(99).String() != "unknown" {
		t.Error("out-of-range method should stringify as unknown")
	}
}

func TestMethod_TextRoundTrip(t *testing.T) {
	for _, m := range []Method{MethodPush, MethodSheet, MethodCover} {
		text, err := m.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) failed: %v", m, err)
		}
		var got Method
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) failed: %v", text, err)
		}
		if got != m {
			t.Errorf("round trip changed method: %v -> %v", m, got)
		}
	}

	var m Method
	if err := m.UnmarshalText([]byte("popover")); err == nil {
		t.Error("unknown method text should fail to unmarshal")
	}
	if _, err := Method(99).MarshalText(); err == nil {
		t.Error("out-of-range method should fail to marshal")
	}
}

type pageID struct {
	Slug string `json:"slug"`
}

func TestDestination_Equal(t *testing.T) {
	a := New("page", pageID{Slug: "home"})
	b := New("page", pageID{Slug: "home"})
	c := New("page", pageID{Slug: "settings"})

	if !a.Equal(b) {
		t.Error("identical destinations should be equal")
	}
	if a.Equal(c) {
		t.Error("destinations with different payloads should differ")
	}
	if a.Equal(Sheet("page", pageID{Slug: "home"})) {
		t.Error("destinations with different methods should differ")
	}
	if a.Equal(New("other", pageID{Slug: "home"})) {
		t.Error("destinations with different tags should differ")
	}
}

func TestRawPayload_MarshalJSON(t *testing.T) {
	rp := RawPayload{Tag: "mystery", Data: json.RawMessage(`{"a":1}`)}
	out, err := json.Marshal(rp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `{"a":1}` {
		t.Errorf("raw payload should round-trip bytes, got %s", out)
	}

	empty, err := json.Marshal(RawPayload{Tag: "empty"})
	if err != nil {
		t.Fatalf("marshal of empty raw payload failed: %v", err)
	}
	if string(empty) != "null" {
		t.Errorf("empty raw payload should marshal as null, got %s", empty)
	}
}
