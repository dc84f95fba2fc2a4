package destination

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"
)

type settingsPayload struct {
	Section string `json:"section"`
}

func settingsFactory() any {
	return &settingsPayload{}
}

func TestRegistry_Register_Success(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register(&Registration{
		Factory:     settingsFactory,
		Tag:         "settings",
		Description: "Settings page destination",
	})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	if !registry.Known("settings") {
		t.Error("registered tag should be known")
	}
	if registry.Known("other") {
		t.Error("unregistered tag should not be known")
	}
}

func TestRegistry_Register_Validation(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name         string
		registration *Registration
		expectError  string
	}{
		{
			name:         "nil registration",
			registration: nil,
			expectError:  "registration",
		},
		{
			name:         "nil factory",
			registration: &Registration{Tag: "settings"},
			expectError:  "factory",
		},
		{
			name:         "empty tag",
			registration: &Registration{Factory: settingsFactory},
			expectError:  "tag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.Register(tt.registration)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.expectError) {
				t.Errorf("error %q should mention %q", err.Error(), tt.expectError)
			}
		})
	}
}

func TestRegistry_Register_Duplicate(t *testing.T) {
	registry := NewRegistry()

	reg := &Registration{Factory: settingsFactory, Tag: "settings"}
	if err := registry.Register(reg); err != nil {
		t.Fatalf("first Register() failed: %v", err)
	}
	if err := registry.Register(reg); err == nil {
		t.Error("duplicate registration should fail")
	}
}

func TestRegistry_CreatePayload(t *testing.T) {
	registry := NewRegistry()
	_ = registry.Register(&Registration{Factory: settingsFactory, Tag: "settings"})

	payload := registry.CreatePayload("settings")
	if _, ok := payload.(*settingsPayload); !ok {
		t.Errorf("expected *settingsPayload, got %T", payload)
	}

	if registry.CreatePayload("missing") != nil {
		t.Error("unknown tag should create nil payload")
	}
}

func TestRegistry_DecodePayload(t *testing.T) {
	registry := NewRegistry()
	_ = registry.Register(&Registration{Factory: settingsFactory, Tag: "settings"})

	decoded, err := registry.DecodePayload("settings", json.RawMessage(`{"section":"audio"}`))
	if err != nil {
		t.Fatalf("DecodePayload() failed: %v", err)
	}
	sp, ok := decoded.(*settingsPayload)
	if !ok {
		t.Fatalf("expected *settingsPayload, got %T", decoded)
	}
	if sp.Section != "audio" {
		t.Errorf("decoded section = %q, want audio", sp.Section)
	}

	// Unknown tags fall back to RawPayload with the original bytes.
	raw, err := registry.DecodePayload("mystery", json.RawMessage(`{"keep":"me"}`))
	if err != nil {
		t.Fatalf("DecodePayload() for unknown tag failed: %v", err)
	}
	rp, ok := raw.(RawPayload)
	if !ok {
		t.Fatalf("expected RawPayload fallback, got %T", raw)
	}
	if string(rp.Data) != `{"keep":"me"}` {
		t.Errorf("raw payload bytes not preserved: %s", rp.Data)
	}

	// Malformed JSON for a known tag is an error.
	if _, err := registry.DecodePayload("settings", json.RawMessage(`{`)); err == nil {
		t.Error("malformed payload JSON should fail for a known tag")
	}
}

func TestRegistry_List(t *testing.T) {
	registry := NewRegistry()
	_ = registry.Register(&Registration{Factory: settingsFactory, Tag: "zeta"})
	_ = registry.Register(&Registration{Factory: settingsFactory, Tag: "alpha"})

	tags := registry.List()
	if len(tags) != 2 || tags[0] != "alpha" || tags[1] != "zeta" {
		t.Errorf("List() = %v, want sorted [alpha zeta]", tags)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewRegistry()
	_ = registry.Register(&Registration{Factory: settingsFactory, Tag: "settings"})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				registry.Known("settings")
				registry.CreatePayload("settings")
				registry.List()
			}
		}()
	}
	wg.Wait()
}
