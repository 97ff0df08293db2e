package discord

import (
	"encoding/json"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestActorIDGuildContext(t *testing.T) {
	i := &Interaction{
		Context: intPtr(ContextGuild),
		Member:  &Member{User: &User{ID: "member-id"}},
		User:    &User{ID: "dm-id"},
	}
	if got := i.ActorID(); got != "member-id" {
		t.Fatalf("guild context: got %q", got)
	}
}

func TestActorIDDMContext(t *testing.T) {
	i := &Interaction{
		Context: intPtr(2),
		User:    &User{ID: "dm-id"},
	}
	if got := i.ActorID(); got != "dm-id" {
		t.Fatalf("dm context: got %q", got)
	}
}

func TestActorIDMissingContextFallsBack(t *testing.T) {
	i := &Interaction{Member: &Member{User: &User{ID: "member-id"}}}
	if got := i.ActorID(); got != "member-id" {
		t.Fatalf("fallback: got %q", got)
	}
	if got := (&Interaction{}).ActorID(); got != "" {
		t.Fatalf("empty interaction: got %q", got)
	}
}

func TestOptionHelpers(t *testing.T) {
	raw := []byte(`{
		"name": "roll",
		"options": [
			{"name": "sides", "type": 4, "value": 20},
			{"name": "wager", "type": 3, "value": "lunch"}
		]
	}`)
	var d InteractionData
	if err := json.Unmarshal(raw, &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if n, ok := d.IntOption("sides"); !ok || n != 20 {
		t.Fatalf("IntOption(sides): %d %v", n, ok)
	}
	if s, ok := d.StringOption("wager"); !ok || s != "lunch" {
		t.Fatalf("StringOption(wager): %q %v", s, ok)
	}
	if _, ok := d.IntOption("desired"); ok {
		t.Fatal("IntOption(desired) should be absent")
	}
	// Type confusion is reported as absence, not a bogus value.
	if _, ok := d.IntOption("wager"); ok {
		t.Fatal("IntOption over a string option should fail")
	}
}
