package policy

import "testing"

func TestAllowListedSenderAllowed(t *testing.T) {
	g := NewGate([]string{"1376293325635850374"})
	if !g.IsAllowed("1376293325635850374") {
		t.Fatal("allow-listed identity should be allowed")
	}
	d := g.Evaluate("1376293325635850374")
	if !d.Allow || d.Reason != "allow_listed" {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestUnknownSenderDenied(t *testing.T) {
	g := NewGate([]string{"alice"})
	d := g.Evaluate("mallory")
	if d.Allow {
		t.Fatal("identity outside allow-list should be denied")
	}
	if d.Reason != "sender_not_authorized: mallory" {
		t.Fatalf("unexpected reason: %s", d.Reason)
	}
}

func TestEmptyGateDeniesEveryone(t *testing.T) {
	g := NewGate(nil)
	if g.IsAllowed("") || g.IsAllowed("alice") {
		t.Fatal("empty allow-list must deny everyone")
	}
}

func TestNilGateDenies(t *testing.T) {
	var g *Gate
	if g.IsAllowed("alice") {
		t.Fatal("nil gate must deny")
	}
	if g.Size() != 0 {
		t.Fatal("nil gate should report size 0")
	}
}

func TestBlankEntriesIgnored(t *testing.T) {
	g := NewGate([]string{" ", "", " bob "})
	if g.Size() != 1 {
		t.Fatalf("expected 1 entry, got %d", g.Size())
	}
	if !g.IsAllowed("bob") {
		t.Fatal("trimmed entry should be allowed")
	}
}

func TestGateIgnoresLaterSliceMutation(t *testing.T) {
	ids := []string{"alice"}
	g := NewGate(ids)
	ids[0] = "mallory"
	if g.IsAllowed("mallory") || !g.IsAllowed("alice") {
		t.Fatal("gate must not alias the caller's slice")
	}
}
