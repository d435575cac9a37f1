package search

import (
	"math/rand"
	"slices"
	"testing"
)

type unit struct {
	name string
	desc string
}

func unitKey(u unit) string { return u.name + " " + u.desc }

func names(items []unit) []string {
	out := make([]string, len(items))
	for i, u := range items {
		out[i] = u.name
	}
	return out
}

func TestReorder_FloatsMatches(t *testing.T) {
	items := []unit{
		{"a.service", "Alpha"},
		{"nginx.service", "web server"},
		{"b.service", "Beta"},
		{"nginx-exporter.service", "metrics"},
	}

	if !Reorder(items, "nginx", unitKey) {
		t.Fatal("Reorder returned false for non-empty query")
	}
	got := names(items)
	want := []string{"nginx.service", "nginx-exporter.service", "a.service", "b.service"}
	if !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestReorder_CaseInsensitiveAndTrimmed(t *testing.T) {
	items := []unit{{"cron.service", "daemon"}, {"sshd.service", "OpenSSH Daemon"}}

	Reorder(items, "  OPENSSH ", unitKey)
	if items[0].name != "sshd.service" {
		t.Fatalf("first = %q, want sshd.service", items[0].name)
	}
}

func TestReorder_EmptyQueryIsNoOp(t *testing.T) {
	for _, q := range []string{"", "   ", "\t"} {
		items := []unit{{"b", ""}, {"a", ""}}
		if Reorder(items, q, unitKey) {
			t.Fatalf("Reorder(%q) = true, want false", q)
		}
		if items[0].name != "b" {
			t.Fatalf("Reorder(%q) modified items: %v", q, names(items))
		}
	}
}

func TestReorder_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	words := []string{"nginx", "sshd", "cron", "NGINX-proxy", "docker", "dbus"}

	for trial := 0; trial < 100; trial++ {
		items := make([]unit, rng.Intn(20))
		for i := range items {
			items[i] = unit{name: words[rng.Intn(len(words))], desc: words[rng.Intn(len(words))]}
		}
		query := words[rng.Intn(len(words))][:2]

		Reorder(items, query, unitKey)
		once := slices.Clone(items)
		Reorder(items, query, unitKey)
		if !slices.Equal(once, items) {
			t.Fatalf("trial %d: second reorder changed order: %v -> %v", trial, names(once), names(items))
		}
	}
}

func TestReorder_PreservesMultiset(t *testing.T) {
	items := []unit{{"x", ""}, {"nginx", ""}, {"y", ""}, {"nginx", "2"}}
	before := names(items)
	Reorder(items, "nginx", unitKey)
	after := names(items)
	slices.Sort(before)
	slices.Sort(after)
	if !slices.Equal(before, after) {
		t.Fatalf("items changed: %v vs %v", before, after)
	}
}

func TestCount(t *testing.T) {
	items := []unit{{"nginx", ""}, {"sshd", ""}, {"x", "NGINX"}}
	if got := Count(items, "nginx", unitKey); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}
	if got := Count(items, " ", unitKey); got != 0 {
		t.Fatalf("Count(blank) = %d, want 0", got)
	}
	if len(items) != 3 || items[1].name != "sshd" {
		t.Fatalf("Count modified input: %v", names(items))
	}
}
