package container

import (
	"testing"
)

type step struct {
	name string
}

func TestChain_UseRemove(t *testing.T) {
	a, b, c := &step{"a"}, &step{"b"}, &step{"c"}
	chain := NewChain(a, b)
	chain.Use(c)

	if chain.Len() != 3 {
		t.Fatalf("want 3, got %d", chain.Len())
	}

	if !chain.Remove(b) {
		t.Fatal("want true, got false")
	}

	if chain.Remove(b) {
		t.Fatal("want false, got true")
	}

	var names []string
	chain.Range(func(index int, item *step) (handled bool) {
		names = append(names, item.name)
		return false
	})

	if len(names) != 2 || names[0] != "a" || names[1] != "c" {
		t.Fatalf("want [a c], got %v", names)
	}
}

func TestChain_RangeStops(t *testing.T) {
	chain := NewChain(1, 2, 3, 4)

	visited := 0
	chain.Range(func(index int, item int) (handled bool) {
		visited++
		return item == 2
	})

	if visited != 2 {
		t.Fatalf("want 2, got %d", visited)
	}
}

func TestChain_SnapshotDuringUse(t *testing.T) {
	chain := NewChain[int]()
	chain.Use(1)

	visited := 0
	chain.Range(func(index int, item int) (handled bool) {
		chain.Use(item + 1)
		visited++
		return false
	})

	if visited != 1 {
		t.Fatalf("want 1, got %d", visited)
	}

	if chain.Len() != 2 {
		t.Fatalf("want 2, got %d", chain.Len())
	}
}
