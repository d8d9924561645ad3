package model

import "testing"

func TestFlockAddRemoveContains(t *testing.T) {
	f := NewFlock(Vec2{X: 1, Z: 2}, 7)
	if !f.Empty() {
		t.Fatal("new flock should be empty")
	}

	f.Add(1)
	f.Add(2)
	if f.Empty() {
		t.Fatal("flock with members should not be empty")
	}
	if !f.Contains(1) || !f.Contains(2) {
		t.Fatal("flock should contain added members")
	}

	f.Remove(1)
	if f.Contains(1) {
		t.Fatal("removed member should no longer be contained")
	}
	if !f.Contains(2) {
		t.Fatal("un-removed member should still be contained")
	}
}

func TestFlockMerge(t *testing.T) {
	a := NewFlock(Vec2{}, 1)
	a.Add(1)
	a.Add(2)

	b := NewFlock(Vec2{}, 1)
	b.Add(2)
	b.Add(3)

	a.Merge(b)
	for _, agent := range []AgentID{1, 2, 3} {
		if !a.Contains(agent) {
			t.Errorf("merged flock missing agent %d", agent)
		}
	}
}
