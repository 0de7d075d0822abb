package models

import "testing"

func msg(id string, parentID *string) Message {
	return Message{ID: id, ChannelID: "ch1", UserID: "u1", ParentID: parentID, Content: "m-" + id}
}

func ptr(s string) *string { return &s }

func buildTestTree() *ThreadTree {
	// root1
	//   ├─ a
	//   │   └─ a1
	//   └─ b
	// root2
	return NewThreadTree([]Message{
		msg("root1", nil),
		msg("a", ptr("root1")),
		msg("a1", ptr("a")),
		msg("b", ptr("root1")),
		msg("root2", nil),
	})
}

func TestNewThreadTreeStructure(t *testing.T) {
	tree := buildTestTree()

	roots := tree.Roots()
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0].ID != "root1" || roots[1].ID != "root2" {
		t.Errorf("roots out of order: %s, %s", roots[0].ID, roots[1].ID)
	}

	if tree.Size() != 5 {
		t.Errorf("expected size 5, got %d", tree.Size())
	}

	// Level invariant: child = parent + 1
	if got := tree.Node("root1").Level; got != 0 {
		t.Errorf("root1 level: expected 0, got %d", got)
	}
	if got := tree.Node("a").Level; got != 1 {
		t.Errorf("a level: expected 1, got %d", got)
	}
	if got := tree.Node("a1").Level; got != 2 {
		t.Errorf("a1 level: expected 2, got %d", got)
	}

	// Çocuk sırası geliş sırası olmalı
	r1 := tree.Node("root1")
	if len(r1.Children) != 2 || r1.Children[0].ID != "a" || r1.Children[1].ID != "b" {
		t.Errorf("root1 children out of order: %v", r1.Children)
	}
}

func TestNewThreadTreeOutOfOrderParents(t *testing.T) {
	// Yanıt parent'tan ÖNCE listede: iki geçişli kurulum bunu kök yapmamalı.
	tree := NewThreadTree([]Message{
		msg("reply", ptr("root")),
		msg("root", nil),
	})

	if len(tree.Roots()) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree.Roots()))
	}
	if got := tree.Node("reply").Level; got != 1 {
		t.Errorf("reply level: expected 1, got %d", got)
	}
}

func TestNewThreadTreeMissingParentBecomesRoot(t *testing.T) {
	// Parent silinmiş veya sayfa dışında: yanıt kaybolmaz, kök olur.
	tree := NewThreadTree([]Message{
		msg("orphan", ptr("gone")),
	})

	if len(tree.Roots()) != 1 || tree.Roots()[0].ID != "orphan" {
		t.Fatalf("expected orphan to surface as root, got %v", tree.Roots())
	}
	if got := tree.Node("orphan").Level; got != 0 {
		t.Errorf("orphan level: expected 0, got %d", got)
	}
}

func TestToggleExpandedAffectsExactlyOneNode(t *testing.T) {
	tree := buildTestTree()

	// a'yı collapse et: alt düğüm a1'in kendi bayrağı DEĞİŞMEZ.
	if got := tree.ToggleExpanded("a"); got {
		t.Error("expected toggle to return false (collapsed)")
	}
	if tree.Node("a").Expanded {
		t.Error("a should be collapsed")
	}
	if !tree.Node("a1").Expanded {
		t.Error("a1's own flag must be untouched")
	}
	if !tree.Node("root1").Expanded {
		t.Error("parent root1 must be untouched")
	}

	// Tekrar toggle: eski duruma döner.
	if got := tree.ToggleExpanded("a"); !got {
		t.Error("expected toggle to return true (expanded)")
	}

	// Olmayan düğüm: false, state bozulmaz.
	if tree.ToggleExpanded("nope") {
		t.Error("toggling unknown node must return false")
	}
}

func TestVisibleNodesSkipsCollapsedSubtrees(t *testing.T) {
	tree := buildTestTree()

	// Tamamı açıkken DFS sırası: root1, a, a1, b, root2
	ids := visibleIDs(tree)
	want := []string{"root1", "a", "a1", "b", "root2"}
	assertIDs(t, ids, want)

	// a collapse: a görünür kalır, a1 gizlenir.
	tree.ToggleExpanded("a")
	ids = visibleIDs(tree)
	want = []string{"root1", "a", "b", "root2"}
	assertIDs(t, ids, want)

	// root1 collapse: altındaki her şey gizlenir.
	tree.ToggleExpanded("root1")
	ids = visibleIDs(tree)
	want = []string{"root1", "root2"}
	assertIDs(t, ids, want)

	// root1 tekrar expand: a'nın collapsed state'i KORUNMUŞ olmalı.
	tree.ToggleExpanded("root1")
	ids = visibleIDs(tree)
	want = []string{"root1", "a", "b", "root2"}
	assertIDs(t, ids, want)
}

func TestAddReply(t *testing.T) {
	tree := buildTestTree()

	node := tree.AddReply("b", msg("b1", ptr("b")))
	if node == nil {
		t.Fatal("expected reply to attach to b")
	}
	if node.Level != 2 {
		t.Errorf("b1 level: expected 2, got %d", node.Level)
	}
	if tree.Size() != 6 {
		t.Errorf("expected size 6 after reply, got %d", tree.Size())
	}

	// Sona eklenir, yeniden sıralama yok.
	b := tree.Node("b")
	if b.Children[len(b.Children)-1].ID != "b1" {
		t.Error("reply must be appended at the end of children")
	}

	if tree.AddReply("missing", msg("x", ptr("missing"))) != nil {
		t.Error("reply to unknown parent must return nil")
	}
}

func visibleIDs(tree *ThreadTree) []string {
	nodes := tree.VisibleNodes()
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

func assertIDs(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
