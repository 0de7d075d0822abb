package models

// ThreadNode, iç içe yanıt ağacındaki tek bir düğümdür.
//
// Saf veri yapısıdır — persistence veya render katmanına bağımlı değildir.
// Expanded alanı geçici UI state'idir, DB'ye yazılmaz. JSON'a dahil edilir
// ki frontend ağacı olduğu gibi kullanabilsin.
//
// Invariant: bir düğümün Level'ı parent'ının Level + 1'idir; kök düğümler 0.
type ThreadNode struct {
	Message
	Level    int           `json:"level"`
	Expanded bool          `json:"expanded"`
	Children []*ThreadNode `json:"children"`
}

// ThreadTree, bir kanalın (veya tek bir kök mesajın) yanıt ağacını tutar.
//
// index map'i id → node erişimini O(1) yapar — ToggleExpanded ve AddReply
// ağacı gezmek zorunda kalmaz.
type ThreadTree struct {
	roots []*ThreadNode
	index map[string]*ThreadNode
}

// NewThreadTree, düz mesaj listesinden yanıt ağacı kurar.
//
// ParentID nil olan mesajlar kök olur (Level 0). ParentID listede olmayan
// bir mesajı gösteriyorsa (parent silinmiş veya sayfa dışında kalmış)
// mesaj kök olarak eklenir — yanıt kaybolmaz.
//
// Sıra korunur: çocuklar parent'a geliş sırasıyla eklenir, yeniden
// sıralama yapılmaz. Tüm düğümler expanded başlar.
func NewThreadTree(messages []Message) *ThreadTree {
	t := &ThreadTree{index: make(map[string]*ThreadNode, len(messages))}

	// İki geçiş: önce tüm düğümler oluşturulur, sonra bağlanır.
	// Tek geçişte parent'ı henüz görülmemiş mesajlar yanlışlıkla kök olurdu.
	for _, m := range messages {
		node := &ThreadNode{Message: m, Expanded: true}
		t.index[m.ID] = node
	}

	for _, m := range messages {
		node := t.index[m.ID]
		if m.ParentID != nil {
			if parent, ok := t.index[*m.ParentID]; ok {
				node.Level = parent.Level + 1
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		t.roots = append(t.roots, node)
	}

	// Orphan kökler 0'a sabitlenir; level'lar parent bağlandıkça hesaplandığı
	// için geç bağlanan alt ağaçların level'ları düzeltilmelidir.
	for _, root := range t.roots {
		fixLevels(root, 0)
	}

	return t
}

// fixLevels, alt ağacın level invariant'ını (child = parent + 1) kurar.
func fixLevels(node *ThreadNode, level int) {
	node.Level = level
	for _, child := range node.Children {
		fixLevels(child, level+1)
	}
}

// Roots, kök düğümleri döner (geliş sırasıyla).
func (t *ThreadTree) Roots() []*ThreadNode {
	return t.roots
}

// Node, id ile düğüm erişimi. Bulunamazsa nil.
func (t *ThreadTree) Node(id string) *ThreadNode {
	return t.index[id]
}

// ToggleExpanded, TAM OLARAK bir düğümün expand/collapse bayrağını çevirir.
//
// Alt düğümlerin kendi bayraklarına dokunulmaz — parent collapse edilince
// altındakiler görünmez olur ama state'leri korunur; parent tekrar
// expand edilince önceki iç içe expand durumları geri gelir.
//
// Dönen değer: yeni Expanded durumu. Düğüm yoksa false döner, state değişmez.
func (t *ThreadTree) ToggleExpanded(id string) bool {
	node, ok := t.index[id]
	if !ok {
		return false
	}
	node.Expanded = !node.Expanded
	return node.Expanded
}

// AddReply, parent'ın children listesinin SONUNA yeni yanıt ekler
// (geliş sırası korunur, yeniden sıralama yok).
//
// Parent bulunamazsa nil döner — caller mesajı kök olarak ele alabilir.
func (t *ThreadTree) AddReply(parentID string, m Message) *ThreadNode {
	parent, ok := t.index[parentID]
	if !ok {
		return nil
	}

	node := &ThreadNode{Message: m, Level: parent.Level + 1, Expanded: true}
	parent.Children = append(parent.Children, node)
	t.index[m.ID] = node
	return node
}

// VisibleNodes, görünür düğümlerin depth-first sırasını döner.
//
// Bir düğüm görünürse listelenir; Expanded değilse ALTINDAKİLER atlanır
// ama düğümün kendisi listede kalır (collapse edilmiş başlık hâlâ görünür).
// Sonuç sonlu ve deterministiktir; her çağrı baştan hesaplar.
func (t *ThreadTree) VisibleNodes() []*ThreadNode {
	var visible []*ThreadNode

	// Açık stack ile iterativ DFS — derin thread'lerde recursion
	// limiti problemi yaşanmaz. Stack'e ters sırada push edilir ki
	// pop sırası geliş sırasıyla aynı olsun.
	stack := make([]*ThreadNode, 0, len(t.roots))
	for i := len(t.roots) - 1; i >= 0; i-- {
		stack = append(stack, t.roots[i])
	}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visible = append(visible, node)

		if node.Expanded {
			for i := len(node.Children) - 1; i >= 0; i-- {
				stack = append(stack, node.Children[i])
			}
		}
	}

	return visible
}

// Size, ağaçtaki toplam düğüm sayısını döner (görünürlükten bağımsız).
func (t *ThreadTree) Size() int {
	return len(t.index)
}
