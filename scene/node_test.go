package scene

import "testing"

func TestAddChildReparents(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewRect("child", 10, 10, ColorWhite)

	a.AddChild(child)
	b.AddChild(child)

	if child.Parent != b {
		t.Errorf("Parent = %v, want b", child.Parent.Name)
	}
	if a.NumChildren() != 0 || b.NumChildren() != 1 {
		t.Errorf("a=%d b=%d children, want 0 and 1", a.NumChildren(), b.NumChildren())
	}
}

func TestAddChildAtOrder(t *testing.T) {
	p := NewContainer("p")
	x, y, z := NewContainer("x"), NewContainer("y"), NewContainer("z")
	p.AddChild(x, y)
	p.AddChildAt(z, 0)

	want := []*Node{z, x, y}
	for i, c := range p.Children() {
		if c != want[i] {
			t.Errorf("child %d = %s, want %s", i, c.Name, want[i].Name)
		}
	}
}

func TestReAddSameParentMovesToEnd(t *testing.T) {
	p := NewContainer("p")
	x, y := NewContainer("x"), NewContainer("y")
	p.AddChild(x, y)
	p.AddChild(x)
	if p.Children()[0] != y || p.Children()[1] != x || p.NumChildren() != 2 {
		t.Error("re-adding x should move it to the end without duplicating")
	}
}

func TestAddChildCyclePanics(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	a.AddChild(b)
	defer func() {
		if recover() == nil {
			t.Error("expected cycle panic")
		}
	}()
	b.AddChild(a)
}

func TestAddNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected nil child panic")
		}
	}()
	NewContainer("a").AddChild(nil)
}

func TestRemoveFromParent(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	c.RemoveFromParent() // no parent: no-op
	p.AddChild(c)
	c.RemoveFromParent()
	if c.Parent != nil || p.NumChildren() != 0 {
		t.Error("RemoveFromParent did not detach")
	}
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewContainer("p").RemoveChild(NewContainer("c"))
}

func TestRemoveChildren(t *testing.T) {
	p := NewContainer("p")
	a, b := NewContainer("a"), NewContainer("b")
	p.AddChild(a, b)
	p.RemoveChildren()
	if p.NumChildren() != 0 || a.Parent != nil || b.Parent != nil {
		t.Error("RemoveChildren left links behind")
	}
}

func TestDispose(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	gc := NewContainer("gc")
	gc.OnPointerTap = func(PointerContext) {}
	p.AddChild(c)
	c.AddChild(gc)

	c.Dispose()

	if !c.IsDisposed() || !gc.IsDisposed() {
		t.Error("subtree not disposed")
	}
	if p.NumChildren() != 0 {
		t.Error("disposed node still attached")
	}
	if gc.OnPointerTap != nil {
		t.Error("callbacks not cleared")
	}
	c.Dispose() // second call is a no-op
}

func TestNodeDefaults(t *testing.T) {
	n := NewCircle("c", 5, Hex(0xff0000))
	if n.ScaleX != 1 || n.ScaleY != 1 || n.Alpha != 1 || !n.Visible {
		t.Errorf("defaults wrong: %+v", n)
	}
	if n.Color.R != 1 || n.Color.G != 0 || n.Color.B != 0 {
		t.Errorf("Color = %v, want red", n.Color)
	}
	if n.ID == 0 {
		t.Error("ID not assigned")
	}
}

func TestHex(t *testing.T) {
	c := Hex(0x6473ff)
	if c.R != 100.0/255 || c.G != 115.0/255 || c.B != 1 || c.A != 1 {
		t.Errorf("Hex(0x6473ff) = %v", c)
	}
}
