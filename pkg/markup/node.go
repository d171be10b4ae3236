package markup

// Node is one element, text run, or comment of a parsed document. The set of
// implementations is closed: only this package can add a kind, and traversals
// treat any kind they do not recognise as contributing no output.
type Node interface {
	node()
}

// Attribute is a single name/value pair in document order. Namespaced
// attributes keep their prefix in Name (e.g. "xlink:href").
type Attribute struct {
	Name  string
	Value string
}

// Element is a tag with ordered attributes and children.
type Element struct {
	Tag      string
	Attrs    []Attribute
	Children []Node
}

func (*Element) node() {}

// Attr returns the value of the named attribute and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, attr := range e.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Text is a run of character data.
type Text struct {
	Content string
}

func (*Text) node() {}

// Comment is a markup comment.
type Comment struct {
	Content string
}

func (*Comment) node() {}

// Tree is a parsed document rooted at its document element. Trees are never
// mutated after parsing, so one tree may be shared by concurrent passes.
type Tree struct {
	Root    *Element
	Doctype string
}

// Find returns the first element with the given tag in depth-first order.
func (t *Tree) Find(tag string) *Element {
	if t == nil || t.Root == nil {
		return nil
	}
	return find(t.Root, tag)
}

func find(el *Element, tag string) *Element {
	if el.Tag == tag {
		return el
	}
	for _, child := range el.Children {
		if childEl, ok := child.(*Element); ok {
			if found := find(childEl, tag); found != nil {
				return found
			}
		}
	}
	return nil
}
