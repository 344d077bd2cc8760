package html

// Node is one event of a document's token stream.
// Concrete types are *StartTag, *EndTag, *Text, *CharRef, *EntityRef,
// *Comment, *Declaration and *ProcessingInstruction.
type Node interface {
	node()
}

// StartTag is an opening or self-closing tag
type StartTag struct {
	Name        string
	Attrs       Attributes
	SelfClosing bool

	// Raw is the tag as written in the source. Render uses it verbatim
	// when set; clear it after changing Name, Attrs or SelfClosing.
	Raw string
}

// EndTag is a closing tag
type EndTag struct {
	Name string
	Raw  string
}

// Text is a run of character data, kept in its source (escaped) form
type Text struct {
	Content string
}

// CharRef is a numeric character reference such as &#39; or &#x27;.
// Code holds everything between "&#" and ";".
type CharRef struct {
	Code string
}

// EntityRef is a named character reference such as &amp;
type EntityRef struct {
	Name string
}

// Comment is a <!--...--> comment
type Comment struct {
	Content string
	Raw     string
}

// Declaration is a <!...> markup declaration, usually the DOCTYPE
type Declaration struct {
	Content string
	Raw     string
}

// ProcessingInstruction is a <?...> instruction
type ProcessingInstruction struct {
	Content string
	Raw     string
}

func (*StartTag) node()              {}
func (*EndTag) node()                {}
func (*Text) node()                  {}
func (*CharRef) node()               {}
func (*EntityRef) node()             {}
func (*Comment) node()               {}
func (*Declaration) node()           {}
func (*ProcessingInstruction) node() {}

// Attribute is a single key/value pair on a tag
type Attribute struct {
	Key string
	Val string
}

// Attributes is an ordered attribute mapping. Keys are unique and keep
// the position of their first declaration. The zero value is empty.
type Attributes struct {
	list []Attribute
}

// NewAttributes builds an attribute mapping from pairs in order
func NewAttributes(pairs ...Attribute) Attributes {
	var a Attributes
	for _, p := range pairs {
		a.Set(p.Key, p.Val)
	}
	return a
}

// Get returns the value of key and whether it is present
func (a *Attributes) Get(key string) (string, bool) {
	for _, attr := range a.list {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// Set replaces the value of key in place, or appends it
func (a *Attributes) Set(key, val string) {
	for i := range a.list {
		if a.list[i].Key == key {
			a.list[i].Val = val
			return
		}
	}
	a.list = append(a.list, Attribute{Key: key, Val: val})
}

// Delete removes key, reporting whether it was present
func (a *Attributes) Delete(key string) bool {
	for i := range a.list {
		if a.list[i].Key == key {
			a.list = append(a.list[:i], a.list[i+1:]...)
			return true
		}
	}
	return false
}

// All returns a copy of the attributes in declaration order
func (a *Attributes) All() []Attribute {
	return append([]Attribute(nil), a.list...)
}

// Clone returns an independent copy
func (a *Attributes) Clone() Attributes {
	return Attributes{list: a.All()}
}
