package dialog

// Field is a single-line string input.
type Field struct {
	ID                 string
	Label              string
	Value              string
	Tooltip            string
	TooltipDescription string
	// ValueError marks the field as invalid in the UI.
	ValueError bool
}

// Group is a titled container of fields.
type Group struct {
	ID       string
	Label    string
	Children []*Field
}

// AddStringField appends a field to the group and returns it.
func (g *Group) AddStringField(id, label, value string) *Field {
	f := &Field{ID: id, Label: label, Value: value}
	g.Children = append(g.Children, f)
	return f
}

// Field returns the child with the given id, or nil.
func (g *Group) Field(id string) *Field {
	if g == nil {
		return nil
	}
	for _, f := range g.Children {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// Inputs is the set of groups shown by a dialog, in display order.
type Inputs struct {
	groups []*Group
}

// NewInputs creates an empty input set.
func NewInputs() *Inputs {
	return &Inputs{}
}

// AddGroup appends a group and returns it.
func (in *Inputs) AddGroup(id, label string) *Group {
	g := &Group{ID: id, Label: label}
	in.groups = append(in.groups, g)
	return g
}

// Group returns the group with the given id, or nil.
func (in *Inputs) Group(id string) *Group {
	for _, g := range in.groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// Groups returns the groups in display order.
func (in *Inputs) Groups() []*Group {
	return in.groups
}
