package jml

// LogicType tags a type with its JML logic-type meaning.
type LogicType int

const (
	LogicNone LogicType = iota
	LogicMap
	LogicSet
)

func (l LogicType) String() string {
	switch l {
	case LogicMap:
		return `\map`
	case LogicSet:
		return `\set`
	default:
		return ""
	}
}

// Type is a target type. Name is the nominal type the renderer prints.
//
// Logic is resolved for Map and Set but the renderer does not print it yet:
// parametrised logic types have no agreed rendering, so the nominal name is
// used for every type.
type Type struct {
	Name  string
	Logic LogicType
}

// EntityKind selects how an entity is declared.
type EntityKind int

const (
	KindInterface EntityKind = iota
	// KindClass is reserved for inner-view generators; the outer view
	// only declares interfaces.
	KindClass
)

func (k EntityKind) String() string {
	if k == KindClass {
		return "class"
	}
	return "interface"
}

// GhostField is a ghost field, visible only to contracts.
type GhostField struct {
	Name string
	Type Type
}

// Param is a declared method parameter.
type Param struct {
	Name string
	Type Type
}

// ClauseKind distinguishes requires from ensures.
type ClauseKind int

const (
	Requires ClauseKind = iota
	Ensures
)

func (k ClauseKind) String() string {
	if k == Ensures {
		return "ensures"
	}
	return "requires"
}

// Clause is one requires or ensures clause.
type Clause struct {
	Kind ClauseKind
	Expr Expr
}

// ContractBlock is one normal_behavior case.
type ContractBlock struct {
	Requires Clause
	Ensures  Clause
}

// NewContractBlock bundles a precondition and a postcondition.
func NewContractBlock(pre, post Expr) ContractBlock {
	return ContractBlock{
		Requires: Clause{Kind: Requires, Expr: pre},
		Ensures:  Clause{Kind: Ensures, Expr: post},
	}
}

// Method is a method declaration with stacked contract blocks.
type Method struct {
	Name      string
	Params    []Param
	Contracts []ContractBlock
}

// AddParam appends a parameter, preserving declaration order.
func (m *Method) AddParam(p Param) {
	m.Params = append(m.Params, p)
}

// AddContract appends a contract block, preserving declaration order.
func (m *Method) AddContract(b ContractBlock) {
	m.Contracts = append(m.Contracts, b)
}

// Entity is a generated class or interface.
type Entity struct {
	Name    string
	Kind    EntityKind
	Ghosts  []GhostField
	Methods []*Method
}

// AddGhost appends a ghost field, preserving declaration order.
func (e *Entity) AddGhost(f GhostField) {
	e.Ghosts = append(e.Ghosts, f)
}

// AddMethod appends and returns a new method named name.
func (e *Entity) AddMethod(name string) *Method {
	m := &Method{Name: name}
	e.Methods = append(e.Methods, m)
	return m
}

// Document is the per-run class-name → entity map.
// Entities are kept in creation order so rendering is deterministic.
type Document struct {
	byName map[string]*Entity
	order  []*Entity
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{byName: make(map[string]*Entity)}
}

// Add creates an empty entity. It returns false if name already exists,
// leaving the existing entity untouched.
func (d *Document) Add(name string, kind EntityKind) (*Entity, bool) {
	if _, ok := d.byName[name]; ok {
		return nil, false
	}
	e := &Entity{Name: name, Kind: kind}
	d.byName[name] = e
	d.order = append(d.order, e)
	return e, true
}

// Entity looks up an entity by class name.
func (d *Document) Entity(name string) (*Entity, bool) {
	e, ok := d.byName[name]
	return e, ok
}

// Entities returns entities in creation order.
func (d *Document) Entities() []*Entity {
	out := make([]*Entity, len(d.order))
	copy(out, d.order)
	return out
}

// Len returns the number of entities.
func (d *Document) Len() int {
	return len(d.order)
}
