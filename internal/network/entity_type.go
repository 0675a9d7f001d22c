package network

// EntityType is config-supplied: a name, an add-probability share, a
// follow-probability share, and the dynamically maintained list of
// entities currently carrying this type. The Σ ProbAdd == 1
// invariant is checked at config-validation time, not here.
type EntityType struct {
	Name       string
	ProbAdd    float64
	ProbFollow float64
	Members    []int32
}

// AddMember records that entity id was just created with this type.
func (t *EntityType) AddMember(id int32) {
	t.Members = append(t.Members, id)
}
