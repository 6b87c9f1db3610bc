// Package ped models pedigree data: individuals, their roles in a
// family, and affection status.
package ped

import "fmt"

// Role identifies an individual's position in the trio.
type Role int8

const (
	RoleChild Role = iota
	RoleMother
	RoleFather
)

func (r Role) String() string {
	switch r {
	case RoleMother:
		return "mother"
	case RoleFather:
		return "father"
	default:
		return "child"
	}
}

// Sex of an individual, from PED coding (1=male, 2=female, 0=unknown).
type Sex int8

const (
	SexUnknown Sex = iota
	SexMale
	SexFemale
)

func (s Sex) String() string {
	switch s {
	case SexMale:
		return "male"
	case SexFemale:
		return "female"
	default:
		return "unknown"
	}
}

// Affection status, from PED coding (1=unaffected, 2=affected, 0=unknown).
type Affection int8

const (
	AffectionUnknown Affection = iota
	Unaffected
	Affected
)

func (a Affection) String() string {
	switch a {
	case Unaffected:
		return "unaffected"
	case Affected:
		return "affected"
	default:
		return "unknown"
	}
}

// Individual is one family member with an optional variant call file.
type Individual struct {
	ID       string
	Role     Role
	Sex      Sex
	Affected Affection
	VCFPath  string // empty when no call data was supplied
}

// IsMale returns true for male individuals.
func (i *Individual) IsMale() bool {
	return i.Sex == SexMale
}

// Family is one child and up to two parents. A nil parent means no
// call data exists for that parent; every downstream check must
// degrade rather than fail in that case.
type Family struct {
	ID     string
	Child  *Individual
	Mother *Individual
	Father *Individual
}

// NewFamily creates a family around the given child.
func NewFamily(id string, child *Individual) *Family {
	child.Role = RoleChild
	return &Family{ID: id, Child: child}
}

// SetMother attaches the mother. Attaching the same mother twice is
// allowed; attaching a different one, or a male mother, is an error.
func (f *Family) SetMother(ind *Individual) error {
	if ind.Sex == SexMale {
		return fmt.Errorf("mother %s has male sex code", ind.ID)
	}
	if f.Mother != nil && f.Mother.ID != ind.ID {
		return fmt.Errorf("family %s already has mother %s, cannot add %s", f.ID, f.Mother.ID, ind.ID)
	}
	ind.Role = RoleMother
	f.Mother = ind
	return nil
}

// SetFather attaches the father, with the same rules as SetMother.
func (f *Family) SetFather(ind *Individual) error {
	if ind.Sex == SexFemale {
		return fmt.Errorf("father %s has female sex code", ind.ID)
	}
	if f.Father != nil && f.Father.ID != ind.ID {
		return fmt.Errorf("family %s already has father %s, cannot add %s", f.ID, f.Father.ID, ind.ID)
	}
	ind.Role = RoleFather
	f.Father = ind
	return nil
}

// HasBothParents returns true when call data exists for mother and father.
func (f *Family) HasBothParents() bool {
	return f.Mother != nil && f.Father != nil
}

// HasAnyParent returns true when at least one parent has call data.
func (f *Family) HasAnyParent() bool {
	return f.Mother != nil || f.Father != nil
}

// MotherAffected returns true when the mother is present and affected.
func (f *Family) MotherAffected() bool {
	return f.Mother != nil && f.Mother.Affected == Affected
}

// FatherAffected returns true when the father is present and affected.
func (f *Family) FatherAffected() bool {
	return f.Father != nil && f.Father.Affected == Affected
}
