package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// PersonID is an opaque person identifier
type PersonID string

// Person is a named owner of zero or more phones
type Person struct {
	ID     PersonID
	Name   string
	Phones []PhoneID // sorted
}

// Owns reports whether the person holds the phone
func (p Person) Owns(id PhoneID) bool {
	_, found := slices.BinarySearch(p.Phones, id)
	return found
}

type personEntry struct {
	id     PersonID
	name   string
	phones map[PhoneID]struct{}
}

func (e *personEntry) view() Person {
	phones := make([]PhoneID, 0, len(e.phones))
	for id := range e.phones {
		phones = append(phones, id)
	}
	slices.Sort(phones)
	return Person{ID: e.id, Name: e.name, Phones: phones}
}

// Registry tracks persons and their phones. A phone may be assigned to more
// than one person; OwnerOf resolves to the earliest-created owner.
type Registry struct {
	persons map[PersonID]*personEntry
	order   []PersonID
	newID   func() PersonID
}

func NewRegistry() *Registry {
	return &Registry{
		persons: make(map[PersonID]*personEntry),
		newID:   func() PersonID { return PersonID(uuid.NewString()) },
	}
}

// AddPerson creates a person with a fresh ID
func (r *Registry) AddPerson(name string) (Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Person{}, ErrEmptyName
	}
	e := &personEntry{id: r.newID(), name: name, phones: make(map[PhoneID]struct{})}
	r.persons[e.id] = e
	r.order = append(r.order, e.id)
	return e.view(), nil
}

// PutPerson inserts or replaces a person with a known ID, keeping creation
// order for existing IDs
func (r *Registry) PutPerson(p Person) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return ErrEmptyName
	}
	if p.ID == "" {
		return fmt.Errorf("person %q: empty id", name)
	}
	e := &personEntry{id: p.ID, name: name, phones: make(map[PhoneID]struct{}, len(p.Phones))}
	for _, id := range p.Phones {
		e.phones[id] = struct{}{}
	}
	if _, exists := r.persons[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.persons[p.ID] = e
	return nil
}

func (r *Registry) entry(id PersonID) (*personEntry, error) {
	e, ok := r.persons[id]
	if !ok {
		return nil, &NotFoundError{Kind: "person", ID: string(id)}
	}
	return e, nil
}

// Person looks up a person by ID
func (r *Registry) Person(id PersonID) (Person, bool) {
	e, ok := r.persons[id]
	if !ok {
		return Person{}, false
	}
	return e.view(), true
}

// FindByName returns the first person with the given name, case-insensitive
func (r *Registry) FindByName(name string) (Person, bool) {
	for _, id := range r.order {
		if e := r.persons[id]; strings.EqualFold(e.name, strings.TrimSpace(name)) {
			return e.view(), true
		}
	}
	return Person{}, false
}

func (r *Registry) RenamePerson(id PersonID, name string) error {
	e, err := r.entry(id)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	e.name = name
	return nil
}

// DeletePerson removes the person. Phone nodes are not touched.
func (r *Registry) DeletePerson(id PersonID) error {
	if _, err := r.entry(id); err != nil {
		return err
	}
	delete(r.persons, id)
	r.order = slices.DeleteFunc(r.order, func(x PersonID) bool { return x == id })
	return nil
}

// AssignPhone attaches a phone to a person. Assigning twice is a no-op.
func (r *Registry) AssignPhone(id PersonID, phone PhoneID) error {
	e, err := r.entry(id)
	if err != nil {
		return err
	}
	e.phones[phone] = struct{}{}
	return nil
}

// UnassignPhone detaches a phone from a person
func (r *Registry) UnassignPhone(id PersonID, phone PhoneID) error {
	e, err := r.entry(id)
	if err != nil {
		return err
	}
	if _, ok := e.phones[phone]; !ok {
		return &NotFoundError{Kind: "assignment", ID: fmt.Sprintf("%s/%s", id, phone)}
	}
	delete(e.phones, phone)
	return nil
}

// ForgetPhone removes the phone from every person, used when a node is deleted
func (r *Registry) ForgetPhone(phone PhoneID) {
	for _, e := range r.persons {
		delete(e.phones, phone)
	}
}

// OwnerOf returns the first person, in creation order, holding the phone
func (r *Registry) OwnerOf(phone PhoneID) (Person, bool) {
	for _, id := range r.order {
		e := r.persons[id]
		if _, ok := e.phones[phone]; ok {
			return e.view(), true
		}
	}
	return Person{}, false
}

// Owners maps every assigned phone to its resolved owner
func (r *Registry) Owners() map[PhoneID]PersonID {
	out := make(map[PhoneID]PersonID)
	for _, id := range r.order {
		for phone := range r.persons[id].phones {
			if _, taken := out[phone]; !taken {
				out[phone] = id
			}
		}
	}
	return out
}

// Persons lists persons in creation order
func (r *Registry) Persons() []Person {
	out := make([]Person, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.persons[id].view())
	}
	return out
}

func (r *Registry) Len() int { return len(r.order) }

// Clone returns an independent copy sharing the ID generator
func (r *Registry) Clone() *Registry {
	c := &Registry{
		persons: make(map[PersonID]*personEntry, len(r.persons)),
		order:   slices.Clone(r.order),
		newID:   r.newID,
	}
	for id, e := range r.persons {
		phones := make(map[PhoneID]struct{}, len(e.phones))
		for p := range e.phones {
			phones[p] = struct{}{}
		}
		c.persons[id] = &personEntry{id: e.id, name: e.name, phones: phones}
	}
	return c
}
