package generic

import "time"

// Entity is an interface that all persisted models implement
type Entity interface {
	GetID() uint
	SetID(uint)
}

// SocietyScoped is an entity that belongs to exactly one society.
type SocietyScoped interface {
	Entity
	GetSocietyID() uint
	SetSocietyID(uint)
}

// Owned is implemented by entities that personal roles may only see when
// they own them. OwnerColumn returns the column holding the owning user id
// for the given role, or "" when the role owns none of them.
type Owned interface {
	OwnerColumn(role string) string
}

// Timestamped is implemented by entities whose creation time must survive
// updates built from client input.
type Timestamped interface {
	GetCreatedAt() time.Time
	SetCreatedAt(time.Time)
}

// keepCreatedAt returns a func restoring entity's current creation time,
// or a no-op when entity is not Timestamped.
func keepCreatedAt(entity interface{}) func() {
	ts, ok := entity.(Timestamped)
	if !ok {
		return func() {}
	}
	createdAt := ts.GetCreatedAt()
	return func() { ts.SetCreatedAt(createdAt) }
}
