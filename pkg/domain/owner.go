package domain

import "github.com/google/uuid"

// Owner tags an entity as predefined (no user) or owned by a single user.
type Owner struct {
	UserID *uuid.UUID
}

// Predefined returns the owner tag of entities visible to every user.
func Predefined() Owner { return Owner{} }

// OwnedBy returns the owner tag for a user-owned entity.
func OwnedBy(userID uuid.UUID) Owner { return Owner{UserID: &userID} }

// OwnerFrom builds an owner tag from a nullable user id column.
func OwnerFrom(userID *uuid.UUID) Owner {
	if userID == nil {
		return Predefined()
	}
	return OwnedBy(*userID)
}

func (o Owner) IsPredefined() bool { return o.UserID == nil }

// VisibleTo reports whether userID may read the entity.
func (o Owner) VisibleTo(userID uuid.UUID) bool {
	return o.UserID == nil || *o.UserID == userID
}

// CheckWritable returns ErrImmutable for predefined entities and ErrNotFound
// for entities owned by someone else.
func (o Owner) CheckWritable(userID uuid.UUID) error {
	if o.UserID == nil {
		return ErrImmutable
	}
	if *o.UserID != userID {
		return ErrNotFound
	}
	return nil
}
