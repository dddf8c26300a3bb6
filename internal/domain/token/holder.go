package token

import "github.com/google/uuid"

// Holder is either the treasury or a specific user. The zero value is the treasury.
type Holder struct {
	userID uuid.UUID
	user   bool
}

func Treasury() Holder {
	return Holder{}
}

func User(id uuid.UUID) Holder {
	return Holder{userID: id, user: true}
}

// HolderFromNullable maps a nullable holder column.
func HolderFromNullable(id *uuid.UUID) Holder {
	if id == nil {
		return Treasury()
	}
	return User(*id)
}

func (h Holder) IsTreasury() bool { return !h.user }

func (h Holder) UserID() (uuid.UUID, bool) {
	return h.userID, h.user
}

func (h Holder) Is(userID uuid.UUID) bool {
	return h.user && h.userID == userID
}

// Nullable is the inverse of HolderFromNullable.
func (h Holder) Nullable() *uuid.UUID {
	if !h.user {
		return nil
	}
	id := h.userID
	return &id
}

func (h Holder) String() string {
	if !h.user {
		return "treasury"
	}
	return "user:" + h.userID.String()
}
