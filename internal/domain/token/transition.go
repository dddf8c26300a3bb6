package token

import "github.com/google/uuid"

// Transition is a compare-and-set on a token row: it applies only when the
// row still has FromHolder and FromStatus (and positive minutes when
// RequireMinutes is set).
type Transition struct {
	ID             uuid.UUID
	FromHolder     Holder
	FromStatus     Status
	ToHolder       Holder
	ToStatus       Status
	RequireMinutes bool
}

// Claim moves a treasury token to buyer.
func Claim(id, buyer uuid.UUID) Transition {
	return Transition{
		ID:             id,
		FromHolder:     Treasury(),
		FromStatus:     StatusActive,
		ToHolder:       User(buyer),
		ToStatus:       StatusActive,
		RequireMinutes: true,
	}
}

// List marks a seller's active token as listed.
func List(id, seller uuid.UUID) Transition {
	return Transition{
		ID:             id,
		FromHolder:     User(seller),
		FromStatus:     StatusActive,
		ToHolder:       User(seller),
		ToStatus:       StatusListed,
		RequireMinutes: true,
	}
}

// Unlist returns a listed token to active.
func Unlist(id, seller uuid.UUID) Transition {
	return Transition{
		ID:         id,
		FromHolder: User(seller),
		FromStatus: StatusListed,
		ToHolder:   User(seller),
		ToStatus:   StatusActive,
	}
}

// Transfer hands a listed token to buyer.
func Transfer(id, seller, buyer uuid.UUID) Transition {
	return Transition{
		ID:             id,
		FromHolder:     User(seller),
		FromStatus:     StatusListed,
		ToHolder:       User(buyer),
		ToStatus:       StatusActive,
		RequireMinutes: true,
	}
}

// Matches reports whether t currently satisfies the transition's precondition.
func (tr Transition) Matches(t Token) bool {
	if t.ID != tr.ID || t.Holder != tr.FromHolder || t.Status != tr.FromStatus {
		return false
	}
	return !tr.RequireMinutes || t.RemainingMinutes > 0
}

// ApplyTo returns t after the transition. Callers check Matches first.
func (tr Transition) ApplyTo(t Token) Token {
	t.Holder = tr.ToHolder
	t.Status = tr.ToStatus
	return t
}
