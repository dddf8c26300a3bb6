//go:build unit

package token_test

import (
	"testing"
	"time"

	"minute-market/internal/domain/token"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestMint(t *testing.T) {
	t.Run("正常系: treasury tokens in mint order", func(t *testing.T) {
		tokens, err := token.Mint(3, 2025, token.DefaultMinutes, decimal.RequireFromString("4.99"), now)
		require.NoError(t, err)
		require.Len(t, tokens, 3)
		for i, tk := range tokens {
			assert.True(t, tk.Holder.IsTreasury())
			assert.Equal(t, token.StatusActive, tk.Status)
			assert.Equal(t, 60, tk.RemainingMinutes)
			assert.True(t, tk.Purchasable())
			if i > 0 {
				assert.True(t, tokens[i-1].CreatedAt.Before(tk.CreatedAt))
			}
		}
	})

	t.Run("異常系: invalid input", func(t *testing.T) {
		_, err := token.Mint(0, 2025, 60, decimal.NewFromInt(1), now)
		assert.ErrorIs(t, err, token.ErrInvalidQuantity)
		_, err = token.Mint(1, 99, 60, decimal.NewFromInt(1), now)
		assert.ErrorIs(t, err, token.ErrInvalidYear)
		_, err = token.Mint(1, 2025, 0, decimal.NewFromInt(1), now)
		assert.ErrorIs(t, err, token.ErrInvalidMinutes)
	})
}

func TestHolder(t *testing.T) {
	id := uuid.New()

	assert.True(t, token.Treasury().IsTreasury())
	assert.Nil(t, token.Treasury().Nullable())
	assert.Equal(t, token.Treasury(), token.HolderFromNullable(nil))

	h := token.User(id)
	got, ok := h.UserID()
	assert.True(t, ok)
	assert.Equal(t, id, got)
	assert.True(t, h.Is(id))
	assert.False(t, h.Is(uuid.New()))
	assert.Equal(t, h, token.HolderFromNullable(h.Nullable()))
}

func TestTransitions(t *testing.T) {
	seller, buyer := uuid.New(), uuid.New()
	base := token.Token{ID: uuid.New(), IssuedYear: 2025, RemainingMinutes: 60, Status: token.StatusActive, Holder: token.Treasury()}

	claim := token.Claim(base.ID, seller)
	require.True(t, claim.Matches(base))
	owned := claim.ApplyTo(base)
	assert.True(t, owned.Holder.Is(seller))
	assert.False(t, claim.Matches(owned), "a claimed token cannot be claimed twice")

	list := token.List(base.ID, seller)
	require.True(t, list.Matches(owned))
	listed := list.ApplyTo(owned)
	assert.Equal(t, token.StatusListed, listed.Status)
	assert.True(t, listed.Transferable(seller))
	assert.False(t, token.List(base.ID, buyer).Matches(owned), "only the holder lists")

	transfer := token.Transfer(base.ID, seller, buyer)
	require.True(t, transfer.Matches(listed))
	bought := transfer.ApplyTo(listed)
	assert.True(t, bought.Holder.Is(buyer))
	assert.Equal(t, token.StatusActive, bought.Status)
	assert.False(t, transfer.Matches(bought))

	unlist := token.Unlist(base.ID, seller)
	assert.True(t, unlist.Matches(listed))

	empty := owned
	empty.RemainingMinutes = 0
	assert.False(t, list.Matches(empty), "spent tokens are not listable")
	assert.True(t, token.Unlist(base.ID, seller).Matches(token.List(base.ID, seller).ApplyTo(owned)))
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"active", "listed", "retired"} {
		got, err := token.ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, got.String())
	}
	_, err := token.ParseStatus("burned")
	assert.ErrorIs(t, err, token.ErrInvalidStatus)
}
