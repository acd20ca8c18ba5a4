package journal

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platform-web3/hypehaus-contract/pkg/domain"
)

func TestMemoryAppendOrder(t *testing.T) {
	ctx := context.Background()
	j := NewMemory()
	wallet := domain.MustAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")

	require.NoError(t, j.Append(ctx, Entry{Kind: KindMint, Mint: &MintOp{
		Wallet: wallet, FirstID: 0, Amount: 2, Source: SourcePublic, Payment: big.NewInt(100),
	}}))
	require.NoError(t, j.Append(ctx, Entry{Kind: KindWithdrawal, Withdrawal: &WithdrawalOp{
		To: wallet, Amount: big.NewInt(100),
	}}))

	entries, err := j.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, KindMint, entries[0].Kind)
	assert.Equal(t, KindWithdrawal, entries[1].Kind)

	// List hands out a copy.
	entries[0].Kind = KindTransfer
	again, err := j.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, KindMint, again[0].Kind)
}

func TestMemoryFailNextAppendIsOneShot(t *testing.T) {
	ctx := context.Background()
	j := NewMemory()
	boom := errors.New("disk full")
	j.FailNextAppend(boom)

	err := j.Append(ctx, Entry{Kind: KindTransfer, Transfer: &TransferOp{}})
	assert.ErrorIs(t, err, boom)

	entries, _ := j.List(ctx)
	assert.Empty(t, entries, "failed append must not record")

	assert.NoError(t, j.Append(ctx, Entry{Kind: KindTransfer, Transfer: &TransferOp{}}))
}

func TestSourceIsCommunity(t *testing.T) {
	assert.True(t, SourceAlpha.IsCommunity())
	assert.True(t, SourceHypelister.IsCommunity())
	assert.True(t, SourceHypemember.IsCommunity())
	assert.False(t, SourcePublic.IsCommunity())
	assert.False(t, SourceUnchecked.IsCommunity())
}
