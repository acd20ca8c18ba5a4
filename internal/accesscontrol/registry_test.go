package accesscontrol

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/platform-web3/hypehaus-contract/pkg/domain"
	dErrors "github.com/platform-web3/hypehaus-contract/pkg/domain-errors"
)

var (
	deployer = domain.MustAddress("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	alice    = domain.MustAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
	bob      = domain.MustAddress("0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc")
)

type RegistrySuite struct {
	suite.Suite
	ctx context.Context
	reg *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.ctx = context.Background()
	reg, err := New(s.ctx, deployer, NewInMemoryStore())
	s.Require().NoError(err)
	s.reg = reg
}

func (s *RegistrySuite) TestDeployerIsAdminAndOwner() {
	s.True(s.reg.HasRole(RoleAdmin, deployer))
	s.True(s.reg.HasRole(RoleOperator, deployer), "admin passes every role check")
	s.True(s.reg.HasRole(RoleWithdrawer, deployer))
	s.Equal(deployer, s.reg.Owner())
}

func (s *RegistrySuite) TestGrantAndRevoke() {
	s.False(s.reg.HasRole(RoleOperator, alice))

	s.Require().NoError(s.reg.GrantRole(s.ctx, deployer, RoleOperator, alice))
	s.True(s.reg.HasRole(RoleOperator, alice))
	s.False(s.reg.HasRole(RoleWithdrawer, alice), "grants do not leak across roles")
	s.False(s.reg.HasRole(RoleAdmin, alice))

	s.Require().NoError(s.reg.RevokeRole(s.ctx, deployer, RoleOperator, alice))
	s.False(s.reg.HasRole(RoleOperator, alice))
}

func (s *RegistrySuite) TestOnlyAdminMutatesGrants() {
	err := s.reg.GrantRole(s.ctx, alice, RoleOperator, bob)
	s.True(dErrors.HasCode(err, dErrors.CodeCallerNotAdmin))
	s.False(s.reg.HasRole(RoleOperator, bob), "failed grant leaves no state change")

	err = s.reg.RevokeRole(s.ctx, alice, RoleAdmin, deployer)
	s.True(dErrors.HasCode(err, dErrors.CodeCallerNotAdmin))
}

func (s *RegistrySuite) TestRequireRoleCodes() {
	s.True(dErrors.HasCode(s.reg.RequireRole(RoleAdmin, alice), dErrors.CodeCallerNotAdmin))
	s.True(dErrors.HasCode(s.reg.RequireRole(RoleOperator, alice), dErrors.CodeCallerNotOperator))
	s.True(dErrors.HasCode(s.reg.RequireRole(RoleWithdrawer, alice), dErrors.CodeCallerNotWithdrawer))
	s.NoError(s.reg.RequireRole(RoleWithdrawer, deployer))
}

func (s *RegistrySuite) TestTransferOwnership() {
	s.Require().NoError(s.reg.TransferOwnership(s.ctx, deployer, alice))
	s.Equal(alice, s.reg.Owner())

	// Ownership is a marketplace designation, not a role.
	s.False(s.reg.HasRole(RoleAdmin, alice))

	err := s.reg.TransferOwnership(s.ctx, bob, bob)
	s.True(dErrors.HasCode(err, dErrors.CodeCallerNotAdmin))

	err = s.reg.TransferOwnership(s.ctx, deployer, domain.ZeroAddress)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *RegistrySuite) TestRehydrationFromStore() {
	store := NewInMemoryStore()
	reg, err := New(s.ctx, deployer, store)
	s.Require().NoError(err)
	s.Require().NoError(reg.GrantRole(s.ctx, deployer, RoleWithdrawer, alice))
	s.Require().NoError(reg.TransferOwnership(s.ctx, deployer, bob))

	reloaded, err := New(s.ctx, deployer, store)
	s.Require().NoError(err)
	s.True(reloaded.HasRole(RoleWithdrawer, alice))
	s.Equal(bob, reloaded.Owner())
}

func TestParseRole(t *testing.T) {
	for in, want := range map[string]Role{
		"admin":      RoleAdmin,
		" Operator ": RoleOperator,
		"WITHDRAWER": RoleWithdrawer,
	} {
		got, err := ParseRole(in)
		if err != nil || got != want {
			t.Fatalf("ParseRole(%q) = %q, %v", in, got, err)
		}
	}

	if _, err := ParseRole("superuser"); !dErrors.HasCode(err, dErrors.CodeBadRequest) {
		t.Fatalf("expected bad request for unknown role, got %v", err)
	}
}
