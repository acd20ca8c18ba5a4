//go:build integration

package accesscontrol_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/platform-web3/hypehaus-contract/internal/accesscontrol"
	"github.com/platform-web3/hypehaus-contract/pkg/domain"
	"github.com/platform-web3/hypehaus-contract/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *accesscontrol.PostgresStore

	deployer domain.Address
	operator domain.Address
	treasury domain.Address
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = accesscontrol.NewPostgres(s.postgres.DB)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))

	s.deployer = domain.MustAddress("0x00000000000000000000000000000000000000a1")
	s.operator = domain.MustAddress("0x00000000000000000000000000000000000000a2")
	s.treasury = domain.MustAddress("0x00000000000000000000000000000000000000a3")
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "role_grants", "contract_owner")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestRegistrySeedsDeployer() {
	ctx := context.Background()

	reg, err := accesscontrol.New(ctx, s.deployer, s.store)
	s.Require().NoError(err)

	s.True(reg.HasRole(accesscontrol.RoleAdmin, s.deployer))
	s.Equal(s.deployer, reg.Owner())

	grants, err := s.store.ListGrants(ctx)
	s.Require().NoError(err)
	s.Contains(grants[accesscontrol.RoleAdmin], s.deployer)

	owner, ok, err := s.store.FindOwner(ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(s.deployer, owner)
}

func (s *PostgresStoreSuite) TestGrantsSurviveRestart() {
	ctx := context.Background()

	reg, err := accesscontrol.New(ctx, s.deployer, s.store)
	s.Require().NoError(err)
	s.Require().NoError(reg.GrantRole(ctx, s.deployer, accesscontrol.RoleOperator, s.operator))
	s.Require().NoError(reg.GrantRole(ctx, s.deployer, accesscontrol.RoleWithdrawer, s.treasury))

	// A fresh registry over the same store sees the grants.
	reloaded, err := accesscontrol.New(ctx, s.deployer, s.store)
	s.Require().NoError(err)
	s.True(reloaded.HasRole(accesscontrol.RoleOperator, s.operator))
	s.True(reloaded.HasRole(accesscontrol.RoleWithdrawer, s.treasury))
	s.False(reloaded.HasRole(accesscontrol.RoleOperator, s.treasury))
}

func (s *PostgresStoreSuite) TestRevokeDeletesGrant() {
	ctx := context.Background()

	reg, err := accesscontrol.New(ctx, s.deployer, s.store)
	s.Require().NoError(err)
	s.Require().NoError(reg.GrantRole(ctx, s.deployer, accesscontrol.RoleOperator, s.operator))
	s.Require().NoError(reg.RevokeRole(ctx, s.deployer, accesscontrol.RoleOperator, s.operator))

	reloaded, err := accesscontrol.New(ctx, s.deployer, s.store)
	s.Require().NoError(err)
	s.False(reloaded.HasRole(accesscontrol.RoleOperator, s.operator))
}

func (s *PostgresStoreSuite) TestOwnershipTransferSurvivesRestart() {
	ctx := context.Background()
	newOwner := domain.MustAddress("0x00000000000000000000000000000000000000b1")

	reg, err := accesscontrol.New(ctx, s.deployer, s.store)
	s.Require().NoError(err)
	s.Require().NoError(reg.TransferOwnership(ctx, s.deployer, newOwner))

	// The deployer default must not win over the persisted transfer.
	reloaded, err := accesscontrol.New(ctx, s.deployer, s.store)
	s.Require().NoError(err)
	s.Equal(newOwner, reloaded.Owner())
}

func (s *PostgresStoreSuite) TestGrantIsIdempotent() {
	ctx := context.Background()

	s.Require().NoError(s.store.SaveGrant(ctx, accesscontrol.RoleOperator, s.operator))
	s.Require().NoError(s.store.SaveGrant(ctx, accesscontrol.RoleOperator, s.operator))

	grants, err := s.store.ListGrants(ctx)
	s.Require().NoError(err)
	s.Len(grants[accesscontrol.RoleOperator], 1)
}
