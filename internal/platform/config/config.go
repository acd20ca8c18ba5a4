// Package config builds the process configuration from environment variables
// so main stays lean. Every knob has a development default; production
// deployments override through the environment.
package config

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/platform-web3/hypehaus-contract/pkg/domain"
	platformstrings "github.com/platform-web3/hypehaus-contract/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
	TokenTTL      time.Duration
}

// Collection captures the issuance parameters fixed at deployment.
type Collection struct {
	MaxSupply      uint64
	Deployer       domain.Address
	TeamWallet     domain.Address
	BaseURI        string
	CommunityPrice *big.Int
	PublicPrice    *big.Int
	MaxMintAlpha   int
	MaxMintHype    int
	MaxMintMember  int
	MaxMintPublic  int
}

// Infra captures the optional backing services. Empty values mean the process
// runs on in-memory state.
type Infra struct {
	DatabaseURL  string
	RedisURL     string
	KafkaBrokers []string
	KafkaTopic   string
}

// Config is the full process configuration.
type Config struct {
	Server     Server
	Collection Collection
	Infra      Infra
}

// Issuance defaults, in wei: 0.05 and 0.08 ether.
var (
	defaultCommunityPrice, _ = new(big.Int).SetString("50000000000000000", 10)
	defaultPublicPrice, _    = new(big.Int).SetString("80000000000000000", 10)
)

// Development wallets; any real deployment must override both.
const (
	defaultDeployer = "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"
	defaultTeam     = "0x70997970c51812dc3a010c7d01b50e0d17dc79c8"
)

// FromEnv builds the configuration from environment variables.
func FromEnv() (Config, error) {
	deployer, err := domain.ParseAddress(envOr("HYPEHAUS_DEPLOYER", defaultDeployer))
	if err != nil {
		return Config{}, fmt.Errorf("HYPEHAUS_DEPLOYER: %w", err)
	}
	team, err := domain.ParseAddress(envOr("HYPEHAUS_TEAM_WALLET", defaultTeam))
	if err != nil {
		return Config{}, fmt.Errorf("HYPEHAUS_TEAM_WALLET: %w", err)
	}
	maxSupply, err := envUint("HYPEHAUS_MAX_SUPPLY", 10000)
	if err != nil {
		return Config{}, err
	}
	communityPrice, err := envWei("HYPEHAUS_COMMUNITY_PRICE_WEI", defaultCommunityPrice)
	if err != nil {
		return Config{}, err
	}
	publicPrice, err := envWei("HYPEHAUS_PUBLIC_PRICE_WEI", defaultPublicPrice)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Server: Server{
			Addr:          envOr("HYPEHAUS_ADDR", ":8080"),
			JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			JWTIssuer:     envOr("JWT_ISSUER", "hypehaus"),
			JWTAudience:   envOr("JWT_AUDIENCE", "hypehaus-mint"),
			TokenTTL:      time.Hour,
		},
		Collection: Collection{
			MaxSupply:      maxSupply,
			Deployer:       deployer,
			TeamWallet:     team,
			BaseURI:        envOr("HYPEHAUS_BASE_URI", ""),
			CommunityPrice: communityPrice,
			PublicPrice:    publicPrice,
			MaxMintAlpha:   envIntOr("HYPEHAUS_MAX_MINT_ALPHA", 3),
			MaxMintHype:    envIntOr("HYPEHAUS_MAX_MINT_HYPELISTER", 2),
			MaxMintMember:  envIntOr("HYPEHAUS_MAX_MINT_HYPEMEMBER", 1),
			MaxMintPublic:  envIntOr("HYPEHAUS_MAX_MINT_PUBLIC", 2),
		},
		Infra: Infra{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			RedisURL:    os.Getenv("REDIS_URL"),
			KafkaTopic:  envOr("KAFKA_TOPIC", "hypehaus.transfers"),
		},
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Infra.KafkaBrokers = platformstrings.DedupeAndTrim(strings.Split(brokers, ","))
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func envUint(key string, fallback uint64) (uint64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envWei(key string, fallback *big.Int) (*big.Int, error) {
	v := os.Getenv(key)
	if v == "" {
		return new(big.Int).Set(fallback), nil
	}
	n, ok := new(big.Int).SetString(v, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("%s: %q is not a non-negative wei amount", key, v)
	}
	return n, nil
}
