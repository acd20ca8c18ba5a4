// Command server runs the HypeHaus issuance ledger API. main wires the
// high-level dependencies and keeps the server lifecycle small; business
// logic lives in the internal packages. Every backing service (postgres,
// redis, kafka) is optional: without it the process runs on in-memory state,
// which is how development and tests work.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/platform-web3/hypehaus-contract/internal/accesscontrol"
	"github.com/platform-web3/hypehaus-contract/internal/events"
	"github.com/platform-web3/hypehaus-contract/internal/ledger"
	"github.com/platform-web3/hypehaus-contract/internal/ledger/journal"
	"github.com/platform-web3/hypehaus-contract/internal/metadata"
	"github.com/platform-web3/hypehaus-contract/internal/mint"
	mintmetrics "github.com/platform-web3/hypehaus-contract/internal/mint/metrics"
	"github.com/platform-web3/hypehaus-contract/internal/platform/config"
	"github.com/platform-web3/hypehaus-contract/internal/platform/httpserver"
	"github.com/platform-web3/hypehaus-contract/internal/platform/logger"
	platformmetrics "github.com/platform-web3/hypehaus-contract/internal/platform/metrics"
	platformredis "github.com/platform-web3/hypehaus-contract/internal/platform/redis"
	"github.com/platform-web3/hypehaus-contract/internal/sale"
	httptransport "github.com/platform-web3/hypehaus-contract/internal/transport/http"
	"github.com/platform-web3/hypehaus-contract/internal/treasury"
	"github.com/platform-web3/hypehaus-contract/internal/walletauth"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	slog.SetDefault(log)

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	// Persistence: postgres when configured, in-memory otherwise.
	var (
		db       *sql.DB
		jrnl     journal.Journal
		aclStore accesscontrol.Store
	)
	if cfg.Infra.DatabaseURL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.Infra.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}

		pgJournal := journal.NewPostgres(db)
		if err := pgJournal.EnsureSchema(ctx); err != nil {
			return err
		}
		pgACL := accesscontrol.NewPostgres(db)
		if err := pgACL.EnsureSchema(ctx); err != nil {
			return err
		}
		jrnl, aclStore = pgJournal, pgACL
		log.Info("using postgres persistence")
	} else {
		jrnl, aclStore = journal.NewMemory(), accesscontrol.NewInMemoryStore()
		log.Warn("no DATABASE_URL set, ledger state is in-memory only")
	}

	acl, err := accesscontrol.New(ctx, cfg.Collection.Deployer, aclStore,
		accesscontrol.WithLogger(log))
	if err != nil {
		return err
	}

	saleState := sale.New(acl, sale.Params{
		CommunityPrice: cfg.Collection.CommunityPrice,
		PublicPrice:    cfg.Collection.PublicPrice,
		MaxPerWallet: map[sale.Tier]int{
			sale.TierAlpha:      cfg.Collection.MaxMintAlpha,
			sale.TierHypelister: cfg.Collection.MaxMintHype,
			sale.TierHypemember: cfg.Collection.MaxMintMember,
		},
		MaxMintPublic: cfg.Collection.MaxMintPublic,
	}, sale.WithLogger(log))

	// Events: kafka when configured, dropped otherwise.
	var publisher events.Publisher = events.Noop{}
	if len(cfg.Infra.KafkaBrokers) > 0 {
		kafka, err := events.NewKafka(ctx, cfg.Infra.KafkaBrokers, cfg.Infra.KafkaTopic,
			events.WithKafkaLogger(log))
		if err != nil {
			return err
		}
		defer kafka.Close()
		publisher = kafka
		log.Info("publishing transfer events", "topic", cfg.Infra.KafkaTopic)
	}

	vault := treasury.NewVault(cfg.Collection.TeamWallet, treasury.LogPayout{Logger: log})
	orch, err := mint.New(ctx,
		ledger.NewSupply(cfg.Collection.MaxSupply),
		ledger.NewClaims(),
		saleState, acl, vault, jrnl,
		mint.WithLogger(log),
		mint.WithMetrics(mintmetrics.New()),
		mint.WithPublisher(publisher),
	)
	if err != nil {
		return err
	}

	// Metadata: redis-cached when configured.
	resolverOpts := []metadata.Option{metadata.WithLogger(log)}
	redisClient, err := platformredis.New(ctx, cfg.Infra.RedisURL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		resolverOpts = append(resolverOpts, metadata.WithCache(metadata.NewRedisCache(redisClient.Client, log)))
		log.Info("caching token URIs in redis")
	}
	resolver := metadata.NewResolver(orch, acl, metadata.Config{BaseURI: cfg.Collection.BaseURI}, resolverOpts...)

	tokens := walletauth.NewService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience)

	router := httptransport.NewRouter(log, platformmetrics.NewHTTP(),
		httptransport.NewSessionHandler(tokens, cfg.Server.TokenTTL, log),
		httptransport.NewQueryHandler(orch, saleState, acl, resolver),
		httptransport.NewMintHandler(orch, tokens, log),
		httptransport.NewAdminHandler(saleState, acl, resolver, tokens, log),
		httptransport.NewTreasuryHandler(orch, tokens, log),
	)
	srv := httpserver.New(cfg.Server.Addr, router)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting hypehaus ledger",
			"addr", cfg.Server.Addr,
			"max_supply", cfg.Collection.MaxSupply,
			"total_minted", orch.TotalMinted(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
