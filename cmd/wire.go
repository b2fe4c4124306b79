package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bnema/primemall-cli/internal/adapters/httpapi"
	filestore "github.com/bnema/primemall-cli/internal/adapters/kv/file"
	redisstore "github.com/bnema/primemall-cli/internal/adapters/kv/redis"
	sqlitestore "github.com/bnema/primemall-cli/internal/adapters/kv/sqlite"
	"github.com/bnema/primemall-cli/internal/adapters/ledger/jsonrpc"
	tomlrepo "github.com/bnema/primemall-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/primemall-cli/internal/adapters/secrets/chain"
	"github.com/bnema/primemall-cli/internal/application"
	"github.com/bnema/primemall-cli/internal/config"
	"github.com/bnema/primemall-cli/internal/logging"
	"github.com/bnema/primemall-cli/internal/ports"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const envFile = ".env"

type app struct {
	cfg         config.Config
	log         *logrus.Logger
	store       *application.StoreService
	knowledge   *application.KnowledgeClient
	faq         *application.FAQBook
	catalog     *tomlrepo.Repository
	credentials *application.CredentialService
	closers     []io.Closer
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	v := viper.New()
	cfg, err := config.Load(v, config.LoadOptions{Home: homeDir, EnvFile: envFile})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	catalog, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire catalog repository: %w", err)
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(cfg.SecretsDir())
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	sessionKV, closer, err := openSessionStore(context.Background(), cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("wire session store: %w", err)
	}

	var connector ports.LedgerConnector
	if cfg.Ledger.Configured() {
		rpc, err := jsonrpc.NewConnector(jsonrpc.Config{
			RPCURL:    cfg.Ledger.RPCURL,
			Timeout:   cfg.Ledger.Timeout,
			RateLimit: cfg.Ledger.RateLimit,
			Burst:     cfg.Ledger.Burst,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("wire ledger connector: %w", err)
		}
		connector = rpc
	} else {
		log.Debug("ledger gateway not configured; serving fallback content")
	}

	credential := application.StoredCredential{
		Static: cfg.Ledger.Credential,
		Store:  secretStore,
		Key:    application.CredentialKey,
	}
	knowledge := application.NewKnowledgeClient(connector, credential, application.KnowledgeClientConfig{
		ContractAddress: cfg.Ledger.ContractAddress,
	}, log, ports.SystemClock{})

	a := &app{
		cfg:         cfg,
		log:         log,
		store:       application.NewStoreService(application.NewSessionStore(sessionKV), catalog, log),
		knowledge:   knowledge,
		faq:         application.NewFAQBook(knowledge, nil),
		catalog:     catalog,
		credentials: application.NewCredentialService(secretStore),
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	return a, nil
}

func openSessionStore(ctx context.Context, cfg config.StoreConfig) (ports.KeyValueStore, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := sqlitestore.Open(ctx, cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case config.BackendRedis:
		store, err := redisstore.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return filestore.NewStore(cfg.Path), nil, nil
	}
}

func (a *app) server() *httpapi.Server {
	return httpapi.NewServer(a.store, a.knowledge, a.faq, a.catalog, a.log)
}

func (a *app) close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
