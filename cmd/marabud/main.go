// Package main runs a marabu node.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/goodnatureofminers/marabu/internal/chain"
	"github.com/goodnatureofminers/marabu/internal/clock"
	"github.com/goodnatureofminers/marabu/internal/fetcher"
	"github.com/goodnatureofminers/marabu/internal/kv"
	"github.com/goodnatureofminers/marabu/internal/metrics"
	"github.com/goodnatureofminers/marabu/internal/model"
	"github.com/goodnatureofminers/marabu/internal/node"
	"github.com/goodnatureofminers/marabu/internal/p2p"
	"github.com/goodnatureofminers/marabu/internal/storage"
	"github.com/goodnatureofminers/marabu/internal/transport"
	"github.com/goodnatureofminers/marabu/internal/validator"
)

type config struct {
	ListenAddr   string        `long:"listen-addr" env:"MARABU_LISTEN_ADDR" description:"peer-to-peer listen address" default:":18018"`
	Peers        []string      `long:"peer" env:"MARABU_PEERS" env-delim:"," description:"bootstrap peer host:port (repeatable)"`
	DataDir      string        `long:"data-dir" env:"MARABU_DATA_DIR" description:"directory for the object, utxo, height and mempool stores" default:"./data"`
	DBBackend    string        `long:"db-backend" env:"MARABU_DB_BACKEND" description:"key-value backend" choice:"leveldb" choice:"bolt" default:"leveldb"`
	FetchTimeout time.Duration `long:"fetch-timeout" env:"MARABU_FETCH_TIMEOUT" description:"how long to wait for a requested object to arrive" default:"1s"`
	MessageRate  int           `long:"message-rate" env:"MARABU_MESSAGE_RATE" description:"inbound messages per second per peer, 0 disables the limit" default:"100"`
	Agent        string        `long:"agent" env:"MARABU_AGENT" description:"agent announced in hello" default:"marabud 0.8"`
	MaxPeers     int           `long:"max-peers" env:"MARABU_MAX_PEERS" description:"maximum concurrent peer connections" default:"32"`
	MetricsAddr  string        `long:"metrics-addr" env:"MARABU_METRICS_ADDR" description:"prometheus listen address" default:":2112"`
	AdminAddr    string        `long:"admin-addr" env:"MARABU_ADMIN_ADDR" description:"admin REST listen address" default:":8001"`
	GRPCAddr     string        `long:"grpc-addr" env:"MARABU_GRPC_ADDR" description:"gRPC health listen address" default:":8000"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("marabu node failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	params := model.Mainnet

	backend, err := openBackend(cfg.DBBackend, cfg.DataDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Error("close key-value backend", zap.Error(err))
		}
	}()
	db := kv.NewObservedBackend(backend, metrics.NewKVStore())

	stores := map[string]kv.Store{}
	for _, name := range []string{"objects", "utxo", "heights", "mempool"} {
		s, err := db.Store(name)
		if err != nil {
			return fmt.Errorf("open %s store: %w", name, err)
		}
		stores[name] = s
	}
	objects := storage.NewObjectStore(stores["objects"])
	utxos := storage.NewUTXOStore(stores["utxo"])
	heights := storage.NewHeightStore(stores["heights"])
	pool, err := storage.NewMempoolStore(stores["mempool"])
	if err != nil {
		return fmt.Errorf("open mempool store: %w", err)
	}

	chainMetrics := metrics.NewChain()
	mempool := chain.NewMempool(pool, utxos, chainMetrics, logger)
	manager := chain.NewManager(params, objects, heights, mempool, chainMetrics, logger)

	peers := p2p.NewServer(p2p.Config{
		ListenAddr:  cfg.ListenAddr,
		Bootstrap:   cfg.Peers,
		Agent:       cfg.Agent,
		MessageRate: cfg.MessageRate,
		MaxPeers:    cfg.MaxPeers,
	}, metrics.NewP2P(), logger)

	f := fetcher.New(peers, objects, metrics.NewFetcher(), cfg.FetchTimeout, logger)
	objects.OnArrival(f.Notify)
	v := validator.New(params, objects, utxos, heights, f, clock.System{}, logger)

	n := node.New(
		params,
		node.Stores{Objects: objects, UTXOs: utxos, Heights: heights},
		v,
		manager,
		mempool,
		f,
		metrics.NewNode(),
		logger,
	)
	if err := n.Init(ctx); err != nil {
		return fmt.Errorf("init node: %w", err)
	}

	admin, err := transport.NewAdminHandler(n, peers, logger).Handler()
	if err != nil {
		return fmt.Errorf("build admin handler: %w", err)
	}
	grpcServer, health := transport.NewGRPCServer(logger)
	health.SetServingStatus(transport.ServiceName, healthpb.HealthCheckResponse_SERVING)

	if err := peers.Listen(); err != nil {
		return err
	}
	grpcSocket, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.GRPCAddr, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return peers.Serve(gctx, n)
	})
	g.Go(func() error {
		logger.Info("Starting gRPC server", zap.String("addr", cfg.GRPCAddr))
		if err := grpcServer.Serve(grpcSocket); err != nil {
			return fmt.Errorf("serve grpc: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down gRPC server")
		health.Shutdown()
		grpcServer.GracefulStop()
		return nil
	})
	serveHTTP(gctx, g, "admin", cfg.AdminAddr, admin, logger)
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	serveHTTP(gctx, g, "metrics", cfg.MetricsAddr, metricsMux, logger)

	return g.Wait()
}

func openBackend(name, dataDir string) (kv.Backend, error) {
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	switch name {
	case "leveldb":
		return kv.OpenLevelDB(filepath.Join(dataDir, "leveldb"))
	case "bolt":
		return kv.OpenBolt(filepath.Join(dataDir, "marabu.db"))
	default:
		return nil, fmt.Errorf("unknown db backend %q", name)
	}
}

func serveHTTP(ctx context.Context, g *errgroup.Group, name, addr string, handler http.Handler, logger *zap.Logger) {
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down the http server", zap.String("server", name))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("server", name), zap.String("addr", addr))
		if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve %s http: %w", name, err)
		}
		return nil
	})
}
