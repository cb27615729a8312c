package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/rpcclient"
	gojson "github.com/goccy/go-json"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/consensus"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/engine"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/miner"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/node/bitcoin"
	rpcclient2 "github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-nodewatch/internal/transport"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	RPCURL       string `long:"rpc-url" env:"NODEWATCH_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser      string `long:"rpc-user" env:"NODEWATCH_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword  string `long:"rpc-password" env:"NODEWATCH_RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPCRPS       int    `long:"rpc-rps" env:"NODEWATCH_RPC_RPS" description:"max RPC calls per second, 0 for unlimited" default:"0"`
	Network      string `long:"network" env:"NODEWATCH_NETWORK" description:"network name (mainnet, testnet3, signet, regtest)" default:"mainnet"`
	MetricsAddr  string `long:"metrics-addr" env:"NODEWATCH_METRICS_ADDR" description:"address for metrics server" default:":2112"`
	SnapshotAddr string `long:"snapshot-addr" env:"NODEWATCH_SNAPSHOT_ADDR" description:"address for snapshot server, empty to disable" default:":8080"`
	ZMQAddr      string `long:"zmq-addr" env:"NODEWATCH_ZMQ_ADDR" description:"zmqpubhashblock endpoint, empty to poll only"`
	MinersFile   string `long:"miners-file" env:"NODEWATCH_MINERS_FILE" description:"YAML list of {name, wallet} payout addresses"`
	Once         bool   `long:"once" env:"NODEWATCH_ONCE" description:"poll every domain once, print the snapshot as JSON and exit"`

	MempoolPermits    int           `long:"mempool-permits" env:"NODEWATCH_MEMPOOL_PERMITS" description:"concurrent getmempoolentry calls" default:"10"`
	MempoolMaxEntries int           `long:"mempool-max-entries" env:"NODEWATCH_MEMPOOL_MAX_ENTRIES" description:"most mempool entries held for the distribution" default:"100000"`
	DustThreshold     int64         `long:"dust-threshold" env:"NODEWATCH_DUST_THRESHOLD" description:"largest base fee in sats treated as dust" default:"546"`
	HistorySize       int           `long:"history-size" env:"NODEWATCH_HISTORY_SIZE" description:"blocks kept in miner history" default:"20"`
	PropagationSlots  int           `long:"propagation-slots" env:"NODEWATCH_PROPAGATION_SLOTS" description:"block intervals kept for the average" default:"5"`
	ForkThreshold     uint64        `long:"fork-threshold" env:"NODEWATCH_FORK_THRESHOLD" description:"branch length that raises a fork alert" default:"2"`
	ForkCooldown      time.Duration `long:"fork-cooldown" env:"NODEWATCH_FORK_COOLDOWN" description:"minimum time between alerts for one branch" default:"10m"`
	AlarmBlocks       uint64        `long:"alarm-blocks" env:"NODEWATCH_ALARM_BLOCKS" description:"raise an alarm this many blocks past the starting height, 0 to disable" default:"0"`

	Intervals struct {
		Chain          time.Duration `long:"chain" env:"CHAIN" description:"getblockchaininfo cadence" default:"2s"`
		Block          time.Duration `long:"block" env:"BLOCK" description:"latest block cadence" default:"2s"`
		Window         time.Duration `long:"window" env:"WINDOW" description:"difficulty window cadence" default:"2s"`
		MempoolSummary time.Duration `long:"mempool-summary" env:"MEMPOOL_SUMMARY" description:"getmempoolinfo cadence" default:"3s"`
		Mempool        time.Duration `long:"mempool" env:"MEMPOOL" description:"mempool sampling cadence" default:"3s"`
		Network        time.Duration `long:"network" env:"NETWORK" description:"getnetworkinfo cadence" default:"7s"`
		Peers          time.Duration `long:"peers" env:"PEERS" description:"getpeerinfo cadence" default:"7s"`
		NetTotals      time.Duration `long:"net-totals" env:"NET_TOTALS" description:"getnettotals cadence" default:"7s"`
		Tips           time.Duration `long:"tips" env:"TIPS" description:"getchaintips cadence" default:"10s"`
	} `group:"intervals" namespace:"interval" env-namespace:"NODEWATCH_INTERVAL"`
}

func (c config) engineConfig() engine.Config {
	return engine.Config{
		Intervals: engine.Intervals{
			Chain:          c.Intervals.Chain,
			Block:          c.Intervals.Block,
			Window:         c.Intervals.Window,
			MempoolSummary: c.Intervals.MempoolSummary,
			Mempool:        c.Intervals.Mempool,
			Network:        c.Intervals.Network,
			Peers:          c.Intervals.Peers,
			NetTotals:      c.Intervals.NetTotals,
			Tips:           c.Intervals.Tips,
		},
		MempoolPermits:    c.MempoolPermits,
		MempoolMaxEntries: c.MempoolMaxEntries,
		DustThreshold:     btcutil.Amount(c.DustThreshold),
		HistorySize:       c.HistorySize,
		PropagationSlots:  c.PropagationSlots,
		ForkThreshold:     c.ForkThreshold,
		ForkCooldown:      c.ForkCooldown,
		AlarmBlocks:       c.AlarmBlocks,
	}
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

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("nodewatch failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init btc rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	rpc := rpcclient2.NewObservedClient(rpcClient, cfg.RPCRPS, metrics.NewRPCClient(cfg.Network))

	source, err := bitcoin.NewSource(rpc, cfg.Network)
	if err != nil {
		return fmt.Errorf("init node source: %w", err)
	}

	var wallets miner.WalletTable
	if cfg.MinersFile != "" {
		w, err := miner.LoadWallets(cfg.MinersFile)
		if err != nil {
			return err
		}
		logger.Info("loaded miner wallets", zap.Int("wallets", len(w)))
		wallets = w
	}

	var opts []engine.Option
	if !cfg.Once {
		blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
		if err != nil {
			return err
		}
		if blockSignal != nil {
			opts = append(opts, engine.WithBlockSignal(blockSignal))
		}
	}

	eng, err := engine.New(
		source,
		wallets,
		consensus.NewLogSink(logger),
		cfg.engineConfig(),
		engine.Metrics{
			Poller:      metrics.NewPoller(cfg.Network),
			Mempool:     metrics.NewMempoolSampler(cfg.Network),
			Forks:       metrics.NewForkMonitor(cfg.Network),
			Propagation: metrics.NewPropagation(cfg.Network),
		},
		logger,
		opts...,
	)
	if err != nil {
		return err
	}

	if cfg.Once {
		if err := eng.Refresh(ctx); err != nil {
			logger.Warn("some domains failed to refresh", zap.Error(err))
		}
		enc := gojson.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(eng.Snapshot())
	}

	startHTTPServer(ctx, "metrics", cfg.MetricsAddr, promhttp.Handler(), logger)
	if cfg.SnapshotAddr != "" {
		startHTTPServer(ctx, "snapshot", cfg.SnapshotAddr, transport.NewSnapshotHandler(eng, logger), logger)
	}
	return eng.Run(ctx)
}

func startHTTPServer(ctx context.Context, name, addr string, handler http.Handler, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting http server", zap.String("server", name), zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", zap.String("server", name), zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown http server", zap.String("server", name), zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
