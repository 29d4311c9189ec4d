package p2p

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goodnatureofminers/marabu/internal/clock"
)

// Defaults applied by NewServer to zero Config fields.
const (
	DefaultListenAddr  = ":18018"
	DefaultMaxPeers    = 32
	DefaultDialTimeout = 5 * time.Second
	DefaultRetryBase   = time.Second
	DefaultRetryLimit  = time.Minute
	addressCapacity    = 1024
)

// Config configures a Server.
type Config struct {
	ListenAddr  string
	Bootstrap   []string
	Agent       string
	MessageRate int
	MaxPeers    int
	DialTimeout time.Duration
	RetryBase   time.Duration
	RetryLimit  time.Duration
}

// Server accepts inbound peers, keeps bootstrap peers connected and fans messages out to them.
type Server struct {
	cfg     Config
	book    *AddressBook
	metrics Metrics
	logger  *zap.Logger

	mu       sync.Mutex
	listener net.Listener
	conns    map[*Peer]struct{}
	peers    map[*Peer]struct{}
	wg       sync.WaitGroup
}

// NewServer constructs a Server. Bootstrap addresses are pinned in the address book.
func NewServer(cfg Config, metrics Metrics, logger *zap.Logger) *Server {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.Agent == "" {
		cfg.Agent = DefaultAgent
	}
	if cfg.MaxPeers <= 0 {
		cfg.MaxPeers = DefaultMaxPeers
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = DefaultRetryBase
	}
	if cfg.RetryLimit <= 0 {
		cfg.RetryLimit = DefaultRetryLimit
	}
	book := NewAddressBook(DefaultAddressTTL, addressCapacity)
	book.Pin(cfg.Bootstrap...)
	return &Server{
		cfg:     cfg,
		book:    book,
		metrics: metrics,
		logger:  logger.Named("p2p"),
		conns:   make(map[*Peer]struct{}),
		peers:   make(map[*Peer]struct{}),
	}
}

// Listen binds the listen address. Serve calls it when it has not been called.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return nil
	}
	l, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.ListenAddr, err)
	}
	s.listener = l
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts peers and dials bootstrap peers until ctx ends.
func (s *Server) Serve(ctx context.Context, n Node) error {
	if err := s.Listen(); err != nil {
		return err
	}
	go s.book.Start()
	defer s.book.Stop()

	s.logger.Info("p2p server listening",
		zap.String("addr", s.listener.Addr().String()),
		zap.Strings("bootstrap", s.cfg.Bootstrap),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.accept(gctx, n)
	})
	for _, addr := range s.cfg.Bootstrap {
		g.Go(func() error {
			s.keepConnected(gctx, addr, n)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		return s.listener.Close()
	})

	err := g.Wait()
	s.wg.Wait()
	if errors.Is(err, net.ErrClosed) {
		err = nil
	}
	return err
}

func (s *Server) accept(ctx context.Context, n Node) error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		if s.full() {
			s.logger.Debug("rejecting peer, too many connections", zap.String("peer", conn.RemoteAddr().String()))
			s.metrics.ObserveDisconnect(reasonFull)
			_ = conn.Close()
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.connect(ctx, conn, n)
		}()
	}
}

// keepConnected dials addr and redials with backoff whenever the connection drops.
func (s *Server) keepConnected(ctx context.Context, addr string, n Node) {
	dialer := net.Dialer{Timeout: s.cfg.DialTimeout}
	for attempt := 0; ; attempt++ {
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			s.logger.Debug("dial peer", zap.String("peer", addr), zap.Int("attempt", attempt), zap.Error(err))
		} else {
			s.connect(ctx, conn, n)
			attempt = 0
		}
		if err := clock.SleepWithContext(ctx, clock.Backoff(attempt, s.cfg.RetryBase, s.cfg.RetryLimit)); err != nil {
			return
		}
	}
}

func (s *Server) connect(ctx context.Context, conn net.Conn, n Node) {
	p := newPeer(conn, n, s)
	s.mu.Lock()
	s.conns[p] = struct{}{}
	s.mu.Unlock()
	p.run(ctx)
}

func (s *Server) full() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns) >= s.cfg.MaxPeers
}

func (s *Server) register(p *Peer) {
	s.mu.Lock()
	s.peers[p] = struct{}{}
	n := len(s.peers)
	s.mu.Unlock()
	s.metrics.SetPeers(n)
}

func (s *Server) unregister(p *Peer) {
	s.mu.Lock()
	delete(s.conns, p)
	delete(s.peers, p)
	n := len(s.peers)
	s.mu.Unlock()
	s.metrics.SetPeers(n)
}

// Peers returns the remote addresses of peers past the handshake.
func (s *Server) Peers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	addrs := make([]string, 0, len(s.peers))
	for p := range s.peers {
		addrs = append(addrs, p.Addr())
	}
	return addrs
}

// KnownPeers returns the addresses offered in peers messages.
func (s *Server) KnownPeers() []string {
	return s.book.Addresses()
}

// Broadcast sends m to every peer past the handshake.
func (s *Server) Broadcast(m Message) {
	data, err := Encode(m)
	if err != nil {
		s.logger.Error("encode broadcast", zap.String("type", m.Type), zap.Error(err))
		return
	}
	s.mu.Lock()
	peers := make([]*Peer, 0, len(s.peers))
	for p := range s.peers {
		peers = append(peers, p)
	}
	s.mu.Unlock()

	for _, p := range peers {
		p.write(m.Type, data)
	}
}

// RequestObject broadcasts getobject for id.
func (s *Server) RequestObject(id string) {
	s.Broadcast(Message{Type: TypeGetObject, ObjectID: id})
}
