package p2p

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/marabu/internal/model"
	"github.com/goodnatureofminers/marabu/internal/node"
	"github.com/goodnatureofminers/marabu/internal/storage"
	"github.com/goodnatureofminers/marabu/internal/validator"
)

const writeTimeout = 5 * time.Second

// Disconnect reasons reported to metrics.
const (
	reasonClosed   = "closed"
	reasonProtocol = "protocol"
	reasonInvalid  = "invalid_object"
	reasonWrite    = "write"
	reasonFull     = "full"
)

// Peer is one connection. Lines are read and dispatched in order; object validation runs on its own goroutine.
type Peer struct {
	addr    string
	conn    net.Conn
	node    Node
	server  *Server
	limiter ratelimit.Limiter
	metrics Metrics
	logger  *zap.Logger

	handshake bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	writeMu   sync.Mutex
	dropOnce  sync.Once
}

func newPeer(conn net.Conn, n Node, s *Server) *Peer {
	limiter := ratelimit.NewUnlimited()
	if s.cfg.MessageRate > 0 {
		limiter = ratelimit.New(s.cfg.MessageRate)
	}
	addr := conn.RemoteAddr().String()
	return &Peer{
		addr:    addr,
		conn:    conn,
		node:    n,
		server:  s,
		limiter: limiter,
		metrics: s.metrics,
		logger:  s.logger.With(zap.String("peer", addr)),
	}
}

// Addr returns the remote address.
func (p *Peer) Addr() string { return p.addr }

func (p *Peer) run(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	defer func() {
		p.drop(reasonClosed, "")
		p.wg.Wait()
	}()
	go func() {
		<-ctx.Done()
		_ = p.conn.Close()
	}()

	p.logger.Debug("peer connected")
	for _, m := range []Message{
		Hello(p.server.cfg.Agent),
		{Type: TypeGetPeers},
		{Type: TypeGetChainTip},
		{Type: TypeGetMempool},
	} {
		p.send(m)
	}

	scanner := bufio.NewScanner(p.conn)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxMessageSize)
	for scanner.Scan() {
		p.limiter.Take()
		if err := p.handle(ctx, scanner.Bytes()); err != nil {
			p.logger.Warn("protocol violation", zap.Error(err))
			p.drop(reasonProtocol, err.Error())
			return
		}
	}
	if err := scanner.Err(); errors.Is(err, bufio.ErrTooLong) {
		p.drop(reasonProtocol, "message too long")
	}
}

// drop sends errMsg when non-empty and closes the connection. Only the first call has effect.
func (p *Peer) drop(reason, errMsg string) {
	p.dropOnce.Do(func() {
		if errMsg != "" {
			p.send(Errorf("%s", errMsg))
		}
		p.metrics.ObserveDisconnect(reason)
		p.server.unregister(p)
		if p.cancel != nil {
			p.cancel()
		}
		_ = p.conn.Close()
		p.logger.Debug("peer disconnected", zap.String("reason", reason))
	})
}

func (p *Peer) send(m Message) {
	data, err := Encode(m)
	if err != nil {
		p.logger.Error("encode message", zap.String("type", m.Type), zap.Error(err))
		return
	}
	p.write(m.Type, data)
}

func (p *Peer) write(msgType string, data []byte) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	_ = p.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if _, err := p.conn.Write(data); err != nil {
		p.logger.Debug("write message", zap.String("type", msgType), zap.Error(err))
		go p.drop(reasonWrite, "")
		return
	}
	p.metrics.ObserveMessage("out", msgType)
}

func (p *Peer) handle(ctx context.Context, line []byte) error {
	m, err := ParseMessage(line)
	if err != nil {
		return err
	}
	p.metrics.ObserveMessage("in", m.Type)

	if !p.handshake && m.Type != TypeHello {
		return fmt.Errorf("%s received before hello", m.Type)
	}

	switch m.Type {
	case TypeHello:
		if !AcceptsVersion(m.Version) {
			return fmt.Errorf("version %q not accepted", m.Version)
		}
		if !p.handshake {
			p.handshake = true
			p.server.register(p)
			p.logger.Info("handshake completed", zap.String("agent", m.Agent), zap.String("version", m.Version))
		}
	case TypeError:
		p.logger.Debug("peer reported error", zap.String("error", m.Error))
	case TypeGetPeers:
		p.send(Message{Type: TypePeers, Peers: p.server.KnownPeers()})
	case TypePeers:
		n := p.server.book.Learn(m.Peers...)
		p.logger.Debug("learned peers", zap.Int("valid", n), zap.Int("received", len(m.Peers)))
	case TypeGetObject:
		p.sendObject(m.ObjectID)
	case TypeIHaveObject:
		ok, err := p.node.HasObject(m.ObjectID)
		if err != nil {
			p.logger.Error("check object", zap.String("id", m.ObjectID), zap.Error(err))
			return nil
		}
		if !ok {
			p.send(Message{Type: TypeGetObject, ObjectID: m.ObjectID})
		}
	case TypeObject:
		obj, err := model.ParseObject(m.Object)
		if err != nil {
			return err
		}
		p.wg.Add(1)
		go p.submit(ctx, obj)
	case TypeGetChainTip:
		tip, _ := p.node.ChainTip()
		p.send(Message{Type: TypeChainTip, BlockID: tip})
	case TypeChainTip:
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			if err := p.node.Fetch(ctx, m.BlockID); err != nil && ctx.Err() == nil {
				p.logger.Warn("fetch announced chain tip", zap.String("id", m.BlockID), zap.Error(err))
			}
		}()
	case TypeGetMempool:
		p.send(Message{Type: TypeMempool, TxIDs: p.node.MempoolTxIDs()})
	case TypeMempool:
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			if err := p.node.FetchMany(ctx, m.TxIDs); err != nil && ctx.Err() == nil {
				p.logger.Debug("fetch announced mempool", zap.Int("txids", len(m.TxIDs)), zap.Error(err))
			}
		}()
	}
	return nil
}

func (p *Peer) sendObject(id string) {
	raw, err := p.node.Object(id)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		p.logger.Error("load object", zap.String("id", id), zap.Error(err))
		return
	}
	p.send(Message{Type: TypeObject, Object: raw})
}

func (p *Peer) submit(ctx context.Context, obj model.Object) {
	defer p.wg.Done()
	res, err := p.node.Submit(ctx, obj)
	switch {
	case res == node.Accepted:
		id, err := model.ObjectID(obj)
		if err != nil {
			p.logger.Error("object id", zap.Error(err))
			return
		}
		p.server.Broadcast(Message{Type: TypeIHaveObject, ObjectID: id})
	case err == nil, ctx.Err() != nil:
	case errors.Is(err, validator.ErrInvalid):
		p.drop(reasonInvalid, "invalid object")
	default:
		p.logger.Error("object not stored", zap.Error(err))
	}
}
