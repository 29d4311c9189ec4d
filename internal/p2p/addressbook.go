package p2p

import (
	"net"
	"slices"
	"strconv"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// DefaultAddressTTL is how long a learned address is offered to other peers.
const DefaultAddressTTL = 30 * time.Minute

// AddressBook remembers peer addresses. Learned addresses expire; pinned ones do not.
type AddressBook struct {
	cache *ttlcache.Cache[string, struct{}]
}

// NewAddressBook constructs an AddressBook holding at most capacity addresses.
func NewAddressBook(ttl time.Duration, capacity uint64) *AddressBook {
	if ttl <= 0 {
		ttl = DefaultAddressTTL
	}
	return &AddressBook{
		cache: ttlcache.New[string, struct{}](
			ttlcache.WithTTL[string, struct{}](ttl),
			ttlcache.WithCapacity[string, struct{}](capacity),
			ttlcache.WithDisableTouchOnHit[string, struct{}](),
		),
	}
}

// Pin adds addresses that never expire.
func (b *AddressBook) Pin(addrs ...string) {
	for _, addr := range addrs {
		if ValidAddress(addr) {
			b.cache.Set(addr, struct{}{}, ttlcache.NoTTL)
		}
	}
}

// Learn adds or refreshes addresses and returns how many were valid.
func (b *AddressBook) Learn(addrs ...string) int {
	n := 0
	for _, addr := range addrs {
		if !ValidAddress(addr) {
			continue
		}
		if item := b.cache.Get(addr); item != nil && item.TTL() == ttlcache.NoTTL {
			n++
			continue
		}
		b.cache.Set(addr, struct{}{}, ttlcache.DefaultTTL)
		n++
	}
	return n
}

// Addresses returns the unexpired addresses in sorted order.
func (b *AddressBook) Addresses() []string {
	items := b.cache.Items()
	addrs := make([]string, 0, len(items))
	for addr, item := range items {
		if !item.IsExpired() {
			addrs = append(addrs, addr)
		}
	}
	slices.Sort(addrs)
	return addrs
}

// Start runs expiry cleanup until Stop.
func (b *AddressBook) Start() { b.cache.Start() }

// Stop ends expiry cleanup.
func (b *AddressBook) Stop() { b.cache.Stop() }

// ValidAddress reports whether addr is host:port with a non-empty host and a port in 1..65535.
func ValidAddress(addr string) bool {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || host == "" {
		return false
	}
	p, err := strconv.Atoi(port)
	return err == nil && p > 0 && p <= 65535
}
