// Package session holds the customer's persisted identity and the vault of
// license keys minted by completed checkouts.
package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/royalkeys/royalkeys/catalog"
	"github.com/royalkeys/royalkeys/internal/util"
	"github.com/royalkeys/royalkeys/storage"
)

// DefaultStorageKey is the repository key the session is persisted under.
const DefaultStorageKey = "royalkeys_session"

// KeyStatus represents the lifecycle state of a license key.
type KeyStatus string

const (
	StatusActive  KeyStatus = "active"
	StatusUsed    KeyStatus = "used"
	StatusRevoked KeyStatus = "revoked"
)

// LicenseKey is the deliverable of a completed purchase. Created exactly
// once per successful checkout and never mutated afterwards.
type LicenseKey struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Key         string    `json:"key"`
	Date        string    `json:"date"`
	Status      KeyStatus `json:"status"`
}

// User is the persisted session identity. Keys are ordered newest first.
type User struct {
	Email      string       `json:"email"`
	IsLoggedIn bool         `json:"isLoggedIn"`
	Keys       []LicenseKey `json:"keys"`
}

// DefaultUser returns the session used when nothing valid is persisted.
func DefaultUser() User {
	return User{
		Email:      "customer@royalkeys.io",
		IsLoggedIn: true,
		Keys:       []LicenseKey{},
	}
}

func (u User) clone() User {
	out := u
	out.Keys = make([]LicenseKey, len(u.Keys))
	copy(out.Keys, u.Keys)
	return out
}

// Manager owns the in-memory session and mirrors every mutation to a
// storage.Repository. Load failures of any kind fall back to the default
// session; save failures are logged and swallowed.
type Manager struct {
	mu         sync.Mutex
	repo       storage.Repository
	storageKey string
	logger     *slog.Logger
	now        func() time.Time

	user      User
	lastStamp int64
}

// Option configures a Manager.
type Option func(*Manager)

// WithStorageKey overrides the repository key the session is stored under.
func WithStorageKey(key string) Option {
	return func(m *Manager) { m.storageKey = key }
}

// WithLogger sets the logger used for swallowed persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager loads the session from repo, substituting the default session
// when the stored value is missing or unparseable.
func NewManager(repo storage.Repository, opts ...Option) *Manager {
	m := &Manager{
		repo:       repo,
		storageKey: DefaultStorageKey,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.user = m.load()
	return m
}

func (m *Manager) load() User {
	data, err := m.repo.Load(m.storageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.logger.Warn("session load failed, using default session", "error", err)
		}
		return DefaultUser()
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		m.logger.Warn("session parse failed, using default session", "error", err)
		return DefaultUser()
	}
	if u.Keys == nil {
		u.Keys = []LicenseKey{}
	}
	return u
}

// User returns a copy of the current session.
func (m *Manager) User() User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user.clone()
}

// AddKey prepends a license key to the session and persists the result.
func (m *Manager) AddKey(key LicenseKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user.Keys = append([]LicenseKey{key}, m.user.Keys...)
	m.persistLocked()
}

// MintKey synthesizes the license key for a completed purchase of product.
// IDs are derived from the current time; a monotonic tiebreak keeps them
// unique when two checkouts land on the same millisecond.
func (m *Manager) MintKey(product catalog.Product) LicenseKey {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	stamp := now.UnixMilli()
	if stamp <= m.lastStamp {
		stamp = m.lastStamp + 1
	}
	m.lastStamp = stamp

	return LicenseKey{
		ID:          "RK-" + strconv.FormatInt(stamp, 10),
		ProductID:   product.ID,
		ProductName: product.Title,
		Key:         displayToken(),
		Date:        now.Format("1/2/2006"),
		Status:      StatusActive,
	}
}

// displayToken formats the decorative license string shown to the customer.
// It carries no cryptographic meaning; the trailing group is masked until a
// real fulfillment backend exists.
func displayToken() string {
	a, err := util.RandomChars(5)
	if err != nil {
		a = "AAAAA"
	}
	b, err := util.RandomChars(5)
	if err != nil {
		b = "BBBBB"
	}
	return a + "-" + b + "-XXXX"
}

func (m *Manager) persistLocked() {
	data, err := json.Marshal(m.user)
	if err != nil {
		m.logger.Warn("session encode failed, skipping persist", "error", err)
		return
	}
	if err := m.repo.Save(m.storageKey, data); err != nil {
		m.logger.Warn("session persist failed", "error", err)
	}
}
