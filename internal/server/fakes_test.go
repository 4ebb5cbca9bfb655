package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-builder/internal/config"
	"github.com/jonathan/portfolio-builder/internal/db"
	"github.com/jonathan/portfolio-builder/internal/marketplace"
	"github.com/jonathan/portfolio-builder/internal/metrics"
	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-for-jwt-signing"

// fixedNow is the mapper clock used by handler tests
var fixedNow = time.UnixMilli(1700000000000)

// memoryDB is an in-memory stand-in for *db.DB covering users, portfolios and
// the marketplace.
type memoryDB struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*db.User
	portfolios map[uuid.UUID]*db.Portfolio
	components map[uuid.UUID]*db.MarketplaceComponent
	installs   map[[2]uuid.UUID]bool
	ratings    map[uuid.UUID]map[uuid.UUID]int
	pingErr    error
	listErr    error
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		users:      make(map[uuid.UUID]*db.User),
		portfolios: make(map[uuid.UUID]*db.Portfolio),
		components: make(map[uuid.UUID]*db.MarketplaceComponent),
		installs:   make(map[[2]uuid.UUID]bool),
		ratings:    make(map[uuid.UUID]map[uuid.UUID]int),
	}
}

func (m *memoryDB) Ping(context.Context) error { return m.pingErr }

func (m *memoryDB) CheckEmailExists(_ context.Context, email string) (bool, error) {
	u, _ := m.GetUserByEmail(context.Background(), email)
	return u != nil, nil
}

func (m *memoryDB) CreateUser(_ context.Context, name, email string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.users[id] = &db.User{ID: id, Name: name, Email: email, CreatedAt: fixedNow, UpdatedAt: fixedNow}
	return id, nil
}

func (m *memoryDB) UpdatePassword(_ context.Context, userID uuid.UUID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return errors.New("no such user")
	}
	u.PasswordHash = hash
	u.PasswordSet = true
	return nil
}

func (m *memoryDB) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memoryDB) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memoryDB) setAdmin(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id].IsAdmin = true
}

func (m *memoryDB) CreatePortfolio(_ context.Context, userID uuid.UUID, data *types.SavePortfolioData) (*db.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &db.Portfolio{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        data.Name,
		Slug:        data.Slug,
		Description: data.Description,
		Layout:      data.Layout,
		IsPublic:    data.IsPublic,
		CreatedAt:   fixedNow,
		UpdatedAt:   fixedNow,
	}
	m.portfolios[p.ID] = p
	cp := *p
	return &cp, nil
}

func (m *memoryDB) GetPortfolio(_ context.Context, id uuid.UUID) (*db.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.portfolios[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memoryDB) GetPublicPortfolioBySlug(_ context.Context, slug string) (*db.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.portfolios {
		if p.Slug == slug && p.IsPublic {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memoryDB) ListPortfoliosByUser(_ context.Context, userID uuid.UUID) ([]db.PortfolioSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []db.PortfolioSummary{}
	for _, p := range m.portfolios {
		if p.UserID == userID {
			out = append(out, db.PortfolioSummary{ID: p.ID, Name: p.Name, Slug: p.Slug, IsPublic: p.IsPublic, Sections: len(p.Layout)})
		}
	}
	return out, nil
}

func (m *memoryDB) UpdatePortfolioLayout(_ context.Context, id uuid.UUID, layout []types.PortfolioComponent, isPublic *bool) (*db.Portfolio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.portfolios[id]
	if !ok {
		return nil, nil
	}
	p.Layout = layout
	if isPublic != nil {
		p.IsPublic = *isPublic
	}
	cp := *p
	return &cp, nil
}

func (m *memoryDB) DeletePortfolio(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.portfolios[id]; !ok {
		return false, nil
	}
	delete(m.portfolios, id)
	return true, nil
}

func (m *memoryDB) CreateMarketplaceComponent(_ context.Context, in *db.MarketplaceComponentInput) (*db.MarketplaceComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &db.MarketplaceComponent{
		ID:            uuid.New(),
		AuthorID:      in.AuthorID,
		AuthorName:    "author",
		Name:          in.Name,
		Description:   in.Description,
		Section:       in.Section,
		Category:      in.Category,
		Tags:          in.Tags,
		ComponentCode: in.ComponentCode,
		DefaultProps:  in.DefaultProps,
		DefaultStyles: in.DefaultStyles,
		IsPremium:     in.IsPremium,
		Status:        db.MarketplaceStatusPending,
	}
	m.components[c.ID] = c
	cp := *c
	return &cp, nil
}

func (m *memoryDB) GetMarketplaceComponent(_ context.Context, id uuid.UUID) (*db.MarketplaceComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.components[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memoryDB) ListMarketplaceComponents(_ context.Context, status string) ([]db.MarketplaceComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []db.MarketplaceComponent{}
	for _, c := range m.components {
		if c.Status == status {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memoryDB) ReviewMarketplaceComponent(_ context.Context, id, reviewerID uuid.UUID, status, notes string) (*db.MarketplaceComponent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.components[id]
	if !ok || c.Status != db.MarketplaceStatusPending {
		return nil, nil
	}
	c.Status = status
	c.ReviewedBy = &reviewerID
	c.ReviewNotes = &notes
	cp := *c
	return &cp, nil
}

func (m *memoryDB) RecordInstall(_ context.Context, componentID, userID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uuid.UUID{componentID, userID}
	if m.installs[key] {
		return false, nil
	}
	m.installs[key] = true
	m.components[componentID].Downloads++
	return true, nil
}

func (m *memoryDB) RateMarketplaceComponent(_ context.Context, componentID, userID uuid.UUID, rating int) (*db.RatingSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ratings[componentID] == nil {
		m.ratings[componentID] = make(map[uuid.UUID]int)
	}
	m.ratings[componentID][userID] = rating
	total := 0
	for _, r := range m.ratings[componentID] {
		total += r
	}
	count := len(m.ratings[componentID])
	c := m.components[componentID]
	c.Rating = float64(total) / float64(count)
	c.RatingCount = count
	return &db.RatingSummary{Rating: c.Rating, RatingCount: count}, nil
}

// testEnv is a server over in-memory stores
type testEnv struct {
	server  *Server
	db      *memoryDB
	metrics *metrics.Metrics
	handler http.Handler
}

func newTestEnv(t *testing.T, configure ...func(*Dependencies)) *testEnv {
	t.Helper()

	store := newMemoryDB()
	jwtConfig, err := config.NewJWTConfigWith(testJWTSecret, 1)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg, reg)
	cache := marketplace.NewCache(marketplace.NewDBLoader(store, nil), time.Hour, marketplace.WithMetrics(m))

	deps := Dependencies{
		Metrics:     m,
		Users:       store,
		Portfolios:  store,
		Marketplace: marketplace.NewService(store, cache, nil),
		JWT:         NewJWTService(jwtConfig),
		Passwords:   &config.PasswordConfig{BcryptCost: 10},
		Health:      store,
		Now:         func() time.Time { return fixedNow },
	}
	for _, fn := range configure {
		fn(&deps)
	}

	srv := New(0, deps)
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, db: store, metrics: m, handler: srv.Handler()}
}

// do sends a request through the full middleware chain.
func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

// register creates a user through the API and returns its token and ID.
func (e *testEnv) register(t *testing.T, email string) (string, uuid.UUID) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/auth/register", types.CreateUserRequest{
		Name:     "Test User",
		Email:    email,
		Password: "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token, resp.User.ID
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// adaResume is the reference resume of the handler tests
func adaResume() types.ResumeDocument {
	return types.ResumeDocument{
		Basics: types.Basics{
			Name:  "Ada Lovelace",
			Label: "Mathematician",
			Email: "ada@example.com",
			Profiles: []types.Profile{
				{Network: "GitHub", Username: "ada", URL: "github.com/ada"},
			},
		},
		Skills: []types.Skill{{Name: "math", Level: 90}},
		Work: []types.Work{{
			Company:   "Analytical Engines",
			Position:  "Programmer",
			StartDate: "1842",
			EndDate:   "1843",
		}},
		Projects: []types.Project{{Name: "Note G", URLs: types.ProjectURLs{Live: "notes.example.com"}}},
	}
}
