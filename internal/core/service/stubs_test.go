package service

import (
	"cmp"
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/Jhonatan-05/backen-Maria/internal/core/domain"
	"github.com/Jhonatan-05/backen-Maria/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Credentials, tokens, permissions
// ---------------------------------------------------------------------------

type stubCredentialStore struct {
	guard domain.Guard
	byID  map[string]*domain.Principal
}

func newStubCredentialStore(guard domain.Guard) *stubCredentialStore {
	return &stubCredentialStore{guard: guard, byID: make(map[string]*domain.Principal)}
}

func clonePrincipal(p *domain.Principal) *domain.Principal {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func (s *stubCredentialStore) Guard() domain.Guard { return s.guard }

func (s *stubCredentialStore) Create(_ context.Context, p *domain.Principal) error {
	if _, ok := s.byID[p.ID]; ok {
		return domain.ErrDuplicateIdentity
	}
	for _, existing := range s.byID {
		if existing.Email == p.Email {
			return domain.ErrDuplicateEmail
		}
	}
	s.byID[p.ID] = clonePrincipal(p)
	return nil
}

func (s *stubCredentialStore) FindByID(_ context.Context, id string) (*domain.Principal, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrPrincipalNotFound
	}
	return clonePrincipal(p), nil
}

func (s *stubCredentialStore) FindByEmail(_ context.Context, email string) (*domain.Principal, error) {
	for _, p := range s.byID {
		if p.Email == email {
			return clonePrincipal(p), nil
		}
	}
	return nil, domain.ErrPrincipalNotFound
}

func (s *stubCredentialStore) SearchByName(_ context.Context, fragment string) ([]*domain.Principal, error) {
	var out []*domain.Principal
	for _, p := range s.byID {
		if strings.Contains(p.Name, fragment) {
			out = append(out, clonePrincipal(p))
		}
	}
	return out, nil
}

func (s *stubCredentialStore) List(_ context.Context) ([]*domain.Principal, error) {
	out := make([]*domain.Principal, 0, len(s.byID))
	for _, id := range sortedKeys(s.byID) {
		out = append(out, clonePrincipal(s.byID[id]))
	}
	return out, nil
}

func (s *stubCredentialStore) Update(_ context.Context, id string, upd ports.PrincipalUpdate) (*domain.Principal, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrPrincipalNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Email != nil {
		p.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		p.PasswordHash = *upd.PasswordHash
	}
	if upd.Age != nil {
		p.Age = *upd.Age
	}
	return clonePrincipal(p), nil
}

func (s *stubCredentialStore) Delete(_ context.Context, id string) error {
	if _, ok := s.byID[id]; !ok {
		return domain.ErrPrincipalNotFound
	}
	delete(s.byID, id)
	return nil
}

type stubTokenStore struct {
	mu     sync.Mutex
	tokens map[string]domain.AccessToken
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{tokens: make(map[string]domain.AccessToken)}
}

func (s *stubTokenStore) Store(_ context.Context, t domain.AccessToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[t.ID] = t
	return nil
}

func (s *stubTokenStore) Find(_ context.Context, id string) (*domain.AccessToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[id]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	return &t, nil
}

func (s *stubTokenStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, id)
	return nil
}

func (s *stubTokenStore) DeleteByName(_ context.Context, guard domain.Guard, principalID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.tokens {
		if t.Guard == guard && t.PrincipalID == principalID && t.Name == name {
			delete(s.tokens, id)
		}
	}
	return nil
}

func (s *stubTokenStore) DeleteAll(_ context.Context, guard domain.Guard, principalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.tokens {
		if t.Guard == guard && t.PrincipalID == principalID {
			delete(s.tokens, id)
		}
	}
	return nil
}

func (s *stubTokenStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

type stubPermissionStore struct {
	roles     map[string]string
	assignErr error
	grantErr  error
	grantHits int
}

func newStubPermissionStore() *stubPermissionStore {
	return &stubPermissionStore{roles: make(map[string]string)}
}

func permKey(guard domain.Guard, id string) string { return string(guard) + ":" + id }

func (s *stubPermissionStore) AssignRole(_ context.Context, guard domain.Guard, id, role string) error {
	if s.assignErr != nil {
		return s.assignErr
	}
	s.roles[permKey(guard, id)] = role
	return nil
}

func (s *stubPermissionStore) Grant(_ context.Context, guard domain.Guard, id string) (domain.Grant, error) {
	s.grantHits++
	if s.grantErr != nil {
		return domain.Grant{}, s.grantErr
	}
	role, ok := s.roles[permKey(guard, id)]
	if !ok {
		return domain.Grant{Permissions: []string{}}, nil
	}
	return domain.Grant{Role: role, Permissions: slices.Clone(domain.DefaultPermissions[guard])}, nil
}

type stubPermissionCache struct {
	entries     map[string]domain.Grant
	getErr      error
	invalidated []string
}

func newStubPermissionCache() *stubPermissionCache {
	return &stubPermissionCache{entries: make(map[string]domain.Grant)}
}

func (c *stubPermissionCache) Get(_ context.Context, guard domain.Guard, id string) (*domain.Grant, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	g, ok := c.entries[permKey(guard, id)]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (c *stubPermissionCache) Set(_ context.Context, guard domain.Guard, id string, g domain.Grant) error {
	c.entries[permKey(guard, id)] = g
	return nil
}

func (c *stubPermissionCache) Invalidate(_ context.Context, guard domain.Guard, id string) error {
	delete(c.entries, permKey(guard, id))
	c.invalidated = append(c.invalidated, permKey(guard, id))
	return nil
}

type stubPublisher struct {
	err    error
	events []domain.BookingEvent
}

func (p *stubPublisher) Publish(_ context.Context, evt domain.BookingEvent) error {
	p.events = append(p.events, evt)
	return p.err
}

// ---------------------------------------------------------------------------
// Catalog-backed in-memory booking stores with rollback semantics
// ---------------------------------------------------------------------------

var errInjected = errors.New("injected failure")

type apptState struct {
	headers map[string]domain.Appointment
	links   map[string][]string
}

func (s apptState) clone() apptState {
	out := apptState{headers: maps.Clone(s.headers), links: make(map[string][]string, len(s.links))}
	for k, v := range s.links {
		out.links[k] = slices.Clone(v)
	}
	return out
}

type memAppointmentRepo struct {
	services map[string]domain.Service
	state    apptState

	failReplace error
	// attemptedWrites counts header and association writes, including the
	// ones later rolled back.
	attemptedWrites int
	commits         int
	rollbacks       int
}

func newMemAppointmentRepo(services ...domain.Service) *memAppointmentRepo {
	r := &memAppointmentRepo{
		services: make(map[string]domain.Service),
		state:    apptState{headers: map[string]domain.Appointment{}, links: map[string][]string{}},
	}
	for _, s := range services {
		r.services[s.Code] = s
	}
	return r
}

type memAppointmentTx struct {
	repo  *memAppointmentRepo
	state apptState
}

func (r *memAppointmentRepo) Transact(ctx context.Context, fn func(context.Context, ports.AppointmentTx) error) error {
	tx := &memAppointmentTx{repo: r, state: r.state.clone()}
	if err := fn(ctx, tx); err != nil {
		r.rollbacks++
		return err
	}
	r.state = tx.state
	r.commits++
	return nil
}

func (t *memAppointmentTx) LockAppointment(_ context.Context, code string) (bool, error) {
	_, ok := t.state.headers[code]
	return ok, nil
}

func (t *memAppointmentTx) InsertAppointment(_ context.Context, a *domain.Appointment) error {
	t.repo.attemptedWrites++
	t.state.headers[a.Code] = *a
	return nil
}

func (t *memAppointmentTx) UpdateAppointment(_ context.Context, a *domain.Appointment) error {
	t.repo.attemptedWrites++
	t.state.headers[a.Code] = *a
	return nil
}

func (t *memAppointmentTx) ResolveServices(_ context.Context, codes []string) ([]domain.Service, error) {
	var out []domain.Service
	for _, c := range codes {
		if s, ok := t.repo.services[c]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (t *memAppointmentTx) ReplaceServices(_ context.Context, code string, codes []string) error {
	if t.repo.failReplace != nil {
		return t.repo.failReplace
	}
	current := domain.LinesFromCodes(t.state.links[code])
	if plan := domain.PlanReplace(current, domain.LinesFromCodes(codes)); !plan.Empty() {
		t.repo.attemptedWrites++
	}
	t.state.links[code] = domain.UniqueCodes(codes)
	return nil
}

func (r *memAppointmentRepo) FindByCode(_ context.Context, code string) (*domain.Appointment, error) {
	a, ok := r.state.headers[code]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	a.Services = []domain.Service{}
	for _, c := range r.state.links[code] {
		a.Services = append(a.Services, r.services[c])
	}
	return &a, nil
}

func (r *memAppointmentRepo) List(ctx context.Context) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, code := range sortedKeys(r.state.headers) {
		a, _ := r.FindByCode(ctx, code)
		out = append(out, a)
	}
	return out, nil
}

func (r *memAppointmentRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, code := range sortedKeys(r.state.headers) {
		if r.state.headers[code].ClientID == clientID {
			a, _ := r.FindByCode(ctx, code)
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) Delete(_ context.Context, code string) error {
	if _, ok := r.state.headers[code]; !ok {
		return domain.ErrAppointmentNotFound
	}
	delete(r.state.headers, code)
	delete(r.state.links, code)
	return nil
}

type orderState struct {
	headers map[string]domain.Order
	lines   map[string][]domain.LineItem
}

func (s orderState) clone() orderState {
	out := orderState{headers: maps.Clone(s.headers), lines: make(map[string][]domain.LineItem, len(s.lines))}
	for k, v := range s.lines {
		out.lines[k] = slices.Clone(v)
	}
	return out
}

type memOrderRepo struct {
	products map[string]domain.Product
	state    orderState

	failReplace     error
	attemptedWrites int
	rollbacks       int
}

func newMemOrderRepo(products ...domain.Product) *memOrderRepo {
	r := &memOrderRepo{
		products: make(map[string]domain.Product),
		state:    orderState{headers: map[string]domain.Order{}, lines: map[string][]domain.LineItem{}},
	}
	for _, p := range products {
		r.products[p.Code] = p
	}
	return r
}

type memOrderTx struct {
	repo  *memOrderRepo
	state orderState
}

func (r *memOrderRepo) Transact(ctx context.Context, fn func(context.Context, ports.OrderTx) error) error {
	tx := &memOrderTx{repo: r, state: r.state.clone()}
	if err := fn(ctx, tx); err != nil {
		r.rollbacks++
		return err
	}
	r.state = tx.state
	return nil
}

func (t *memOrderTx) LockOrder(_ context.Context, code string) (bool, error) {
	_, ok := t.state.headers[code]
	return ok, nil
}

func (t *memOrderTx) InsertOrder(_ context.Context, o *domain.Order) error {
	t.repo.attemptedWrites++
	t.state.headers[o.Code] = *o
	return nil
}

func (t *memOrderTx) UpdateOrder(_ context.Context, o *domain.Order) error {
	t.repo.attemptedWrites++
	next := *o
	if next.RegisteredAt.IsZero() {
		next.RegisteredAt = t.state.headers[o.Code].RegisteredAt
	}
	t.state.headers[o.Code] = next
	return nil
}

func (t *memOrderTx) ResolveProducts(_ context.Context, codes []string) ([]domain.Product, error) {
	var out []domain.Product
	for _, c := range codes {
		if p, ok := t.repo.products[c]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (t *memOrderTx) ReplaceProducts(_ context.Context, code string, lines []domain.LineItem) error {
	if t.repo.failReplace != nil {
		return t.repo.failReplace
	}
	t.repo.attemptedWrites++
	t.state.lines[code] = domain.MergeLines(lines)
	return nil
}

func (r *memOrderRepo) FindByCode(_ context.Context, code string) (*domain.Order, error) {
	o, ok := r.state.headers[code]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.Products = []domain.OrderLine{}
	for _, l := range r.state.lines[code] {
		o.Products = append(o.Products, domain.OrderLine{Product: r.products[l.Code], Quantity: l.Quantity})
	}
	return &o, nil
}

func (r *memOrderRepo) List(ctx context.Context) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, code := range sortedKeys(r.state.headers) {
		o, _ := r.FindByCode(ctx, code)
		out = append(out, o)
	}
	return out, nil
}

func (r *memOrderRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, code := range sortedKeys(r.state.headers) {
		if r.state.headers[code].ClientID == clientID {
			o, _ := r.FindByCode(ctx, code)
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) Delete(_ context.Context, code string) error {
	if _, ok := r.state.headers[code]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.state.headers, code)
	delete(r.state.lines, code)
	return nil
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
