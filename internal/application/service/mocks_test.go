package service

import (
	"context"
	"sync"

	"github.com/conteudoflow/os-tracker/internal/domain/entity"
)

// In-memory fakes shared by the service tests. Behavior can be overridden
// per test through the func fields; the zero value behaves like an empty
// store.

type fakeIdeaRepo struct {
	mu         sync.Mutex
	ideas      map[string]*entity.Idea
	createFunc func(ctx context.Context, idea *entity.Idea) error
	findFunc   func(ctx context.Context, titulo, marca, orgID string) (*entity.Idea, error)
}

func newFakeIdeaRepo() *fakeIdeaRepo {
	return &fakeIdeaRepo{ideas: make(map[string]*entity.Idea)}
}

func (m *fakeIdeaRepo) Create(ctx context.Context, idea *entity.Idea) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, idea)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *idea
	m.ideas[idea.ID] = &copied
	return nil
}

func (m *fakeIdeaRepo) GetByID(ctx context.Context, id string) (*entity.Idea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idea, ok := m.ideas[id]
	if !ok {
		return nil, nil
	}
	copied := *idea
	return &copied, nil
}

func (m *fakeIdeaRepo) FindByTituloMarca(ctx context.Context, titulo, marca, orgID string) (*entity.Idea, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, titulo, marca, orgID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, idea := range m.ideas {
		if idea.Titulo == titulo && idea.Marca == marca && idea.OrgID == orgID {
			copied := *idea
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *fakeIdeaRepo) Update(ctx context.Context, idea *entity.Idea) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *idea
	m.ideas[idea.ID] = &copied
	return nil
}

func (m *fakeIdeaRepo) ListByOrg(ctx context.Context, orgID string, status entity.IdeaStatus, limit, offset int) ([]*entity.Idea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Idea
	for _, idea := range m.ideas {
		if idea.OrgID != orgID {
			continue
		}
		if status != "" && idea.Status != status {
			continue
		}
		copied := *idea
		out = append(out, &copied)
	}
	return out, nil
}

type fakeWorkOrderRepo struct {
	mu         sync.Mutex
	orders     map[string]*entity.WorkOrder
	createFunc func(ctx context.Context, os *entity.WorkOrder) error
}

func newFakeWorkOrderRepo() *fakeWorkOrderRepo {
	return &fakeWorkOrderRepo{orders: make(map[string]*entity.WorkOrder)}
}

func (m *fakeWorkOrderRepo) Create(ctx context.Context, os *entity.WorkOrder) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, os)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *os
	m.orders[os.ID] = &copied
	return nil
}

func (m *fakeWorkOrderRepo) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	os, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *os
	return &copied, nil
}

func (m *fakeWorkOrderRepo) Update(ctx context.Context, os *entity.WorkOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *os
	m.orders[os.ID] = &copied
	return nil
}

func (m *fakeWorkOrderRepo) ListByOrg(ctx context.Context, orgID string) ([]*entity.WorkOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.WorkOrder
	for _, os := range m.orders {
		if os.OrgID == orgID {
			copied := *os
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *fakeWorkOrderRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions []*entity.ImportSession
	updated  []*entity.ImportSession
}

func (m *fakeSessionRepo) Create(ctx context.Context, session *entity.ImportSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *session
	m.sessions = append(m.sessions, &copied)
	return nil
}

func (m *fakeSessionRepo) UpdateCounts(ctx context.Context, session *entity.ImportSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *session
	m.updated = append(m.updated, &copied)
	return nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events []*entity.EventLog
}

func (m *fakeEventRepo) Append(ctx context.Context, event *entity.EventLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *event
	m.events = append(m.events, &copied)
	return nil
}

func (m *fakeEventRepo) ListByOS(ctx context.Context, osID string) ([]*entity.EventLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.EventLog
	for _, event := range m.events {
		if event.OSID == osID {
			out = append(out, event)
		}
	}
	return out, nil
}

func (m *fakeEventRepo) ListByIdeia(ctx context.Context, ideiaID string) ([]*entity.EventLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.EventLog
	for _, event := range m.events {
		if event.IdeiaID == ideiaID {
			out = append(out, event)
		}
	}
	return out, nil
}

func (m *fakeEventRepo) actions() []entity.LogAction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.LogAction, 0, len(m.events))
	for _, event := range m.events {
		out = append(out, event.Acao)
	}
	return out
}

type fakeTxManager struct{}

func (fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type testLogger struct{}

func (testLogger) Info(msg string, keysAndValues ...interface{})  {}
func (testLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (testLogger) Error(msg string, keysAndValues ...interface{}) {}
