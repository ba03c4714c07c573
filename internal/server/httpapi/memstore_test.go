package httpapi

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/evetodo/eve-server/internal/common"
	"github.com/evetodo/eve-server/internal/dbx"
	"github.com/evetodo/eve-server/internal/server/models"
	accountsrepo "github.com/evetodo/eve-server/internal/server/repositories/accounts"
	projectsrepo "github.com/evetodo/eve-server/internal/server/repositories/projects"
	sessionsrepo "github.com/evetodo/eve-server/internal/server/repositories/sessions"
	todosrepo "github.com/evetodo/eve-server/internal/server/repositories/todos"
)

// memStore is an in-memory RepositoryManager used to exercise the HTTP
// surface without a database. It mirrors the SQL semantics the postgres
// repositories rely on, including per-project numbering.
type memStore struct {
	mu sync.Mutex

	nextID   int64
	accounts map[int64]models.Account
	sessions map[string]models.SessionRecord
	projects map[int64]models.Project
	todos    map[int64]models.Todo
}

func newMemStore() *memStore {
	return &memStore{
		accounts: map[int64]models.Account{},
		sessions: map[string]models.SessionRecord{},
		projects: map[int64]models.Project{},
		todos:    map[int64]models.Todo{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memStore) Accounts(db dbx.DBTX) accountsrepo.Repository { return m }
func (m *memStore) Sessions(db dbx.DBTX) sessionsrepo.Repository { return m }
func (m *memStore) Projects(db dbx.DBTX) projectsrepo.Repository { return memProjects{m} }
func (m *memStore) Todos(db dbx.DBTX) todosrepo.Repository       { return memTodos{m} }

// memProjects and memTodos shadow the colliding method names so one store
// can back all four repository interfaces.
type memProjects struct{ *memStore }

func (p memProjects) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	return p.CreateProject(project)
}

type memTodos struct{ *memStore }

func (t memTodos) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	return t.CreateTodo(todo)
}

func (t memTodos) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	return t.UpdateTodo(todo)
}

func (t memTodos) Delete(ctx context.Context, todoID, accountID int64) error {
	return t.DeleteTodo(todoID, accountID)
}

func (t memTodos) ListByAccount(ctx context.Context, accountID int64) ([]models.Todo, error) {
	return t.ListTodosByAccount(accountID)
}

func (t memTodos) OwnedByAccount(ctx context.Context, todoID, accountID int64) (bool, error) {
	return t.TodoOwnedByAccount(todoID, accountID)
}

// --- accounts ---

func (m *memStore) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.accounts {
		if other.Username == a.Username {
			return nil, common.ErrorAlreadyExists
		}
	}
	a.ID = m.id()
	a.CreatedAt = time.Now()
	m.accounts[a.ID] = *a
	return a, nil
}

func (m *memStore) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Username == username {
			account := a
			return &account, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memStore) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

func (m *memStore) Update(ctx context.Context, id int64, update models.AccountUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return common.ErrorNotFound
	}
	if update.Username != nil {
		for _, other := range m.accounts {
			if other.ID != id && other.Username == *update.Username {
				return common.ErrorAlreadyExists
			}
		}
		a.Username = *update.Username
	}
	if update.DisplayName != nil {
		a.DisplayName = *update.DisplayName
	}
	if update.PasswordHash != nil {
		a.PasswordHash = *update.PasswordHash
	}
	m.accounts[id] = a
	return nil
}

// --- sessions ---

func (m *memStore) Find(ctx context.Context, id string, now time.Time) (*models.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.sessions[id]
	if !ok || !r.Expiry.After(now) {
		return nil, common.ErrorNotFound
	}
	return &r, nil
}

func (m *memStore) ExtendExpiry(ctx context.Context, id string, threshold, newExpiry time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.sessions[id]
	if ok && r.Expiry.Before(threshold) {
		r.Expiry = newExpiry
		m.sessions[id] = r
	}
	return nil
}

func (m *memStore) Upsert(ctx context.Context, id, content string, expiry time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = models.SessionRecord{ID: id, Content: content, Expiry: expiry}
	return nil
}

// --- projects ---

func (m *memStore) CreateProject(p *models.Project) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, other := range m.projects {
		if other.AccountID == p.AccountID && other.Shortcode == p.Shortcode {
			return nil, common.ErrorAlreadyExists
		}
	}
	p.ID = m.id()
	m.projects[p.ID] = *p
	return p, nil
}

func (m *memStore) ListByAccount(ctx context.Context, accountID int64) ([]models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []models.Project{}
	for _, p := range m.projects {
		if p.AccountID == accountID {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *memStore) OwnedByAccount(ctx context.Context, projectID, accountID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[projectID]
	return ok && p.AccountID == accountID, nil
}

// --- todos ---

func (m *memStore) nextNumberLocked(projectID int64) int32 {
	var max int32
	for _, t := range m.todos {
		if t.ProjectID != nil && *t.ProjectID == projectID &&
			t.ProjectTodoNumber != nil && *t.ProjectTodoNumber > max {
			max = *t.ProjectTodoNumber
		}
	}
	return max + 1
}

func (m *memStore) CreateTodo(todo *models.Todo) (*models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	todo.ID = m.id()
	if todo.ProjectID != nil {
		n := m.nextNumberLocked(*todo.ProjectID)
		todo.ProjectTodoNumber = &n
	}
	m.todos[todo.ID] = *todo
	return todo, nil
}

func (m *memStore) UpdateTodo(todo *models.Todo) (*models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.todos[todo.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	sameProject := (existing.ProjectID == nil && todo.ProjectID == nil) ||
		(existing.ProjectID != nil && todo.ProjectID != nil && *existing.ProjectID == *todo.ProjectID)
	switch {
	case sameProject:
		todo.ProjectTodoNumber = existing.ProjectTodoNumber
	case todo.ProjectID == nil:
		todo.ProjectTodoNumber = nil
	default:
		n := m.nextNumberLocked(*todo.ProjectID)
		todo.ProjectTodoNumber = &n
	}
	todo.AccountID = existing.AccountID
	m.todos[todo.ID] = *todo
	return todo, nil
}

func (m *memStore) DeleteTodo(todoID, accountID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.todos[todoID]
	if !ok || t.AccountID != accountID {
		return common.ErrorNotFound
	}
	delete(m.todos, todoID)
	return nil
}

func (m *memStore) ListTodosByAccount(accountID int64) ([]models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []models.Todo{}
	for _, t := range m.todos {
		if t.AccountID == accountID {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *memStore) TodoOwnedByAccount(todoID, accountID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.todos[todoID]
	return ok && t.AccountID == accountID, nil
}
