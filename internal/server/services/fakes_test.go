package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/evetodo/eve-server/internal/common"
	"github.com/evetodo/eve-server/internal/dbx"
	"github.com/evetodo/eve-server/internal/logging"
	"github.com/evetodo/eve-server/internal/server/models"
	accountsrepo "github.com/evetodo/eve-server/internal/server/repositories/accounts"
	projectsrepo "github.com/evetodo/eve-server/internal/server/repositories/projects"
	sessionsrepo "github.com/evetodo/eve-server/internal/server/repositories/sessions"
	todosrepo "github.com/evetodo/eve-server/internal/server/repositories/todos"
)

// --- fakes ---

// fakeSessionsRepo keeps session rows in a map so expiry and renewal
// behavior can be exercised against a controllable clock.
type fakeSessionsRepo struct {
	rows map[string]models.SessionRecord

	findErr   error
	extendErr error
	upsertErr error

	extendCalls int
	upsertCalls int
}

func newFakeSessionsRepo() *fakeSessionsRepo {
	return &fakeSessionsRepo{rows: map[string]models.SessionRecord{}}
}

func (f *fakeSessionsRepo) Find(ctx context.Context, id string, now time.Time) (*models.SessionRecord, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	r, ok := f.rows[id]
	if !ok || !r.Expiry.After(now) {
		return nil, common.ErrorNotFound
	}
	return &r, nil
}

func (f *fakeSessionsRepo) ExtendExpiry(ctx context.Context, id string, threshold, newExpiry time.Time) error {
	if f.extendErr != nil {
		return f.extendErr
	}
	f.extendCalls++
	r, ok := f.rows[id]
	if ok && r.Expiry.Before(threshold) {
		r.Expiry = newExpiry
		f.rows[id] = r
	}
	return nil
}

func (f *fakeSessionsRepo) Upsert(ctx context.Context, id, content string, expiry time.Time) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upsertCalls++
	f.rows[id] = models.SessionRecord{ID: id, Content: content, Expiry: expiry}
	return nil
}

func (f *fakeSessionsRepo) put(id string, data models.SessionData, expiry time.Time) {
	content, _ := json.Marshal(data)
	f.rows[id] = models.SessionRecord{ID: id, Content: string(content), Expiry: expiry}
}

type fakeAccountsRepo struct {
	createOut *models.Account
	createErr error

	byUsername    *models.Account
	byUsernameErr error

	byID    *models.Account
	byIDErr error

	updateErr  error
	lastUpdate models.AccountUpdate
}

func (f *fakeAccountsRepo) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	a.ID = 1
	return a, nil
}

func (f *fakeAccountsRepo) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	if f.byUsernameErr != nil {
		return nil, f.byUsernameErr
	}
	return f.byUsername, nil
}

func (f *fakeAccountsRepo) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID, nil
}

func (f *fakeAccountsRepo) Update(ctx context.Context, id int64, update models.AccountUpdate) error {
	f.lastUpdate = update
	return f.updateErr
}

type fakeProjectsRepo struct {
	createOut *models.Project
	createErr error

	listOut []models.Project
	listErr error

	owned    bool
	ownedErr error
}

func (f *fakeProjectsRepo) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	p.ID = 1
	return p, nil
}

func (f *fakeProjectsRepo) ListByAccount(ctx context.Context, accountID int64) ([]models.Project, error) {
	return f.listOut, f.listErr
}

func (f *fakeProjectsRepo) OwnedByAccount(ctx context.Context, projectID, accountID int64) (bool, error) {
	return f.owned, f.ownedErr
}

// fakeTodosRepo returns errs one by one before succeeding, to drive the
// numbering retry.
type fakeTodosRepo struct {
	errs []error

	createOut *models.Todo
	updateOut *models.Todo
	deleteErr error
	listOut   []models.Todo
	listErr   error
	owned     bool
	ownedErr  error

	createCalls int
	updateCalls int
}

func (f *fakeTodosRepo) nextErr() error {
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func (f *fakeTodosRepo) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	f.createCalls++
	if err := f.nextErr(); err != nil {
		return nil, err
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	todo.ID = 1
	return todo, nil
}

func (f *fakeTodosRepo) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	f.updateCalls++
	if err := f.nextErr(); err != nil {
		return nil, err
	}
	if f.updateOut != nil {
		return f.updateOut, nil
	}
	return todo, nil
}

func (f *fakeTodosRepo) Delete(ctx context.Context, todoID, accountID int64) error {
	return f.deleteErr
}

func (f *fakeTodosRepo) ListByAccount(ctx context.Context, accountID int64) ([]models.Todo, error) {
	return f.listOut, f.listErr
}

func (f *fakeTodosRepo) OwnedByAccount(ctx context.Context, todoID, accountID int64) (bool, error) {
	return f.owned, f.ownedErr
}

type fakeRepoManager struct {
	sessions *fakeSessionsRepo
	accounts *fakeAccountsRepo
	projects *fakeProjectsRepo
	todos    *fakeTodosRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error      { return nil }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository      { return m.accounts }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository      { return m.sessions }
func (m *fakeRepoManager) Projects(db dbx.DBTX) projectsrepo.Repository      { return m.projects }
func (m *fakeRepoManager) Todos(db dbx.DBTX) todosrepo.Repository            { return m.todos }

// nopLogger satisfies logging.Logger for tests.
type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }
