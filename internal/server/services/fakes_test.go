package services

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/dbx"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/dmitrijs2005/readdaily/internal/server/models"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/articles"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/categories"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/comments"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/likes"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/reads"
	refreshtokensrepo "github.com/dmitrijs2005/readdaily/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/sessions"
	usersrepo "github.com/dmitrijs2005/readdaily/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

const (
	userID    = "11111111-1111-1111-1111-111111111111"
	articleA  = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	articleB  = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	missingID = "99999999-9999-9999-9999-999999999999"
)

var testNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// --- users ---

type fakeUsersRepo struct {
	users      map[string]*models.User
	categories map[string][]string

	createErr  error
	getErr     error
	catsErr    error
	setCatsErr error
	saveErr    error

	locked []string
}

func newFakeUsers(us ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{users: map[string]*models.User{}, categories: map[string][]string{}}
	for _, u := range us {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	c := *u
	c.ID = fmt.Sprintf("u%d", len(f.users)+1)
	f.users[c.ID] = &c
	return &c, nil
}

func (f *fakeUsersRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsersRepo) LockByID(ctx context.Context, id string) (*models.User, error) {
	f.locked = append(f.locked, id)
	return f.GetByID(ctx, id)
}

func (f *fakeUsersRepo) SaveActivity(_ context.Context, id string, streak reading.StreakData, lastActive reading.Date) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	u, ok := f.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Streak = streak
	u.LastActive = lastActive
	return nil
}

func (f *fakeUsersRepo) GetCategories(_ context.Context, id string) ([]string, error) {
	if f.catsErr != nil {
		return nil, f.catsErr
	}
	return slices.Clone(f.categories[id]), nil
}

func (f *fakeUsersRepo) SetCategories(_ context.Context, id string, cats []string) error {
	if f.setCatsErr != nil {
		return f.setCatsErr
	}
	f.categories[id] = slices.Clone(cats)
	return nil
}

// --- refresh tokens ---

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr    error
	createErr error

	created      []string
	purgedBefore time.Time
	purgeCount   int64
}

func (f *fakeRefreshRepo) Create(_ context.Context, _ string, token string, _ time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, token)
	return nil
}

func (f *fakeRefreshRepo) Find(context.Context, string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(context.Context, string) error { return f.delErr }

func (f *fakeRefreshRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.purgedBefore = now
	return f.purgeCount, nil
}

// --- categories ---

type fakeCategoriesRepo struct {
	list []models.Category
	err  error
}

func defaultCategories() *fakeCategoriesRepo {
	return &fakeCategoriesRepo{list: []models.Category{
		{ID: "business", Name: "Business"},
		{ID: "science", Name: "Science"},
		{ID: "technology", Name: "Technology"},
	}}
}

func (f *fakeCategoriesRepo) List(context.Context) ([]models.Category, error) {
	return f.list, f.err
}

// --- articles ---

type fakeArticlesRepo struct {
	items       map[string]reading.Article
	order       []string
	recommended []models.RecommendedArticle

	createErr error
	listErr   error
	lockErr   error
	existsErr error

	created   []reading.Article
	locked    []string
	listUser  string
	listCats  []string
	listUntil reading.Date
	recLimit  int
}

func newFakeArticles(as ...reading.Article) *fakeArticlesRepo {
	f := &fakeArticlesRepo{items: map[string]reading.Article{}}
	for _, a := range as {
		f.items[a.ID] = a
		f.order = append(f.order, a.ID)
	}
	return f
}

func (f *fakeArticlesRepo) Create(_ context.Context, a *reading.Article) (*reading.Article, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c := *a
	c.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", len(f.items)+1)
	f.items[c.ID] = c
	f.order = append(f.order, c.ID)
	f.created = append(f.created, c)
	return &c, nil
}

func (f *fakeArticlesRepo) GetByID(_ context.Context, id string) (*reading.Article, error) {
	a, ok := f.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

func (f *fakeArticlesRepo) ListForCategories(_ context.Context, uid string, cats []string, until reading.Date) ([]reading.Article, error) {
	f.listUser, f.listCats, f.listUntil = uid, cats, until
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []reading.Article
	for _, id := range f.order {
		a := f.items[id]
		if slices.Contains(cats, a.CategoryID) && a.PublishDate <= until {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeArticlesRepo) ExistsBySourceURL(_ context.Context, url string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, a := range f.items {
		if a.SourceURL == url {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeArticlesRepo) LockForUpdate(_ context.Context, id string) error {
	if f.lockErr != nil {
		return f.lockErr
	}
	if _, ok := f.items[id]; !ok {
		return common.ErrorNotFound
	}
	f.locked = append(f.locked, id)
	return nil
}

func (f *fakeArticlesRepo) SetLikesCount(_ context.Context, id string, n int) error {
	a, ok := f.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	a.LikesCount = n
	f.items[id] = a
	return nil
}

func (f *fakeArticlesRepo) ListRecommended(_ context.Context, _ string, limit int) ([]models.RecommendedArticle, error) {
	f.recLimit = limit
	return f.recommended, f.listErr
}

// --- reads ---

type fakeReadsRepo struct {
	log    map[string][]reading.ReadArticle
	addErr error
}

func newFakeReads() *fakeReadsRepo { return &fakeReadsRepo{log: map[string][]reading.ReadArticle{}} }

func (f *fakeReadsRepo) List(_ context.Context, id string) ([]reading.ReadArticle, error) {
	return slices.Clone(f.log[id]), nil
}

func (f *fakeReadsRepo) Add(_ context.Context, id string, r reading.ReadArticle) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.log[id] = append(f.log[id], r)
	return nil
}

// --- likes ---

type fakeLikesRepo struct {
	set       map[[2]string]bool
	insertErr error
}

func newFakeLikes() *fakeLikesRepo { return &fakeLikesRepo{set: map[[2]string]bool{}} }

func (f *fakeLikesRepo) Delete(_ context.Context, articleID, userID string) (bool, error) {
	k := [2]string{articleID, userID}
	if !f.set[k] {
		return false, nil
	}
	delete(f.set, k)
	return true, nil
}

func (f *fakeLikesRepo) Insert(_ context.Context, articleID, userID string) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.set[[2]string{articleID, userID}] = true
	return nil
}

func (f *fakeLikesRepo) Count(_ context.Context, articleID string) (int, error) {
	n := 0
	for k := range f.set {
		if k[0] == articleID {
			n++
		}
	}
	return n, nil
}

// --- comments ---

type fakeCommentsRepo struct {
	list      []models.Comment
	createErr error
}

func (f *fakeCommentsRepo) Create(_ context.Context, c *models.Comment) (*models.Comment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *c
	out.ID = fmt.Sprintf("c%d", len(f.list)+1)
	out.CommentedAt = testNow
	f.list = append(f.list, out)
	return &out, nil
}

func (f *fakeCommentsRepo) ListByArticle(_ context.Context, articleID string) ([]models.Comment, error) {
	var out []models.Comment
	for i := len(f.list) - 1; i >= 0; i-- {
		if f.list[i].ArticleID == articleID {
			out = append(out, f.list[i])
		}
	}
	return out, nil
}

// --- sessions ---

type fakeSessionsRepo struct {
	open    *models.Session
	opened  int
	cutoffs []time.Time
	touched []int
	openErr error
}

func (f *fakeSessionsRepo) CloseIdle(_ context.Context, _ string, cutoff time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	if f.open != nil && f.open.LastSeenAt.Before(cutoff) {
		f.open = nil
		return 1, nil
	}
	return 0, nil
}

func (f *fakeSessionsRepo) FindOpen(context.Context, string) (*models.Session, error) {
	if f.open == nil {
		return nil, common.ErrorNotFound
	}
	return f.open, nil
}

func (f *fakeSessionsRepo) Open(_ context.Context, uid string, now time.Time) (*models.Session, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	f.opened++
	f.open = &models.Session{ID: fmt.Sprintf("s%d", f.opened), UserID: uid, StartedAt: now, LastSeenAt: now}
	return f.open, nil
}

func (f *fakeSessionsRepo) Touch(_ context.Context, _ string, now time.Time, n int) error {
	f.touched = append(f.touched, n)
	if f.open != nil {
		f.open.LastSeenAt = now
		f.open.ArticlesRead += n
	}
	return nil
}

// --- manager ---

type fakeRepoManager struct {
	u  *fakeUsersRepo
	r  *fakeRefreshRepo
	c  *fakeCategoriesRepo
	a  *fakeArticlesRepo
	rd *fakeReadsRepo
	l  *fakeLikesRepo
	cm *fakeCommentsRepo
	s  *fakeSessionsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u:  newFakeUsers(),
		r:  &fakeRefreshRepo{},
		c:  defaultCategories(),
		a:  newFakeArticles(),
		rd: newFakeReads(),
		l:  newFakeLikes(),
		cm: &fakeCommentsRepo{},
		s:  &fakeSessionsRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error        { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *fakeRepoManager) Categories(dbx.DBTX) categories.Repository           { return m.c }
func (m *fakeRepoManager) Articles(dbx.DBTX) articles.Repository               { return m.a }
func (m *fakeRepoManager) Reads(dbx.DBTX) reads.Repository                     { return m.rd }
func (m *fakeRepoManager) Likes(dbx.DBTX) likes.Repository                     { return m.l }
func (m *fakeRepoManager) Comments(dbx.DBTX) comments.Repository               { return m.cm }
func (m *fakeRepoManager) Sessions(dbx.DBTX) sessions.Repository               { return m.s }
