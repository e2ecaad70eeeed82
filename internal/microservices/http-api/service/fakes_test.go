package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"blogdesk/internal/microservices/http-api/models"
	"blogdesk/internal/microservices/http-api/repository"
	"blogdesk/internal/moderation"

	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// store is an in-memory stand-in for the database shared by all fake repositories.
type store struct {
	mu         sync.Mutex
	profiles   map[string]*models.Profile
	blogs      map[int64]*models.Blog
	comments   map[int64]*models.Comment
	categories map[int64]*models.Category
	nextID     int64
}

func newStore() *store {
	return &store{
		profiles:   map[string]*models.Profile{},
		blogs:      map[int64]*models.Blog{},
		comments:   map[int64]*models.Comment{},
		categories: map[int64]*models.Category{},
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *store) addProfile(role moderation.Role, email string) *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &models.Profile{
		ID:        uuid.NewString(),
		FirstName: "First",
		LastName:  "Last",
		Email:     email,
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	s.profiles[p.ID] = p
	return p
}

// ---- profiles ----

type fakeProfiles struct{ s *store }

func (f fakeProfiles) Create(_ context.Context, p *models.Profile) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.profiles {
		if strings.EqualFold(existing.Email, p.Email) {
			return repository.ErrDuplicate
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	cp := *p
	f.s.profiles[p.ID] = &cp
	return nil
}

func (f fakeProfiles) FindByID(_ context.Context, id string) (*models.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f fakeProfiles) FindByEmail(_ context.Context, email string) (*models.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, p := range f.s.profiles {
		if strings.EqualFold(p.Email, email) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f fakeProfiles) List(_ context.Context, filter repository.ProfileFilter) ([]models.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Profile
	for _, p := range f.s.profiles {
		if filter.Role != nil && p.Role != *filter.Role {
			continue
		}
		if filter.Active != nil && p.IsActive != *filter.Active {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (f fakeProfiles) Count(ctx context.Context, filter repository.ProfileFilter) (int64, error) {
	list, err := f.List(ctx, filter)
	return int64(len(list)), err
}

func (f fakeProfiles) Update(_ context.Context, id string, patch map[string]any) (*models.Profile, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for k, v := range patch {
		switch k {
		case "first_name":
			p.FirstName = v.(string)
		case "last_name":
			p.LastName = v.(string)
		case "email":
			p.Email = v.(string)
		case "password_hash":
			p.Password = v.(string)
		case "hashed_refresh_token":
			if v == nil {
				p.HashedRefreshToken = nil
			} else {
				h := v.(string)
				p.HashedRefreshToken = &h
			}
		case "is_active":
			p.IsActive = v.(bool)
		case "role":
			p.Role = v.(moderation.Role)
		case "last_login":
			t := v.(time.Time)
			p.LastLogin = &t
		default:
			panic("fakeProfiles: unexpected column " + k)
		}
	}
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (f fakeProfiles) Delete(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.profiles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.profiles, id)
	return nil
}

// ---- blogs ----

type fakeBlogs struct{ s *store }

func (f fakeBlogs) withAuthor(b *models.Blog) *models.Blog {
	cp := *b
	if p, ok := f.s.profiles[b.AuthorID]; ok {
		author := *p
		cp.Author = &author
	}
	return &cp
}

func (f fakeBlogs) Create(_ context.Context, b *models.Blog) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b.ID = f.s.id()
	b.CreatedAt, b.UpdatedAt = time.Now(), time.Now()
	if b.Version == 0 {
		b.Version = 1
	}
	cp := *b
	f.s.blogs[b.ID] = &cp
	return nil
}

func (f fakeBlogs) FindByID(_ context.Context, id int64) (*models.Blog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.blogs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return f.withAuthor(b), nil
}

func (f fakeBlogs) FindDetail(ctx context.Context, id int64) (*models.Blog, error) {
	b, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, c := range f.s.comments {
		if c.BlogID == id {
			b.Comments = append(b.Comments, *c)
		}
	}
	return b, nil
}

func (f fakeBlogs) List(_ context.Context, filter repository.BlogFilter) ([]models.Blog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []models.Blog
	for _, b := range f.s.blogs {
		if filter.AuthorID != "" && b.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.VisibleTo != "" && b.Status != moderation.StatusApproved && b.AuthorID != filter.VisibleTo {
			continue
		}
		out = append(out, *f.withAuthor(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f fakeBlogs) Update(_ context.Context, id, expectedVersion int64, patch map[string]any) (*models.Blog, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.blogs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if b.Version != expectedVersion {
		return nil, repository.ErrStaleVersion
	}
	for k, v := range patch {
		switch k {
		case "title":
			b.Title = v.(string)
		case "content":
			b.Content = v.(string)
		case "excerpt":
			e := v.(string)
			b.Excerpt = &e
		case "tags":
			b.Tags = v.(models.Tags)
		case "status":
			b.Status = v.(moderation.Status)
		case "admin_review_message":
			m := v.(string)
			b.AdminReviewMessage = &m
		case "published_at":
			t := v.(time.Time)
			b.PublishedAt = &t
		default:
			panic("fakeBlogs: unexpected column " + k)
		}
	}
	b.Version++
	b.UpdatedAt = time.Now()
	return f.withAuthor(b), nil
}

func (f fakeBlogs) IncrementViews(_ context.Context, id int64) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.blogs[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	b.ViewCount++
	return b.ViewCount, nil
}

func (f fakeBlogs) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.blogs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.blogs, id)
	for cid, c := range f.s.comments {
		if c.BlogID == id {
			delete(f.s.comments, cid)
		}
	}
	return nil
}

// ---- comments ----

type fakeComments struct{ s *store }

func (f fakeComments) Create(_ context.Context, c *models.Comment) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c.ID = f.s.id()
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	cp := *c
	f.s.comments[c.ID] = &cp
	return nil
}

func (f fakeComments) Update(_ context.Context, c *models.Comment) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	stored, ok := f.s.comments[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Content = c.Content
	stored.UpdatedAt = time.Now()
	return nil
}

func (f fakeComments) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.comments, id)
	return nil
}

func (f fakeComments) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	if p, ok := f.s.profiles[c.AuthorID]; ok {
		author := *p
		cp.Author = &author
	}
	return &cp, nil
}

func (f fakeComments) GetByBlog(_ context.Context, blogID int64, page, pageSize int) ([]models.Comment, int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var all []models.Comment
	for _, c := range f.s.comments {
		if c.BlogID == blogID {
			all = append(all, *c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return []models.Comment{}, total, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

// ---- categories ----

type fakeCategories struct{ s *store }

func (f fakeCategories) Create(_ context.Context, c *models.Category) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.categories {
		if existing.Name == c.Name {
			return repository.ErrDuplicate
		}
	}
	c.ID = f.s.id()
	cp := *c
	f.s.categories[c.ID] = &cp
	return nil
}

func (f fakeCategories) FindByID(_ context.Context, id int64) (*models.Category, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	c, ok := f.s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f fakeCategories) List(_ context.Context) ([]models.Category, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := []models.Category{}
	for _, c := range f.s.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f fakeCategories) Update(_ context.Context, c *models.Category) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.categories[c.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *c
	f.s.categories[c.ID] = &cp
	return nil
}

func (f fakeCategories) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.s.categories, id)
	return nil
}

// memCache records what the services put into the cache.
type memCache struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newMemCache() *memCache { return &memCache{values: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}
