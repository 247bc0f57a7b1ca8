// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package devapi

import (
	"cmp"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/olegiv/newsdesk/internal/model"
)

// Store errors.
var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrDuplicate = errors.New("duplicate")

	ErrUnknownCategory    = errors.New("unknown category")
	ErrUnknownSubCategory = errors.New("unknown sub-category")
)

// account is a user with its credentials.
type account struct {
	model.User
	hash         string
	tokenVersion int
}

// storedFile is an uploaded image served under /storage/.
type storedFile struct {
	data        []byte
	contentType string
}

// Store is the in-memory state of the development API. All methods are safe
// for concurrent use.
type Store struct {
	mu sync.RWMutex

	nextID int64

	users         map[int64]*account
	categories    map[int64]model.Category
	subCategories map[int64]model.SubCategory
	news          map[int64]model.News
	flashNews     map[int64]model.FlashNews
	files         map[string]storedFile
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:         make(map[int64]*account),
		categories:    make(map[int64]model.Category),
		subCategories: make(map[int64]model.SubCategory),
		news:          make(map[int64]model.News),
		flashNews:     make(map[int64]model.FlashNews),
		files:         make(map[string]storedFile),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// sortedDesc returns the map values newest first.
func sortedDesc[T any](m map[int64]T, id func(T) int64) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(id(b), id(a)) })
	return out
}

func filter[T any](rows []T, keep func(T) bool) []T {
	out := rows[:0]
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// Users

// AddUser creates an account. The email must be unique.
func (s *Store) AddUser(u model.User, hash string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userByEmailLocked(u.Email) != nil {
		return model.User{}, ErrDuplicate
	}
	u.ID = s.id()
	if u.Status == "" {
		u.Status = model.StatusActive
	}
	s.users[u.ID] = &account{User: u, hash: hash}
	return u, nil
}

func (s *Store) userByEmailLocked(email string) *account {
	for _, a := range s.users {
		if strings.EqualFold(a.Email, email) {
			return a
		}
	}
	return nil
}

// UserByEmail returns the user and password hash for email.
func (s *Store) UserByEmail(email string) (model.User, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a := s.userByEmailLocked(email)
	if a == nil {
		return model.User{}, "", false
	}
	return a.User, a.hash, true
}

// User returns the user and current token version for id.
func (s *Store) User(id int64) (model.User, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.users[id]
	if !ok {
		return model.User{}, 0, ErrNotFound
	}
	return a.User, a.tokenVersion, nil
}

// UserFilter narrows ListUsers.
type UserFilter struct {
	Role, Status, Search string
}

// ListUsers returns matching users, newest first.
func (s *Store) ListUsers(f UserFilter) []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]model.User, 0, len(s.users))
	for _, a := range sortedDesc(s.users, func(a *account) int64 { return a.ID }) {
		rows = append(rows, a.User)
	}
	return filter(rows, func(u model.User) bool {
		return (f.Role == "" || string(u.Role) == f.Role) &&
			(f.Status == "" || string(u.Status) == f.Status) &&
			(f.Search == "" || containsFold(u.Name, f.Search) || containsFold(u.Email, f.Search))
	})
}

// UpdateUser replaces the profile of id. A non-empty hash replaces the
// password and revokes existing tokens.
func (s *Store) UpdateUser(u model.User, hash string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.users[u.ID]
	if !ok {
		return model.User{}, ErrNotFound
	}
	if other := s.userByEmailLocked(u.Email); other != nil && other.ID != u.ID {
		return model.User{}, ErrDuplicate
	}
	u.CreatedAt = a.CreatedAt
	if u.Status == "" {
		u.Status = a.Status
	}
	if u.Status != a.Status {
		a.tokenVersion++
	}
	a.User = u
	if hash != "" {
		a.hash = hash
		a.tokenVersion++
	}
	return a.User, nil
}

// SetUserStatus activates or deactivates id. Deactivation revokes the
// user's tokens.
func (s *Store) SetUserStatus(id int64, status model.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	if a.Status != status {
		a.Status = status
		a.tokenVersion++
	}
	return nil
}

// DeleteUser removes id.
func (s *Store) DeleteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// Categories

// ListCategories returns categories with the given status ("" for all),
// newest first.
func (s *Store) ListCategories(status string) []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(sortedDesc(s.categories, func(c model.Category) int64 { return c.ID }), func(c model.Category) bool {
		return status == "" || string(c.Status) == status
	})
}

// Category returns one category.
func (s *Store) Category(id int64) (model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return model.Category{}, ErrNotFound
	}
	return c, nil
}

// SaveCategory inserts c when its ID is zero and replaces it otherwise.
func (s *Store) SaveCategory(c model.Category, now time.Time) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range s.categories {
		if other.ID != c.ID && strings.EqualFold(other.Name, c.Name) {
			return model.Category{}, ErrDuplicate
		}
	}
	if c.ID == 0 {
		c.ID = s.id()
		c.CreatedAt = model.NewTime(now)
	} else {
		old, ok := s.categories[c.ID]
		if !ok {
			return model.Category{}, ErrNotFound
		}
		c.CreatedAt = old.CreatedAt
	}
	s.categories[c.ID] = c
	s.renameRefsLocked(c)
	return c, nil
}

// renameRefsLocked refreshes embedded category names after a rename.
func (s *Store) renameRefsLocked(c model.Category) {
	for id, sub := range s.subCategories {
		if sub.CategoryID == c.ID {
			sub.Category = &model.CategoryRef{ID: c.ID, Name: c.Name}
			s.subCategories[id] = sub
		}
	}
	for id, n := range s.news {
		if n.CategoryID == c.ID {
			n.Category = &model.CategoryRef{ID: c.ID, Name: c.Name}
			s.news[id] = n
		}
	}
}

// DeleteCategory removes id. A category still holding sub-categories or
// news cannot be deleted.
func (s *Store) DeleteCategory(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return ErrNotFound
	}
	for _, sub := range s.subCategories {
		if sub.CategoryID == id {
			return ErrConflict
		}
	}
	for _, n := range s.news {
		if n.CategoryID == id {
			return ErrConflict
		}
	}
	delete(s.categories, id)
	return nil
}

// Sub-categories

// ListSubCategories returns sub-categories, newest first. Zero categoryID
// and empty status match everything.
func (s *Store) ListSubCategories(categoryID int64, status string) []model.SubCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(sortedDesc(s.subCategories, func(c model.SubCategory) int64 { return c.ID }), func(c model.SubCategory) bool {
		return (categoryID == 0 || c.CategoryID == categoryID) && (status == "" || string(c.Status) == status)
	})
}

// SubCategory returns one sub-category.
func (s *Store) SubCategory(id int64) (model.SubCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.subCategories[id]
	if !ok {
		return model.SubCategory{}, ErrNotFound
	}
	return c, nil
}

// SaveSubCategory inserts or replaces sub. The parent must exist.
func (s *Store) SaveSubCategory(sub model.SubCategory, now time.Time) (model.SubCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent, ok := s.categories[sub.CategoryID]
	if !ok {
		return model.SubCategory{}, ErrUnknownCategory
	}
	for _, other := range s.subCategories {
		if other.ID != sub.ID && other.CategoryID == sub.CategoryID && strings.EqualFold(other.Name, sub.Name) {
			return model.SubCategory{}, ErrDuplicate
		}
	}
	sub.Category = &model.CategoryRef{ID: parent.ID, Name: parent.Name}
	if sub.ID == 0 {
		sub.ID = s.id()
		sub.CreatedAt = model.NewTime(now)
	} else {
		old, ok := s.subCategories[sub.ID]
		if !ok {
			return model.SubCategory{}, ErrNotFound
		}
		sub.CreatedAt = old.CreatedAt
	}
	s.subCategories[sub.ID] = sub
	for id, n := range s.news {
		if n.SubCategoryID == sub.ID {
			n.SubCategory = &model.CategoryRef{ID: sub.ID, Name: sub.Name}
			s.news[id] = n
		}
	}
	return sub, nil
}

// DeleteSubCategory removes id unless news still uses it.
func (s *Store) DeleteSubCategory(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subCategories[id]; !ok {
		return ErrNotFound
	}
	for _, n := range s.news {
		if n.SubCategoryID == id {
			return ErrConflict
		}
	}
	delete(s.subCategories, id)
	return nil
}

// News

// NewsFilter narrows ListNews.
type NewsFilter struct {
	Search        string
	CategoryID    int64
	SubCategoryID int64
	NewsType      string
	PublishStatus string
	Tags          []string
}

func (f NewsFilter) match(n model.News) bool {
	if f.Search != "" && !containsFold(n.Title, f.Search) && !containsFold(n.ShortDescription, f.Search) {
		return false
	}
	if f.CategoryID != 0 && n.CategoryID != f.CategoryID {
		return false
	}
	if f.SubCategoryID != 0 && n.SubCategoryID != f.SubCategoryID {
		return false
	}
	if f.NewsType != "" && string(n.NewsType) != f.NewsType {
		return false
	}
	if f.PublishStatus != "" && string(n.PublishStatus) != f.PublishStatus {
		return false
	}
	if len(f.Tags) > 0 && !slices.ContainsFunc(f.Tags, func(t string) bool {
		return slices.ContainsFunc(n.Tags, func(have string) bool { return strings.EqualFold(have, t) })
	}) {
		return false
	}
	return true
}

// ListNews returns matching articles, newest first.
func (s *Store) ListNews(f NewsFilter) []model.News {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(sortedDesc(s.news, func(n model.News) int64 { return n.ID }), f.match)
}

// News returns one article.
func (s *Store) News(id int64) (model.News, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.news[id]
	if !ok {
		return model.News{}, ErrNotFound
	}
	return n, nil
}

// SaveNews inserts or replaces n. The sub-category must belong to the
// category.
func (s *Store) SaveNews(n model.News, now time.Time) (model.News, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, ok := s.categories[n.CategoryID]
	if !ok {
		return model.News{}, ErrUnknownCategory
	}
	sub, ok := s.subCategories[n.SubCategoryID]
	if !ok || sub.CategoryID != cat.ID {
		return model.News{}, ErrUnknownSubCategory
	}
	n.Category = &model.CategoryRef{ID: cat.ID, Name: cat.Name}
	n.SubCategory = &model.CategoryRef{ID: sub.ID, Name: sub.Name}

	if n.ID == 0 {
		n.ID = s.id()
		n.CreatedAt = model.NewTime(now)
	} else {
		old, ok := s.news[n.ID]
		if !ok {
			return model.News{}, ErrNotFound
		}
		n.CreatedAt = old.CreatedAt
	}
	if n.PublishStatus == model.PublishPublished && n.PublishedAt.IsZero() {
		n.PublishedAt = model.NewTime(now)
	}
	s.news[n.ID] = n
	return n, nil
}

// DeleteNews removes id.
func (s *Store) DeleteNews(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.news[id]; !ok {
		return ErrNotFound
	}
	delete(s.news, id)
	return nil
}

// PublishDueNews publishes scheduled articles whose time has come.
func (s *Store) PublishDueNews(now time.Time) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []int64
	for id, n := range s.news {
		if n.PublishStatus == model.PublishScheduled && !n.PublishedAt.IsZero() && !n.PublishedAt.After(now) {
			n.PublishStatus = model.PublishPublished
			s.news[id] = n
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Flash news

// ListFlashNews returns flash news with the given status ("" for all),
// newest first.
func (s *Store) ListFlashNews(status string) []model.FlashNews {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(sortedDesc(s.flashNews, func(f model.FlashNews) int64 { return f.ID }), func(f model.FlashNews) bool {
		return status == "" || string(f.Status) == status
	})
}

// FlashNews returns one banner.
func (s *Store) FlashNews(id int64) (model.FlashNews, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.flashNews[id]
	if !ok {
		return model.FlashNews{}, ErrNotFound
	}
	return f, nil
}

// SaveFlashNews inserts or replaces f.
func (s *Store) SaveFlashNews(f model.FlashNews) (model.FlashNews, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID == 0 {
		f.ID = s.id()
	} else if _, ok := s.flashNews[f.ID]; !ok {
		return model.FlashNews{}, ErrNotFound
	}
	s.flashNews[f.ID] = f
	return f, nil
}

// DeleteFlashNews removes id.
func (s *Store) DeleteFlashNews(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.flashNews[id]; !ok {
		return ErrNotFound
	}
	delete(s.flashNews, id)
	return nil
}

// ExpireFlashNews switches off banners that are on and past their expiry.
func (s *Store) ExpireFlashNews(now time.Time) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []int64
	for id, f := range s.flashNews {
		if f.IsOn() && f.Expired(now) {
			f.Status = model.FlashOff
			s.flashNews[id] = f
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Files

// PutFile stores an upload under name.
func (s *Store) PutFile(name string, data []byte, contentType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = storedFile{data: data, contentType: contentType}
}

// File returns a stored upload.
func (s *Store) File(name string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[name]
	return f.data, f.contentType, ok
}

// rehash swaps the stored hash without revoking tokens.
func (s *Store) rehash(id int64, hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.users[id]; ok {
		a.hash = hash
	}
}
