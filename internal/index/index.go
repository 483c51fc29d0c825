// Package index is the process-wide in-memory store backing the GraphQL
// path. It is independent from the relational store: posts created here
// live only as long as the process.
package index

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID      uuid.UUID
	Title   string
	Content string
	Created time.Time
	Tags    []string
}

type Tag struct {
	Name    string
	PostIDs []uuid.UUID
}

// Index holds posts by id and tags by name behind a single lock. Readers
// get copies; nothing handed out stays guarded after the call returns.
type Index struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]Post
	tags  map[string]Tag
}

func New() *Index {
	return &Index{
		posts: make(map[uuid.UUID]Post),
		tags:  make(map[string]Tag),
	}
}

func (ix *Index) Post(id uuid.UUID) (Post, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	p, ok := ix.posts[id]
	if !ok {
		return Post{}, false
	}
	return clonePost(p), true
}

func (ix *Index) Posts() []Post {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]Post, 0, len(ix.posts))
	for _, p := range ix.posts {
		out = append(out, clonePost(p))
	}
	return out
}

func (ix *Index) Tag(name string) (Tag, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	t, ok := ix.tags[name]
	if !ok {
		return Tag{}, false
	}
	return cloneTag(t), true
}

func (ix *Index) Tags() []Tag {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]Tag, 0, len(ix.tags))
	for _, t := range ix.tags {
		out = append(out, cloneTag(t))
	}
	return out
}

func (ix *Index) AddPost(p Post) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.posts[p.ID] = clonePost(p)
}

func (ix *Index) AddTag(t Tag) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.tags[t.Name] = cloneTag(t)
}

// Link records the (tag, post) edge, creating the tag if needed. Both
// endpoints are updated in the same critical section; the post must
// already exist.
func (ix *Index) Link(name string, id uuid.UUID) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	p, ok := ix.posts[id]
	if !ok {
		return fmt.Errorf("link tag %q: no post %s", name, id)
	}

	t := ix.tags[name]
	t.Name = name
	for _, existing := range t.PostIDs {
		if existing == id {
			return nil
		}
	}
	t.PostIDs = append(t.PostIDs, id)
	ix.tags[name] = t

	p.Tags = append(p.Tags, name)
	ix.posts[id] = p
	return nil
}

// PostsByTag resolves a tag's adjacency list to posts. Dangling ids are
// skipped silently.
func (ix *Index) PostsByTag(name string) []Post {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	t, ok := ix.tags[name]
	if !ok {
		return nil
	}
	out := make([]Post, 0, len(t.PostIDs))
	for _, id := range t.PostIDs {
		if p, ok := ix.posts[id]; ok {
			out = append(out, clonePost(p))
		}
	}
	return out
}

func clonePost(p Post) Post {
	p.Tags = append([]string(nil), p.Tags...)
	return p
}

func cloneTag(t Tag) Tag {
	t.PostIDs = append([]uuid.UUID(nil), t.PostIDs...)
	return t
}
