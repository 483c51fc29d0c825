package index

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newPost(title string) Post {
	return Post{
		ID:      uuid.New(),
		Title:   title,
		Content: "Dolor sit amet",
		Created: time.Now().UTC(),
	}
}

func TestAddAndGetPost(t *testing.T) {
	ix := New()
	p := newPost("Lorem Ipsum")
	ix.AddPost(p)

	got, ok := ix.Post(p.ID)
	if !ok {
		t.Fatalf("post %s not found", p.ID)
	}
	if got.Title != p.Title || got.Content != p.Content {
		t.Errorf("got %+v, want %+v", got, p)
	}

	if _, ok := ix.Post(uuid.New()); ok {
		t.Error("lookup of unknown id should miss")
	}
}

func TestPostsReturnsAll(t *testing.T) {
	ix := New()
	want := map[uuid.UUID]bool{}
	for i := 0; i < 5; i++ {
		p := newPost("Lorem Ipsum")
		ix.AddPost(p)
		want[p.ID] = true
	}

	posts := ix.Posts()
	if len(posts) != 5 {
		t.Fatalf("got %d posts, want 5", len(posts))
	}
	for _, p := range posts {
		if !want[p.ID] {
			t.Errorf("unexpected post %s", p.ID)
		}
	}
}

func TestLinkUpdatesBothEndpoints(t *testing.T) {
	ix := New()
	p := newPost("Lorem Ipsum")
	ix.AddPost(p)

	if err := ix.Link("news", p.ID); err != nil {
		t.Fatalf("link: %v", err)
	}

	tag, ok := ix.Tag("news")
	if !ok {
		t.Fatal("tag should exist after Link")
	}
	if len(tag.PostIDs) != 1 || tag.PostIDs[0] != p.ID {
		t.Errorf("tag.PostIDs = %v, want [%s]", tag.PostIDs, p.ID)
	}

	got, _ := ix.Post(p.ID)
	if len(got.Tags) != 1 || got.Tags[0] != "news" {
		t.Errorf("post.Tags = %v, want [news]", got.Tags)
	}

	// linking twice is a no-op
	if err := ix.Link("news", p.ID); err != nil {
		t.Fatalf("second link: %v", err)
	}
	tag, _ = ix.Tag("news")
	if len(tag.PostIDs) != 1 {
		t.Errorf("duplicate link should not grow adjacency, got %v", tag.PostIDs)
	}
}

func TestLinkMissingPost(t *testing.T) {
	ix := New()
	if err := ix.Link("news", uuid.New()); err == nil {
		t.Fatal("linking a tag to a missing post should fail")
	}
	if _, ok := ix.Tag("news"); ok {
		t.Error("failed link must not create the tag")
	}
}

func TestPostsByTagSkipsDanglingIDs(t *testing.T) {
	ix := New()
	p := newPost("Lorem Ipsum")
	ix.AddPost(p)
	ix.AddTag(Tag{Name: "mixed", PostIDs: []uuid.UUID{p.ID, uuid.New(), uuid.New()}})

	posts := ix.PostsByTag("mixed")
	if len(posts) != 1 || posts[0].ID != p.ID {
		t.Errorf("PostsByTag = %v, want only %s", posts, p.ID)
	}

	if posts := ix.PostsByTag("missing"); len(posts) != 0 {
		t.Errorf("unknown tag should resolve to no posts, got %v", posts)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	ix := New()
	p := newPost("Lorem Ipsum")
	p.Tags = []string{"a"}
	ix.AddPost(p)

	got, _ := ix.Post(p.ID)
	got.Tags[0] = "mutated"

	again, _ := ix.Post(p.ID)
	if again.Tags[0] != "a" {
		t.Error("mutating a returned post must not affect the index")
	}

	ix.AddTag(Tag{Name: "t", PostIDs: []uuid.UUID{p.ID}})
	tag, _ := ix.Tag("t")
	tag.PostIDs[0] = uuid.New()
	tag2, _ := ix.Tag("t")
	if tag2.PostIDs[0] != p.ID {
		t.Error("mutating a returned tag must not affect the index")
	}
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	ix := New()
	seed := newPost("seed")
	ix.AddPost(seed)
	_ = ix.Link("seed", seed.ID)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p := newPost("Lorem Ipsum")
				ix.AddPost(p)
				_ = ix.Link("seed", p.ID)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ix.Posts()
				ix.PostsByTag("seed")
				ix.Tags()
			}
		}()
	}
	wg.Wait()

	if got := len(ix.Posts()); got != 1+8*100 {
		t.Errorf("got %d posts after concurrent writes, want %d", got, 1+8*100)
	}
}
