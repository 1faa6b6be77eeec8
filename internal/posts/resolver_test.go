package posts

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
)

type countingLoader struct {
	mu    sync.Mutex
	calls int
	text  string
	err   error
}

func (c *countingLoader) load(context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.text, c.err
}

func (c *countingLoader) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestResolveBlogScenario(t *testing.T) {
	entries := []SourceEntry{StaticEntry("blog1", "---\ntitle: First\n---\nHi")}

	got := Resolve(context.Background(), entries, "blog1")
	want := Found(Post{ID: "blog1", Metadata: FrontMatter{"title": "First"}, Body: "Hi"})
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}

	if missing := Resolve(context.Background(), entries, "blog2"); !missing.IsNotFound() {
		t.Fatalf("expected NotFound for blog2, got %v", missing)
	}
}

func TestResolvePresentIdentifierMatchesParser(t *testing.T) {
	raw := "---\ntitle: Hello\nimage: /hero.png\n---\n\n# Heading\n\nBody"
	entries := []SourceEntry{
		StaticEntry("other", "nope"),
		StaticEntry("hello", raw),
	}

	result := Resolve(context.Background(), entries, "hello")
	if !result.IsFound() {
		t.Fatalf("expected Found, got %v", result)
	}

	meta, body := ParseFrontMatter(raw)
	if result.Post.ID != "hello" {
		t.Fatalf("expected id hello, got %q", result.Post.ID)
	}
	if !reflect.DeepEqual(result.Post.Metadata, meta) || result.Post.Body != body {
		t.Fatalf("expected parser output %v %q, got %v %q", meta, body, result.Post.Metadata, result.Post.Body)
	}
}

func TestResolveAbsentIdentifierInvokesNoLoader(t *testing.T) {
	loaders := []*countingLoader{{text: "a"}, {text: "b"}}
	entries := []SourceEntry{
		NewEntry("a", loaders[0].load),
		NewEntry("b", loaders[1].load),
	}

	for _, id := range []string{"c", "", "A", "a.md"} {
		if result := Resolve(context.Background(), entries, id); !result.IsNotFound() {
			t.Fatalf("expected NotFound for %q, got %v", id, result)
		}
	}
	for i, l := range loaders {
		if l.count() != 0 {
			t.Fatalf("loader %d invoked %d times", i, l.count())
		}
	}
}

func TestResolveOnEmptyEntries(t *testing.T) {
	if result := Resolve(context.Background(), nil, "anything"); !result.IsNotFound() {
		t.Fatalf("expected NotFound, got %v", result)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	loader := &countingLoader{text: "---\ntitle: Same\n---\nbody"}
	entries := []SourceEntry{NewEntry("same", loader.load)}

	first := Resolve(context.Background(), entries, "same")
	second := Resolve(context.Background(), entries, "same")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected equal results, got %v and %v", first, second)
	}
	if loader.count() != 2 {
		t.Fatalf("expected one load per resolution, got %d", loader.count())
	}
}

func TestResolveLoaderFailureBecomesLoadError(t *testing.T) {
	loader := &countingLoader{err: errors.New("permission denied")}
	entries := []SourceEntry{NewEntry("locked", loader.load)}

	result := Resolve(context.Background(), entries, "locked")
	if !result.IsLoadError() {
		t.Fatalf("expected LoadError, got %v", result)
	}
	if result.Post != nil {
		t.Fatal("expected no post on LoadError")
	}
	if !strings.Contains(result.Reason, "locked") || !strings.Contains(result.Reason, "permission denied") {
		t.Fatalf("unexpected reason %q", result.Reason)
	}
}

func TestResolveCancelledContextSkipsLoader(t *testing.T) {
	loader := &countingLoader{text: "x"}
	entries := []SourceEntry{NewEntry("x", loader.load)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if result := Resolve(ctx, entries, "x"); !result.IsLoadError() {
		t.Fatalf("expected LoadError, got %v", result)
	}
	if loader.count() != 0 {
		t.Fatal("expected loader not to run after cancellation")
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	second := &countingLoader{text: "second"}
	entries := []SourceEntry{
		StaticEntry("dup", "first"),
		NewEntry("dup", second.load),
	}

	result := Resolve(context.Background(), entries, "dup")
	if !result.IsFound() || result.Post.Body != "first" {
		t.Fatalf("expected first entry, got %v", result)
	}
	if second.count() != 0 {
		t.Fatal("expected later duplicate not to load")
	}
}

func TestResolveNilLoaderPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil loader")
		}
	}()
	Resolve(context.Background(), []SourceEntry{{ID: "broken"}}, "broken")
}

func TestResolverUsesConfiguredParser(t *testing.T) {
	parser := FrontMatterParserFunc(func(raw string) (FrontMatter, string) {
		return FrontMatter{"custom": "yes"}, strings.ToUpper(raw)
	})
	resolver := NewResolver(WithResolverParser(parser))

	result := resolver.Resolve(context.Background(), []SourceEntry{StaticEntry("p", "body")}, "p")
	if !result.IsFound() || result.Post.Body != "BODY" || result.Post.Metadata["custom"] != "yes" {
		t.Fatalf("expected custom parser output, got %+v", result.Post)
	}
}

func TestResolveConcurrentCalls(t *testing.T) {
	entries := []SourceEntry{
		StaticEntry("a", "---\ntitle: A\n---\na"),
		StaticEntry("b", "---\ntitle: B\n---\nb"),
	}
	resolver := NewResolver()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := "a"
			if i%2 == 1 {
				id = "b"
			}
			result := resolver.Resolve(context.Background(), entries, id)
			if !result.IsFound() || result.Post.ID != id {
				t.Errorf("unexpected result %v for %s", result, id)
			}
		}(i)
	}
	wg.Wait()
}

func TestFoundCopiesMetadata(t *testing.T) {
	meta := FrontMatter{"title": "Original"}
	result := Found(Post{ID: "x", Metadata: meta})
	meta["title"] = "Changed"
	if result.Post.Metadata["title"] != "Original" {
		t.Fatal("expected Found to copy metadata")
	}
}
