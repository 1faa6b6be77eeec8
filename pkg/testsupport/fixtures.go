package testsupport

import (
	"os"
	"path/filepath"
)

// SamplePosts is a small content directory: one post with front matter and
// one without.
func SamplePosts() map[string]string {
	return map[string]string{
		"blog1.md": "---\ntitle: First Post\nexcerpt: Intro\n---\nHello **world**",
		"blog2.md": "No front matter",
	}
}

// WritePosts writes files into dir, creating parent directories as needed.
func WritePosts(dir string, files map[string]string) error {
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			return err
		}
	}
	return nil
}
