package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrReadOnly is returned by file systems that cannot be written to.
var ErrReadOnly = errors.New("file system is read-only")

// FileSystem abstracts where source files come from: local disk, memory,
// or a remote server.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	// ListFiles returns the regular files directly inside dir, sorted.
	ListFiles(dir string) ([]string, error)
	Exists(path string) bool
	IsDir(path string) bool
}

// CompositeFS routes paths to file systems mounted on prefixes.  The
// longest matching prefix wins, then the fallback.
type CompositeFS struct {
	mu          sync.RWMutex
	filesystems map[string]FileSystem
	fallback    FileSystem
}

func NewCompositeFS() *CompositeFS {
	return &CompositeFS{
		filesystems: make(map[string]FileSystem),
	}
}

func (c *CompositeFS) SetFallback(fs FileSystem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fallback = fs
}

// Mount routes every path starting with prefix (for instance "https://") to fs.
func (c *CompositeFS) Mount(prefix string, fs FileSystem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filesystems[prefix] = fs
}

func (c *CompositeFS) findFS(path string) (FileSystem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var bestMatch string
	var bestFS FileSystem
	for prefix, fs := range c.filesystems {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(bestMatch) {
			bestMatch, bestFS = prefix, fs
		}
	}
	if bestFS == nil {
		bestFS = c.fallback
	}
	if bestFS == nil {
		return nil, fmt.Errorf("no filesystem mounted for path: %s", path)
	}
	return bestFS, nil
}

func (c *CompositeFS) ReadFile(path string) ([]byte, error) {
	fs, err := c.findFS(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(path)
}

func (c *CompositeFS) WriteFile(path string, data []byte) error {
	fs, err := c.findFS(path)
	if err != nil {
		return err
	}
	return fs.WriteFile(path, data)
}

func (c *CompositeFS) ListFiles(dir string) ([]string, error) {
	fs, err := c.findFS(dir)
	if err != nil {
		return nil, err
	}
	return fs.ListFiles(dir)
}

func (c *CompositeFS) Exists(path string) bool {
	fs, err := c.findFS(path)
	return err == nil && fs.Exists(path)
}

func (c *CompositeFS) IsDir(path string) bool {
	fs, err := c.findFS(path)
	return err == nil && fs.IsDir(path)
}

// LocalFS reads and writes the local disk.  Relative paths are taken
// relative to basePath.
type LocalFS struct {
	basePath string
}

func NewLocalFS(basePath string) *LocalFS {
	return &LocalFS{basePath: basePath}
}

func (l *LocalFS) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.basePath, path)
}

func (l *LocalFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(l.resolvePath(path))
}

func (l *LocalFS) WriteFile(path string, data []byte) error {
	fullPath := l.resolvePath(path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0644)
}

func (l *LocalFS) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(l.resolvePath(dir))
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

func (l *LocalFS) Exists(path string) bool {
	_, err := os.Stat(l.resolvePath(path))
	return err == nil
}

func (l *LocalFS) IsDir(path string) bool {
	info, err := os.Stat(l.resolvePath(path))
	return err == nil && info.IsDir()
}

// MemoryFS is an in-memory file system keyed by slash separated paths.
// Directories exist implicitly when some file lives under them.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemoryFS() *MemoryFS {
	return &MemoryFS{
		files: make(map[string][]byte),
	}
}

func (m *MemoryFS) ReadFile(p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, exists := m.files[path.Clean(p)]
	if !exists {
		return nil, &fs.PathError{Op: "read", Path: p, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryFS) WriteFile(p string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[path.Clean(p)] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryFS) ListFiles(dir string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dir = path.Clean(dir)
	var files []string
	for p := range m.files {
		if path.Dir(p) == dir {
			files = append(files, p)
		}
	}
	if len(files) == 0 && !m.isDirLocked(dir) {
		return nil, &fs.PathError{Op: "list", Path: dir, Err: fs.ErrNotExist}
	}
	sort.Strings(files)
	return files, nil
}

func (m *MemoryFS) Exists(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.files[path.Clean(p)]
	return exists || m.isDirLocked(path.Clean(p))
}

func (m *MemoryFS) IsDir(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isDirLocked(path.Clean(p))
}

func (m *MemoryFS) isDirLocked(dir string) bool {
	if dir == "." || dir == "/" {
		return true
	}
	prefix := dir + "/"
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// PreloadFiles adds files to the memory filesystem
func (m *MemoryFS) PreloadFiles(files map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for p, content := range files {
		m.files[path.Clean(p)] = []byte(content)
	}
}

// HTTPFileSystem fetches files over HTTP.  It is read-only and caches every
// successful fetch.
type HTTPFileSystem struct {
	baseURL string
	client  *http.Client
	cache   sync.Map // path -> []byte
}

func NewHTTPFileSystem(baseURL string, client *http.Client) *HTTPFileSystem {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFileSystem{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

func (h *HTTPFileSystem) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return h.baseURL + "/" + strings.TrimPrefix(path, "/")
}

func (h *HTTPFileSystem) ReadFile(path string) ([]byte, error) {
	if cached, ok := h.cache.Load(path); ok {
		return cached.([]byte), nil
	}

	url := h.url(path)
	resp, err := h.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &fs.PathError{Op: "fetch", Path: url, Err: fs.ErrNotExist}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: HTTP %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	h.cache.Store(path, data)
	return data, nil
}

func (h *HTTPFileSystem) WriteFile(path string, data []byte) error {
	return ErrReadOnly
}

func (h *HTTPFileSystem) ListFiles(dir string) ([]string, error) {
	return nil, fmt.Errorf("directory listing not supported for HTTP filesystem")
}

func (h *HTTPFileSystem) Exists(path string) bool {
	_, err := h.ReadFile(path)
	return err == nil
}

func (h *HTTPFileSystem) IsDir(path string) bool { return false }

// GitHubFS reads files from GitHub repositories through raw.githubusercontent.com.
// Paths look like github.com/<user>/<repo>/<file>, optionally with a branch as
// github.com/<user>/<repo>@<branch>/<file>.  The default branch is main.
type GitHubFS struct {
	httpFS *HTTPFileSystem
}

func NewGitHubFS(client *http.Client) *GitHubFS {
	return &GitHubFS{
		httpFS: NewHTTPFileSystem("https://raw.githubusercontent.com", client),
	}
}

func (g *GitHubFS) transformPath(path string) string {
	rest, ok := strings.CutPrefix(path, "github.com/")
	if !ok {
		return path
	}
	parts := strings.SplitN(rest, "/", 3)
	if len(parts) < 3 {
		return path
	}
	repo, branch, found := strings.Cut(parts[1], "@")
	if !found {
		branch = "main"
	}
	return fmt.Sprintf("/%s/%s/%s/%s", parts[0], repo, branch, parts[2])
}

func (g *GitHubFS) ReadFile(path string) ([]byte, error) {
	return g.httpFS.ReadFile(g.transformPath(path))
}

func (g *GitHubFS) WriteFile(path string, data []byte) error {
	return ErrReadOnly
}

func (g *GitHubFS) ListFiles(dir string) ([]string, error) {
	return nil, fmt.Errorf("directory listing not supported for GitHub filesystem")
}

func (g *GitHubFS) Exists(path string) bool {
	_, err := g.ReadFile(path)
	return err == nil
}

func (g *GitHubFS) IsDir(path string) bool { return false }

// NewDefaultFS is the file system the CLI uses: the local disk relative to
// basePath, with http(s) URLs and github.com paths fetched remotely.
func NewDefaultFS(basePath string, client *http.Client) *CompositeFS {
	c := NewCompositeFS()
	c.SetFallback(NewLocalFS(basePath))
	httpFS := NewHTTPFileSystem("", client)
	c.Mount("http://", httpFS)
	c.Mount("https://", httpFS)
	c.Mount("github.com/", NewGitHubFS(client))
	return c
}
