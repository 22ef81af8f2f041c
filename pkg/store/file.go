package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/eolscan/eolscan/pkg/errors"
)

// FileStore keeps all projects in a single YAML file. Suited to the
// single-user CLI case; writes rewrite the whole file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed store at path, creating parent
// directories as needed. The file itself is created on first save.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "create store directory")
	}
	return &FileStore{path: path}, nil
}

// Path returns the store file location.
func (s *FileStore) Path() string { return s.path }

type projectsFile struct {
	Projects map[string]Project `yaml:"projects"`
}

func (s *FileStore) List(ctx context.Context) (map[string]Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Save(ctx context.Context, p Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.load()
	if err != nil {
		return err
	}
	projects[p.Name] = p
	return s.write(projects)
}

func (s *FileStore) Remove(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := projects[name]; !ok {
		return NotFound(name)
	}
	delete(projects, name)
	return s.write(projects)
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) load() (map[string]Project, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]Project{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read %s", s.path)
	}

	var f projectsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "parse %s", s.path)
	}
	if f.Projects == nil {
		f.Projects = map[string]Project{}
	}
	// Name is the map key; keep records self-describing even if the file
	// was hand-edited.
	for name, p := range f.Projects {
		if p.Name == "" {
			p.Name = name
			f.Projects[name] = p
		}
	}
	return f.Projects, nil
}

func (s *FileStore) write(projects map[string]Project) error {
	data, err := yaml.Marshal(projectsFile{Projects: projects})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encode projects")
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write %s", s.path)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
