package preferences

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// FileStore guarda um arquivo JSON por dashboard no diretório configurado
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore cria o diretório se necessário
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "preferences: erro ao criar diretório %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Load(_ context.Context, dashboard string) (*Preferences, error) {
	path, err := s.path(dashboard)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "preferences: erro ao ler %s", path)
	}

	return Decode(payload)
}

// Save grava em um arquivo temporário e renomeia, para nunca deixar JSON pela metade
func (s *FileStore) Save(_ context.Context, dashboard string, prefs *Preferences) error {
	path, err := s.path(dashboard)
	if err != nil {
		return err
	}

	payload, err := Encode(prefs)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, dashboard+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "preferences: erro ao criar arquivo temporário")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return errors.Wrap(err, "preferences: erro ao gravar preferências")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "preferences: erro ao fechar arquivo temporário")
	}

	return errors.Wrapf(os.Rename(tmp.Name(), path), "preferences: erro ao salvar %s", path)
}

func (s *FileStore) path(dashboard string) (string, error) {
	if dashboard == "" || strings.ContainsAny(dashboard, `/\`) || strings.Contains(dashboard, "..") {
		return "", errors.Errorf("preferences: nome de dashboard inválido %q", dashboard)
	}
	return filepath.Join(s.dir, dashboard+".json"), nil
}
