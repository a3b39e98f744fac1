package facecache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

const (
	// FileName é o único arquivo do cache no diretório de trabalho.
	FileName = "face_cache.json"

	ModelName = "face_recognition_resnet_v1"
	Version   = 2
)

// Embedding é um vetor de 128 dimensões mais o descritor da imagem de
// origem.
type Embedding struct {
	Vector     []float64 `json:"vector"`
	Descriptor string    `json:"descriptor"`
}

// Entry é a fatia de um funcionário dentro do cache.
type Entry struct {
	TenantID   string      `json:"tenant_id"`
	Nome       string      `json:"nome"`
	Codigo     string      `json:"codigo"`
	Embeddings []Embedding `json:"embeddings"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// File é a estrutura serializada inteira: cabeçalho de metadados mais o
// mapa funcionário → fatia.
type File struct {
	GeneratedAt time.Time        `json:"generated_at"`
	ModelName   string           `json:"model_name"`
	Version     int              `json:"version"`
	Entries     map[string]Entry `json:"entries"`
}

func NewFile() *File {
	return &File{
		GeneratedAt: time.Now().UTC(),
		ModelName:   ModelName,
		Version:     Version,
		Entries:     map[string]Entry{},
	}
}

// Store lê e grava o cache em disco. A escrita é sempre atômica: arquivo
// temporário, fsync, rename. Leitores toleram fotos antigas até o próximo
// Load.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, FileName)
}

// Load devolve o cache inteiro, ou nil quando ainda não existe.
func (s *Store) Load() (*File, error) {
	raw, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	if f.Entries == nil {
		f.Entries = map[string]Entry{}
	}
	return &f, nil
}

// Write grava o cache via temp + fsync + rename; nunca deixa um arquivo
// meio escrito visível.
func (s *Store) Write(f *File) error {
	f.GeneratedAt = time.Now().UTC()
	f.ModelName = ModelName
	f.Version = Version

	raw, err := json.Marshal(f)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, FileName+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, s.path())
}
