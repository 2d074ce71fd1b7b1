package graphql

import (
	"context"
	"fmt"

	"catalog-sync/feature/catalog/models"
)

func (s *Store) ListFiles(ctx context.Context) ([]models.File, error) {
	nodes, err := list[fileNode](ctx, s, "files", listFilesQuery, nil)
	if err != nil {
		return nil, err
	}
	files := make([]models.File, 0, len(nodes))
	for _, n := range nodes {
		files = append(files, n.model())
	}
	return files, nil
}

func (s *Store) GetFile(ctx context.Context, id string) (*models.File, error) {
	n, err := get[fileNode](ctx, s, "node", getFileQuery, map[string]any{"id": id})
	if err != nil || n == nil || n.ID == "" {
		return nil, err
	}
	f := n.model()
	return &f, nil
}

// GetFileByName searches by filename and keeps the first hit whose derived
// name matches exactly, since the search also returns partial matches.
func (s *Store) GetFileByName(ctx context.Context, name string) (*models.File, error) {
	nodes, err := list[fileNode](ctx, s, "files", listFilesQuery,
		map[string]any{"query": fmt.Sprintf("filename:%q", name)})
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if f := n.model(); f.Name() == name {
			return &f, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateFiles(ctx context.Context, in []models.FileCreate) ([]models.File, error) {
	var out struct {
		Files []fileNode `json:"files"`
	}
	if err := s.mutate(ctx, "fileCreate", createFilesMutation, map[string]any{"files": in}, in, &out); err != nil {
		return nil, err
	}
	files := make([]models.File, 0, len(out.Files))
	for _, n := range out.Files {
		files = append(files, n.model())
	}
	return files, nil
}
