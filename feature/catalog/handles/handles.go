package handles

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"catalog-sync/core/storage"
)

// Source says where the product handle list lives. When Object is set the
// list is read from the bucket, otherwise from the local File.
type Source struct {
	File   string
	Bucket string
	Object string
}

// Load reads and parses the handle list.
func Load(ctx context.Context, client storage.Client, src Source) ([]string, error) {
	var (
		data []byte
		err  error
	)
	if src.Object != "" {
		if client == nil {
			return nil, fmt.Errorf("handles object %s configured without a storage client", src.Object)
		}
		data, err = storage.ReadObject(ctx, client, src.Bucket, src.Object)
	} else {
		data, err = os.ReadFile(src.File)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read handles: %w", err)
	}
	return Parse(data), nil
}

// Parse returns one handle per non-blank line. Lines starting with # are
// comments and duplicates are dropped, keeping the first occurrence.
func Parse(data []byte) []string {
	var (
		out  []string
		seen = make(map[string]struct{})
	)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
