package deploy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AssetWriter persists rendered campaign content under a sandboxed
// workspace directory. Paths that escape the root are rejected.
type AssetWriter struct {
	Root string
}

func NewAssetWriter(root string) *AssetWriter {
	absRoot, _ := filepath.Abs(root)
	return &AssetWriter{Root: absRoot}
}

func (w *AssetWriter) resolve(name string) (string, error) {
	target := filepath.Join(w.Root, name)

	// Safety check: ensure target stays within the workspace root
	rel, err := filepath.Rel(w.Root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("unsafe path attempt: %s", name)
	}
	return target, nil
}

// Write stores content under the workspace, creating directories as
// needed. Returns the absolute path written.
func (w *AssetWriter) Write(name string, content []byte) (string, error) {
	target, err := w.resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(target, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return target, nil
}

// Read returns a stored asset.
func (w *AssetWriter) Read(name string) ([]byte, error) {
	target, err := w.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// List enumerates stored assets under a subdirectory.
func (w *AssetWriter) List(dir string) ([]string, error) {
	target, err := w.resolve(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// SaveCampaignCopy writes campaign content as a timestamped markdown
// file under the campaign's directory.
func (w *AssetWriter) SaveCampaignCopy(campaignID, channel, content string) (string, error) {
	name := filepath.Join("campaigns", campaignID,
		fmt.Sprintf("%s_%d.md", channel, time.Now().Unix()))
	return w.Write(name, []byte(content))
}
