// Package asset serves the files embedded in the binary: the app icon, the terms of use and
// the instruction text for each AI tool.
package asset

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"io/fs"
	"path"
	"strings"

	"fyne.io/fyne/v2"

	"github.com/dixieflatline76/Expanse/util/log"
)

//go:embed icons/* text/*
var assets embed.FS

// AppIcon is the file name of the application icon.
const AppIcon = "app.png"

const (
	iconDir   = "icons"
	textDir   = "text"
	promptDir = "text/prompts"
	promptExt = ".txt"
)

// Manager reads embedded assets.
type Manager struct {
	files fs.FS
}

// NewManager creates a Manager over the embedded files.
func NewManager() *Manager {
	return &Manager{files: assets}
}

func (am *Manager) read(dir, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("asset name is empty")
	}
	data, err := fs.ReadFile(am.files, path.Join(dir, name))
	if err != nil {
		log.Printf("Error loading asset %s/%s: %v", dir, name, err)
		return nil, err
	}
	return data, nil
}

// GetIcon returns an embedded icon as a Fyne resource.
func (am *Manager) GetIcon(name string) (fyne.Resource, error) {
	data, err := am.read(iconDir, name)
	if err != nil {
		return nil, err
	}
	return fyne.NewStaticResource(name, data), nil
}

// GetIconImage decodes an embedded icon.
func (am *Manager) GetIconImage(name string) (image.Image, error) {
	data, err := am.read(iconDir, name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding icon %s: %w", name, err)
	}
	return img, nil
}

// GetText returns an embedded text file.
func (am *Manager) GetText(name string) (string, error) {
	data, err := am.read(textDir, name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetPrompt returns the instruction text for an AI tool, without surrounding whitespace.
func (am *Manager) GetPrompt(name string) (string, error) {
	data, err := am.read(promptDir, name+promptExt)
	if err != nil {
		return "", fmt.Errorf("prompt %q: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}
