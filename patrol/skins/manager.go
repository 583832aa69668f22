// Package skins unpacks the skin pack of patrol NPCs and loads skins from it.
package skins

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/df-mc/dragonfly/server/player/skin"
	"github.com/df-mc/npc"
	"github.com/schollz/progressbar/v3"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol/internal"
)

// ErrSkinNotFound is returned when the texture or geometry of a skin is missing from the pack.
var ErrSkinNotFound = errors.New("skins: skin not found")

// Manager handles the skin pack of patrol NPCs.
type Manager struct {
	log *slog.Logger
	dir string

	// Prompt asks for confirmation before a previously unpacked pack is replaced.
	Prompt bool
}

// NewManager creates a new skin pack manager working in dir.
func NewManager(log *slog.Logger, dir string) *Manager {
	return &Manager{
		log: log,
		dir: dir,
	}
}

// UnpackedPath returns the path where the skin pack is unpacked.
func (m *Manager) UnpackedPath() string {
	return filepath.Join(m.dir, "unpacked")
}

// Unpack unpacks the .mcpack archive at packPath, unless the same archive was unpacked before.
func (m *Manager) Unpack(packPath string) error {
	if err := os.MkdirAll(m.dir, internal.DirectoryPermissions); err != nil {
		return fmt.Errorf("failed to create skin directory: %w", err)
	}

	info, err := os.Stat(packPath)
	if err != nil {
		return fmt.Errorf("failed to stat skin pack: %w", err)
	}
	version := fmt.Sprintf("%d-%d", info.Size(), info.ModTime().Unix())

	current := m.CurrentVersion()
	if current == version {
		m.log.Info("Skin pack is already unpacked", "version", version)
		return nil
	}

	if current != "" && m.Prompt {
		replace := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Skin pack changed (%s -> %s). Replace unpacked skins?", current, version),
			Default: true,
		}
		if err = survey.AskOne(prompt, &replace); err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}
		if !replace {
			return nil
		}
	}

	if err = os.RemoveAll(m.UnpackedPath()); err != nil {
		m.log.Warn("failed to clean up old unpacked skins", "error", err)
	}
	if err = m.unzip(packPath); err != nil {
		return err
	}
	if err = m.markAsUnpacked(version); err != nil {
		return fmt.Errorf("failed to mark as unpacked: %w", err)
	}

	m.log.Info("Successfully unpacked skin pack", "version", version)
	return nil
}

// CurrentVersion returns the version of the unpacked skin pack, or an empty string if none is
// unpacked.
func (m *Manager) CurrentVersion() string {
	content, err := os.ReadFile(filepath.Join(m.UnpackedPath(), ".version"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(content))
}

// markAsUnpacked ...
func (m *Manager) markAsUnpacked(version string) error {
	return os.WriteFile(filepath.Join(m.UnpackedPath(), ".version"), []byte(version), internal.FilePermissions)
}

// unzip ...
func (m *Manager) unzip(packPath string) error {
	reader, err := zip.OpenReader(packPath)
	if err != nil {
		return fmt.Errorf("failed to open skin pack: %w", err)
	}
	defer reader.Close()

	unpackPath := m.UnpackedPath()
	if err = os.MkdirAll(unpackPath, internal.DirectoryPermissions); err != nil {
		return fmt.Errorf("failed to create unpack directory: %w", err)
	}

	totalFiles := 0
	for _, file := range reader.File {
		if !file.FileInfo().IsDir() {
			totalFiles++
		}
	}
	bar := progressbar.Default(int64(totalFiles), "Unpacking skin pack")
	defer bar.Close()

	for _, file := range reader.File {
		path := filepath.Join(unpackPath, file.Name)
		if !strings.HasPrefix(path, filepath.Clean(unpackPath)+string(os.PathSeparator)) {
			return fmt.Errorf("illegal file path in skin pack: %s", file.Name)
		}

		if file.FileInfo().IsDir() {
			if err = os.MkdirAll(path, internal.DirectoryPermissions); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			continue
		}
		if err = os.MkdirAll(filepath.Dir(path), internal.DirectoryPermissions); err != nil {
			return fmt.Errorf("failed to create directories: %w", err)
		}
		if err = extract(file, path); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	return nil
}

// extract ...
func extract(file *zip.File, path string) error {
	outFile, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer outFile.Close()

	rc, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open zip file: %w", err)
	}
	defer rc.Close()

	if _, err = io.Copy(outFile, rc); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}
	return nil
}

// Paths returns the texture and geometry paths of the skin with the given identifier.
func (m *Manager) Paths(identifier string) (texture, geometry string) {
	unpacked := m.UnpackedPath()
	texture = filepath.Join(unpacked, "textures", "entity", "patrol", identifier) + ".png"
	geometry = filepath.Join(unpacked, "models", "entity", "patrol", identifier) + ".geo.json"
	return texture, geometry
}

// Skin loads the skin with the given identifier from the unpacked pack.
func (m *Manager) Skin(identifier string) (sk skin.Skin, err error) {
	texturePath, geometryPath := m.Paths(identifier)
	for _, p := range []string{texturePath, geometryPath} {
		if _, err = os.Stat(p); err != nil {
			return skin.Skin{}, fmt.Errorf("%s (%s): %w", identifier, p, ErrSkinNotFound)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			sk, err = skin.Skin{}, fmt.Errorf("skin %s: %v", identifier, r)
		}
	}()
	return npc.MustSkin(
		npc.MustParseTexture(texturePath),
		npc.MustParseModel(geometryPath),
	), nil
}
