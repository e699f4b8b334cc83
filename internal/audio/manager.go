package audio

import (
	"log/slog"
	"os"
	"sync"

	"github.com/dockpeek/dockpeek/internal/config"
)

// Manager plays the selection feedback sound when a preview card is
// activated. Playback is best-effort and never blocks the caller.
type Manager struct {
	mu     sync.RWMutex
	logger *slog.Logger
	player *Player
	config *config.DaemonConfig

	// Resolved selection sound path, empty when disabled or missing
	selectSound string
}

// NewManager creates a new audio manager.
func NewManager(cfg *config.DaemonConfig, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		logger: logger,
		player: NewPlayer(logger),
		config: cfg,
	}

	m.loadSoundConfig()

	return m
}

// loadSoundConfig resolves the configured sound and applies the volume.
func (m *Manager) loadSoundConfig() {
	if m.config == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Config uses 0-100, player uses 0.0-1.0
	if m.config.Audio.Volume > 0 {
		m.player.SetVolume(float64(m.config.Audio.Volume) / 100.0)
	}

	m.selectSound = ""
	path := m.config.SelectSoundPath()
	if path == "" {
		return
	}

	if _, err := os.Stat(path); err != nil {
		m.logger.Warn("selection sound not found", "path", path)
		return
	}

	m.selectSound = path
	m.logger.Debug("loaded selection sound", "path", path)
}

// Start preloads the selection sound so the first playback has no
// decode latency.
func (m *Manager) Start() error {
	m.mu.RLock()
	path := m.selectSound
	m.mu.RUnlock()

	if path != "" {
		if err := m.player.Preload(path); err != nil {
			m.logger.Warn("failed to preload selection sound", "path", path, "error", err)
		}
	}

	m.logger.Info("audio manager started", "sound", path != "")
	return nil
}

// Stop shuts down the audio manager.
func (m *Manager) Stop() {
	m.player.Close()
	m.logger.Debug("audio manager stopped")
}

// PlaySelect plays the selection feedback sound, if configured.
func (m *Manager) PlaySelect() error {
	m.mu.RLock()
	enabled := m.config != nil && m.config.Audio.Enabled
	path := m.selectSound
	m.mu.RUnlock()

	if !enabled || path == "" {
		return nil
	}

	return m.player.Play(path)
}

// SetVolume sets the playback volume (0.0 to 1.0).
func (m *Manager) SetVolume(volume float64) {
	m.player.SetVolume(volume)
}

// GetVolume returns the current volume.
func (m *Manager) GetVolume() float64 {
	return m.player.GetVolume()
}

// UpdateConfig swaps in a new configuration and reloads the sound.
// Called when the config file is hot-reloaded.
func (m *Manager) UpdateConfig(cfg *config.DaemonConfig) {
	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()

	m.player.ClearCache()
	m.loadSoundConfig()

	m.mu.RLock()
	path := m.selectSound
	m.mu.RUnlock()

	if path != "" {
		if err := m.player.Preload(path); err != nil {
			m.logger.Warn("failed to preload selection sound", "path", path, "error", err)
		}
	}

	m.logger.Debug("audio manager config updated")
}
