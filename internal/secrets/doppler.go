package secrets

// Package secrets resolves credentials through the Doppler CLI

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// lookupTimeout bounds a single `doppler secrets get` invocation
const lookupTimeout = 5 * time.Second

// commandRunner runs the Doppler CLI and returns its stdout
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// DopplerClient provides access to secrets stored in Doppler
type DopplerClient struct {
	Project string
	Config  string

	mu          sync.Mutex
	initialized bool
	cache       map[string]string
	lookPath    func(file string) (string, error)
	run         commandRunner
}

// NewDopplerClient creates a new Doppler client
func NewDopplerClient(project, config string) *DopplerClient {
	return &DopplerClient{
		Project:  project,
		Config:   config,
		cache:    make(map[string]string),
		lookPath: exec.LookPath,
		run:      runCommand,
	}
}

// Initialize checks if the Doppler CLI is installed
func (d *DopplerClient) Initialize() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.initialized {
		return nil
	}
	if _, err := d.lookPath("doppler"); err != nil {
		return fmt.Errorf("doppler CLI not found: %w", err)
	}
	d.initialized = true
	return nil
}

// GetSecret retrieves a secret, preferring values injected by `doppler run`
func (d *DopplerClient) GetSecret(key string) (string, error) {
	if err := d.Initialize(); err != nil {
		return "", err
	}

	if value := os.Getenv(key); value != "" {
		return value, nil
	}

	d.mu.Lock()
	cached, ok := d.cache[key]
	d.mu.Unlock()
	if ok {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	output, err := d.run(ctx, "doppler", "secrets", "get", key,
		"--project", d.Project,
		"--config", d.Config,
		"--plain")
	if err != nil {
		return "", fmt.Errorf("failed to get secret %s: %w", key, err)
	}

	value := strings.TrimSpace(string(output))
	d.mu.Lock()
	d.cache[key] = value
	d.mu.Unlock()
	return value, nil
}

// GetSecretWithFallback gets a secret from Doppler with a fallback value
func (d *DopplerClient) GetSecretWithFallback(key, fallback string) string {
	value, err := d.GetSecret(key)
	if err != nil || value == "" {
		return fallback
	}
	return value
}
