// Package sdk locates an Android SDK installation and resolves the
// absolute paths of its developer tools (adb, aapt, zipalign, emulator).
package sdk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Tool names understood by the resolver.
const (
	ToolADB      = "adb"
	ToolAAPT     = "aapt"
	ToolZipalign = "zipalign"
	ToolEmulator = "emulator"
)

// Environment variables consulted when no explicit root is given,
// in order of precedence.
var rootEnvVars = []string{"ANDROID_HOME", "ANDROID_SDK_ROOT"}

// ErrNoRoot is returned when no SDK root was given and none of the
// well-known environment variables point at one.
var ErrNoRoot = errors.New("no Android SDK root: set ANDROID_HOME or pass a path")

// ErrBuildToolsAmbiguous is returned when several build-tools versions are
// installed and version selection is disabled.
var ErrBuildToolsAmbiguous = errors.New("multiple build-tools versions installed")

// SDK resolves tool binaries under a single SDK installation root.
type SDK struct {
	root       string
	selectLast bool
}

// Option configures an SDK resolver.
type Option func(*SDK)

// WithStrictBuildTools makes the resolver fail when more than one
// build-tools version is installed instead of picking the newest.
func WithStrictBuildTools() Option {
	return func(s *SDK) { s.selectLast = false }
}

// New creates a resolver for the SDK at root. An empty root falls back to
// the ANDROID_HOME / ANDROID_SDK_ROOT environment variables. The root must
// be an existing directory.
func New(root string, opts ...Option) (*SDK, error) {
	if root == "" {
		for _, env := range rootEnvVars {
			if v := os.Getenv(env); v != "" {
				root = v
				break
			}
		}
	}
	if root == "" {
		return nil, ErrNoRoot
	}

	root = ExpandPath(root)
	if err := checkDir(root); err != nil {
		return nil, fmt.Errorf("sdk root: %w", err)
	}

	s := &SDK{root: root, selectLast: true}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Root returns the resolved SDK root directory.
func (s *SDK) Root() string {
	return s.root
}

// ADB returns the path to the adb binary under platform-tools/.
func (s *SDK) ADB() (string, error) {
	path := filepath.Join(s.root, "platform-tools", toolName(ToolADB))
	if err := CheckTool(path); err != nil {
		return "", err
	}
	return path, nil
}

// AAPT returns the path to the aapt binary under build-tools/<version>/.
func (s *SDK) AAPT() (string, error) {
	return s.buildTool(ToolAAPT)
}

// Zipalign returns the path to the zipalign binary under build-tools/<version>/.
func (s *SDK) Zipalign() (string, error) {
	return s.buildTool(ToolZipalign)
}

// Emulator returns the path to the emulator binary. Modern SDKs ship it
// under emulator/, older ones under tools/; both are tried.
func (s *SDK) Emulator() (string, error) {
	name := toolName(ToolEmulator)
	candidates := []string{
		filepath.Join(s.root, "emulator", name),
		filepath.Join(s.root, "tools", name),
	}
	for _, path := range candidates {
		if CheckTool(path) == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("emulator not found under %q", s.root)
}

// Resolve returns the path for a tool by name.
func (s *SDK) Resolve(name string) (string, error) {
	switch name {
	case ToolADB:
		return s.ADB()
	case ToolAAPT:
		return s.AAPT()
	case ToolZipalign:
		return s.Zipalign()
	case ToolEmulator:
		return s.Emulator()
	default:
		return "", fmt.Errorf("unknown tool %q", name)
	}
}

func (s *SDK) buildTool(name string) (string, error) {
	dir, err := s.buildToolsDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, toolName(name))
	if err := CheckTool(path); err != nil {
		return "", err
	}
	return path, nil
}

// buildToolsDir picks a build-tools version directory. With several versions
// installed the lexically newest wins unless strict selection is enabled.
func (s *SDK) buildToolsDir() (string, error) {
	base := filepath.Join(s.root, "build-tools")
	if err := checkDir(base); err != nil {
		return "", fmt.Errorf("build-tools: %w", err)
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		return "", fmt.Errorf("build-tools: %w", err)
	}

	var versions []string
	for _, e := range entries {
		if e.IsDir() {
			versions = append(versions, e.Name())
		}
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("build-tools not installed under %q", base)
	}
	if len(versions) > 1 && !s.selectLast {
		return "", fmt.Errorf("%w: %s", ErrBuildToolsAmbiguous, strings.Join(versions, ", "))
	}

	sort.Strings(versions)
	return filepath.Join(base, versions[len(versions)-1]), nil
}

// CheckTool verifies that path points at an existing regular file.
func CheckTool(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("tool %q: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("tool %q is not a regular file", path)
	}
	return nil
}

// ExpandPath expands environment variables and a leading ~ in path.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", path)
	}
	return nil
}

func toolName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}
