package adb

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// FileInfo describes one entry of an ls -la listing on the device.
type FileInfo struct {
	Mode  string `json:"mode"`
	Links string `json:"links"`
	Owner string `json:"owner"`
	Group string `json:"group"`
	Size  string `json:"size"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Name  string `json:"name"`
}

// AccessError is an ls entry that could not be read.
type AccessError struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// lsLine captures mode, links, owner, group, size, date, time and name from
// toybox/busybox ls -la output. Size may be empty for some entry types.
var lsLine = regexp.MustCompile(`^([\w-]+) +(\d+) *(\w+) +(\w+) *(\d*) +([\d-]+) +([\d:]+) (.+)$`)

// Push copies local files and directories to the device, creating the
// destination path first. Progress lines are filtered from the output.
func (c *Client) Push(ctx context.Context, sources []string, dest string, sync bool) ([]string, error) {
	if err := c.Mkdir(ctx, dest); err != nil {
		return nil, err
	}

	args := append([]string{"push"}, sources...)
	args = append(args, dest)
	if sync {
		args = append(args, "--sync")
	}

	lines, err := c.adb(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("pushing to %s: %w", dest, err)
	}
	return stripProgress(lines), nil
}

// Pull copies files and directories from the device into a local directory,
// creating it when missing. preserveTimes keeps the on-device timestamps.
func (c *Client) Pull(ctx context.Context, sources []string, dest string, preserveTimes bool) ([]string, error) {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dest, err)
	}

	args := append([]string{"pull"}, sources...)
	args = append(args, dest)
	if preserveTimes {
		args = append(args, "-a")
	}

	lines, err := c.adb(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("pulling to %s: %w", dest, err)
	}
	return stripProgress(lines), nil
}

// Remove deletes files on the device. Without recursive only plain files are
// removed (rm -f); recursive adds -r and follows into directories.
func (c *Client) Remove(ctx context.Context, paths []string, recursive bool) ([]string, error) {
	flag := "-f"
	if recursive {
		flag = "-rf"
	}
	args := append([]string{"rm", flag}, paths...)
	return c.Shell(ctx, args, ShellOptions{})
}

// Mkdir creates a directory path of any depth on the device.
func (c *Client) Mkdir(ctx context.Context, path string) error {
	if _, err := c.Shell(ctx, []string{"mkdir", "-p", path}, ShellOptions{}); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}

// Rmdir removes a directory and everything under it.
func (c *Client) Rmdir(ctx context.Context, path string) error {
	if _, err := c.Shell(ctx, []string{"rm", "-rf", path}, ShellOptions{}); err != nil {
		return fmt.Errorf("rmdir %s: %w", path, err)
	}
	return nil
}

// ListDir runs ls -la on a device path. Entries that could not be read
// (permission denied, missing files) are returned separately.
func (c *Client) ListDir(ctx context.Context, path string, runAs bool) ([]FileInfo, []AccessError, error) {
	lines, err := c.Shell(ctx, []string{"ls", "-la", path}, ShellOptions{RunAs: runAs})
	if err != nil {
		return nil, nil, err
	}
	files, errsList := parseLsOutput(lines)
	return files, errsList, nil
}

// StatFile returns the listing entry for a single file. When the entry could
// not be read the access reason is returned as the error.
func (c *Client) StatFile(ctx context.Context, path string, runAs bool) (*FileInfo, error) {
	files, accessErrs, err := c.ListDir(ctx, path, runAs)
	if err != nil {
		return nil, err
	}
	if len(files) > 0 {
		return &files[0], nil
	}
	if len(accessErrs) > 0 {
		return nil, fmt.Errorf("stat %s: %s", path, accessErrs[0].Reason)
	}
	return nil, fmt.Errorf("stat %s: no such entry", path)
}

func parseLsOutput(lines []string) ([]FileInfo, []AccessError) {
	var files []FileInfo
	var accessErrs []AccessError

	for _, line := range lines {
		if strings.HasSuffix(line, "Permission denied") ||
			strings.HasSuffix(line, "No such file or directory") {
			parts := strings.Split(line, ": ")
			ae := AccessError{Reason: parts[len(parts)-1]}
			if len(parts) >= 2 {
				ae.Path = parts[len(parts)-2]
			}
			accessErrs = append(accessErrs, ae)
			continue
		}

		m := lsLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		// "total 48" style summary lines never match; "." and ".." do.
		if name := m[8]; name == "." || name == ".." {
			continue
		}
		files = append(files, FileInfo{
			Mode:  m[1],
			Links: m[2],
			Owner: m[3],
			Group: m[4],
			Size:  m[5],
			Date:  m[6],
			Time:  m[7],
			Name:  m[8],
		})
	}
	return files, accessErrs
}

// stripProgress drops adb's transfer progress lines ("[ 42%] ...").
func stripProgress(lines []string) []string {
	var out []string
	for _, line := range lines {
		if strings.Contains(line, "%]") {
			continue
		}
		out = append(out, line)
	}
	return out
}
