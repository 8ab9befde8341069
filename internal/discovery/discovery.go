// Package discovery walks the filesystem to build a candidate set of log
// directories: a fixed seed list is expanded first, then each seed is
// refined by a shallow descent looking for nested directories that hold
// log-like files.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Common log locations on Ubuntu and similar systems. Entries may carry a
// single * wildcard segment or a leading ~ for the home directory.
var seedTemplates = []string{
	"/var/log",
	"/var/log/apache2",
	"/var/log/nginx",
	"/var/log/mysql",
	"/var/log/postgresql",
	"/var/log/syslog",
	"/var/log/auth",
	"/var/log/kern",
	"/var/log/mail",
	"/var/log/cron",
	"/var/log/daemon",
	"/var/log/user",
	"/var/log/messages",
	"/var/log/docker",
	"/var/log/pods",
	"/var/log/containers",
	"/opt/*/logs",
	"/usr/local/*/logs",
	"/tmp/logs",
	"/home/*/logs",
	"~/.local/share/logs",
	"/var/log/journal",
}

// maxDepth bounds the nested descent, counted in levels below a seed.
const maxDepth = 2

type Discoverer struct {
	logger *zap.Logger
	seeds  []string
}

func New(logger *zap.Logger) *Discoverer {
	return &Discoverer{
		logger: logger,
		seeds:  seedTemplates,
	}
}

// NewWithSeeds builds a discoverer over a custom seed list.
func NewWithSeeds(logger *zap.Logger, seeds []string) *Discoverer {
	return &Discoverer{
		logger: logger,
		seeds:  seeds,
	}
}

// Discover returns the deduplicated set of candidate directories, in no
// particular order. The same filesystem state always yields the same set;
// callers sort for display. Permission errors prune the affected branch
// and are otherwise ignored.
func (d *Discoverer) Discover(includeUserDirs bool) []string {
	found := make(map[string]struct{})

	for _, template := range d.seeds {
		if !includeUserDirs && isUserTemplate(template) {
			continue
		}
		d.expandSeed(template, found)
	}

	d.descend(found)

	dirs := make([]string, 0, len(found))
	for dir := range found {
		dirs = append(dirs, dir)
	}

	d.logger.Debug("discovery finished",
		zap.Int("candidates", len(dirs)))

	return dirs
}

// expandSeed resolves one template into zero or more existing directories.
// A wildcard template contributes <parent>/<child>/logs for every child of
// the parent prefix.
func (d *Discoverer) expandSeed(template string, found map[string]struct{}) {
	path, ok := expandHome(template)
	if !ok {
		return
	}

	if !strings.Contains(path, "*") {
		if isDir(path) {
			found[path] = struct{}{}
		}
		return
	}

	parent := strings.TrimRight(strings.SplitN(path, "*", 2)[0], "/")
	entries, err := os.ReadDir(parent)
	if err != nil {
		return
	}

	for _, entry := range entries {
		candidate := filepath.Join(parent, entry.Name(), "logs")
		if isDir(candidate) {
			found[candidate] = struct{}{}
		}
	}
}

// descend refines the seed set with a bounded depth-first walk over an
// explicit worklist. Subdirectories containing log-like files are added;
// every subdirectory is descended into until the depth bound, so symlink
// cycles terminate regardless.
func (d *Discoverer) descend(found map[string]struct{}) {
	type visit struct {
		path  string
		depth int
	}

	worklist := make([]visit, 0, len(found))
	for dir := range found {
		worklist = append(worklist, visit{path: dir})
	}

	for len(worklist) > 0 {
		current := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if current.depth >= maxDepth {
			continue
		}

		entries, err := os.ReadDir(current.path)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			sub := filepath.Join(current.path, entry.Name())
			if !isDirEntry(entry, sub) {
				continue
			}

			if ContainsLogFiles(sub) {
				found[sub] = struct{}{}
			}
			worklist = append(worklist, visit{path: sub, depth: current.depth + 1})
		}
	}
}

func isUserTemplate(template string) bool {
	return strings.HasPrefix(template, "~") || strings.HasPrefix(template, "/home/")
}

func expandHome(path string) (string, bool) {
	if !strings.HasPrefix(path, "~") {
		return path, true
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), true
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// isDirEntry follows symlinks the way the seed checks do, so a linked
// directory is still descended into (and still subject to the depth bound).
func isDirEntry(entry fs.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}

	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
