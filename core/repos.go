package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gitpulse/gitpulse/internal/contract"
	"github.com/gitpulse/gitpulse/internal/gitsrc"
	"github.com/gitpulse/gitpulse/internal/outwriter"
	"github.com/gitpulse/gitpulse/schema"
)

// ExecuteReposAdd registers one local repository in the store.
func ExecuteReposAdd(ctx context.Context, cfg *contract.Config, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	source := gitsrc.NewLocalGitSource()
	if !source.IsValidRepository(ctx, absPath) {
		return fmt.Errorf("%q is not a readable git repository", absPath)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ref := schema.RepositoryRef{
		Name: schema.RepositoryName(absPath),
		Path: absPath,
	}
	if err := st.UpsertRepository(ctx, ref); err != nil {
		return err
	}
	fmt.Printf("Added %s (%s)\n", ref.Name, ref.Path)
	return nil
}

// ExecuteReposRemove untracks one repository. Accepts either the tracked
// name or a path; the repository's stored commits are removed with it.
func ExecuteReposRemove(ctx context.Context, cfg *contract.Config, nameOrPath string) error {
	name := nameOrPath
	if strings.ContainsAny(nameOrPath, `/\`) {
		name = schema.RepositoryName(nameOrPath)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.DeleteRepository(ctx, name); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", name)
	return nil
}

// ExecuteReposList prints the active repository set: config file entries
// plus store-tracked repositories, deduplicated by name.
func ExecuteReposList(ctx context.Context, cfg *contract.Config) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	tracked, err := st.ListRepositories(ctx)
	if err != nil {
		return err
	}

	seen := make(map[string]struct{})
	var repos []schema.RepositoryRef
	for _, r := range cfg.Repos {
		seen[r.Name] = struct{}{}
		repos = append(repos, r)
	}
	for _, r := range tracked {
		if _, ok := seen[r.Name]; ok {
			continue
		}
		repos = append(repos, r)
	}

	return outwriter.NewOutWriter().WriteRepositories(repos, cfg)
}

// ExecuteReposScan walks a directory tree looking for git repositories,
// descending at most cfg.ScanDepth levels. Hidden directories are skipped.
func ExecuteReposScan(ctx context.Context, cfg *contract.Config, root string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve path %q: %w", root, err)
	}

	source := gitsrc.NewLocalGitSource()
	items, err := scanDirectory(ctx, source, absRoot, cfg.ScanDepth)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteScan(items, cfg)
}

// scanDirectory lists directories under root down to the given depth and
// marks which ones are git repositories. A repository is a leaf: its
// subdirectories are not descended into.
func scanDirectory(ctx context.Context, source contract.CommitSource, root string, depth int) ([]schema.DirectoryItem, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", root, err)
	}

	var items []schema.DirectoryItem
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(root, entry.Name())
		item := schema.DirectoryItem{
			Name:      entry.Name(),
			Path:      path,
			IsGitRepo: source.IsValidRepository(ctx, path),
		}
		items = append(items, item)

		if !item.IsGitRepo && depth > 1 {
			nested, err := scanDirectory(ctx, source, path, depth-1)
			if err != nil {
				continue // unreadable subtree, keep scanning siblings
			}
			items = append(items, nested...)
		}
	}
	return items, nil
}
