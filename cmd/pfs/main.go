package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/clayne/physfs/pkg/platform"
)

var (
	configPath   string
	omitSymlinks bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pfs",
		Short: "Inspect the filesystem through the portable platform layer",
		Long: `pfs exercises the OS abstraction layer that backs the portable
virtual filesystem: stat, enumeration, environment discovery and file I/O
all go through the platform contract instead of the standard library.

Example:
  pfs ls --omit-symlinks /data
  pfs tree /data
  pfs stat /data/save.bin`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config with flag defaults")

	lsCmd := &cobra.Command{
		Use:   "ls <dir>",
		Short: "List directory entries via the platform enumerator",
		Args:  cobra.ExactArgs(1),
		RunE:  runLs,
	}
	lsCmd.Flags().BoolVar(&omitSymlinks, "omit-symlinks", false, "Skip symbolic-link entries")

	treeCmd := &cobra.Command{
		Use:   "tree <dir>",
		Short: "Recursively stat a directory tree",
		Args:  cobra.ExactArgs(1),
		RunE:  runTree,
	}
	treeCmd.Flags().BoolVar(&omitSymlinks, "omit-symlinks", false, "Skip symbolic-link entries")

	rootCmd.AddCommand(
		lsCmd,
		treeCmd,
		&cobra.Command{
			Use:   "stat <path>",
			Short: "Show type, size, timestamps and the read-only flag",
			Args:  cobra.ExactArgs(1),
			RunE:  runStat,
		},
		&cobra.Command{
			Use:   "env",
			Short: "Show the discovered user, base and current directories",
			Args:  cobra.NoArgs,
			RunE:  runEnv,
		},
		&cobra.Command{
			Use:   "mkdir <path>",
			Short: "Create a directory",
			Args:  cobra.ExactArgs(1),
			RunE:  runMkdir,
		},
		&cobra.Command{
			Use:   "rm <path>",
			Short: "Remove a file or an empty directory",
			Args:  cobra.ExactArgs(1),
			RunE:  runRm,
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the config file (if any), applies its defaults and opens the
// host backend. The caller closes the returned Platform.
func setup(cmd *cobra.Command) (platform.Platform, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("omit-symlinks") {
		omitSymlinks = cfg.OmitSymlinks
	}
	applyLogLevel(cfg.LogLevel)

	p, err := newHostPlatform()
	if err != nil {
		return nil, fmt.Errorf("open platform backend: %w", err)
	}
	return p, nil
}

func runLs(cmd *cobra.Command, args []string) error {
	p, err := setup(cmd)
	if err != nil {
		return err
	}
	defer p.Close()

	dir := args[0]
	var names []string
	err = p.Enumerate(dir, omitSymlinks, func(_, name string) {
		names = append(names, name)
	}, dir)
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Println(name)
	}
	debugf("enumerated %d entries in %s", len(names), dir)
	return nil
}

func runStat(cmd *cobra.Command, args []string) error {
	p, err := setup(cmd)
	if err != nil {
		return err
	}
	defer p.Close()

	st, err := p.Stat(args[0])
	if err != nil {
		if errors.Is(err, platform.ErrNotExist) {
			return fmt.Errorf("%s does not exist", args[0])
		}
		return err
	}
	fmt.Printf("type:     %s\n", st.Type)
	fmt.Printf("size:     %d\n", st.Size)
	fmt.Printf("modtime:  %d\n", st.ModTime)
	fmt.Printf("accessed: %d\n", st.AccessTime)
	fmt.Printf("created:  %d\n", st.CreateTime)
	fmt.Printf("readonly: %v\n", st.ReadOnly)
	return nil
}

func runTree(cmd *cobra.Command, args []string) error {
	p, err := setup(cmd)
	if err != nil {
		return err
	}
	defer p.Close()

	// stat the entries of each directory concurrently, recurse in order
	var walk func(dir, virt string) error
	walk = func(dir, virt string) error {
		var names []string
		err := p.Enumerate(dir, omitSymlinks, func(_, name string) {
			names = append(names, name)
		}, virt)
		if err != nil {
			return err
		}
		sort.Strings(names)

		stats := make([]platform.Stat, len(names))
		var g errgroup.Group
		g.SetLimit(runtime.NumCPU())
		for i, name := range names {
			i := i
			real := joinNative(p, dir, name)
			g.Go(func() error {
				st, err := p.Stat(real)
				if err != nil {
					return err
				}
				stats[i] = st
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, name := range names {
			virtPath := virt + "/" + name
			fmt.Printf("%-9s %12d  %s\n", stats[i].Type, stats[i].Size, virtPath)
			if stats[i].Type == platform.TypeDirectory {
				real := joinNative(p, dir, name)
				if err := walk(real, virtPath); err != nil {
					return err
				}
			}
		}
		return nil
	}

	return walk(args[0], args[0])
}

// joinNative appends one entry name to a directory path with exactly one
// native separator between them.
func joinNative(p platform.Platform, dir, name string) string {
	sep := p.DirSeparator()
	if strings.HasSuffix(dir, sep) {
		return p.ToDependent(dir, name, "")
	}
	return p.ToDependent(dir+sep, name, "")
}

func runEnv(cmd *cobra.Command, args []string) error {
	p, err := setup(cmd)
	if err != nil {
		return err
	}
	defer p.Close()

	show := func(label string, f func() (string, error)) {
		v, err := f()
		if err != nil {
			fmt.Printf("%-9s (unavailable: %v)\n", label+":", err)
			return
		}
		fmt.Printf("%-9s %s\n", label+":", v)
	}
	show("user", p.UserName)
	show("home", p.UserDir)
	show("base", p.BaseDir)
	show("cwd", p.CurrentDir)
	fmt.Printf("sep:      %q\n", p.DirSeparator())
	return nil
}

func runMkdir(cmd *cobra.Command, args []string) error {
	p, err := setup(cmd)
	if err != nil {
		return err
	}
	defer p.Close()
	return p.Mkdir(args[0])
}

func runRm(cmd *cobra.Command, args []string) error {
	p, err := setup(cmd)
	if err != nil {
		return err
	}
	defer p.Close()
	return p.Delete(args[0])
}
