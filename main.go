package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"keydex/pkg/btree"
	"keydex/pkg/config"
	"keydex/pkg/exhash"
	"keydex/pkg/loader"
	"keydex/pkg/logging"
	"keydex/pkg/store"
)

type Configuration struct {
	ConfigPath string
	InputFile  string
	Index      string // "btree", "hash" or "both"
	DataPath   string
	Dump       bool
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	summaryStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)
)

func main() {
	args := parseArguments()

	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.Init(logging.Config{
		Level:      logging.LogLevel(cfg.Logging.Level),
		OutputPath: cfg.Logging.Path,
		Format:     cfg.Logging.Format,
	}); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	fmt.Println(titleStyle.Render("keydex — B+ tree / extendible hash index loader"))

	if args.DataPath != "" {
		cfg.Storage.Path = args.DataPath
	}

	loadTree, loadTable := indexSelection(args.Index)

	// Each structure (and the bucket store backing the hash table) exists
	// only when selected, so a btree-only run never touches the data file.
	var tree *btree.BTree[int64, int64]
	var table *exhash.Table

	if loadTree {
		tree = btree.New[int64, int64](cfg.BTree.Order)
	}
	if loadTable {
		var bucketStore exhash.BucketStore
		if cfg.Storage.Path != "" {
			sqliteStore, err := store.OpenSQLite(cfg.Storage.Path)
			if err != nil {
				log.Fatalf("Failed to open bucket store: %v", err)
			}
			defer sqliteStore.Close()
			bucketStore = sqliteStore
		}
		table = exhash.New(cfg.Hash.BucketCapacity, cfg.Hash.GlobalDepth, bucketStore)
	}

	if _, err := os.Stat(args.InputFile); err != nil {
		fmt.Println(errorStyle.Render(fmt.Sprintf("Input file %q not found", args.InputFile)))
		os.Exit(1)
	}

	// The two structures are independent; load them in parallel, one
	// goroutine each so every structure stays single-threaded.
	var treeResult, tableResult *loader.Result
	var g errgroup.Group

	if loadTree {
		g.Go(func() error {
			var err error
			treeResult, err = loader.LoadFile(args.InputFile, tree)
			return err
		})
	}
	if loadTable {
		g.Go(func() error {
			var err error
			tableResult, err = loader.LoadFile(args.InputFile, table)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("Load failed: %v", err)
	}

	printSummary(tree, table, treeResult, tableResult)

	if args.Dump {
		if treeResult != nil {
			fmt.Println(titleStyle.Render("B+ tree"))
			fmt.Print(tree.Dump())
		}
		if tableResult != nil {
			fmt.Println(titleStyle.Render("Extendible hash"))
			fmt.Print(table.Dump())
		}
	}
}

// indexSelection maps the -index flag to which structures a run builds.
func indexSelection(index string) (loadTree, loadTable bool) {
	return index == "btree" || index == "both",
		index == "hash" || index == "both"
}

// parseArguments processes command-line flags
func parseArguments() Configuration {
	var args Configuration

	flag.StringVar(&args.ConfigPath, "config", "", "Path to YAML configuration file")
	flag.StringVar(&args.InputFile, "load", "", "File of newline-delimited integer keys to load")
	flag.StringVar(&args.Index, "index", "both", "Which structure to load: btree, hash or both")
	flag.StringVar(&args.DataPath, "data", "", "SQLite bucket store path (overrides config)")
	flag.BoolVar(&args.Dump, "dump", false, "Print structure dumps after loading")
	flag.Parse()

	if args.InputFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: keydex -load <file> [-index btree|hash|both] [-config path] [-data path] [-dump]")
		os.Exit(1)
	}

	switch args.Index {
	case "btree", "hash", "both":
	default:
		fmt.Fprintf(os.Stderr, "Unknown index %q: want btree, hash or both\n", args.Index)
		os.Exit(1)
	}

	return args
}

func printSummary(tree *btree.BTree[int64, int64], table *exhash.Table, treeResult, tableResult *loader.Result) {
	var lines string

	if treeResult != nil {
		lines += fmt.Sprintf("B+ tree: %d keys in %d leaves (%d duplicates, %d skipped)\n",
			tree.Len(), tree.LeafCount(), treeResult.Duplicates, treeResult.Skipped)
	}
	if tableResult != nil {
		lines += fmt.Sprintf("Hash table: %d keys in %d buckets, directory %d (depth %d)",
			table.Len(), table.BucketCount(), table.DirectorySize(), table.GlobalDepth())
	}

	fmt.Println(summaryStyle.Render(lines))
}
