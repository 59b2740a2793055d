package main

import (
	"flag"
	"fmt"
	"os"

	"btreemap/btree"
	"btreemap/cli"

	log "github.com/sirupsen/logrus"
)

var (
	degree         *int
	shouldSeed     *bool
	seedNumRecords *int
	logLevel       *string
	historyFile    *string
)

func main() {
	setupFlags()

	// Output to stderr so the log never mixes with the tree printouts.
	log.SetOutput(os.Stderr)
	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(level)

	tree, err := btree.New[string, string](*degree)
	if err != nil {
		log.Fatal(err)
	}

	if *shouldSeed {
		cli.Seed(tree, *seedNumRecords)
		log.Infof("Seeded tree with %d records", *seedNumRecords)
	}

	demo, err := cli.NewCli(tree, *historyFile)
	if err != nil {
		log.Fatal(err)
	}
	demo.Start()
}

func setupFlags() {
	degree = flag.Int("degree", btree.DefaultDegree, "Minimum degree t of the B-tree (at least 2).")
	shouldSeed = flag.Bool("seed", false, "Seed the tree using records created with go-faker.")
	seedNumRecords = flag.Int("records", 100, "Amount of records to seed the tree with upon startup.")
	logLevel = flag.String("log-level", "warn", "Log level: debug, info, warn, error.")
	historyFile = flag.String("history", "/tmp/btreemap-readline.tmp", "Readline history file, empty to disable.")
	flag.Usage = func() {
		fmt.Println("\nB-Tree CLI\n\nArguments:")
		flag.PrintDefaults()
	}
	flag.Parse()
}
