package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"btreemap/btree"

	"github.com/chzyer/readline"
	"github.com/go-faker/faker/v4"
	log "github.com/sirupsen/logrus"
)

type Tree = btree.Map[string, string]

var completer = readline.NewPrefixCompleter(
	readline.PcItem("set"),
	readline.PcItem("del"),
	readline.PcItem("get"),
	readline.PcItem("len"),
	readline.PcItem("print"),
	readline.PcItem("check"),
	readline.PcItem("seed"),
	readline.PcItem("log",
		readline.PcItem("debug"),
		readline.PcItem("info"),
		readline.PcItem("warn"),
	),
	readline.PcItem("help"),
	readline.PcItem("exit"),
)

type Cli struct {
	rl         *readline.Instance
	out        io.Writer
	tree       *Tree
	visualizer *btree.Visualizer[string, string]
}

// NewCli opens a readline session writing history to historyFile (empty disables history).
func NewCli(t *Tree, historyFile string) (*Cli, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "\033[31m»\033[0m ",
		HistoryFile:  historyFile,
		AutoComplete: completer,
	})
	if err != nil {
		return nil, err
	}
	c := newCli(rl.Stdout(), t)
	c.rl = rl
	return c, nil
}

func newCli(out io.Writer, t *Tree) *Cli {
	return &Cli{
		out:        out,
		tree:       t,
		visualizer: &btree.Visualizer[string, string]{Tree: t},
	}
}

func (c *Cli) Start() {
	defer c.rl.Close()
	c.printHelp()
	for {
		line, err := c.rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return
			}
			continue
		} else if err == io.EOF {
			return
		}
		if !c.processInput(line) {
			return
		}
	}
}

func (c *Cli) printHelp() {
	fmt.Fprintln(c.out, `
B-Tree CLI

Available Commands:
  SET <key> <val> Insert a key-value pair into the B-Tree
  DEL <key>       Remove a key-value pair from the B-Tree
  GET <key>       Retrieve the value for key from the B-Tree
  LEN             Print the number of keys
  PRINT           Print the tree level by level
  CHECK           Verify the B-Tree invariants
  SEED <n>        Insert n random key-value pairs
  LOG <level>     Change the log level (debug, info, warn, ...)
  EXIT            Terminate this session`)
}

// processInput runs one command line and reports whether the session should go on.
func (c *Cli) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return true
	}
	command := strings.ToLower(fields[0])
	switch command {
	default:
		fmt.Fprintf(c.out, "Unknown command \"%s\"\n", command)
	case "set":
		c.processSetCommand(fields[1:])
	case "del":
		c.processDeleteCommand(fields[1:])
	case "get":
		c.processGetCommand(fields[1:])
	case "len":
		fmt.Fprintln(c.out, c.tree.Len())
	case "print":
		c.printTree()
	case "check":
		c.processCheckCommand()
	case "seed":
		c.processSeedCommand(fields[1:])
	case "log":
		c.processLogCommand(fields[1:])
	case "help":
		c.printHelp()
	case "exit":
		return false
	}
	return true
}

func (c *Cli) printTree() {
	fmt.Fprintln(c.out, c.tree)
	fmt.Fprint(c.out, c.visualizer.Visualize())
}

func (c *Cli) processSetCommand(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Usage: SET <key> <value>")
		return
	}
	if old, replaced := c.tree.Insert(args[0], args[1]); replaced {
		fmt.Fprintf(c.out, "Replaced \"%s\".\n", old)
	}
	c.printTree()
}

func (c *Cli) processDeleteCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: DEL <key>")
		return
	}
	if _, ok := c.tree.Remove(args[0]); !ok {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	c.printTree()
}

func (c *Cli) processGetCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: GET <key>")
		return
	}
	val, ok := c.tree.Get(args[0])
	if !ok {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	fmt.Fprintln(c.out, val)
}

func (c *Cli) processCheckCommand() {
	if err := c.tree.Validate(); err != nil {
		fmt.Fprintf(c.out, "Invalid tree: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, "OK")
}

func (c *Cli) processSeedCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: SEED <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		fmt.Fprintf(c.out, "Invalid count \"%s\"\n", args[0])
		return
	}
	Seed(c.tree, n)
	fmt.Fprintf(c.out, "Seeded %d records, %d keys in total.\n", n, c.tree.Len())
}

func (c *Cli) processLogCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: LOG <level>")
		return
	}
	level, err := log.ParseLevel(args[0])
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	log.SetLevel(level)
}

// Seed inserts n records made of random words created with go-faker.
func Seed(t *Tree, n int) {
	for i := 0; i < n; i++ {
		t.Insert(faker.Word()+faker.Word(), faker.Word())
	}
}
