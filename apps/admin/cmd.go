package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/trezcool/videoteca/core"
	"github.com/trezcool/videoteca/core/content"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	isTerminalFunc   = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) } // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf       *core.Config
	validate   *validator.Validate
	contentSvc *content.Service
	out        io.Writer
}

func (cli *commandLine) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cli.out, format, args...)
}

func (cli *commandLine) printUsage() {
	cli.printf("Usage:\n")
	cli.printf("  hashpassword - prompt for the admin password and print its bcrypt hash\n")
	cli.printf("  token [-username USERNAME] - print an admin JWT\n")
	cli.printf("  stats - print the content statistics of every subject\n")
	cli.printf("  import -subject S -subsubject SS -module M FILE... - upload local MP4 videos to a module\n")
	cli.printf("  prune - remove orphan videos, stale records and empty modules\n")
	cli.printf("  migrate COMMAND [ARGS] - run a goose command (up, up-to V, down, down-to V, redo, reset, status, version)\n")
	cli.printf("    against the PostgreSQL progress database\n")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	hashPasswordCmd := flag.NewFlagSet("hashpassword", flag.ContinueOnError)

	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenUname := tokenCmd.String("username", cli.conf.Admin.Username, "The admin username.")

	statsCmd := flag.NewFlagSet("stats", flag.ContinueOnError)

	importCmd := flag.NewFlagSet("import", flag.ContinueOnError)
	importSubject := importCmd.String("subject", "", "The subject slug.")
	importSubSubject := importCmd.String("subsubject", "", "The sub-subject slug.")
	importModule := importCmd.String("module", "", "The module slug.")

	pruneCmd := flag.NewFlagSet("prune", flag.ContinueOnError)
	migrateCmd := flag.NewFlagSet("migrate", flag.ContinueOnError)

	for _, fs := range []*flag.FlagSet{hashPasswordCmd, tokenCmd, statsCmd, importCmd, pruneCmd, migrateCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "hashpassword":
		if err := hashPasswordCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		cli.printf("Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		cli.printf("\n")
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			hashPasswordCmd.Usage()
			return errHelp
		}
		return cli.hashPassword(string(pwd))

	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if core.CleanString(*tokenUname) == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(*tokenUname)

	case "stats":
		if err := statsCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.stats(isTerminalFunc())

	case "import":
		if err := importCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if importCmd.NArg() == 0 {
			importCmd.Usage()
			return errHelp
		}
		key := content.NewModuleKey(*importSubject, *importSubSubject, *importModule)
		return cli.importVideos(key, importCmd.Args())

	case "prune":
		if err := pruneCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.prune()

	case "migrate":
		if err := migrateCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if migrateCmd.NArg() == 0 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(migrateCmd.Arg(0), migrateCmd.Args()[1:])

	default:
		cli.printUsage()
		return errHelp
	}
}
