// Command dbtool moves the survey store in and out of the single JSON
// document layout.
//
//	dbtool export [-o file]          write the store as JSON (stdout by default)
//	dbtool import -i file [-force]   replace the store with a JSON document
//	dbtool seed                      migrate and seed an empty store
//
// The store is selected with the same DB_* variables the server reads.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tbourn/go-survey-backend/internal/config"
	"github.com/tbourn/go-survey-backend/internal/domain"
	"github.com/tbourn/go-survey-backend/internal/repo"
	"github.com/tbourn/go-survey-backend/internal/sysutil"
)

type tool struct {
	open   func() (*gorm.DB, error)
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	log    zerolog.Logger
}

func main() {
	_ = godotenv.Load()

	t := &tool{
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		log:    zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
	}
	t.open = func() (*gorm.DB, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		db, err := repo.Open(cfg.Store)
		if err != nil {
			return nil, err
		}
		return db, repo.AutoMigrate(db)
	}
	os.Exit(t.run(context.Background(), os.Args[1:]))
}

func (t *tool) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		t.usage(t.errOut)
		return 2
	}
	var err error
	switch args[0] {
	case "export":
		err = t.export(ctx, args[1:])
	case "import":
		err = t.importDoc(ctx, args[1:])
	case "seed":
		err = t.seed(ctx)
	case "help", "-h", "--help":
		t.usage(t.out)
		return 0
	default:
		fmt.Fprintf(t.errOut, "unknown command: %s\n\n", args[0])
		t.usage(t.errOut)
		return 2
	}
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if errors.Is(err, errUsage) {
		return 2
	}
	if err != nil {
		t.log.Error().Err(err).Str("command", args[0]).Msg("failed")
		return 1
	}
	return 0
}

var errUsage = errors.New("usage")

func (t *tool) usage(w io.Writer) {
	fmt.Fprintln(w, "dbtool: survey store export/import")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  dbtool export [-o file]")
	fmt.Fprintln(w, "  dbtool import -i file [-force]")
	fmt.Fprintln(w, "  dbtool seed")
}

func (t *tool) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(t.errOut)
	return fs
}

func (t *tool) export(ctx context.Context, args []string) error {
	fs := t.flags("export")
	outPath := fs.String("o", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return parseErr(err)
	}

	db, err := t.open()
	if err != nil {
		return err
	}
	doc, err := repo.ReadDocument(ctx, db)
	if err != nil {
		return err
	}

	w := t.out
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	t.logCounts("exported", doc)
	return nil
}

func (t *tool) importDoc(ctx context.Context, args []string) error {
	fs := t.flags("import")
	inPath := fs.String("i", "", "input file (required)")
	force := fs.Bool("force", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return parseErr(err)
	}
	if *inPath == "" {
		fmt.Fprintln(t.errOut, "import: -i is required")
		return errUsage
	}

	raw, err := os.ReadFile(*inPath)
	if err != nil {
		return err
	}
	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode %s: %w", *inPath, err)
	}

	if !*force {
		prompt := fmt.Sprintf("Replace the store with %d responses, %d employees, %d questions and %d users?",
			len(doc.Responses), len(doc.Employees), len(doc.Questions), len(doc.Users))
		if !sysutil.Confirm(t.in, t.errOut, prompt) {
			t.log.Info().Msg("import cancelled")
			return nil
		}
	}

	db, err := t.open()
	if err != nil {
		return err
	}
	if err := repo.WriteDocument(ctx, db, &doc); err != nil {
		return err
	}
	t.logCounts("imported", &doc)
	return nil
}

func (t *tool) seed(ctx context.Context) error {
	db, err := t.open()
	if err != nil {
		return err
	}
	if err := repo.Seed(ctx, db); err != nil {
		return err
	}
	t.log.Info().Msg("seeded")
	return nil
}

func (t *tool) logCounts(msg string, doc *domain.Document) {
	t.log.Info().
		Int("sessions", len(doc.Sessions)).
		Int("responses", len(doc.Responses)).
		Int("employees", len(doc.Employees)).
		Int("questions", len(doc.Questions)).
		Int("users", len(doc.Users)).
		Msg(msg)
}

func parseErr(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return errUsage
}
